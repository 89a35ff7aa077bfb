package snapshot

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"

	vlist "git.sr.ht/~vlist/vlist"
)

// SQLiteStore persists Snapshots to a sqlite database, keyed by an
// arbitrary caller-chosen string (typically the list's container
// selector). Grounded on the pack's modernc.org/sqlite driver, used here in
// the same plain database/sql style the pack's other sqlite-backed
// example repos do (a single small table created at construction; each
// call runs its SQL directly, without prepared statements).
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (creating if necessary) a sqlite database at path
// and ensures the snapshot table exists.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("vlist/snapshot: opening sqlite store: %w", err)
	}
	const schema = `CREATE TABLE IF NOT EXISTS vlist_snapshots (
		key TEXT PRIMARY KEY,
		item_index INTEGER NOT NULL,
		offset_in_item REAL NOT NULL,
		total INTEGER NOT NULL,
		selected_ids TEXT
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("vlist/snapshot: creating schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Save(key string, snap vlist.Snapshot) error {
	_, err := s.db.Exec(
		`INSERT INTO vlist_snapshots (key, item_index, offset_in_item, total, selected_ids)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
		   item_index=excluded.item_index,
		   offset_in_item=excluded.offset_in_item,
		   total=excluded.total,
		   selected_ids=excluded.selected_ids`,
		key, snap.Index, snap.OffsetInItem, snap.Total, encodeSelectedIds(snap.SelectedIds),
	)
	if err != nil {
		return fmt.Errorf("vlist/snapshot: saving %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Load(key string) (vlist.Snapshot, bool, error) {
	var snap vlist.Snapshot
	var selectedIds sql.NullString
	row := s.db.QueryRow(
		`SELECT item_index, offset_in_item, total, selected_ids FROM vlist_snapshots WHERE key = ?`,
		key,
	)
	err := row.Scan(&snap.Index, &snap.OffsetInItem, &snap.Total, &selectedIds)
	if err == sql.ErrNoRows {
		return vlist.Snapshot{}, false, nil
	}
	if err != nil {
		return vlist.Snapshot{}, false, fmt.Errorf("vlist/snapshot: loading %q: %w", key, err)
	}
	snap.SelectedIds = decodeSelectedIds(selectedIds)
	return snap, true, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// encodeSelectedIds/decodeSelectedIds round-trip Snapshot.SelectedIds
// through a comma-separated TEXT column, since sqlite has no native array
// type and JSON would be overkill for a flat list of ints. nil (no
// selection feature installed) is stored as SQL NULL, distinct from an
// empty selection.
func encodeSelectedIds(ids []int) interface{} {
	if ids == nil {
		return nil
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

func decodeSelectedIds(raw sql.NullString) []int {
	if !raw.Valid {
		return nil
	}
	if raw.String == "" {
		return []int{}
	}
	parts := strings.Split(raw.String, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		if n, err := strconv.Atoi(p); err == nil {
			ids = append(ids, n)
		}
	}
	return ids
}
