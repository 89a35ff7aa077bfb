// Package snapshot adds durable Snapshot persistence to a list, backed by
// a SQL store (spec.md §4.9's remount scenario, extended to survive a
// process restart, not just a DOM teardown).
package snapshot

import (
	vlist "git.sr.ht/~vlist/vlist"
	"git.sr.ht/~vlist/vlist/render"
)

// Store persists and retrieves a single named Snapshot. sqlitestore.go
// supplies the modernc.org/sqlite-backed implementation; tests use an
// in-memory map-backed Store.
type Store interface {
	Save(key string, snap vlist.Snapshot) error
	Load(key string) (vlist.Snapshot, bool, error)
}

// MemStore is a trivial in-process Store, useful for tests and for hosts
// that only need teardown/remount persistence within one process lifetime.
type MemStore struct {
	data map[string]vlist.Snapshot
}

func NewMemStore() *MemStore { return &MemStore{data: make(map[string]vlist.Snapshot)} }

func (m *MemStore) Save(key string, snap vlist.Snapshot) error {
	m.data[key] = snap
	return nil
}

func (m *MemStore) Load(key string) (vlist.Snapshot, bool, error) {
	snap, ok := m.data[key]
	return snap, ok, nil
}

// Config configures the snapshot feature.
type Config struct {
	Store Store
	Key   string
	// RestoreOnBuild, if true, restores a saved snapshot immediately
	// during Setup (spec.md §4.9's remount scenario).
	RestoreOnBuild bool
}

// Feature installs snapshot save-on-destroy and optional restore-on-build
// at spec.md §4.8's priority-80/90 slot, the last to run so it captures
// every other feature's effect on scroll position before the list tears
// down.
func Feature[N render.Node, T any](cfg Config) vlist.Feature[N, T] {
	return vlist.Feature[N, T]{
		Name:     "snapshot",
		Priority: vlist.PrioritySnapshot,
		Setup: func(ctx *vlist.Context[N, T]) error {
			capture := func() vlist.Snapshot {
				pos := ctx.State.ScrollPosition
				index := ctx.SizeCache.IndexAtOffset(pos)
				snap := vlist.Snapshot{
					Index:        index,
					OffsetInItem: pos - ctx.SizeCache.GetOffset(index),
					Total:        ctx.DataManager.GetItemCount(),
				}
				if fn, ok := ctx.LookupMethod("_getSelectedIds"); ok {
					snap.SelectedIds = fn.(func() []int)()
				}
				return snap
			}
			restore := func(snap vlist.Snapshot) {
				ctx.ScrollController.SetScrollTop(ctx.SizeCache.GetOffset(snap.Index) + snap.OffsetInItem)
				if snap.SelectedIds != nil {
					if fn, ok := ctx.LookupMethod("_restoreSelectedIds"); ok {
						fn.(func([]int))(snap.SelectedIds)
					}
				}
			}
			if cfg.RestoreOnBuild {
				if snap, ok, err := cfg.Store.Load(cfg.Key); err == nil && ok {
					restore(snap)
				}
			}
			ctx.RegisterMethod("snapshot.Save", func() error {
				return cfg.Store.Save(cfg.Key, capture())
			})
			ctx.RegisterMethod("snapshot.Restore", func() error {
				snap, ok, err := cfg.Store.Load(cfg.Key)
				if err != nil || !ok {
					return err
				}
				restore(snap)
				return nil
			})
			ctx.DestroyHandlers = append(ctx.DestroyHandlers, func() {
				_ = cfg.Store.Save(cfg.Key, capture())
			})
			return nil
		},
	}
}
