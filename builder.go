package vlist

import (
	"fmt"
	"sort"

	"git.sr.ht/~vlist/vlist/render"
)

// Feature is a composable unit of behavior (spec.md §4.8): grid, async
// loading, selection, sections, scrollbar, snapshots, and scale all
// implement this over the same Context. Priority controls setup order;
// lower runs first. Spec.md §4.8 documents the canonical ordering: layout
// (10) before async (20) before scale (30) before selection (50) before
// sections (60) before scrollbar (70) before snapshot (80-90), so that a
// later feature can rely on an earlier one having already installed its
// range/render functions and registered its methods.
type Feature[N render.Node, T any] struct {
	Name     string
	Priority int
	// Conflicts lists feature names that cannot be registered alongside
	// this one (spec.md §4.8: "Two features declaring mutual conflict
	// cause build() to throw"). Build fails if any named feature is also
	// registered, regardless of which of the two lists the other.
	Conflicts []string
	// Setup wires the feature into ctx. It may replace the range/render
	// functions, append handlers, register methods, and read/write Config.
	Setup func(ctx *Context[N, T]) error
}

// Builder assembles a Context by running a set of Features in priority
// order, per spec.md §4.8's "features run in priority order during
// build()".
type Builder[N render.Node, T any] struct {
	features []Feature[N, T]
	seen     map[string]bool
}

// NewBuilder constructs an empty Builder.
func NewBuilder[N render.Node, T any]() *Builder[N, T] {
	return &Builder[N, T]{seen: make(map[string]bool)}
}

// Use registers f. Registering a feature under a Name already in use is not
// an error: the new feature replaces the earlier one in place (keeping its
// registration position), so callers can override a built-in feature by
// re-registering under the same name before Build runs — the last
// registration for a name wins.
func (b *Builder[N, T]) Use(f Feature[N, T]) *Builder[N, T] {
	for i, existing := range b.features {
		if existing.Name == f.Name {
			b.features[i] = f
			return b
		}
	}
	b.features = append(b.features, f)
	return b
}

// Build runs every registered feature's Setup against ctx in priority
// order (ties broken by registration order, since sort.SliceStable
// preserves it). The first Setup error aborts the build and is returned
// wrapped with the failing feature's name.
func (b *Builder[N, T]) Build(ctx *Context[N, T]) error {
	ordered := make([]Feature[N, T], len(b.features))
	copy(ordered, b.features)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})

	registered := make(map[string]bool, len(ordered))
	for _, f := range ordered {
		registered[f.Name] = true
	}
	for _, f := range ordered {
		for _, conflict := range f.Conflicts {
			if registered[conflict] {
				return fmt.Errorf("vlist: feature %q conflicts with registered feature %q", f.Name, conflict)
			}
		}
	}

	for _, f := range ordered {
		if f.Setup == nil {
			continue
		}
		if err := f.Setup(ctx); err != nil {
			return fmt.Errorf("vlist: feature %q setup failed: %w", f.Name, err)
		}
	}
	return nil
}

// Feature priority constants, per spec.md §4.8's canonical ordering.
const (
	PriorityLayout    = 10
	PriorityAsync     = 20
	PriorityScale     = 30
	PrioritySelection = 50
	PrioritySections  = 60
	PriorityScrollbar = 70
	PrioritySnapshot  = 80
)
