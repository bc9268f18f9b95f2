package live

import (
	"context"
	"sync"

	"talenthub-backend/internal/filter"
)

// View owns one page's state: the full unfiltered collection, the active
// filter params, and the derived visible slice. Both inputs trigger the same
// synchronous recompute; there is no caching beyond the single derived
// value, which is fine at tens to low thousands of rows.
type View[T any] struct {
	mu      sync.Mutex
	load    func(context.Context) ([]T, error)
	spec    filter.Spec[T]
	params  filter.Params
	full    []T
	visible []T
}

// NewView builds a view over load with the given entity spec. The view is
// empty until the first Refresh.
func NewView[T any](load func(context.Context) ([]T, error), spec filter.Spec[T], params filter.Params) *View[T] {
	return &View[T]{
		load:   load,
		spec:   spec,
		params: params,
	}
}

// Refresh adopts a fresh full collection wholesale (no diff/merge) and
// recomputes the visible slice against the current params. Params are never
// reset by a remote update.
func (v *View[T]) Refresh(ctx context.Context) error {
	full, err := v.load(ctx)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.full = full
	v.visible = filter.Apply(v.full, v.params, v.spec)
	return nil
}

// SetParams adopts new filter params and recomputes from the current full
// collection. Facet selections invalidated by an upstream change are reset
// to "all" before the recompute.
func (v *View[T]) SetParams(params filter.Params) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.params = filter.Reconcile(v.full, params, v.spec)
	v.visible = filter.Apply(v.full, v.params, v.spec)
}

// Visible returns the derived slice. Callers must not mutate it.
func (v *View[T]) Visible() []T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.visible
}

// Params returns the active filter params after any reconciliation.
func (v *View[T]) Params() filter.Params {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.params
}

// FacetOptions derives the selectable values for one facet from the full
// collection and the current upstream selections.
func (v *View[T]) FacetOptions(facet string) []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return filter.Options(v.full, v.params, v.spec, facet)
}
