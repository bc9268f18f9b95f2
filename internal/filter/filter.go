// Package filter reduces an in-memory collection to the rows matching a
// free-text query and a set of categorical facet selections. Filtering is a
// pure function over the slice: same inputs, same ordered output.
package filter

import (
	"sort"
	"strings"
)

// All is the sentinel facet value that disables a facet's equality test.
const All = "all"

// Params holds the active filter inputs for one view.
type Params struct {
	Query  string
	Facets map[string]string // facet name -> selected value or All
}

// Facet returns the selection for name, defaulting to All when unset.
func (p Params) Facet(name string) string {
	if p.Facets == nil {
		return All
	}
	if v, ok := p.Facets[name]; ok && v != "" {
		return v
	}
	return All
}

// WithFacet returns a copy of p with one facet selection changed. The
// receiver is never mutated, so params can be shared across recomputes.
func (p Params) WithFacet(name, value string) Params {
	facets := make(map[string]string, len(p.Facets)+1)
	for k, v := range p.Facets {
		facets[k] = v
	}
	facets[name] = value
	return Params{Query: p.Query, Facets: facets}
}

// Spec describes how one entity type is searched and faceted.
type Spec[T any] struct {
	// SearchFields returns the values the free-text query is matched
	// against. Empty strings are fine; they simply never match.
	SearchFields func(T) []string
	// FacetValue returns an item's value for a named facet dimension.
	FacetValue func(T, string) string
	// FacetOrder lists facet names upstream-first. A facet's option set is
	// restricted by selections on facets earlier in this list.
	FacetOrder []string
}

// Apply filters items by the AND of all active facet equality tests and the
// free-text OR-across-fields test. Relative order is preserved and the
// input slice is never mutated. An empty query always passes.
func Apply[T any](items []T, params Params, spec Spec[T]) []T {
	query := strings.ToLower(strings.TrimSpace(params.Query))

	out := make([]T, 0, len(items))
	for _, item := range items {
		if !facetsMatch(item, params, spec) {
			continue
		}
		if query != "" && !searchMatch(item, query, spec) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func facetsMatch[T any](item T, params Params, spec Spec[T]) bool {
	for _, name := range spec.FacetOrder {
		selected := params.Facet(name)
		if selected == All {
			continue
		}
		if spec.FacetValue(item, name) != selected {
			return false
		}
	}
	return true
}

func searchMatch[T any](item T, loweredQuery string, spec Spec[T]) bool {
	if spec.SearchFields == nil {
		return false
	}
	for _, field := range spec.SearchFields(item) {
		if field == "" {
			continue
		}
		if strings.Contains(strings.ToLower(field), loweredQuery) {
			return true
		}
	}
	return false
}

// Options derives the selectable values for one facet: the distinct values
// of that dimension across the items matching every upstream facet
// selection. The result is sorted and excludes empty values; All is implied
// and not included.
func Options[T any](items []T, params Params, spec Spec[T], facet string) []string {
	seen := make(map[string]struct{})
	for _, item := range items {
		if !upstreamMatch(item, params, spec, facet) {
			continue
		}
		if v := spec.FacetValue(item, facet); v != "" {
			seen[v] = struct{}{}
		}
	}

	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

func upstreamMatch[T any](item T, params Params, spec Spec[T], facet string) bool {
	for _, name := range spec.FacetOrder {
		if name == facet {
			return true
		}
		selected := params.Facet(name)
		if selected == All {
			continue
		}
		if spec.FacetValue(item, name) != selected {
			return false
		}
	}
	return true
}

// Reconcile resets, in upstream-to-downstream order, any facet whose
// selected value is no longer in its option set. Changing a company facet
// therefore clears a position selection that only existed under another
// company, instead of silently presenting an empty result.
func Reconcile[T any](items []T, params Params, spec Spec[T]) Params {
	for _, name := range spec.FacetOrder {
		selected := params.Facet(name)
		if selected == All {
			continue
		}
		valid := false
		for _, v := range Options(items, params, spec, name) {
			if v == selected {
				valid = true
				break
			}
		}
		if !valid {
			params = params.WithFacet(name, All)
		}
	}
	return params
}
