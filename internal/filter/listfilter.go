package filter

import "strings"

// MatchesSearch reports whether any of the fields contains term,
// case-insensitively. An empty term matches everything.
func MatchesSearch(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// ByKey builds a discrete-filter predicate matching entities whose key equals
// selected. The zero value of V ("no filter selected") matches everything.
func ByKey[T any, V comparable](selected V, key func(T) V) func(T) bool {
	var zero V
	if selected == zero {
		return func(T) bool { return true }
	}
	return func(e T) bool { return key(e) == selected }
}

// ListFilter derives the visible subset of a screen's canonical list. It is
// pure state plus Apply; nothing here triggers I/O.
type ListFilter[T any] struct {
	// Term is the free-text search term. Always matched client-side.
	Term string

	// Fields extracts the searchable string fields of an entity.
	Fields func(T) []string

	// Discrete holds the active discrete-filter predicates, built with
	// ByKey. All must match (logical AND).
	Discrete []func(T) bool
}

// Apply returns the entities satisfying every active discrete filter and the
// search predicate, in the original list order. The input slice is never
// mutated or re-sorted.
func (f ListFilter[T]) Apply(list []T) []T {
	out := make([]T, 0, len(list))
outer:
	for _, e := range list {
		for _, pred := range f.Discrete {
			if !pred(e) {
				continue outer
			}
		}
		if f.Fields != nil && !MatchesSearch(f.Term, f.Fields(e)...) {
			continue
		}
		out = append(out, e)
	}
	return out
}
