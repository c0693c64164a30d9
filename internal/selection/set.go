// Package selection implements the topic selection state machine and the
// cross-course link annotations derived from it.
package selection

import (
	"slices"
	"sort"
)

// Set is an immutable set of selected sub-topic IDs. The zero value is empty.
type Set struct {
	ids map[string]struct{}
}

// NewSet returns a set holding the given IDs.
func NewSet(ids ...string) Set {
	return Set{}.with(ids...)
}

// Has reports whether id is selected.
func (s Set) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected IDs.
func (s Set) Len() int {
	return len(s.ids)
}

// IDs returns the selected IDs in ascending order.
func (s Set) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Map returns the set as a membership map, the form catalog queries accept.
func (s Set) Map() map[string]bool {
	m := make(map[string]bool, len(s.ids))
	for id := range s.ids {
		m[id] = true
	}
	return m
}

// Equal reports whether both sets hold the same IDs.
func (s Set) Equal(o Set) bool {
	if len(s.ids) != len(o.ids) {
		return false
	}
	for id := range s.ids {
		if !o.Has(id) {
			return false
		}
	}
	return true
}

// Diff returns the IDs present in s but not in o, sorted.
func (s Set) Diff(o Set) []string {
	var out []string
	for id := range s.ids {
		if !o.Has(id) {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}

func (s Set) with(ids ...string) Set {
	next := make(map[string]struct{}, len(s.ids)+len(ids))
	for id := range s.ids {
		next[id] = struct{}{}
	}
	for _, id := range ids {
		next[id] = struct{}{}
	}
	return Set{ids: next}
}

func (s Set) without(ids ...string) Set {
	next := make(map[string]struct{}, len(s.ids))
	for id := range s.ids {
		next[id] = struct{}{}
	}
	for _, id := range ids {
		delete(next, id)
	}
	return Set{ids: next}
}
