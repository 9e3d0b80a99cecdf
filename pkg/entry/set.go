package entry

import "sort"

// Set is the full local or remote collection of entries keyed by id. It is
// the unit the reconciler merges.
type Set map[string]*Entry

// Clone returns a shallow copy of the set; entries themselves are shared.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for id, e := range s {
		out[id] = e
	}
	return out
}

// Sorted returns the entries ordered by date key, oldest first.
func (s Set) Sorted() []*Entry {
	out := make([]*Entry, 0, len(s))
	for _, e := range s {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}
