package set

import (
	"cmp"
	"iter"
	"maps"
	"slices"
)

// Slice returns a builder that collects elements, in order and including
// duplicates, into a slice. The empty set is a nil slice.
func Slice[E any]() BuilderFunc[E, []E] {
	return slices.Collect[E]
}

// Set is an unordered collection of distinct elements.
type Set[E comparable] map[E]struct{}

// Members returns a builder that collects distinct elements into a [Set].
// The empty set is an empty, non-nil Set.
func Members[E comparable]() BuilderFunc[E, Set[E]] {
	return func(seq iter.Seq[E]) Set[E] {
		s := make(Set[E])
		for e := range seq {
			s[e] = struct{}{}
		}

		return s
	}
}

// Has reports whether e is a member of s.
func (s Set[E]) Has(e E) bool {
	_, ok := s[e]

	return ok
}

// Len returns the number of members of s.
func (s Set[E]) Len() int { return len(s) }

// Equal reports whether s and t contain the same members.
func (s Set[E]) Equal(t Set[E]) bool {
	if len(s) != len(t) {
		return false
	}

	for e := range s {
		if !t.Has(e) {
			return false
		}
	}

	return true
}

// All returns an iterator over the members of s in unspecified order.
func (s Set[E]) All() iter.Seq[E] { return maps.Keys(s) }

// Sorted returns the members of an ordered set in ascending order.
func Sorted[E cmp.Ordered](s Set[E]) []E {
	return slices.Sorted(maps.Keys(s))
}
