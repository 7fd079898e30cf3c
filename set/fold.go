package set

import (
	"iter"

	"golang.org/x/exp/constraints"
)

// Fold returns a builder that reduces a sequence left-to-right through
// combine, starting from seed. The seed must be the identity of combine so
// that an empty sequence yields the empty set.
func Fold[E, S any](seed S, combine func(S, E) S) BuilderFunc[E, S] {
	return func(seq iter.Seq[E]) S {
		acc := seed
		for e := range seq {
			acc = combine(acc, e)
		}

		return acc
	}
}

// Bits returns a builder that combines integer bitmask flags with bitwise OR.
// The empty set is the zero value.
func Bits[E constraints.Integer]() BuilderFunc[E, E] {
	return Fold(E(0), func(acc, e E) E { return acc | e })
}

// Combiner is implemented by element types that provide their own associative
// combine operation. The zero value of the type must be its identity.
type Combiner[E any] interface {
	Combine(E) E
}

// Combined returns a builder that folds elements through their Combine
// method, starting from the zero value.
func Combined[E Combiner[E]]() BuilderFunc[E, E] {
	var zero E

	return Fold(zero, func(acc, e E) E { return acc.Combine(e) })
}
