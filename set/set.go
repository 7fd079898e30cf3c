package set

import (
	"iter"
	"slices"
)

// Builder folds a sequence of elements E into one value of set type S.
type Builder[E, S any] interface {
	Build(seq iter.Seq[E]) S
}

// BuilderFunc adapts an ordinary function to the [Builder] interface.
type BuilderFunc[E, S any] func(seq iter.Seq[E]) S

// Build calls f(seq).
func (f BuilderFunc[E, S]) Build(seq iter.Seq[E]) S { return f(seq) }

// DefaultSet is implemented by element types that know their own set type,
// i.e. how a sequence of themselves is combined. The receiver is not used;
// implementations are typically declared on a value receiver and invoked on
// the zero value.
type DefaultSet[E, S any] interface {
	SetFromSeq(seq iter.Seq[E]) S
}

// Default returns a builder that delegates to the element type's
// [DefaultSet] implementation.
func Default[E DefaultSet[E, S], S any]() BuilderFunc[E, S] {
	return func(seq iter.Seq[E]) S {
		var zero E

		return zero.SetFromSeq(seq)
	}
}

// Of builds a set from the given elements using b.
func Of[E, S any](b Builder[E, S], elems ...E) S {
	return b.Build(slices.Values(elems))
}

// Map returns a builder that converts each element with fn before passing it
// to b.
func Map[E, F, S any](b Builder[F, S], fn func(E) F) BuilderFunc[E, S] {
	return func(seq iter.Seq[E]) S {
		return b.Build(func(yield func(F) bool) {
			for e := range seq {
				if !yield(fn(e)) {
					return
				}
			}
		})
	}
}
