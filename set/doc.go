// Package set builds a single "set" value from a sequence of flag elements.
//
// A [Builder] answers the only question the rest of flagset asks of a
// flag-bearing type: given a sequence of its elements, what is the combined
// value? Two strategies are provided.
//
// Build-from-sequence constructs a container directly from the elements:
//
//	names := set.Slice[string]().Build(slices.Values(elems))
//	uniq  := set.Members[string]().Build(slices.Values(elems))
//
// Fold-by-combine reduces the elements through an associative operation,
// starting from the set type's own empty value:
//
//	mask := set.Bits[uint32]().Build(slices.Values([]uint32{0b01, 0b10}))
//	// mask == 0b11
//
// Element types may also declare their canonical set type by implementing
// [DefaultSet]; [Default] returns a builder delegating to it. A type that
// offers neither capability does not satisfy the constraints of any builder
// constructor and is rejected by the compiler.
//
// An empty sequence always yields the set type's empty value: the zero
// bitmask, a nil slice, or an empty [Set].
package set
