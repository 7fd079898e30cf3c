// Package lang parses flag invocations and expands them into qualified
// elements.
//
// An invocation names a flag-bearing type by its namespace path and lists
// the flags to combine inside braces:
//
//	ponydom::Flags::{Winged | Horned}
//	Test::{A, B}
//	Test::{}
//
// # Grammar
//
// Informal EBNF:
//
//	Invocation → Path '{' ItemList? '}' EOF
//	Path       → (Identifier '::')+
//	ItemList   → Identifier (Sep Identifier)*
//	Sep        → '|' | ','
//
// Whitespace and comments ("// ..." and "/* ... */") may appear between any
// two tokens. By default a list must use a single separator kind; see
// [WithMixedSeparators].
//
// # Stages
//
// Expansion is a two-stage pipeline. [SetArray] runs only the first stage
// and returns the ordered [Element] sequence, each element being the path
// joined with one item:
//
//	SetArray(ctx, "A::B::{X | Y}") // [A::B::X A::B::Y]
//
// [Flags] runs both stages: each element is resolved to a value through a
// [Resolver] and the values are combined with a [set.Builder]:
//
//	vals := lang.Values[uint8]{"Test::A": 0b01, "Test::B": 0b10}
//	mask, err := lang.Flags(ctx, "Test::{A | B}", vals, set.Bits[uint8]())
//
// The parser performs no name lookup. Whether Test::A exists is decided by
// the resolver, which reports [ErrUnresolvedElement] otherwise.
//
// Parsed invocations are memoized by content hash. Every call returns an
// independent copy, so parsing is a pure function of its input.
package lang
