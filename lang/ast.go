package lang

import (
	"slices"
	"strings"
)

// PathSep separates the segments of a [Path] and an [Element].
const PathSep = "::"

// Path is an ordered, non-empty sequence of namespace segments identifying a
// flag-bearing type, e.g. ["ponydom", "Flags"].
type Path []string

// String returns the segments joined with "::".
func (p Path) String() string { return strings.Join(p, PathSep) }

// Join returns the [Element] formed by appending name to p.
func (p Path) Join(name string) Element {
	return Element{Path: p, Name: name}
}

// Separator identifies the token separating two items of a list.
type Separator int

const (
	SepNone  Separator = iota // none
	SepPipe                   // |
	SepComma                  // ,
)

// String returns the separator token, or "" for [SepNone].
func (s Separator) String() string {
	switch s {
	case SepPipe:
		return "|"
	case SepComma:
		return ","
	default:
		return ""
	}
}

func separatorOf(r rune) (Separator, bool) {
	switch r {
	case '|':
		return SepPipe, true
	case ',':
		return SepComma, true
	default:
		return SepNone, false
	}
}

// Item is a bare flag name appearing inside the braces.
type Item struct {
	Name string
	Pos  Position
}

// Element is a fully qualified flag reference: a [Path] joined with one item
// name.
type Element struct {
	Path Path
	Name string
	Pos  Position
}

// String returns the qualified name, e.g. "ponydom::Flags::Winged".
func (e Element) String() string {
	if len(e.Path) == 0 {
		return e.Name
	}

	return e.Path.String() + PathSep + e.Name
}

// Segments returns the path segments followed by the name.
func (e Element) Segments() []string {
	return append(slices.Clip(e.Path), e.Name)
}

// Invocation is a parsed "Path::{Items}" expression.
type Invocation struct {
	Path   Path
	Items  []Item
	Seps   []Separator // len(Seps) == max(len(Items)-1, 0)
	Pos    Position    // Start of the first path segment
	Source string
}

// ContainingType returns the path naming the flag-bearing type, i.e. the
// invocation prefix "A::B::" without its trailing separator.
func (inv *Invocation) ContainingType() Path {
	return slices.Clone(inv.Path)
}

// Separator returns the kind of separator used between items, or [SepNone]
// if the list has fewer than two items. When separators are mixed, the
// first one is returned.
func (inv *Invocation) Separator() Separator {
	if len(inv.Seps) == 0 {
		return SepNone
	}

	return inv.Seps[0]
}

// Names returns the bare item names in source order.
func (inv *Invocation) Names() []string {
	names := make([]string, len(inv.Items))
	for i, it := range inv.Items {
		names[i] = it.Name
	}

	return names
}

// Elements returns the qualified elements of the invocation in source order.
// The result has one entry per item and is empty for "Path::{}".
func (inv *Invocation) Elements() []Element {
	path := inv.ContainingType()

	return appendElements(make([]Element, 0, len(inv.Items)), path, inv.Items)
}

// appendElements emits path::head and recurses on the remaining items.
func appendElements(out []Element, path Path, items []Item) []Element {
	if len(items) == 0 {
		return out
	}

	head := items[0]
	out = append(out, Element{Path: path, Name: head.Name, Pos: head.Pos})

	return appendElements(out, path, items[1:])
}

// String returns the canonical native form of the invocation.
func (inv *Invocation) String() string {
	var sb strings.Builder

	_ = inv.Format(&sb, StyleNative)

	return sb.String()
}

// clone returns a deep copy of inv.
func (inv *Invocation) clone() *Invocation {
	c := *inv
	c.Path = slices.Clone(inv.Path)
	c.Items = slices.Clone(inv.Items)
	c.Seps = slices.Clone(inv.Seps)

	return &c
}
