package env

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/ardnew/flagset/lang"
	"github.com/ardnew/flagset/log"
	"github.com/ardnew/flagset/pkg"
)

// Type is a flag-bearing type: a path and its named integer flags.
type Type struct {
	Path   lang.Path
	Names  []string // Declaration order
	Values map[string]uint64
	Source string // File the type was loaded from, if any
}

// Flag returns the value of the named flag.
func (t *Type) Flag(name string) (uint64, bool) {
	v, ok := t.Values[name]

	return v, ok
}

// Field is a raw flag definition prior to evaluation. Value holds an integer
// or an expression string.
type Field struct {
	Name  string
	Value any
}

// Table is a namespace of flag-bearing types keyed by path.
// It implements [lang.Resolver] for uint64 and [lang.TypeResolver].
//
// A Table is not safe for concurrent modification; once populated it may be
// read from any number of goroutines.
type Table struct {
	types   map[string]*Type
	order   []string
	environ map[string]string
	logger  log.Logger
}

// NewTable returns an empty table.
func NewTable(opts ...Option) *Table {
	t := &Table{types: make(map[string]*Type)}

	for _, opt := range opts {
		opt(t)
	}

	if t.environ == nil {
		t.environ = environMap(nil)
	}

	return t
}

// Len returns the number of types in t.
func (t *Table) Len() int { return len(t.order) }

// Types returns the types of t in the order they were defined.
func (t *Table) Types() []*Type {
	out := make([]*Type, len(t.order))
	for i, key := range t.order {
		out[i] = t.types[key]
	}

	return out
}

// Paths returns the type paths of t in the order they were defined.
func (t *Table) Paths() []string { return slices.Clone(t.order) }

// Lookup returns the type with the given path.
func (t *Table) Lookup(path string) (*Type, bool) {
	typ, ok := t.types[path]

	return typ, ok
}

// Define evaluates fields in order and adds the resulting type to t.
//
// If a type with the same path already exists, the existing definition is
// kept and Define returns false. Each field may refer to the fields before
// it.
func (t *Table) Define(
	ctx context.Context,
	path lang.Path,
	source string,
	fields ...Field,
) (bool, error) {
	key := path.String()

	if len(path) == 0 {
		return false, pkg.ErrLoadDefinitions.
			Wrap(pkg.ErrEmptyPath).
			With(slog.String("source", source))
	}

	for _, seg := range path {
		if !lang.IsIdentifier(seg) {
			return false, pkg.ErrLoadDefinitions.
				Wrapf("invalid path segment %q", seg).
				With(slog.String("type", key), slog.String("source", source))
		}
	}

	if prev, ok := t.types[key]; ok {
		t.logger.DebugContext(ctx, "type already defined",
			slog.String("type", key),
			slog.String("source", source),
			slog.String("defined_in", prev.Source))

		return false, nil
	}

	typ := &Type{
		Path:   slices.Clone(path),
		Names:  make([]string, 0, len(fields)),
		Values: make(map[string]uint64, len(fields)),
		Source: source,
	}

	for _, f := range fields {
		if !lang.IsIdentifier(f.Name) {
			return false, pkg.ErrLoadDefinitions.
				Wrapf("invalid flag name %q", f.Name).
				With(slog.String("type", key), slog.String("source", source))
		}

		if f.Name == envFunc {
			return false, pkg.ErrLoadDefinitions.
				Wrapf("flag name %q is reserved", f.Name).
				With(slog.String("type", key), slog.String("source", source))
		}

		if _, dup := typ.Values[f.Name]; dup {
			return false, pkg.ErrLoadDefinitions.
				Wrapf("duplicate flag %q", f.Name).
				With(slog.String("type", key), slog.String("source", source))
		}

		v, err := t.evaluate(ctx, typ, f)
		if err != nil {
			return false, err
		}

		typ.Names = append(typ.Names, f.Name)
		typ.Values[f.Name] = v
	}

	t.types[key] = typ
	t.order = append(t.order, key)

	t.logger.TraceContext(ctx, "type defined",
		slog.String("type", key),
		slog.Int("flag_count", len(typ.Names)),
		slog.String("source", source))

	return true, nil
}

// Resolve returns the value of el within its containing type.
// Unknown types and flags fail with [pkg.ErrUnresolvedElement], suggesting
// close matches when any exist.
func (t *Table) Resolve(ctx context.Context, el lang.Element) (uint64, error) {
	typ, err := t.lookupType(el.Path, el.Pos)
	if err != nil {
		return 0, err
	}

	v, ok := typ.Values[el.Name]
	if !ok {
		err := pkg.ErrUnresolvedElement.WithPosition(el.Pos).
			With(slog.String("element", el.String()))

		return 0, withSuggestions(err, el.Name, typ.Names)
	}

	t.logger.TraceContext(ctx, "resolved element",
		slog.String("element", el.String()),
		slog.Uint64("value", v))

	return v, nil
}

// ResolveType reports whether path names a type in t.
func (t *Table) ResolveType(_ context.Context, path lang.Path) error {
	_, err := t.lookupType(path, pkg.Position{})

	return err
}

func (t *Table) lookupType(path lang.Path, pos pkg.Position) (*Type, error) {
	key := path.String()

	if typ, ok := t.types[key]; ok {
		return typ, nil
	}

	err := pkg.ErrUnresolvedElement.With(slog.String("type", key))
	if pos.IsValid() {
		err = err.WithPosition(pos)
	}

	return nil, withSuggestions(err, key, t.order)
}

// Flags returns the qualified names of every flag in t, sorted.
func (t *Table) Flags() []string {
	var out []string

	for _, typ := range t.Types() {
		for _, name := range typ.Names {
			out = append(out, typ.Path.Join(name).String())
		}
	}

	slices.SortFunc(out, strings.Compare)

	return out
}
