package lang

import (
	"context"
	"log/slog"
	"strings"
)

// Resolver maps a qualified element to the value it names.
// Implementations report unknown names with [ErrUnresolvedElement].
type Resolver[E any] interface {
	Resolve(ctx context.Context, el Element) (E, error)
}

// TypeResolver is optionally implemented by a [Resolver] to verify that the
// containing type of an invocation exists, so that an empty list against an
// unknown type is rejected too.
type TypeResolver interface {
	ResolveType(ctx context.Context, path Path) error
}

// ResolverFunc adapts an ordinary function to the [Resolver] interface.
type ResolverFunc[E any] func(ctx context.Context, el Element) (E, error)

// Resolve calls f(ctx, el).
func (f ResolverFunc[E]) Resolve(ctx context.Context, el Element) (E, error) {
	return f(ctx, el)
}

// QualifiedNames resolves every element to its own qualified name.
// Combined with a collecting builder it yields the set of names.
var QualifiedNames = ResolverFunc[string](
	func(_ context.Context, el Element) (string, error) {
		return el.String(), nil
	},
)

// Values is a [Resolver] backed by a map from qualified names
// ("Type::Flag") to values.
type Values[E any] map[string]E

// Resolve returns the value registered for el.String().
func (v Values[E]) Resolve(_ context.Context, el Element) (E, error) {
	if e, ok := v[el.String()]; ok {
		return e, nil
	}

	var zero E

	return zero, ErrUnresolvedElement.WithPosition(el.Pos).
		With(slog.String("element", el.String()))
}

// ResolveType succeeds if some registered name is a flag of exactly path.
// Names in nested namespaces below path do not count.
func (v Values[E]) ResolveType(_ context.Context, path Path) error {
	want := path.String()

	for name := range v {
		i := strings.LastIndex(name, PathSep)
		if i >= 0 && name[:i] == want {
			return nil
		}
	}

	return ErrUnresolvedElement.With(slog.String("type", path.String()))
}
