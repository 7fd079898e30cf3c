package lang

import (
	"context"
	"log/slog"
	"slices"

	"github.com/ardnew/flagset/set"
)

// Flags parses src, resolves each qualified element through r, and combines
// the resolved values with b.
//
// "Path::{}" yields the empty value of the builder's set type. Any parse or
// resolution failure aborts the whole invocation; no partial set is returned.
func Flags[E, S any](
	ctx context.Context,
	src string,
	r Resolver[E],
	b set.Builder[E, S],
	opts ...Option,
) (S, error) {
	inv, err := ParseString(ctx, src, opts...)
	if err != nil {
		var zero S

		return zero, err
	}

	return Build(ctx, inv, r, b, opts...)
}

// Build resolves and combines the elements of an already parsed invocation.
// Only [WithLogger] among opts has an effect.
func Build[E, S any](
	ctx context.Context,
	inv *Invocation,
	r Resolver[E],
	b set.Builder[E, S],
	opts ...Option,
) (S, error) {
	var zero S

	o := makeOptions(opts...)

	if tr, ok := r.(TypeResolver); ok {
		err := tr.ResolveType(ctx, inv.ContainingType())
		if err != nil {
			return zero, err
		}
	}

	elems := inv.Elements()
	values := make([]E, 0, len(elems))

	for _, el := range elems {
		v, err := r.Resolve(ctx, el)
		if err != nil {
			o.logger.TraceContext(ctx, "resolve failed",
				slog.String("element", el.String()),
				slog.Any("error", err))

			return zero, err
		}

		values = append(values, v)
	}

	o.logger.TraceContext(ctx, "build set",
		slog.String("type", inv.Path.String()),
		slog.Int("element_count", len(values)))

	return b.Build(slices.Values(values)), nil
}
