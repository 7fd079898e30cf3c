package env

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/flagset/lang"
	"github.com/ardnew/flagset/pkg"
)

// LoadYAML reads YAML definitions from r into t. Nested mappings form the
// path; a mapping whose values are all scalars defines a type. The name is
// used in error messages only.
func (t *Table) LoadYAML(ctx context.Context, r io.Reader, name string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return pkg.ErrReadInput.Wrap(err).With(slog.String("source", name))
	}

	var root any

	err = yaml.UnmarshalWithOptions(data, &root, yaml.UseOrderedMap())
	if err != nil {
		return pkg.ErrLoadDefinitions.Wrap(err).With(slog.String("source", name))
	}

	if root == nil {
		return nil
	}

	m, ok := root.(yaml.MapSlice)
	if !ok {
		return pkg.ErrLoadDefinitions.
			Wrapf("top level must be a mapping, found %T", root).
			With(slog.String("source", name))
	}

	return t.walkYAML(ctx, nil, m, name)
}

// LoadJSON reads JSON definitions from r into t. The schema is that of
// [Table.LoadYAML].
func (t *Table) LoadJSON(ctx context.Context, r io.Reader, name string) error {
	return t.LoadYAML(ctx, r, name)
}

func (t *Table) walkYAML(
	ctx context.Context,
	path lang.Path,
	m yaml.MapSlice,
	source string,
) error {
	nested, scalar := 0, 0

	for _, item := range m {
		if _, ok := item.Value.(yaml.MapSlice); ok {
			nested++
		} else {
			scalar++
		}
	}

	if len(path) > 0 && nested == 0 {
		fields := make([]Field, len(m))
		for i, item := range m {
			fields[i] = Field{Name: fmt.Sprint(item.Key), Value: item.Value}
		}

		_, err := t.Define(ctx, path, source, fields...)

		return err
	}

	switch {
	case scalar > 0 && len(path) == 0:
		return pkg.ErrLoadDefinitions.
			Wrap(errors.New("flags must be nested under a type path")).
			With(slog.String("source", source))

	case scalar > 0:
		return pkg.ErrLoadDefinitions.
			Wrapf("mapping %q mixes types and flags", path.String()).
			With(slog.String("source", source))
	}

	for _, item := range m {
		seg := fmt.Sprint(item.Key)

		sub := make(lang.Path, len(path), len(path)+1)
		copy(sub, path)

		err := t.walkYAML(ctx, append(sub, seg), item.Value.(yaml.MapSlice), source)
		if err != nil {
			return err
		}
	}

	return nil
}
