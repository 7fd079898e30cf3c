package env

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/ardnew/flagset/lang"
	"github.com/ardnew/flagset/pkg"
)

var errNullValue = errors.New("null or unknown value")

func errUnsupportedValue(typ string) error {
	return fmt.Errorf("unsupported value type %s", typ)
}

// hclFile is the top-level structure of an HCL definitions file.
type hclFile struct {
	Types []*hclType `hcl:"type,block"`
}

// hclType is a single `type "A::B" { ... }` block. Its attributes are the
// flags, decoded separately to preserve declaration order.
type hclType struct {
	Path string   `hcl:"path,label"`
	Body hcl.Body `hcl:",remain"`
}

// LoadHCL reads HCL definitions from r into t. Each `type` block is labeled
// with the qualified type path and holds one attribute per flag.
func (t *Table) LoadHCL(ctx context.Context, r io.Reader, name string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return pkg.ErrReadInput.Wrap(err).With(slog.String("source", name))
	}

	parser := hclparse.NewParser()

	file, diags := parser.ParseHCL(data, name)
	if diags.HasErrors() {
		return pkg.ErrLoadDefinitions.Wrap(diags).With(slog.String("source", name))
	}

	var parsed hclFile

	diags = gohcl.DecodeBody(file.Body, nil, &parsed)
	if diags.HasErrors() {
		return pkg.ErrLoadDefinitions.Wrap(diags).With(slog.String("source", name))
	}

	for _, block := range parsed.Types {
		fields, ferr := hclFields(block)
		if ferr != nil {
			return ferr.With(slog.String("source", name))
		}

		path := strings.Split(block.Path, lang.PathSep)

		_, err = t.Define(ctx, path, name, fields...)
		if err != nil {
			return err
		}
	}

	return nil
}

// hclFields decodes the attributes of a type block in source order.
func hclFields(block *hclType) ([]Field, *pkg.Error) {
	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, pkg.ErrLoadDefinitions.Wrap(diags).
			With(slog.String("type", block.Path))
	}

	ordered := make([]*hcl.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		ordered = append(ordered, attr)
	}

	slices.SortFunc(ordered, func(a, b *hcl.Attribute) int {
		return cmp.Compare(a.Range.Start.Byte, b.Range.Start.Byte)
	})

	fields := make([]Field, 0, len(ordered))

	for _, attr := range ordered {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, pkg.ErrLoadDefinitions.Wrap(diags).
				With(slog.String("type", block.Path), slog.String("flag", attr.Name))
		}

		v, err := ctyField(val)
		if err != nil {
			return nil, pkg.ErrIncompatibleType.Wrap(err).
				With(slog.String("type", block.Path), slog.String("flag", attr.Name))
		}

		fields = append(fields, Field{Name: attr.Name, Value: v})
	}

	return fields, nil
}

// ctyField converts a flag attribute to an integer or an expression string.
func ctyField(val cty.Value) (any, error) {
	if !val.IsKnown() || val.IsNull() {
		return nil, errNullValue
	}

	switch val.Type() {
	case cty.Number:
		var n uint64

		err := gocty.FromCtyValue(val, &n)
		if err != nil {
			return nil, err
		}

		return n, nil

	case cty.String:
		return val.AsString(), nil

	default:
		return nil, errUnsupportedValue(val.Type().FriendlyName())
	}
}
