package env

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"

	"github.com/ardnew/flagset/pkg"
)

// evaluate converts a raw field value to a flag value. Strings are compiled
// and run as expr-lang expressions.
func (t *Table) evaluate(ctx context.Context, typ *Type, f Field) (uint64, error) {
	src, ok := f.Value.(string)
	if !ok {
		return t.convert(typ, f.Name, f.Value)
	}

	env := t.exprEnv(typ)
	refs := &wideRefs{typ: typ}

	program, err := expr.Compile(src, expr.Env(env), expr.Patch(refs))
	if err != nil {
		return 0, pkg.ErrLoadDefinitions.Wrap(err).
			With(
				slog.String("type", typ.Path.String()),
				slog.String("flag", f.Name),
				slog.String("expr", src),
			)
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return 0, pkg.ErrLoadDefinitions.Wrap(err).
			With(
				slog.String("type", typ.Path.String()),
				slog.String("flag", f.Name),
				slog.String("expr", src),
			)
	}

	t.logger.TraceContext(ctx, "evaluated flag expression",
		slog.String("type", typ.Path.String()),
		slog.String("flag", f.Name),
		slog.String("expr", src),
		slog.Any("result", out),
		slog.Bool("wide", refs.found))

	if refs.found {
		out = bitPattern(out)
	}

	return t.convert(typ, f.Name, out)
}

// wideRefs records whether an expression refers to a flag of typ whose value
// does not fit in an int64. Such flags are passed to expressions as negative
// ints carrying the same bits.
type wideRefs struct {
	typ   *Type
	found bool
}

// Visit implements ast.Visitor.
func (w *wideRefs) Visit(node *ast.Node) {
	id, ok := (*node).(*ast.IdentifierNode)
	if !ok {
		return
	}

	if v, ok := w.typ.Values[id.Value]; ok && v > math.MaxInt64 {
		w.found = true
	}
}

// bitPattern reinterprets a negative signed integer as the uint64 with the
// same bits.
func bitPattern(v any) any {
	switch n := v.(type) {
	case int:
		if n < 0 {
			return uint64(n) //nolint:gosec
		}
	case int64:
		if n < 0 {
			return uint64(n) //nolint:gosec
		}
	}

	return v
}

// envFunc is the name of the builtin reading the environment. It cannot be
// used as a flag name.
const envFunc = "env"

// exprEnv returns the expression environment for the next field of typ: the
// flags defined so far, plus env().
func (t *Table) exprEnv(typ *Type) map[string]any {
	env := make(map[string]any, len(typ.Names)+1)

	for _, name := range typ.Names {
		env[name] = int(typ.Values[name]) //nolint:gosec
	}

	environ := t.environ
	env[envFunc] = func(key string) string { return environ[key] }

	return env
}

// convert accepts any non-negative integral number.
func (t *Table) convert(typ *Type, name string, v any) (uint64, error) {
	fail := func() (uint64, error) {
		return 0, pkg.ErrIncompatibleType.
			Wrapf("flag value %v (%T) is not a non-negative integer", v, v).
			With(
				slog.String("type", typ.Path.String()),
				slog.String("flag", name),
			)
	}

	switch n := v.(type) {
	case int:
		return signed(int64(n), fail)
	case int8:
		return signed(int64(n), fail)
	case int16:
		return signed(int64(n), fail)
	case int32:
		return signed(int64(n), fail)
	case int64:
		return signed(n, fail)
	case uint:
		return uint64(n), nil
	case uint8:
		return uint64(n), nil
	case uint16:
		return uint64(n), nil
	case uint32:
		return uint64(n), nil
	case uint64:
		return n, nil
	case float32:
		return integral(float64(n), fail)
	case float64:
		return integral(n, fail)
	default:
		return fail()
	}
}

func signed(n int64, fail func() (uint64, error)) (uint64, error) {
	if n < 0 {
		return fail()
	}

	return uint64(n), nil
}

func integral(f float64, fail func() (uint64, error)) (uint64, error) {
	if f < 0 || f != math.Trunc(f) || f >= math.MaxUint64 {
		return fail()
	}

	return uint64(f), nil
}

// environMap converts a "KEY=VALUE" list to a map. A nil list reads the
// process environment.
func environMap(environ []string) map[string]string {
	if environ == nil {
		environ = os.Environ()
	}

	m := make(map[string]string, len(environ))

	for _, kv := range environ {
		if key, value, ok := strings.Cut(kv, "="); ok {
			m[key] = value
		}
	}

	return m
}

// String returns the type in native invocation form listing every flag.
func (t *Type) String() string {
	return fmt.Sprintf("%s::{%s}", t.Path, strings.Join(t.Names, " | "))
}
