package cmd

import (
	"context"
	"fmt"
	"go/format"
	"go/token"
	"log/slog"
	"strings"

	"github.com/ardnew/flagset/lang"
	"github.com/ardnew/flagset/pkg"
)

// Gen prints the Go expression equivalent to an invocation, optionally as a
// complete source file.
type Gen struct {
	Invocation string `arg:"" default:"-" help:"Invocation to translate, or '-' for stdin." name:"invocation"`

	Package string `help:"Emit a Go source file for the named package." short:"p"`
	Var     string `default:"flags" help:"Variable name used with --package."`
	Mixed   bool   `help:"Permit mixing '|' and ',' separators in one list."`
}

// Run executes the gen command.
func (g *Gen) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	inv, err := readInvocation(ctx, g.Invocation, g.Mixed)
	if err != nil {
		return err
	}

	var expr strings.Builder

	err = inv.Format(&expr, lang.StyleGo)
	if err != nil {
		return err
	}

	if g.Package == "" {
		return writeString(ctx, expr.String())
	}

	src, err := g.source(expr.String())
	if err != nil {
		return err
	}

	return writeString(ctx, strings.TrimSuffix(src, "\n"))
}

// source wraps expr in a gofmt-formatted Go file.
func (g *Gen) source(expr string) (string, error) {
	for _, id := range []string{g.Package, g.Var} {
		if !token.IsIdentifier(id) {
			return "", pkg.ErrInvalidFormat.
				Wrapf("%q is not a Go identifier", id).
				With(slog.String("command", "gen"))
		}
	}

	raw := fmt.Sprintf("// Code generated by %s; DO NOT EDIT.\n\npackage %s\n\nvar %s = %s\n",
		pkg.Name, g.Package, g.Var, expr)

	out, err := format.Source([]byte(raw))
	if err != nil {
		return "", pkg.ErrInvalidFormat.Wrap(err).
			With(slog.String("command", "gen"))
	}

	return string(out), nil
}
