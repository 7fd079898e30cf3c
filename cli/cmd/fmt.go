package cmd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ardnew/flagset/lang"
)

// Fmt prints an invocation in a normalized form.
type Fmt struct {
	Invocation string `arg:"" default:"-" help:"Invocation to format, or '-' for stdin." name:"invocation"`

	Style  string `default:"native" enum:"native,expanded,go,json,yaml" help:"Output style." short:"s"`
	Indent int    `default:"2"                                          help:"Indent width for JSON and YAML output." short:"i"`
	Mixed  bool   `                                                     help:"Permit mixing '|' and ',' separators in one list."`
}

// Run executes the fmt command.
func (f *Fmt) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	inv, err := readInvocation(ctx, f.Invocation, f.Mixed)
	if err != nil {
		return err
	}

	switch f.Style {
	case "json":
		return wrapWrite(inv.FormatJSON(outputFrom(ctx), f.Indent))

	case "yaml":
		return wrapWrite(inv.FormatYAML(ctx, outputFrom(ctx), f.Indent))
	}

	style, err := lang.ParseStyle(f.Style)
	if err != nil {
		return err
	}

	var sb strings.Builder

	err = inv.Format(&sb, style)
	if err != nil {
		return lang.ErrInvalidFormat.Wrap(err).
			With(slog.String("style", f.Style))
	}

	return writeString(ctx, sb.String())
}
