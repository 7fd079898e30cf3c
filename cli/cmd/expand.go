package cmd

import (
	"context"
)

// Expand prints the qualified elements of an invocation without resolving
// them.
type Expand struct {
	Invocation string `arg:"" default:"-" help:"Invocation to expand, or '-' for stdin." name:"invocation"`

	JSON   bool `help:"Output a JSON document."                       xor:"format"`
	YAML   bool `help:"Output a YAML document."                       xor:"format"`
	Indent int  `default:"2" help:"Indent width for JSON and YAML output." short:"i"`
	Mixed  bool `help:"Permit mixing '|' and ',' separators in one list."`
}

// Run executes the expand command.
func (x *Expand) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	inv, err := readInvocation(ctx, x.Invocation, x.Mixed)
	if err != nil {
		return err
	}

	switch {
	case x.JSON:
		return wrapWrite(inv.FormatJSON(outputFrom(ctx), x.Indent))

	case x.YAML:
		return wrapWrite(inv.FormatYAML(ctx, outputFrom(ctx), x.Indent))
	}

	for _, el := range inv.Elements() {
		err = writeString(ctx, el.String())
		if err != nil {
			return err
		}
	}

	return nil
}

func wrapWrite(err error) error {
	if err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
