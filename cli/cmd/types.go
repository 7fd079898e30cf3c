package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/flagset/env"
)

// Types lists the flag-bearing types found in the loaded definitions.
type Types struct {
	Match string `arg:"" help:"Only list types whose path fuzzily matches." optional:""`

	Flags bool `help:"List each flag with its value."       short:"f"`
	Base  int  `default:"10" help:"Numeric base for values (2, 8, 10, or 16)." short:"b"`
}

// Run executes the types command.
func (t *Types) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	prefix, ok := basePrefix[t.Base]
	if !ok {
		return ErrInvalidBase
	}

	tbl, err := LoadTable(ctx)
	if err != nil {
		return err
	}

	for _, typ := range t.filter(tbl) {
		err = writeString(ctx, typ.Path.String())
		if err != nil {
			return err
		}

		if !t.Flags {
			continue
		}

		for _, name := range typ.Names {
			err = writeString(ctx, fmt.Sprintf("  %s = %s%s",
				name, prefix, strconv.FormatUint(typ.Values[name], t.Base)))
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// filter returns the types matching t.Match, best match first, or all types
// in definition order when no pattern is given.
func (t *Types) filter(tbl *env.Table) []*env.Type {
	if t.Match == "" {
		return tbl.Types()
	}

	matches := fuzzy.Find(t.Match, tbl.Paths())
	out := make([]*env.Type, 0, len(matches))

	for _, m := range matches {
		if typ, ok := tbl.Lookup(m.Str); ok {
			out = append(out, typ)
		}
	}

	return out
}
