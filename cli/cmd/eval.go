package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/ardnew/flagset/env"
	"github.com/ardnew/flagset/lang"
	"github.com/ardnew/flagset/set"
)

// Eval resolves an invocation against the loaded definitions and prints the
// combined set.
type Eval struct {
	Invocation string `arg:"" default:"-" help:"Invocation such as 'ponydom::Flags::{Winged | Horned}', or '-' for stdin." name:"invocation"`

	As    string `default:"bits" enum:"bits,list,names" help:"Output the combined bits, each element with its value, or the distinct element names." short:"a"`
	Base  int    `default:"10"                          help:"Numeric base for values (2, 8, 10, or 16)."                                          short:"b"`
	Mixed bool   `                                      help:"Permit mixing '|' and ',' separators in one list."`
}

// entry is a resolved element with its value.
type entry struct {
	Name  string
	Value uint64
}

// entries resolves elements through a table, keeping each element's name.
// The embedded table also verifies the containing type.
type entries struct{ *env.Table }

func (r entries) Resolve(ctx context.Context, el lang.Element) (entry, error) {
	v, err := r.Table.Resolve(ctx, el)

	return entry{Name: el.String(), Value: v}, err
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	prefix, ok := basePrefix[e.Base]
	if !ok {
		return ErrInvalidBase.With(slog.Int("base", e.Base))
	}

	inv, err := readInvocation(ctx, e.Invocation, e.Mixed)
	if err != nil {
		return err
	}

	tbl, err := LoadTable(ctx)
	if err != nil {
		return err
	}

	opts := parseOptions(e.Mixed)

	switch e.As {
	case "list":
		list, err := lang.Build(ctx, inv, entries{tbl}, set.Slice[entry](), opts...)
		if err != nil {
			return err
		}

		for _, en := range list {
			err = writeString(ctx, fmt.Sprintf("%s\t%s%s",
				en.Name, prefix, strconv.FormatUint(en.Value, e.Base)))
			if err != nil {
				return err
			}
		}

		return nil

	case "names":
		names := set.Map(set.Members[string](), func(en entry) string { return en.Name })

		members, err := lang.Build(ctx, inv, entries{tbl}, names, opts...)
		if err != nil {
			return err
		}

		for _, name := range set.Sorted(members) {
			err = writeString(ctx, name)
			if err != nil {
				return err
			}
		}

		return nil

	default:
		bits, err := lang.Build(ctx, inv, tbl, set.Bits[uint64](), opts...)
		if err != nil {
			return err
		}

		return writeString(ctx, prefix+strconv.FormatUint(bits, e.Base))
	}
}

var basePrefix = map[int]string{
	2:  "0b",
	8:  "0o",
	10: "",
	16: "0x",
}
