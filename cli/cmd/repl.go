package cmd

import (
	"context"

	"github.com/ardnew/flagset/cli/cmd/repl"
	"github.com/ardnew/flagset/log"
)

// Repl starts an interactive session that resolves invocations against the
// loaded definitions.
type Repl struct{}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	tbl, err := LoadTable(ctx)
	if err != nil {
		return err
	}

	var cacheDir string
	if ktx := kongContextFrom(ctx); ktx != nil {
		cacheDir = ktx.Model.Vars()[CacheIdentifier]
	}

	return repl.Run(ctx, tbl, cacheDir, log.Default())
}
