package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/flagset/env"
	"github.com/ardnew/flagset/lang"
	"github.com/ardnew/flagset/log"
	"github.com/ardnew/flagset/pkg"
)

// stdinSource is the invocation argument that reads from the input stream.
const stdinSource = "-"

type (
	contextKey     struct{}
	definitionsKey struct{}
	streamsKey     struct{}

	streams struct {
		in  io.Reader
		out io.Writer
	}
)

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// WithDefinitions returns a new context.Context carrying the definition
// files named on the command line. They are merged with FLAGSET_PATH when
// loaded.
func WithDefinitions(ctx context.Context, paths []string) context.Context {
	return context.WithValue(ctx, definitionsKey{}, paths)
}

func definitionsFrom(ctx context.Context) []string {
	paths, _ := ctx.Value(definitionsKey{}).([]string)

	return paths
}

// WithStreams returns a new context.Context whose commands read from in and
// write to out instead of the standard streams.
func WithStreams(ctx context.Context, in io.Reader, out io.Writer) context.Context {
	return context.WithValue(ctx, streamsKey{}, streams{in: in, out: out})
}

func inputFrom(ctx context.Context) io.Reader {
	if s, ok := ctx.Value(streamsKey{}).(streams); ok && s.in != nil {
		return s.in
	}

	return os.Stdin
}

func outputFrom(ctx context.Context) io.Writer {
	if s, ok := ctx.Value(streamsKey{}).(streams); ok && s.out != nil {
		return s.out
	}

	return os.Stdout
}

// LoadTable loads the definitions named in ctx and FLAGSET_PATH.
// It fails with [pkg.ErrNoSource] if no type was found.
func LoadTable(ctx context.Context) (*env.Table, error) {
	tbl, err := env.Load(ctx, definitionsFrom(ctx), env.WithLogger(log.Default()))
	if err != nil {
		return nil, err
	}

	if tbl.Len() == 0 {
		return nil, pkg.ErrNoSource.
			With(slog.String("env", pkg.EnvPath))
	}

	return tbl, nil
}

// parseOptions returns the parser options shared by all commands.
func parseOptions(mixed bool) []lang.Option {
	return []lang.Option{
		lang.WithLogger(log.Default()),
		lang.WithMixedSeparators(mixed),
	}
}

// readInvocation parses src, or the input stream if src is "-".
func readInvocation(
	ctx context.Context,
	src string,
	mixed bool,
) (*lang.Invocation, error) {
	if src == stdinSource {
		return lang.ParseReader(ctx, inputFrom(ctx), parseOptions(mixed)...)
	}

	return lang.ParseString(ctx, src, parseOptions(mixed)...)
}

// writeString writes s followed by a newline to the command output.
func writeString(ctx context.Context, s string) error {
	_, err := io.WriteString(outputFrom(ctx), s+"\n")
	if err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
