package env

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ardnew/mung"

	"github.com/ardnew/flagset/pkg"
)

// Extensions maps recognized definition file extensions to their format.
var Extensions = map[string]string{
	".yaml": "yaml",
	".yml":  "yaml",
	".json": "json",
	".hcl":  "hcl",
}

// LoadFile loads a single definitions file into t, selecting the format by
// file extension.
func (t *Table) LoadFile(ctx context.Context, path string) error {
	format, ok := Extensions[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return pkg.ErrLoadDefinitions.
			Wrapf("unrecognized definitions file extension %q", filepath.Ext(path)).
			With(slog.String("source", path))
	}

	f, err := os.Open(path)
	if err != nil {
		return pkg.ErrReadInput.Wrap(err).With(slog.String("source", path))
	}
	defer f.Close()

	t.logger.DebugContext(ctx, "loading definitions",
		slog.String("source", path),
		slog.String("format", format))

	switch format {
	case "json":
		return t.LoadJSON(ctx, f, path)
	case "hcl":
		return t.LoadHCL(ctx, f, path)
	default:
		return t.LoadYAML(ctx, f, path)
	}
}

// LoadDir loads every recognized definitions file directly inside dir, in
// lexical order.
func (t *Table) LoadDir(ctx context.Context, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return pkg.ErrReadInput.Wrap(err).With(slog.String("source", dir))
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		if _, ok := Extensions[strings.ToLower(filepath.Ext(e.Name()))]; !ok {
			continue
		}

		err := t.LoadFile(ctx, filepath.Join(dir, e.Name()))
		if err != nil {
			return err
		}
	}

	return nil
}

// SearchPath returns the definition sources to load: the explicit paths
// followed by the entries of the FLAGSET_PATH environment variable.
// Duplicates and empty entries are removed.
func SearchPath(explicit ...string) []string {
	merged := mung.Make(
		mung.WithSubjectItems(os.Getenv(pkg.EnvPath)),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(explicit...),
	).String()

	var out []string

	for p := range strings.SplitSeq(merged, string(os.PathListSeparator)) {
		if p != "" && !slices.Contains(out, p) {
			out = append(out, p)
		}
	}

	return out
}

// Load returns a table populated from [SearchPath](explicit...).
//
// Explicit paths must exist. Entries that come only from FLAGSET_PATH are
// skipped when missing. Directories are loaded with [Table.LoadDir]. When a
// type is defined by more than one source, the first definition wins.
func Load(ctx context.Context, explicit []string, opts ...Option) (*Table, error) {
	t := NewTable(opts...)

	for _, p := range SearchPath(explicit...) {
		info, err := os.Stat(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && !slices.Contains(explicit, p) {
				t.logger.DebugContext(ctx, "skipping missing search path entry",
					slog.String("path", p))

				continue
			}

			return nil, pkg.ErrReadInput.Wrap(err).With(slog.String("source", p))
		}

		if info.IsDir() {
			err = t.LoadDir(ctx, p)
		} else {
			err = t.LoadFile(ctx, p)
		}

		if err != nil {
			return nil, err
		}
	}

	t.logger.DebugContext(ctx, "definitions loaded",
		slog.Int("type_count", t.Len()))

	return t, nil
}
