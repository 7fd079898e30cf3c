package env

import (
	"log/slog"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/flagset/pkg"
)

// maxSuggestions limits the number of candidates offered for a bad name.
const maxSuggestions = 3

// Suggest returns up to three candidates that fuzzily match name, best
// match first.
func Suggest(name string, candidates []string) []string {
	if name == "" || len(candidates) == 0 {
		return nil
	}

	matches := fuzzy.Find(name, candidates)

	out := make([]string, 0, min(len(matches), maxSuggestions))
	for _, m := range matches {
		if m.Str == name {
			continue
		}

		out = append(out, m.Str)
		if len(out) == maxSuggestions {
			break
		}
	}

	return out
}

// withSuggestions wraps err with a "did you mean" hint when name has close
// matches among candidates.
func withSuggestions(err *pkg.Error, name string, candidates []string) *pkg.Error {
	hints := Suggest(name, candidates)
	if len(hints) == 0 {
		return err
	}

	return err.
		Wrapf("did you mean %s?", strings.Join(hints, ", ")).
		With(slog.Any("suggestions", hints))
}
