package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// load is a [kong.ConfigurationLoader] that reads a flat YAML mapping of flag
// names to values.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(load, "/path/to/config.yaml")
//
// Keys may spell flag names with hyphens ("log-level") or underscores
// ("log_level"). Scalars are passed to kong as strings, so numbers and
// booleans parse the same as on the command line. Sequences are joined
// with commas, the default separator of kong slice flags.
//
// Example config file:
//
//	log-level: debug
//	log-format: json
//	log_pretty: false
//	defs:
//	  - ~/.config/flagset/types.yaml
//
// Command-line flags override config file values.
func load(r io.Reader) (kong.Resolver, error) {
	var raw map[string]any

	err := yaml.NewDecoder(r).Decode(&raw)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return config{}, nil
		}

		return nil, err
	}

	out := make(config, len(raw))
	for key, val := range raw {
		out[key] = flagValue(val)
	}

	return out, nil
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	name := flag.Name

	if value, ok := r[name]; ok {
		return value, nil
	}

	if value, ok := r[strings.ReplaceAll(name, "-", "_")]; ok {
		return value, nil
	}

	return nil, nil
}

// flagValue converts a decoded YAML value to the form kong expects.
// Kong requires numbers as strings for parsing.
func flagValue(v any) any {
	switch v := v.(type) {
	case nil, string, bool:
		return v

	case []any:
		out := make([]string, len(v))
		for i, e := range v {
			out[i] = fmt.Sprint(e)
		}

		return strings.Join(out, ",")

	default:
		return fmt.Sprint(v)
	}
}
