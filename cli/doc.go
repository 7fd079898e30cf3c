// Package cli contains the command line interface for flagset.
//
// # Usage
//
// The default command resolves an invocation against the loaded definitions
// and prints the combined value:
//
//	flagset -d ponies.yaml 'ponydom::Flags::{Winged | Horned}'
//	flagset eval --as=list --base=16 'ponydom::Flags::{Winged, Horned}'
//
// Definitions are read from the files and directories named with --defs,
// followed by the entries of FLAGSET_PATH. See package env for the file
// formats.
//
// # Configuration Loader
//
// Flag defaults may be set in a YAML file in the user configuration
// directory (see the init command). Keys are flag names with either hyphens
// or underscores:
//
//	log-level: debug
//	log_format: json
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o flagset .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/flagset/pprof)
package cli
