// Package log provides a concurrency-safe structured logger based on
// [log/slog].
//
// Loggers are configured at creation time with functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("kitchen"))
//
// In addition to the slog levels, [LevelTrace] sits below [LevelDebug] and is
// used for parser and resolver internals.
//
// Package-level functions such as [Info] and [DebugContext] write through a
// default logger that is reconfigured with [Config]. Context-unaware
// functions use [DefaultContextProvider].
//
// With [WithPretty] enabled, text output is colorized with lipgloss; JSON
// output is unaffected.
package log
