package env

import "github.com/ardnew/flagset/log"

// Option configures a [Table].
type Option func(*Table)

// WithLogger sets the logger receiving trace and debug events.
func WithLogger(logger log.Logger) Option {
	return func(t *Table) { t.logger = logger }
}

// WithEnviron sets the "KEY=VALUE" list read by the env() expression
// builtin. By default the process environment is used.
func WithEnviron(environ []string) Option {
	return func(t *Table) { t.environ = environMap(environ) }
}
