package lang

import "github.com/ardnew/flagset/log"

// Option configures parsing.
type Option func(*options)

type options struct {
	logger log.Logger
	mixed  bool
	cache  bool
}

func makeOptions(opts ...Option) options {
	o := options{cache: true}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithLogger sets the logger receiving trace events from the parser and the
// pipeline. The zero [log.Logger] discards everything.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMixedSeparators permits a single item list to use both '|' and ','.
// By default mixing separators is reported as [ErrMalformedList].
func WithMixedSeparators(allow bool) Option {
	return func(o *options) { o.mixed = allow }
}

// WithCache controls whether parsed invocations are memoized. Caching is
// enabled by default.
func WithCache(enable bool) Option {
	return func(o *options) { o.cache = enable }
}
