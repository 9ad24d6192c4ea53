package zone

import (
	"log/slog"

	"github.com/codeGROOVE-dev/cestz/pkg/transition"
)

// Option configures CESTRules and the zones built on them.
type Option func(*options)

type options struct {
	source    transition.Source
	logger    *slog.Logger
	cacheSize int
}

// WithSource overrides where transition pairs come from.
func WithSource(source transition.Source) Option {
	return func(o *options) {
		o.source = source
	}
}

// WithCache memoizes up to size years of transitions.
func WithCache(size int) Option {
	return func(o *options) {
		o.cacheSize = size
	}
}

// WithLogger sets the logger used by the cache.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.cacheSize > 0 {
		o.source = transition.NewCache(o.cacheSize, o.source, o.logger)
	}
	return o
}
