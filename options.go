package xnb

import (
	"go.uber.org/zap"

	"github.com/wippyai/xnb/content"
)

// Options configures a decode.
type Options struct {
	// Decompressor expands compressed payloads. Nil rejects them.
	Decompressor Decompressor
	// Registry resolves reader identities for DecodeAny and for telling an
	// unknown reader from a mismatched one. Nil uses Registry().
	Registry *content.Registry
	// Logger receives header and payload debug records. Nil uses Logger().
	Logger *zap.Logger
}

// Option modifies Options.
type Option func(*Options)

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{Registry: Registry()}
}

// WithDecompressor sets the payload decompressor.
func WithDecompressor(d Decompressor) Option {
	return func(o *Options) {
		o.Decompressor = d
	}
}

// WithRegistry sets the registry used for dynamic dispatch.
func WithRegistry(r *content.Registry) Option {
	return func(o *Options) {
		o.Registry = r
	}
}

// WithLogger sets the logger for this decode's envelope records.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Registry == nil {
		o.Registry = Registry()
	}
	if o.Logger == nil {
		o.Logger = Logger()
	}
	return o
}
