package xcdoc

import (
	"github.com/akkyie/xcdoc/codec"
)

type options struct {
	codec       codec.Codec
	logger      *Logger
	searchLimit int
}

// Option configures Open behavior.
type Option func(*options)

// WithCodec configures the codec used for decoding document payloads.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithLogger configures the logger used across the engine.
// Defaults to NoopLogger.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithSearchLimit configures the default number of hits a Search keeps
// when the caller passes a non-positive limit. Defaults to 10.
func WithSearchLimit(limit int) Option {
	return func(o *options) {
		if limit > 0 {
			o.searchLimit = limit
		}
	}
}

func defaultOptions() options {
	return options{
		codec:       codec.Default,
		logger:      NoopLogger(),
		searchLimit: 10,
	}
}
