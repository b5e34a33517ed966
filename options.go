package quant

import "github.com/willibrandon/mtlog/core"

// Options carries the ambient, non-algorithmic configuration surface for
// Quantize (spec §9: a structured tracing hook added at the caller
// boundary). It has no bearing on the returned palette or indices.
type Options struct {
	// Logger receives one debug-level structured event per quantization
	// phase. A nil Logger (the default) disables logging entirely.
	Logger core.Logger
}

// Option configures Options via the functional-options pattern.
type Option func(*Options)

// WithLogger attaches a structured logger to a Quantize call.
func WithLogger(l core.Logger) Option {
	return func(o *Options) { o.Logger = l }
}
