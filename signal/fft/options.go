package fft

import "github.com/cwbudde/algo-signal/signal/core"

// Options collects per-call transform settings.
type Options struct {
	dims     [3]int // per-axis output length overrides, 0 means input length
	dimsSet  bool
	scale    float64
	scaleSet bool
}

// Option mutates transform Options.
type Option func(*Options)

// WithDim0 overrides the output length along the first transformed axis.
// Longer outputs are zero-padded, shorter outputs truncate the input.
func WithDim0(n int) Option {
	return func(o *Options) {
		o.dims[0] = n
		o.dimsSet = true
	}
}

// WithDim1 overrides the output length along the second transformed axis.
func WithDim1(n int) Option {
	return func(o *Options) {
		o.dims[1] = n
		o.dimsSet = true
	}
}

// WithDim2 overrides the output length along the third transformed axis.
func WithDim2(n int) Option {
	return func(o *Options) {
		o.dims[2] = n
		o.dimsSet = true
	}
}

// WithScale overrides the scaling factor applied to the output.
func WithScale(s float64) Option {
	return func(o *Options) {
		o.scale = s
		o.scaleSet = true
	}
}

func applyOptions(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// resolveDims merges overrides into the input shape for the first rank
// axes and validates them.
func (o Options) resolveDims(shape core.Shape, rank int) (core.Shape, error) {
	out := shape
	for a := 0; a < rank; a++ {
		if o.dims[a] > 0 {
			out[a] = o.dims[a]
		} else if o.dims[a] < 0 {
			return core.Shape{}, invalidDimErr(a, o.dims[a])
		}
	}
	return out, nil
}
