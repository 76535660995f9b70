package fft

import (
	"fmt"

	"github.com/cwbudde/algo-signal/internal/vecmath"
	"github.com/cwbudde/algo-signal/signal/core"
	"github.com/cwbudde/algo-signal/signal/plan"
)

// realToComplex computes the forward transform of a real signal and
// returns only the non-redundant half spectrum: floor(n0/2)+1 bins along
// the first dimension, full extents elsewhere.
func realToComplex(sig *core.Buffer, rank int, opts Options) (*core.Buffer, error) {
	if !sig.DType().IsReal() {
		return nil, fmt.Errorf("%w: r2c transform on %v buffer", core.ErrUnsupportedType, sig.DType())
	}
	shape := sig.Shape()
	if sig.Rank() < rank {
		return nil, rankErr(rank, shape)
	}

	full, err := opts.resolveDims(shape, rank)
	if err != nil {
		return nil, err
	}

	data := resizeAxes(sig.Complex128s(), shape, full)
	if err := transformND(data, full, rank, plan.Forward, sig.DType()); err != nil {
		return nil, err
	}

	half := full
	half[0] = full[0]/2 + 1
	out := make([]complex128, half.Elements())
	for i3 := 0; i3 < half[3]; i3++ {
		for i2 := 0; i2 < half[2]; i2++ {
			for i1 := 0; i1 < half[1]; i1++ {
				srcBase := index(full, 0, i1, i2, i3)
				dstBase := index(half, 0, i1, i2, i3)
				copy(out[dstBase:dstBase+half[0]], data[srcBase:srcBase+half[0]])
			}
		}
	}

	scale := 1.0
	if opts.scaleSet {
		scale = opts.scale
	}
	if scale != 1 {
		vecmath.ScaleComplexBlock(out, scale)
	}

	return core.NewFromComplex(out, half, sig.DType().Complex())
}

// complexToReal inverts a half spectrum back to a real signal. isOdd
// resolves the output length along the first dimension: 2·(n0−1)+1 when
// set, 2·(n0−1) otherwise.
func complexToReal(sig *core.Buffer, rank int, isOdd bool, opts Options) (*core.Buffer, error) {
	if !sig.DType().IsComplex() {
		return nil, fmt.Errorf("%w: c2r transform on %v buffer", core.ErrUnsupportedType, sig.DType())
	}
	if opts.dimsSet {
		return nil, fmt.Errorf("%w: c2r output length is resolved from the half spectrum", core.ErrInvalidArgument)
	}
	shape := sig.Shape()
	if sig.Rank() < rank {
		return nil, rankErr(rank, shape)
	}

	full0 := 2 * (shape[0] - 1)
	if isOdd {
		full0++
	}
	if full0 < 1 {
		return nil, fmt.Errorf("%w: half spectrum of length %d resolves to empty output", core.ErrInvalidArgument, shape[0])
	}

	full := shape
	full[0] = full0
	src := sig.Complex128s()
	data := make([]complex128, full.Elements())
	for i3 := 0; i3 < full[3]; i3++ {
		for i2 := 0; i2 < full[2]; i2++ {
			for i1 := 0; i1 < full[1]; i1++ {
				for i0 := 0; i0 < full0; i0++ {
					if i0 < shape[0] {
						data[index(full, i0, i1, i2, i3)] = src[index(shape, i0, i1, i2, i3)]
						continue
					}
					// Conjugate symmetry: mirror the transformed axes,
					// leave batch axes untouched.
					m0 := full0 - i0
					m1, m2 := i1, i2
					if rank > 1 && i1 > 0 {
						m1 = shape[1] - i1
					}
					if rank > 2 && i2 > 0 {
						m2 = shape[2] - i2
					}
					v := src[index(shape, m0, m1, m2, i3)]
					data[index(full, i0, i1, i2, i3)] = complex(real(v), -imag(v))
				}
			}
		}
	}

	if err := transformND(data, full, rank, plan.Inverse, sig.DType()); err != nil {
		return nil, err
	}

	scale := opts.scale
	if !opts.scaleSet {
		scale = 1 / float64(transformElements(full, rank))
	}

	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = real(v) * scale
	}
	return core.NewFromReal(out, full, sig.DType().Real())
}

// FFTR2C computes the 1D real-to-complex transform, returning the
// non-redundant floor(n/2)+1 bins.
func FFTR2C(sig *core.Buffer, opts ...Option) (*core.Buffer, error) {
	return realToComplex(sig, 1, applyOptions(opts))
}

// FFT2R2C computes the 2D real-to-complex transform.
func FFT2R2C(sig *core.Buffer, opts ...Option) (*core.Buffer, error) {
	return realToComplex(sig, 2, applyOptions(opts))
}

// FFT3R2C computes the 3D real-to-complex transform.
func FFT3R2C(sig *core.Buffer, opts ...Option) (*core.Buffer, error) {
	return realToComplex(sig, 3, applyOptions(opts))
}

// FFTC2R inverts a 1D half spectrum to a real signal. The default scale
// is the reciprocal of the resolved output length.
func FFTC2R(sig *core.Buffer, isOdd bool, opts ...Option) (*core.Buffer, error) {
	return complexToReal(sig, 1, isOdd, applyOptions(opts))
}

// FFT2C2R inverts a 2D half spectrum to a real signal.
func FFT2C2R(sig *core.Buffer, isOdd bool, opts ...Option) (*core.Buffer, error) {
	return complexToReal(sig, 2, isOdd, applyOptions(opts))
}

// FFT3C2R inverts a 3D half spectrum to a real signal.
func FFT3C2R(sig *core.Buffer, isOdd bool, opts ...Option) (*core.Buffer, error) {
	return complexToReal(sig, 3, isOdd, applyOptions(opts))
}
