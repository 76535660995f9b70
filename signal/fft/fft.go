package fft

import (
	"fmt"

	"github.com/cwbudde/algo-signal/internal/vecmath"
	"github.com/cwbudde/algo-signal/signal/core"
	"github.com/cwbudde/algo-signal/signal/plan"
)

// transform is the shared out-of-place path behind the fixed-rank API.
func transform(sig *core.Buffer, rank int, dir plan.Direction, opts Options) (*core.Buffer, error) {
	shape := sig.Shape()
	if sig.Rank() < rank {
		return nil, rankErr(rank, shape)
	}

	out, err := opts.resolveDims(shape, rank)
	if err != nil {
		return nil, err
	}

	data := resizeAxes(sig.Complex128s(), shape, out)
	if err := transformND(data, out, rank, dir, sig.DType()); err != nil {
		return nil, err
	}

	scale := opts.scale
	if !opts.scaleSet {
		scale = 1
		if dir == plan.Inverse {
			scale = 1 / float64(transformElements(out, rank))
		}
	}
	if scale != 1 {
		vecmath.ScaleComplexBlock(data, scale)
	}

	return core.NewFromComplex(data, out, sig.DType().Complex())
}

// transformElements returns the product of the transformed extents.
func transformElements(shape core.Shape, rank int) int {
	n := 1
	for a := 0; a < rank; a++ {
		n *= shape[a]
	}
	return n
}

// FFT computes the 1D forward transform of a signal or batch of signals
// along the first dimension. The output is always complex; for real
// input the full conjugate-symmetric spectrum is returned.
func FFT(sig *core.Buffer, opts ...Option) (*core.Buffer, error) {
	return transform(sig, 1, plan.Forward, applyOptions(opts))
}

// FFT2 computes the 2D forward transform along the first two dimensions.
func FFT2(sig *core.Buffer, opts ...Option) (*core.Buffer, error) {
	return transform(sig, 2, plan.Forward, applyOptions(opts))
}

// FFT3 computes the 3D forward transform along the first three dimensions.
func FFT3(sig *core.Buffer, opts ...Option) (*core.Buffer, error) {
	return transform(sig, 3, plan.Forward, applyOptions(opts))
}

// IFFT computes the 1D inverse transform. The default scale is 1/n for
// output length n, so IFFT(FFT(x)) reproduces x.
func IFFT(sig *core.Buffer, opts ...Option) (*core.Buffer, error) {
	return transform(sig, 1, plan.Inverse, applyOptions(opts))
}

// IFFT2 computes the 2D inverse transform, default scale 1/(n0·n1).
func IFFT2(sig *core.Buffer, opts ...Option) (*core.Buffer, error) {
	return transform(sig, 2, plan.Inverse, applyOptions(opts))
}

// IFFT3 computes the 3D inverse transform, default scale 1/(n0·n1·n2).
func IFFT3(sig *core.Buffer, opts ...Option) (*core.Buffer, error) {
	return transform(sig, 3, plan.Inverse, applyOptions(opts))
}

// inPlace runs a transform directly on a complex buffer's storage.
// Output-length overrides are not available in place.
func inPlace(sig *core.Buffer, rank int, dir plan.Direction, opts Options) error {
	if !sig.DType().IsComplex() {
		return fmt.Errorf("%w: in-place transform on %v buffer", core.ErrUnsupportedType, sig.DType())
	}
	if opts.dimsSet {
		return fmt.Errorf("%w: output length overrides are not supported in place", core.ErrInvalidArgument)
	}
	if sig.Rank() < rank {
		return rankErr(rank, sig.Shape())
	}

	data := sig.Complex128s()
	if err := transformND(data, sig.Shape(), rank, dir, sig.DType()); err != nil {
		return err
	}

	scale := opts.scale
	if !opts.scaleSet {
		scale = 1
		if dir == plan.Inverse {
			scale = 1 / float64(transformElements(sig.Shape(), rank))
		}
	}
	if scale != 1 {
		vecmath.ScaleComplexBlock(data, scale)
	}
	return sig.SetComplex128(data)
}

// FFTInPlace computes the 1D forward transform in place on a complex
// buffer of unchanged shape.
func FFTInPlace(sig *core.Buffer, opts ...Option) error {
	return inPlace(sig, 1, plan.Forward, applyOptions(opts))
}

// FFT2InPlace computes the 2D forward transform in place.
func FFT2InPlace(sig *core.Buffer, opts ...Option) error {
	return inPlace(sig, 2, plan.Forward, applyOptions(opts))
}

// FFT3InPlace computes the 3D forward transform in place.
func FFT3InPlace(sig *core.Buffer, opts ...Option) error {
	return inPlace(sig, 3, plan.Forward, applyOptions(opts))
}

// IFFTInPlace computes the 1D inverse transform in place.
func IFFTInPlace(sig *core.Buffer, opts ...Option) error {
	return inPlace(sig, 1, plan.Inverse, applyOptions(opts))
}

// IFFT2InPlace computes the 2D inverse transform in place.
func IFFT2InPlace(sig *core.Buffer, opts ...Option) error {
	return inPlace(sig, 2, plan.Inverse, applyOptions(opts))
}

// IFFT3InPlace computes the 3D inverse transform in place.
func IFFT3InPlace(sig *core.Buffer, opts ...Option) error {
	return inPlace(sig, 3, plan.Inverse, applyOptions(opts))
}

// dispatchRank resolves a buffer's intrinsic rank to a transform rank.
func dispatchRank(sig *core.Buffer) int {
	r := sig.Rank()
	if r > 3 {
		r = 3
	}
	return r
}

// Dft computes the forward transform whose rank matches the signal's
// intrinsic dimensionality, using the signal's own dimensions as output
// lengths.
func Dft(sig *core.Buffer, opts ...Option) (*core.Buffer, error) {
	return transform(sig, dispatchRank(sig), plan.Forward, applyOptions(opts))
}

// Idft computes the rank-matched inverse transform; the default scale is
// the reciprocal of the transformed element count.
func Idft(sig *core.Buffer, opts ...Option) (*core.Buffer, error) {
	return transform(sig, dispatchRank(sig), plan.Inverse, applyOptions(opts))
}
