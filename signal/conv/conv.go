package conv

import (
	"fmt"

	"github.com/cwbudde/algo-signal/internal/vecmath"
	"github.com/cwbudde/algo-signal/signal/core"
)

// Mode selects the output extent of a convolution.
type Mode int

const (
	// ModeDefault clips the result to the signal extent, with the kernel
	// centered at offset (k-1)/2 along each convolved axis.
	ModeDefault Mode = iota

	// ModeExpand returns the full result of extent sig+ker-1 per
	// convolved axis.
	ModeExpand
)

// Domain selects where the convolution is computed.
type Domain int

const (
	// DomainAuto picks the spatial domain for kernels of up to
	// spatialThreshold elements over the convolved axes and the
	// frequency domain beyond that.
	DomainAuto Domain = iota

	// DomainSpatial forces direct product-sum accumulation.
	DomainSpatial

	// DomainFreq forces the transform-multiply-invert path.
	DomainFreq
)

// spatialThreshold is the kernel element count up to which the direct
// spatial path beats the transform round trip.
const spatialThreshold = 64

func convolve(sig, ker *core.Buffer, rank int, mode Mode, domain Domain) (*core.Buffer, error) {
	if mode != ModeDefault && mode != ModeExpand {
		return nil, fmt.Errorf("%w: convolution mode %d", core.ErrInvalidArgument, mode)
	}
	switch domain {
	case DomainAuto, DomainSpatial, DomainFreq:
	default:
		return nil, fmt.Errorf("%w: convolution domain %d", core.ErrInvalidArgument, domain)
	}
	if sig.Rank() < rank {
		return nil, fmt.Errorf("%w: rank-%d convolution on signal of shape %v", core.ErrDimension, rank, sig.Shape())
	}

	ss, ks := sig.Shape(), ker.Shape()
	lm, err := resolveBatch(ss, ks, rank)
	if err != nil {
		return nil, err
	}

	// Per-axis extents over the (up to three) convolved axes.
	sa, ka := [3]int{1, 1, 1}, [3]int{1, 1, 1}
	kerElems := 1
	for a := 0; a < rank; a++ {
		sa[a], ka[a] = ss[a], ks[a]
		kerElems *= ks[a]
	}
	var fa, oa, off [3]int
	for a := 0; a < 3; a++ {
		fa[a] = sa[a] + ka[a] - 1
		if mode == ModeExpand {
			oa[a] = fa[a]
		} else {
			oa[a] = sa[a]
			off[a] = (ka[a] - 1) / 2
		}
	}

	if domain == DomainAuto {
		if kerElems <= spatialThreshold {
			domain = DomainSpatial
		} else {
			domain = DomainFreq
		}
	}

	outShape := core.Shape{oa[0], oa[1], oa[2], 1}
	for a := rank; a < core.MaxDims; a++ {
		outShape[a] = lm.batch[a]
	}

	dt := core.Promote(sig.DType(), ker.DType())
	lanes := lm.lanes()
	sLaneLen := sa[0] * sa[1] * sa[2]
	kLaneLen := ka[0] * ka[1] * ka[2]
	fLaneLen := fa[0] * fa[1] * fa[2]
	oLaneLen := oa[0] * oa[1] * oa[2]

	if domain == DomainSpatial && dt.IsReal() {
		a64, err := sig.Float64s()
		if err != nil {
			return nil, err
		}
		b64, err := ker.Float64s()
		if err != nil {
			return nil, err
		}
		out := make([]float64, outShape.Elements())
		err = runLanes(lanes, lanes*fLaneLen*kerElems, func(li int) error {
			sl, kl := lm.sigLane(li), lm.kerLane(li)
			full := make([]float64, fLaneLen)
			spatialFullReal(full, a64[sl*sLaneLen:(sl+1)*sLaneLen], sa, b64[kl*kLaneLen:(kl+1)*kLaneLen], ka, fa)
			trimReal(out[li*oLaneLen:(li+1)*oLaneLen], full, fa, oa, off)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return core.NewFromReal(out, outShape, dt)
	}

	aC := sig.Complex128s()
	bC := ker.Complex128s()
	out := make([]complex128, outShape.Elements())

	if domain == DomainSpatial {
		err = runLanes(lanes, lanes*fLaneLen*kerElems, func(li int) error {
			sl, kl := lm.sigLane(li), lm.kerLane(li)
			full := make([]complex128, fLaneLen)
			spatialFullComplex(full, aC[sl*sLaneLen:(sl+1)*sLaneLen], sa, bC[kl*kLaneLen:(kl+1)*kLaneLen], ka, fa)
			trimComplex(out[li*oLaneLen:(li+1)*oLaneLen], full, fa, oa, off)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return assembleOutput(out, outShape, dt)
	}

	// Frequency domain: kernel spectra are shared across broadcast
	// lanes, so they are computed once up front.
	kerLaneCount := ks.Elements() / kLaneLen
	kSpectra := make([][]complex128, kerLaneCount)
	for kl := range kSpectra {
		spec, err := forwardLane(padComplexLane(bC[kl*kLaneLen:(kl+1)*kLaneLen], ka, fa), fa, rank)
		if err != nil {
			return nil, err
		}
		kSpectra[kl] = spec
	}

	err = runLanes(lanes, lanes*fLaneLen, func(li int) error {
		sl, kl := lm.sigLane(li), lm.kerLane(li)
		spec, err := forwardLane(padComplexLane(aC[sl*sLaneLen:(sl+1)*sLaneLen], sa, fa), fa, rank)
		if err != nil {
			return err
		}
		vecmath.MulComplexBlockInPlace(spec, kSpectra[kl])
		full, err := inverseLane(spec, fa, rank)
		if err != nil {
			return err
		}
		trimComplex(out[li*oLaneLen:(li+1)*oLaneLen], full, fa, oa, off)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return assembleOutput(out, outShape, dt)
}

// assembleOutput narrows a complex working array to the promoted output
// dtype, discarding the imaginary residue for real results.
func assembleOutput(data []complex128, shape core.Shape, dt core.DType) (*core.Buffer, error) {
	if dt.IsComplex() {
		return core.NewFromComplex(data, shape, dt)
	}
	re := make([]float64, len(data))
	for i, v := range data {
		re[i] = real(v)
	}
	return core.NewFromReal(re, shape, dt)
}

// Convolve1 convolves a signal or batch of signals with a kernel along
// the first dimension.
func Convolve1(sig, ker *core.Buffer, mode Mode, domain Domain) (*core.Buffer, error) {
	return convolve(sig, ker, 1, mode, domain)
}

// Convolve2 convolves along the first two dimensions.
func Convolve2(sig, ker *core.Buffer, mode Mode, domain Domain) (*core.Buffer, error) {
	return convolve(sig, ker, 2, mode, domain)
}

// Convolve3 convolves along the first three dimensions.
func Convolve3(sig, ker *core.Buffer, mode Mode, domain Domain) (*core.Buffer, error) {
	return convolve(sig, ker, 3, mode, domain)
}

// Convolve dispatches on the signal's intrinsic rank to the matching
// fixed-rank variant.
func Convolve(sig, ker *core.Buffer, mode Mode, domain Domain) (*core.Buffer, error) {
	return convolve(sig, ker, dispatchRank(sig), mode, domain)
}

// FFTConvolve1 convolves along the first dimension in the frequency
// domain.
func FFTConvolve1(sig, ker *core.Buffer, mode Mode) (*core.Buffer, error) {
	return convolve(sig, ker, 1, mode, DomainFreq)
}

// FFTConvolve2 convolves along the first two dimensions in the frequency
// domain.
func FFTConvolve2(sig, ker *core.Buffer, mode Mode) (*core.Buffer, error) {
	return convolve(sig, ker, 2, mode, DomainFreq)
}

// FFTConvolve3 convolves along the first three dimensions in the
// frequency domain.
func FFTConvolve3(sig, ker *core.Buffer, mode Mode) (*core.Buffer, error) {
	return convolve(sig, ker, 3, mode, DomainFreq)
}

// FFTConvolve dispatches on the signal's intrinsic rank, frequency
// domain pinned.
func FFTConvolve(sig, ker *core.Buffer, mode Mode) (*core.Buffer, error) {
	return convolve(sig, ker, dispatchRank(sig), mode, DomainFreq)
}

// Convolve2Sep applies a separable 2D convolution: the column kernel
// along the first dimension, then the row kernel along the second.
// Equivalent to Convolve2 with the outer product of the two kernels.
func Convolve2Sep(colKernel, rowKernel, sig *core.Buffer, mode Mode) (*core.Buffer, error) {
	if colKernel.Rank() != 1 || rowKernel.Rank() != 1 {
		return nil, fmt.Errorf("%w: separable convolution requires vector kernels", core.ErrInvalidArgument)
	}
	if sig.Rank() < 2 {
		return nil, fmt.Errorf("%w: separable convolution on signal of shape %v", core.ErrDimension, sig.Shape())
	}
	mid, err := convolve(sig, colKernel, 2, mode, DomainSpatial)
	if err != nil {
		return nil, err
	}
	row, err := rowKernel.Reshape(core.NewShape(1, rowKernel.Shape()[0]))
	if err != nil {
		return nil, err
	}
	return convolve(mid, row, 2, mode, DomainSpatial)
}

func dispatchRank(sig *core.Buffer) int {
	r := sig.Rank()
	if r > 3 {
		r = 3
	}
	return r
}
