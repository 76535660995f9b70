// Package spectrum derives magnitude and power views from complex
// spectra, as produced by the fft package.
package spectrum

import (
	"fmt"
	"sync"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-signal/signal/core"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// Magnitude returns |X[k]| for each complex spectrum bin.
//
// Scratch buffers are pooled internally, so in steady state this
// allocates only the output slice.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Magnitude(out, re, im)
	putScratch(buf)
	return out
}

// MagnitudeFromParts computes |X[k]| = sqrt(re[k]^2 + im[k]^2) into dst.
//
// This is the zero-allocation fast path for callers that already hold
// real and imaginary parts in separate slices. All three slices must
// have the same length.
func MagnitudeFromParts(dst, re, im []float64) {
	vecmath.Magnitude(dst, re, im)
}

// Power returns |X[k]|^2 for each complex spectrum bin.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Power(out, re, im)
	putScratch(buf)
	return out
}

// PowerFromParts computes |X[k]|^2 = re[k]^2 + im[k]^2 into dst.
func PowerFromParts(dst, re, im []float64) {
	vecmath.Power(dst, re, im)
}

// MagnitudeOf returns the element-wise magnitude of a complex buffer as
// a real buffer of matching shape and precision.
func MagnitudeOf(sig *core.Buffer) (*core.Buffer, error) {
	if !sig.DType().IsComplex() {
		return nil, fmt.Errorf("%w: magnitude of %v buffer", core.ErrUnsupportedType, sig.DType())
	}
	return core.NewFromReal(Magnitude(sig.Complex128s()), sig.Shape(), sig.DType().Real())
}

// PowerOf returns the element-wise squared magnitude of a complex buffer
// as a real buffer of matching shape and precision.
func PowerOf(sig *core.Buffer) (*core.Buffer, error) {
	if !sig.DType().IsComplex() {
		return nil, fmt.Errorf("%w: power of %v buffer", core.ErrUnsupportedType, sig.DType())
	}
	return core.NewFromReal(Power(sig.Complex128s()), sig.Shape(), sig.DType().Real())
}
