package plan

import (
	"math"
	"sync"

	"github.com/cwbudde/algo-signal/internal/vecmath"
	"github.com/cwbudde/algo-signal/signal/core"
)

// bluestein evaluates an N-point DFT of arbitrary N as a circular
// convolution of chirp-modulated sequences, carried out with
// power-of-two inner plans of length m >= 2N-1.
type bluestein struct {
	n     int
	m     int
	chirp []complex128 // e^{∓iπj²/n}, direction-baked
	bfft  []complex128 // forward transform of the wrapped conjugate chirp
	fwd   *Plan
	inv   *Plan

	scratch sync.Pool
}

type blueScratch struct {
	a []complex128
	b []complex128
}

func newBluestein(n int, dir Direction) (*bluestein, error) {
	m := nextPowerOf2(2*n - 1)

	fwd, err := Build(Key{N: m, Dir: Forward, DType: core.C128})
	if err != nil {
		return nil, err
	}
	inv, err := Build(Key{N: m, Dir: Inverse, DType: core.C128})
	if err != nil {
		return nil, err
	}

	sign := -1.0
	if dir == Inverse {
		sign = 1.0
	}

	// The chirp phase πj²/n has period 2n in j²; reducing first keeps
	// the argument small for large j.
	chirp := make([]complex128, n)
	for j := 0; j < n; j++ {
		angle := sign * math.Pi * float64((j*j)%(2*n)) / float64(n)
		s, c := math.Sincos(angle)
		chirp[j] = complex(c, s)
	}

	b := make([]complex128, m)
	for j := 0; j < n; j++ {
		w := complex(real(chirp[j]), -imag(chirp[j]))
		b[j] = w
		if j > 0 {
			b[m-j] = w
		}
	}
	bfft := make([]complex128, m)
	if err := fwd.Execute(bfft, b); err != nil {
		return nil, err
	}

	bl := &bluestein{n: n, m: m, chirp: chirp, bfft: bfft, fwd: fwd, inv: inv}
	bl.scratch.New = func() any {
		return &blueScratch{
			a: make([]complex128, m),
			b: make([]complex128, m),
		}
	}
	return bl, nil
}

func (bl *bluestein) execute(dst, src []complex128) {
	sb := bl.scratch.Get().(*blueScratch)
	a, work := sb.a, sb.b

	for i := 0; i < bl.n; i++ {
		a[i] = src[i] * bl.chirp[i]
	}
	for i := bl.n; i < bl.m; i++ {
		a[i] = 0
	}

	// Inner plans are power-of-two mixed-radix plans; their Execute
	// cannot fail on correctly sized slices.
	_ = bl.fwd.Execute(work, a)
	vecmath.MulComplexBlockInPlace(work, bl.bfft)
	_ = bl.inv.Execute(a, work)

	scale := complex(1/float64(bl.m), 0)
	for i := 0; i < bl.n; i++ {
		dst[i] = a[i] * bl.chirp[i] * scale
	}

	bl.scratch.Put(sb)
}
