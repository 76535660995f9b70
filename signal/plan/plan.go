package plan

import (
	"fmt"
	"math"
	"sync"

	"github.com/cwbudde/algo-signal/signal/core"
)

// Direction selects the transform sign convention.
type Direction int

const (
	// Forward applies the e^{-i2πjk/N} kernel.
	Forward Direction = iota

	// Inverse applies the e^{+i2πjk/N} kernel, unnormalized.
	Inverse
)

// String returns the direction name.
func (d Direction) String() string {
	if d == Inverse {
		return "inverse"
	}
	return "forward"
}

// Key identifies a plan: transform length, direction, and the element
// type of the buffers the transform serves. A plan is valid only for the
// exact tuple it was built for.
type Key struct {
	N     int
	Dir   Direction
	DType core.DType
}

// String formats the key; used as the single-flight group key.
func (k Key) String() string {
	return fmt.Sprintf("%d/%s/%s", k.N, k.Dir, k.DType)
}

// Plan holds the precomputed state for transforms of one Key: the factor
// chain and twiddle table for mixed-radix lengths, or Bluestein chirp
// state for lengths with a large prime factor. A Plan is safe for
// concurrent use; execution scratch is pooled per plan.
type Plan struct {
	key     Key
	factors []int
	radix   int // largest factor in the chain
	twiddle []complex128
	blue    *bluestein

	scratch sync.Pool
}

type scratchBuf struct {
	radix []complex128 // combine temporaries, 2*radix
	work  []complex128 // input copy for in-place execution
}

// Build constructs a plan for the given key without consulting any cache.
func Build(key Key) (*Plan, error) {
	if key.N <= 0 {
		return nil, fmt.Errorf("%w: transform length %d", core.ErrInvalidArgument, key.N)
	}
	if !key.DType.Valid() {
		return nil, fmt.Errorf("%w: dtype %d", core.ErrUnsupportedType, int(key.DType))
	}
	if key.Dir != Forward && key.Dir != Inverse {
		return nil, fmt.Errorf("%w: direction %d", core.ErrInvalidArgument, int(key.Dir))
	}

	p := &Plan{key: key, factors: factorize(key.N)}
	p.radix = maxFactor(p.factors)

	if p.radix > bluesteinThreshold {
		blue, err := newBluestein(key.N, key.Dir)
		if err != nil {
			return nil, err
		}
		p.blue = blue
	} else {
		p.twiddle = twiddleTable(key.N, key.Dir)
	}

	p.scratch.New = func() any {
		return &scratchBuf{
			radix: make([]complex128, 2*p.radix),
			work:  make([]complex128, key.N),
		}
	}
	return p, nil
}

// twiddleTable computes w[j] = e^{∓i2πj/N} for the given direction.
func twiddleTable(n int, dir Direction) []complex128 {
	sign := -1.0
	if dir == Inverse {
		sign = 1.0
	}
	tw := make([]complex128, n)
	for j := range tw {
		angle := sign * 2 * math.Pi * float64(j) / float64(n)
		s, c := math.Sincos(angle)
		tw[j] = complex(c, s)
	}
	return tw
}

// Key returns the tuple the plan was built for.
func (p *Plan) Key() Key { return p.key }

// Len returns the transform length.
func (p *Plan) Len() int { return p.key.N }

// Factors returns a copy of the prime factor chain of the length.
func (p *Plan) Factors() []int {
	return append([]int(nil), p.factors...)
}

// Bluestein reports whether the plan uses the chirp-z fallback.
func (p *Plan) Bluestein() bool { return p.blue != nil }

// Execute applies the unnormalized transform of src into dst. Both slices
// must hold at least N elements; dst and src may be the same slice but
// must not otherwise overlap.
func (p *Plan) Execute(dst, src []complex128) error {
	n := p.key.N
	if len(dst) < n || len(src) < n {
		return fmt.Errorf("%w: plan length %d, dst %d, src %d", core.ErrDimension, n, len(dst), len(src))
	}
	dst = dst[:n]
	src = src[:n]

	if p.blue != nil {
		p.blue.execute(dst, src)
		return nil
	}

	sb := p.scratch.Get().(*scratchBuf)
	in := src
	if &dst[0] == &src[0] {
		copy(sb.work, src)
		in = sb.work
	}
	p.recurse(dst, in, n, 1, sb.radix)
	p.scratch.Put(sb)
	return nil
}

// recurse performs decimation-in-time mixed-radix recursion. src is read
// at indices 0, stride, 2*stride, ...; dst receives n contiguous outputs.
// stride always equals N/n, which makes it the twiddle span of this node.
func (p *Plan) recurse(dst, src []complex128, n, stride int, tmp []complex128) {
	if n == 1 {
		dst[0] = src[0]
		return
	}
	if n == 2 {
		a, b := src[0], src[stride]
		dst[0] = a + b
		dst[1] = a - b
		return
	}

	r := smallestPrimeFactor(n)
	m := n / r
	for q := 0; q < r; q++ {
		p.recurse(dst[q*m:(q+1)*m], src[q*stride:], m, stride*r, tmp)
	}

	total := p.key.N
	t := tmp[:r]
	res := tmp[r : 2*r]
	for k1 := 0; k1 < m; k1++ {
		for q := 0; q < r; q++ {
			t[q] = dst[q*m+k1] * p.twiddle[(q*k1*stride)%total]
		}
		for k2 := 0; k2 < r; k2++ {
			acc := t[0]
			for q := 1; q < r; q++ {
				acc += t[q] * p.twiddle[(q*k2*m*stride)%total]
			}
			res[k2] = acc
		}
		for k2 := 0; k2 < r; k2++ {
			dst[k1+k2*m] = res[k2]
		}
	}
}
