package interp

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-signal/signal/core"
)

// Method selects the interpolation kernel.
type Method int

const (
	// Nearest rounds to the closest grid sample.
	Nearest Method = iota

	// Linear blends the two bracketing samples.
	Linear

	// Cubic applies 4-point cubic Hermite interpolation.
	Cubic
)

// Approx1 samples a signal along its first dimension at the given
// positions. pos must be a real vector; each batch lane of the signal is
// sampled at the same positions. Out-of-range positions yield offGrid.
func Approx1(sig, pos *core.Buffer, method Method, offGrid float64) (*core.Buffer, error) {
	if err := checkMethod(method); err != nil {
		return nil, err
	}
	if !sig.DType().IsReal() || !pos.DType().IsReal() {
		return nil, fmt.Errorf("%w: interpolation needs real signal and positions", core.ErrUnsupportedType)
	}
	if pos.Rank() != 1 {
		return nil, fmt.Errorf("%w: positions must be a vector, have shape %v", core.ErrInvalidArgument, pos.Shape())
	}

	data, err := sig.Float64s()
	if err != nil {
		return nil, err
	}
	p, err := pos.Float64s()
	if err != nil {
		return nil, err
	}

	shape := sig.Shape()
	n := shape[0]
	lanes := shape.Elements() / n

	outShape := shape
	outShape[0] = len(p)
	out := make([]float64, outShape.Elements())

	for li := 0; li < lanes; li++ {
		src := data[li*n : (li+1)*n]
		dst := out[li*len(p) : (li+1)*len(p)]
		for i, x := range p {
			if x < 0 || x > float64(n-1) {
				dst[i] = offGrid
				continue
			}
			dst[i] = value1(src, x, method)
		}
	}
	return core.NewFromReal(out, outShape, sig.DType())
}

// Approx2 samples a signal over its first two dimensions at the grid of
// positions given by pos0 (dim 0) and pos1 (dim 1). The position buffers
// must share one shape of rank at most two; dimensions beyond the second
// of the signal are batch lanes.
func Approx2(sig, pos0, pos1 *core.Buffer, method Method, offGrid float64) (*core.Buffer, error) {
	if err := checkMethod(method); err != nil {
		return nil, err
	}
	if !sig.DType().IsReal() || !pos0.DType().IsReal() || !pos1.DType().IsReal() {
		return nil, fmt.Errorf("%w: interpolation needs real signal and positions", core.ErrUnsupportedType)
	}
	if !pos0.Shape().Equal(pos1.Shape()) {
		return nil, fmt.Errorf("%w: position shapes %v and %v differ", core.ErrDimension, pos0.Shape(), pos1.Shape())
	}
	if pos0.Rank() > 2 {
		return nil, fmt.Errorf("%w: positions must be at most rank 2, have shape %v", core.ErrInvalidArgument, pos0.Shape())
	}

	data, err := sig.Float64s()
	if err != nil {
		return nil, err
	}
	p0, err := pos0.Float64s()
	if err != nil {
		return nil, err
	}
	p1, err := pos1.Float64s()
	if err != nil {
		return nil, err
	}

	shape := sig.Shape()
	n0, n1 := shape[0], shape[1]
	laneLen := n0 * n1
	lanes := shape.Elements() / laneLen

	ps := pos0.Shape()
	outShape := core.Shape{ps[0], ps[1], shape[2], shape[3]}
	points := ps[0] * ps[1]
	out := make([]float64, outShape.Elements())

	for li := 0; li < lanes; li++ {
		src := data[li*laneLen : (li+1)*laneLen]
		dst := out[li*points : (li+1)*points]
		for i := range dst {
			x, y := p0[i], p1[i]
			if x < 0 || x > float64(n0-1) || y < 0 || y > float64(n1-1) {
				dst[i] = offGrid
				continue
			}
			dst[i] = value2(src, n0, n1, x, y, method)
		}
	}
	return core.NewFromReal(out, outShape, sig.DType())
}

func checkMethod(m Method) error {
	switch m {
	case Nearest, Linear, Cubic:
		return nil
	default:
		return fmt.Errorf("%w: interpolation method %d", core.ErrInvalidArgument, m)
	}
}

// value1 evaluates one in-range position on a 1D grid.
func value1(src []float64, x float64, method Method) float64 {
	n := len(src)
	switch method {
	case Nearest:
		return src[int(math.Round(x))]
	case Linear:
		i := int(x)
		if i >= n-1 {
			return src[n-1]
		}
		frac := x - float64(i)
		return src[i] + frac*(src[i+1]-src[i])
	default:
		i := int(x)
		frac := x - float64(i)
		return hermite4(frac,
			src[clamp(i-1, n)], src[clamp(i, n)], src[clamp(i+1, n)], src[clamp(i+2, n)])
	}
}

// value2 evaluates one in-range position pair on a column-major 2D grid,
// applying the 1D kernel along dim 0 and then across dim 1.
func value2(src []float64, n0, n1 int, x, y float64, method Method) float64 {
	switch method {
	case Nearest:
		i0 := int(math.Round(x))
		i1 := int(math.Round(y))
		return src[i1*n0+i0]
	case Linear:
		j := int(y)
		if j >= n1-1 {
			return value1(src[(n1-1)*n0:n1*n0], x, method)
		}
		frac := y - float64(j)
		a := value1(src[j*n0:(j+1)*n0], x, method)
		b := value1(src[(j+1)*n0:(j+2)*n0], x, method)
		return a + frac*(b-a)
	default:
		j := int(y)
		frac := y - float64(j)
		row := func(k int) float64 {
			k = clamp(k, n1)
			return value1(src[k*n0:(k+1)*n0], x, method)
		}
		return hermite4(frac, row(j-1), row(j), row(j+1), row(j+2))
	}
}

// hermite4 computes cubic 4-point interpolation from x0 toward x1 with
// neighbor points xm1 and x2.
func hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + c0
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
