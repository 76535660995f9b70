package filter

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-signal/signal/core"
)

// parallelThreshold is the minimum total sample-by-tap work before lanes
// fan out across goroutines.
const parallelThreshold = 4096

// FIR applies the feed-forward difference equation
//
//	y[n] = coeffs[0]·x[n] + coeffs[1]·x[n-1] + ...
//
// along the first dimension, with zero history before the signal start.
func FIR(coeffs []float64, sig *core.Buffer) (*core.Buffer, error) {
	return apply(coeffs, []float64{1}, sig)
}

// IIR applies the recursive difference equation given by the
// feed-forward and feedback coefficient vectors. The leading feedback
// coefficient normalizes the remaining terms and must be nonzero.
func IIR(feedForward, feedBack []float64, sig *core.Buffer) (*core.Buffer, error) {
	if len(feedBack) == 0 || feedBack[0] == 0 {
		return nil, fmt.Errorf("%w: leading feedback coefficient must be nonzero", core.ErrInvalidArgument)
	}
	return apply(feedForward, feedBack, sig)
}

func apply(ff, fb []float64, sig *core.Buffer) (*core.Buffer, error) {
	if len(ff) == 0 {
		return nil, fmt.Errorf("%w: empty feed-forward coefficients", core.ErrInvalidArgument)
	}
	if !sig.DType().IsReal() {
		return nil, fmt.Errorf("%w: recursive filter on %v buffer", core.ErrUnsupportedType, sig.DType())
	}

	order := len(ff)
	if len(fb) > order {
		order = len(fb)
	}
	order--

	// Normalize by the leading feedback coefficient and zero-extend both
	// vectors to a common order.
	b := make([]float64, order+1)
	a := make([]float64, order+1)
	for i, v := range ff {
		b[i] = v / fb[0]
	}
	for i, v := range fb {
		a[i] = v / fb[0]
	}

	data, err := sig.Float64s()
	if err != nil {
		return nil, err
	}
	shape := sig.Shape()
	n := shape[0]
	lanes := shape.Elements() / n
	out := make([]float64, len(data))

	// Direct form II transposed: one state slot per order tap.
	filterLane := func(dst, src []float64) {
		z := make([]float64, order)
		for i, x := range src {
			y := b[0]*x + first(z)
			for k := 1; k <= order; k++ {
				next := 0.0
				if k < order {
					next = z[k]
				}
				z[k-1] = b[k]*x + next - a[k]*y
			}
			dst[i] = y
		}
	}

	workers := runtime.GOMAXPROCS(0)
	if lanes < 2 || workers < 2 || len(data)*(order+1) < parallelThreshold {
		for li := 0; li < lanes; li++ {
			filterLane(out[li*n:(li+1)*n], data[li*n:(li+1)*n])
		}
	} else {
		if workers > lanes {
			workers = lanes
		}
		var g errgroup.Group
		for w := 0; w < workers; w++ {
			g.Go(func() error {
				for li := w; li < lanes; li += workers {
					filterLane(out[li*n:(li+1)*n], data[li*n:(li+1)*n])
				}
				return nil
			})
		}
		_ = g.Wait()
	}

	return core.NewFromReal(out, shape, sig.DType())
}

func first(z []float64) float64 {
	if len(z) == 0 {
		return 0
	}
	return z[0]
}
