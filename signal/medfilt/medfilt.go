package medfilt

import (
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-signal/signal/core"
)

// EdgePolicy selects how samples outside the signal are supplied.
type EdgePolicy int

const (
	// PadZero treats out-of-range samples as zero.
	PadZero EdgePolicy = iota

	// PadSymmetric mirrors the signal at its edges, repeating the edge
	// value.
	PadSymmetric
)

// parallelThreshold is the minimum total window work before lanes fan
// out across goroutines.
const parallelThreshold = 4096

// Medfilt1 applies a length-sample median filter along the first
// dimension. Trailing dimensions are independent batch lanes.
func Medfilt1(sig *core.Buffer, length int, edge EdgePolicy) (*core.Buffer, error) {
	return medfilt(sig, 1, [2]int{length, 1}, edge)
}

// Medfilt2 applies a w0 by w1 median filter over the first two
// dimensions.
func Medfilt2(sig *core.Buffer, w0, w1 int, edge EdgePolicy) (*core.Buffer, error) {
	return medfilt(sig, 2, [2]int{w0, w1}, edge)
}

// Medfilt is the 2D filter under its conventional short name.
func Medfilt(sig *core.Buffer, w0, w1 int, edge EdgePolicy) (*core.Buffer, error) {
	return Medfilt2(sig, w0, w1, edge)
}

func medfilt(sig *core.Buffer, rank int, w [2]int, edge EdgePolicy) (*core.Buffer, error) {
	if !sig.DType().IsReal() {
		return nil, fmt.Errorf("%w: median filter on %v buffer", core.ErrUnsupportedType, sig.DType())
	}
	if edge != PadZero && edge != PadSymmetric {
		return nil, fmt.Errorf("%w: edge policy %d", core.ErrInvalidArgument, edge)
	}
	shape := sig.Shape()
	for a := 0; a < rank; a++ {
		if w[a] < 1 || w[a] > shape[a] {
			return nil, fmt.Errorf("%w: window %d along axis %d of extent %d", core.ErrInvalidArgument, w[a], a, shape[a])
		}
	}

	data, err := sig.Float64s()
	if err != nil {
		return nil, err
	}

	n0, n1 := shape[0], 1
	if rank > 1 {
		n1 = shape[1]
	}
	laneLen := n0 * n1
	lanes := shape.Elements() / laneLen
	out := make([]float64, len(data))

	window := w[0] * w[1]
	filterLane := func(dst, src []float64) {
		scratch := make([]float64, 0, window)
		for i1 := 0; i1 < n1; i1++ {
			for i0 := 0; i0 < n0; i0++ {
				scratch = scratch[:0]
				for j1 := -(w[1] - 1) / 2; j1 <= w[1]/2; j1++ {
					for j0 := -(w[0] - 1) / 2; j0 <= w[0]/2; j0++ {
						scratch = append(scratch, sample(src, n0, n1, i0+j0, i1+j1, edge))
					}
				}
				dst[i1*n0+i0] = median(scratch)
			}
		}
	}

	workers := runtime.GOMAXPROCS(0)
	if lanes < 2 || workers < 2 || lanes*laneLen*window < parallelThreshold {
		for li := 0; li < lanes; li++ {
			filterLane(out[li*laneLen:(li+1)*laneLen], data[li*laneLen:(li+1)*laneLen])
		}
	} else {
		if workers > lanes {
			workers = lanes
		}
		var g errgroup.Group
		for wk := 0; wk < workers; wk++ {
			g.Go(func() error {
				for li := wk; li < lanes; li += workers {
					filterLane(out[li*laneLen:(li+1)*laneLen], data[li*laneLen:(li+1)*laneLen])
				}
				return nil
			})
		}
		_ = g.Wait()
	}

	return core.NewFromReal(out, shape, sig.DType())
}

// sample fetches position (i0,i1) of a column-major lane, resolving
// out-of-range indices through the edge policy. Padded samples count
// toward the window so its size stays constant.
func sample(src []float64, n0, n1, i0, i1 int, edge EdgePolicy) float64 {
	if i0 < 0 || i0 >= n0 || i1 < 0 || i1 >= n1 {
		if edge == PadZero {
			return 0
		}
		i0 = mirror(i0, n0)
		i1 = mirror(i1, n1)
	}
	return src[i1*n0+i0]
}

// mirror reflects an index into [0, n) with the edge value repeated.
func mirror(i, n int) int {
	if i < 0 {
		return -i - 1
	}
	if i >= n {
		return 2*n - 1 - i
	}
	return i
}

// median sorts the scratch window in place. Even-length windows take the
// mean of the two middle order statistics.
func median(vals []float64) float64 {
	sort.Float64s(vals)
	m := len(vals) / 2
	if len(vals)%2 == 1 {
		return vals[m]
	}
	return (vals[m-1] + vals[m]) / 2
}
