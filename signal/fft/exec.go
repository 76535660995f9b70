package fft

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-signal/signal/core"
	"github.com/cwbudde/algo-signal/signal/plan"
)

// parallelThreshold is the minimum per-axis element count before line
// transforms fan out across goroutines.
const parallelThreshold = 4096

func invalidDimErr(axis, n int) error {
	return fmt.Errorf("%w: output length %d along axis %d", core.ErrInvalidArgument, n, axis)
}

func rankErr(rank int, shape core.Shape) error {
	return fmt.Errorf("%w: rank-%d transform on buffer of shape %v", core.ErrDimension, rank, shape)
}

// transformND applies 1D transforms along axes 0..rank-1 of data, which
// holds a column-major array of the given shape. dtype selects the plan
// key the cache is consulted with.
func transformND(data []complex128, shape core.Shape, rank int, dir plan.Direction, dtype core.DType) error {
	for axis := 0; axis < rank; axis++ {
		if err := transformAxis(data, shape, axis, dir, dtype); err != nil {
			return err
		}
	}
	return nil
}

// transformAxis transforms every line of data along one axis. Lines are
// gathered through the axis stride, transformed with a cached plan, and
// scattered back; independent lines run concurrently for large workloads.
func transformAxis(data []complex128, shape core.Shape, axis int, dir plan.Direction, dtype core.DType) error {
	n := shape[axis]
	if n == 1 {
		return nil
	}

	p, err := plan.Get(plan.Key{N: n, Dir: dir, DType: dtype.Complex()})
	if err != nil {
		return err
	}

	stride := 1
	for i := 0; i < axis; i++ {
		stride *= shape[i]
	}
	lines := 1
	for i := 0; i < core.MaxDims; i++ {
		if i != axis {
			lines *= shape[i]
		}
	}

	lineBase := func(li int) int {
		outer := li / stride
		inner := li % stride
		return outer*stride*n + inner
	}

	process := func(li int, src, dst []complex128) error {
		base := lineBase(li)
		for k := 0; k < n; k++ {
			src[k] = data[base+k*stride]
		}
		if err := p.Execute(dst, src); err != nil {
			return err
		}
		for k := 0; k < n; k++ {
			data[base+k*stride] = dst[k]
		}
		return nil
	}

	workers := runtime.GOMAXPROCS(0)
	if lines < 2 || n*lines < parallelThreshold || workers < 2 {
		src := make([]complex128, n)
		dst := make([]complex128, n)
		for li := 0; li < lines; li++ {
			if err := process(li, src, dst); err != nil {
				return err
			}
		}
		return nil
	}

	if workers > lines {
		workers = lines
	}
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			src := make([]complex128, n)
			dst := make([]complex128, n)
			for li := w; li < lines; li += workers {
				if err := process(li, src, dst); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// index computes the flat column-major offset of (i0,i1,i2,i3) in shape.
func index(shape core.Shape, i0, i1, i2, i3 int) int {
	return i0 + shape[0]*(i1+shape[1]*(i2+shape[2]*i3))
}

// resizeAxes copies src (shaped from) into a new array shaped to,
// truncating or zero-padding along each axis.
func resizeAxes(src []complex128, from, to core.Shape) []complex128 {
	if from == to {
		return src
	}
	out := make([]complex128, to.Elements())
	n := from
	for a := 0; a < core.MaxDims; a++ {
		if to[a] < n[a] {
			n[a] = to[a]
		}
	}
	for i3 := 0; i3 < n[3]; i3++ {
		for i2 := 0; i2 < n[2]; i2++ {
			for i1 := 0; i1 < n[1]; i1++ {
				srcBase := index(from, 0, i1, i2, i3)
				dstBase := index(to, 0, i1, i2, i3)
				copy(out[dstBase:dstBase+n[0]], src[srcBase:srcBase+n[0]])
			}
		}
	}
	return out
}
