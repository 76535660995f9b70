package conv

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-signal/signal/core"
)

// laneMap pairs the batch lanes of a signal/kernel combination after
// broadcasting. Batch axes are the axes at and beyond the convolution
// rank; lanes over them are contiguous blocks in column-major storage.
type laneMap struct {
	rank  int
	sig   core.Shape
	ker   core.Shape
	batch [core.MaxDims]int // broadcast batch extents, 1 below rank
}

// resolveBatch lines up the batch axes of two shapes. Equal extents pair
// off, an extent of one broadcasts, anything else is a mismatch.
func resolveBatch(sig, ker core.Shape, rank int) (laneMap, error) {
	m := laneMap{rank: rank, sig: sig, ker: ker}
	for a := 0; a < core.MaxDims; a++ {
		m.batch[a] = 1
	}
	for a := rank; a < core.MaxDims; a++ {
		sb, kb := sig[a], ker[a]
		switch {
		case sb == kb:
			m.batch[a] = sb
		case sb == 1:
			m.batch[a] = kb
		case kb == 1:
			m.batch[a] = sb
		default:
			return laneMap{}, fmt.Errorf("%w: extents %d and %d along axis %d", core.ErrBatchMismatch, sb, kb, a)
		}
	}
	return m, nil
}

func (m laneMap) lanes() int {
	n := 1
	for a := m.rank; a < core.MaxDims; a++ {
		n *= m.batch[a]
	}
	return n
}

// sigLane and kerLane map an output lane ordinal to the input lane that
// feeds it, collapsing broadcast axes to index zero.
func (m laneMap) sigLane(li int) int { return mapLane(li, m.batch, m.sig, m.rank) }
func (m laneMap) kerLane(li int) int { return mapLane(li, m.batch, m.ker, m.rank) }

func mapLane(li int, out [core.MaxDims]int, in core.Shape, rank int) int {
	idx, stride := 0, 1
	for a := rank; a < core.MaxDims; a++ {
		i := li % out[a]
		li /= out[a]
		if in[a] == out[a] {
			idx += i * stride
		}
		stride *= in[a]
	}
	return idx
}

// parallelThreshold is the minimum total element count before lanes fan
// out across goroutines.
const parallelThreshold = 4096

// runLanes executes work for every lane ordinal, concurrently when the
// workload justifies it.
func runLanes(lanes, elements int, work func(li int) error) error {
	workers := runtime.GOMAXPROCS(0)
	if lanes < 2 || workers < 2 || elements < parallelThreshold {
		for li := 0; li < lanes; li++ {
			if err := work(li); err != nil {
				return err
			}
		}
		return nil
	}
	if workers > lanes {
		workers = lanes
	}
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for li := w; li < lanes; li += workers {
				if err := work(li); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
