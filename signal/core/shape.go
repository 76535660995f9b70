package core

import "fmt"

// MaxDims is the maximum number of buffer dimensions.
const MaxDims = 4

// Shape describes up to four ordered extents in column-major layout: the
// first dimension varies fastest in storage. Unused trailing dimensions
// carry extent 1 and act as batch-degenerate axes.
type Shape [MaxDims]int

// NewShape builds a Shape from the given extents, padding missing trailing
// dimensions with 1. Extents beyond MaxDims are ignored.
func NewShape(dims ...int) Shape {
	s := Shape{1, 1, 1, 1}
	for i := 0; i < len(dims) && i < MaxDims; i++ {
		s[i] = dims[i]
	}
	return s
}

// Validate returns ErrInvalidArgument unless every extent is >= 1.
func (s Shape) Validate() error {
	for i, d := range s {
		if d < 1 {
			return fmt.Errorf("%w: shape extent %d is %d", ErrInvalidArgument, i, d)
		}
	}
	return nil
}

// Elements returns the total element count, the product of all extents.
func (s Shape) Elements() int {
	n := 1
	for _, d := range s {
		n *= d
	}
	return n
}

// Rank returns the intrinsic rank: one plus the index of the last non-unit
// extent. A shape of all ones has rank 1.
func (s Shape) Rank() int {
	r := 1
	for i := 1; i < MaxDims; i++ {
		if s[i] > 1 {
			r = i + 1
		}
	}
	return r
}

// Equal reports whether s and o have identical extents.
func (s Shape) Equal(o Shape) bool {
	return s == o
}

// String formats the shape as [d0 d1 d2 d3].
func (s Shape) String() string {
	return fmt.Sprintf("[%d %d %d %d]", s[0], s[1], s[2], s[3])
}

// Batch describes how a shape decomposes for an operation of the given
// rank: contiguous lanes of LaneLen elements, Count independent lanes.
// It is derived on demand and never stored.
type Batch struct {
	Rank    int
	LaneLen int
	Count   int
}

// Batch computes the batch decomposition of s for an operation of the
// given rank. Rank must be in [1, MaxDims].
func (s Shape) Batch(rank int) (Batch, error) {
	if rank < 1 || rank > MaxDims {
		return Batch{}, fmt.Errorf("%w: operation rank %d", ErrDimension, rank)
	}
	lane := 1
	for i := 0; i < rank; i++ {
		lane *= s[i]
	}
	count := 1
	for i := rank; i < MaxDims; i++ {
		count *= s[i]
	}
	return Batch{Rank: rank, LaneLen: lane, Count: count}, nil
}
