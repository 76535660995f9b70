package core

import (
	"fmt"
	"sync/atomic"
)

var allocLimit atomic.Int64

// DefaultAllocLimit is the initial allocation guard, in elements.
const DefaultAllocLimit = 1 << 28

func init() {
	allocLimit.Store(DefaultAllocLimit)
}

// SetAllocLimit configures the maximum element count a single allocation
// may request. Non-positive values restore the default.
func SetAllocLimit(n int) {
	if n <= 0 {
		n = DefaultAllocLimit
	}
	allocLimit.Store(int64(n))
}

func checkAlloc(elements int) error {
	if int64(elements) > allocLimit.Load() {
		return fmt.Errorf("%w: %d elements", ErrAllocation, elements)
	}
	return nil
}

// Buffer is a typed, shaped, owned dense numeric container. Storage is
// contiguous and column-major (first dimension fastest-varying). The
// element type and shape are fixed at creation; reshaping produces a new
// Buffer.
type Buffer struct {
	dtype DType
	shape Shape

	f32  []float32
	f64  []float64
	c64  []complex64
	c128 []complex128
}

// New returns a zero-filled Buffer of the given element type and shape.
func New(dtype DType, shape Shape) (*Buffer, error) {
	if !dtype.Valid() {
		return nil, fmt.Errorf("%w: dtype %d", ErrUnsupportedType, int(dtype))
	}
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	n := shape.Elements()
	if err := checkAlloc(n); err != nil {
		return nil, err
	}
	b := &Buffer{dtype: dtype, shape: shape}
	switch dtype {
	case F32:
		b.f32 = make([]float32, n)
	case F64:
		b.f64 = make([]float64, n)
	case C64:
		b.c64 = make([]complex64, n)
	case C128:
		b.c128 = make([]complex128, n)
	}
	return b, nil
}

func checkLen(got int, shape Shape) error {
	if err := shape.Validate(); err != nil {
		return err
	}
	if got != shape.Elements() {
		return fmt.Errorf("%w: %d elements for shape %v", ErrDimension, got, shape)
	}
	return nil
}

// FromFloat32 copies data into a new F32 buffer of the given shape.
func FromFloat32(data []float32, shape Shape) (*Buffer, error) {
	if err := checkLen(len(data), shape); err != nil {
		return nil, err
	}
	b, err := New(F32, shape)
	if err != nil {
		return nil, err
	}
	copy(b.f32, data)
	return b, nil
}

// FromFloat64 copies data into a new F64 buffer of the given shape.
func FromFloat64(data []float64, shape Shape) (*Buffer, error) {
	if err := checkLen(len(data), shape); err != nil {
		return nil, err
	}
	b, err := New(F64, shape)
	if err != nil {
		return nil, err
	}
	copy(b.f64, data)
	return b, nil
}

// FromComplex64 copies data into a new C64 buffer of the given shape.
func FromComplex64(data []complex64, shape Shape) (*Buffer, error) {
	if err := checkLen(len(data), shape); err != nil {
		return nil, err
	}
	b, err := New(C64, shape)
	if err != nil {
		return nil, err
	}
	copy(b.c64, data)
	return b, nil
}

// FromComplex128 copies data into a new C128 buffer of the given shape.
func FromComplex128(data []complex128, shape Shape) (*Buffer, error) {
	if err := checkLen(len(data), shape); err != nil {
		return nil, err
	}
	b, err := New(C128, shape)
	if err != nil {
		return nil, err
	}
	copy(b.c128, data)
	return b, nil
}

// NewFromReal builds a buffer of the given real dtype from 64-bit values,
// narrowing as needed. Engines use this to emit outputs in the caller's
// precision.
func NewFromReal(vals []float64, shape Shape, dtype DType) (*Buffer, error) {
	if !dtype.IsReal() {
		return nil, fmt.Errorf("%w: %v is not a real type", ErrUnsupportedType, dtype)
	}
	if err := checkLen(len(vals), shape); err != nil {
		return nil, err
	}
	b, err := New(dtype, shape)
	if err != nil {
		return nil, err
	}
	if dtype == F64 {
		copy(b.f64, vals)
	} else {
		for i, v := range vals {
			b.f32[i] = float32(v)
		}
	}
	return b, nil
}

// NewFromComplex builds a buffer of the given complex dtype from 128-bit
// values, narrowing as needed.
func NewFromComplex(vals []complex128, shape Shape, dtype DType) (*Buffer, error) {
	if !dtype.IsComplex() {
		return nil, fmt.Errorf("%w: %v is not a complex type", ErrUnsupportedType, dtype)
	}
	if err := checkLen(len(vals), shape); err != nil {
		return nil, err
	}
	b, err := New(dtype, shape)
	if err != nil {
		return nil, err
	}
	if dtype == C128 {
		copy(b.c128, vals)
	} else {
		for i, v := range vals {
			b.c64[i] = complex64(v)
		}
	}
	return b, nil
}

// DType returns the element type.
func (b *Buffer) DType() DType { return b.dtype }

// Shape returns the buffer shape.
func (b *Buffer) Shape() Shape { return b.shape }

// Elements returns the total element count.
func (b *Buffer) Elements() int { return b.shape.Elements() }

// Rank returns the intrinsic rank of the buffer shape.
func (b *Buffer) Rank() int { return b.shape.Rank() }

// Float64s returns the buffer contents widened to float64. The returned
// slice is a copy. Complex buffers return ErrUnsupportedType.
func (b *Buffer) Float64s() ([]float64, error) {
	switch b.dtype {
	case F64:
		out := make([]float64, len(b.f64))
		copy(out, b.f64)
		return out, nil
	case F32:
		out := make([]float64, len(b.f32))
		for i, v := range b.f32 {
			out[i] = float64(v)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %v buffer has no real view", ErrUnsupportedType, b.dtype)
	}
}

// Complex128s returns the buffer contents widened to complex128. Real
// buffers widen into the real component. The returned slice is a copy.
func (b *Buffer) Complex128s() []complex128 {
	out := make([]complex128, b.Elements())
	switch b.dtype {
	case F32:
		for i, v := range b.f32 {
			out[i] = complex(float64(v), 0)
		}
	case F64:
		for i, v := range b.f64 {
			out[i] = complex(v, 0)
		}
	case C64:
		for i, v := range b.c64 {
			out[i] = complex128(v)
		}
	case C128:
		copy(out, b.c128)
	}
	return out
}

// SetComplex128 overwrites the contents of a complex buffer from 128-bit
// values, narrowing as needed. The value count must match the buffer.
func (b *Buffer) SetComplex128(vals []complex128) error {
	if !b.dtype.IsComplex() {
		return fmt.Errorf("%w: in-place complex store into %v buffer", ErrUnsupportedType, b.dtype)
	}
	if len(vals) != b.Elements() {
		return fmt.Errorf("%w: %d values for %d elements", ErrDimension, len(vals), b.Elements())
	}
	if b.dtype == C128 {
		copy(b.c128, vals)
		return nil
	}
	for i, v := range vals {
		b.c64[i] = complex64(v)
	}
	return nil
}

// LanesFloat64 returns zero-copy views of the contiguous rank-r lanes of
// an F64 buffer. The views share storage with the buffer.
func (b *Buffer) LanesFloat64(rank int) ([][]float64, error) {
	if b.dtype != F64 {
		return nil, fmt.Errorf("%w: lane views need an f64 buffer, have %v", ErrUnsupportedType, b.dtype)
	}
	desc, err := b.shape.Batch(rank)
	if err != nil {
		return nil, err
	}
	lanes := make([][]float64, desc.Count)
	for i := range lanes {
		lanes[i] = b.f64[i*desc.LaneLen : (i+1)*desc.LaneLen]
	}
	return lanes, nil
}

// LanesComplex128 returns zero-copy views of the contiguous rank-r lanes
// of a C128 buffer. The views share storage with the buffer.
func (b *Buffer) LanesComplex128(rank int) ([][]complex128, error) {
	if b.dtype != C128 {
		return nil, fmt.Errorf("%w: lane views need a c128 buffer, have %v", ErrUnsupportedType, b.dtype)
	}
	desc, err := b.shape.Batch(rank)
	if err != nil {
		return nil, err
	}
	lanes := make([][]complex128, desc.Count)
	for i := range lanes {
		lanes[i] = b.c128[i*desc.LaneLen : (i+1)*desc.LaneLen]
	}
	return lanes, nil
}

// Copy returns a deep copy of the buffer.
func (b *Buffer) Copy() *Buffer {
	out := &Buffer{dtype: b.dtype, shape: b.shape}
	switch b.dtype {
	case F32:
		out.f32 = append([]float32(nil), b.f32...)
	case F64:
		out.f64 = append([]float64(nil), b.f64...)
	case C64:
		out.c64 = append([]complex64(nil), b.c64...)
	case C128:
		out.c128 = append([]complex128(nil), b.c128...)
	}
	return out
}

// Reshape returns a new Buffer with the same elements and the given shape.
// The element count must match; storage is copied, never aliased.
func (b *Buffer) Reshape(shape Shape) (*Buffer, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.Elements() != b.Elements() {
		return nil, fmt.Errorf("%w: reshape %v to %v", ErrDimension, b.shape, shape)
	}
	out := b.Copy()
	out.shape = shape
	return out, nil
}
