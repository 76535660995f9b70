// Package vecmath provides scalar block operations for hot numeric loops.
// SIMD-accelerated variants of the public operations live in the external
// algo-vecmath module; this package carries the portable kernels the
// signal engines need on working slices.
package vecmath

// ScaleBlock computes dst[i] = src[i] * s.
// dst and src must have the same length.
func ScaleBlock(dst, src []float64, s float64) {
	_ = dst[len(src)-1]
	for i, v := range src {
		dst[i] = v * s
	}
}

// AddBlockInPlace computes dst[i] += src[i].
// dst and src must have the same length.
func AddBlockInPlace(dst, src []float64) {
	_ = dst[len(src)-1]
	for i, v := range src {
		dst[i] += v
	}
}

// MulBlock computes dst[i] = a[i] * b[i].
// All three slices must have the same length.
func MulBlock(dst, a, b []float64) {
	_ = dst[len(a)-1]
	_ = b[len(a)-1]
	for i := range a {
		dst[i] = a[i] * b[i]
	}
}

// MulBlockInPlace computes dst[i] *= src[i].
// dst and src must have the same length.
func MulBlockInPlace(dst, src []float64) {
	_ = dst[len(src)-1]
	for i, v := range src {
		dst[i] *= v
	}
}

// ScaleComplexBlock multiplies every element of dst by the real factor s.
func ScaleComplexBlock(dst []complex128, s float64) {
	c := complex(s, 0)
	for i := range dst {
		dst[i] *= c
	}
}

// MulComplexBlockInPlace computes dst[i] *= src[i] over complex blocks.
// dst and src must have the same length.
func MulComplexBlockInPlace(dst, src []complex128) {
	_ = dst[len(src)-1]
	for i, v := range src {
		dst[i] *= v
	}
}
