// Package fft executes multi-dimensional fast Fourier transforms over
// core buffers.
//
// The package offers 1D, 2D, and 3D forward and inverse transforms, each
// with out-of-place and in-place variants, plus real-to-complex and
// complex-to-real specializations exploiting conjugate symmetry. Buffer
// dimensions beyond a transform's rank are treated as batch axes: every
// trailing lane is transformed independently with identical parameters,
// concurrently when the workload warrants it.
//
// Transform plans are obtained from the process-wide cache in the plan
// package; repeated transforms of one configuration reuse the cached
// factorization and twiddle tables.
//
// # Scaling
//
// Forward transforms default to scale 1. Inverse transforms default to
// 1/N where N is the product of the transformed output lengths, so a
// forward/inverse round trip with default scales reproduces the input
// within rounding error.
//
// # Rank dispatch
//
// Dft and Idft inspect the signal's intrinsic rank once and dispatch to
// the matching fixed-rank transform, using the signal's own dimensions
// as output lengths.
package fft
