// Package core defines the shared vocabulary of the signal packages:
// typed shaped buffers, the element type lattice, and the error
// taxonomy.
//
// A Buffer owns contiguous column-major storage for one of four element
// types (f32, f64, c64, c128) under a shape of up to four dimensions.
// Operations treat dimensions beyond their intrinsic rank as batch axes
// and compute in 64-bit precision, narrowing results back to the
// buffer's element type.
package core
