// Package plan builds and caches execution plans for fast Fourier
// transforms of arbitrary length.
//
// A Plan is specific to one (length, direction, element type) tuple. It
// carries the prime-power factor chain of the length and a precomputed
// twiddle table; lengths whose factorization contains a prime larger than
// 13 instead carry Bluestein chirp state backed by power-of-two inner
// plans. Execute applies the unnormalized transform; callers apply
// scaling.
//
// Plans are built lazily and retained in a bounded least-recently-used
// Cache. Concurrent builds for the same key are collapsed through a
// single-flight group, so only one goroutine constructs a given plan.
// An evicted plan remains valid for any holder; eviction only drops the
// cache reference.
package plan
