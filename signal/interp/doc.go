// Package interp samples uniformly gridded signals at arbitrary
// positions.
//
// Positions index the grid directly: position p lies between samples
// floor(p) and floor(p)+1, and the valid range is [0, n-1] per axis.
// Positions outside that range produce the caller's off-grid value.
// Neighbor taps that a kernel needs beyond the grid edge clamp to the
// edge sample.
package interp
