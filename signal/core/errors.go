package core

import "errors"

// Shared error taxonomy for the signal packages. Callers match with
// errors.Is; packages wrap these with operation context via fmt.Errorf.
var (
	// ErrInvalidArgument is returned for non-positive lengths, malformed
	// window sizes, empty coefficient sets, and similar caller mistakes.
	ErrInvalidArgument = errors.New("signal: invalid argument")

	// ErrDimension is returned on rank or shape mismatch between an input
	// and the requested operation.
	ErrDimension = errors.New("signal: dimension mismatch")

	// ErrBatchMismatch is returned when signal and kernel batch dimensions
	// cannot be paired or broadcast.
	ErrBatchMismatch = errors.New("signal: incompatible batch dimensions")

	// ErrUnsupportedType is returned when an operation does not support the
	// element type of its input.
	ErrUnsupportedType = errors.New("signal: unsupported element type")

	// ErrAllocation is returned when an output buffer would exceed the
	// configured allocation limit.
	ErrAllocation = errors.New("signal: allocation limit exceeded")
)
