// Package filter provides causal FIR and IIR filtering along the first
// dimension of a buffer.
//
// Both filters start from zero history, run strictly sequentially within
// a lane, and treat trailing dimensions as independent batch lanes. The
// IIR recurrence is evaluated in direct form II transposed with the
// coefficients normalized by the leading feedback term.
package filter
