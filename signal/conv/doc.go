// Package conv provides linear convolution over shaped buffers.
//
// Convolution runs along the leading one, two, or three dimensions of a
// signal; any trailing dimensions are batch lanes. Per batch axis, equal
// extents pair off lane by lane and an extent of one broadcasts against
// the other side, so a single kernel can filter a whole batch of signals
// and a batch of kernels can fan out over a single signal.
//
// Two computation domains are available. The spatial domain accumulates
// the direct product sum and wins for short kernels; the frequency
// domain transforms both operands, multiplies the spectra pointwise, and
// inverse transforms. DomainAuto picks between them on the kernel size.
//
//	out, err := conv.Convolve2(img, kernel, conv.ModeDefault, conv.DomainAuto)
//
// ModeDefault clips the result to the signal extent with the kernel
// centered; ModeExpand returns the full result of extent sig+ker-1 per
// convolved axis.
package conv
