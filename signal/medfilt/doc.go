// Package medfilt provides sliding-window median filters.
//
// The window is centered on each sample, reaching (w-1)/2 samples back
// and w/2 forward, so even window lengths lean one sample toward the
// future. An even window has no single middle value; its median is the
// mean of the two middle order statistics.
//
// Samples outside the signal are supplied by the edge policy: PadZero
// treats them as zero, PadSymmetric mirrors the signal with the edge
// value repeated.
package medfilt
