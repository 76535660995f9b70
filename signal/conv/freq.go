package conv

import (
	"github.com/cwbudde/algo-signal/signal/core"
	"github.com/cwbudde/algo-signal/signal/fft"
)

// padComplexLane copies a column-major lane shaped from into a
// zero-initialized lane shaped to, to[i] >= from[i].
func padComplexLane(src []complex128, from, to [3]int) []complex128 {
	out := make([]complex128, to[0]*to[1]*to[2])
	for i2 := 0; i2 < from[2]; i2++ {
		for i1 := 0; i1 < from[1]; i1++ {
			srcBase := (i2*from[1] + i1) * from[0]
			dstBase := (i2*to[1] + i1) * to[0]
			copy(out[dstBase:dstBase+from[0]], src[srcBase:srcBase+from[0]])
		}
	}
	return out
}

// forwardLane transforms one padded lane, returning its spectrum.
func forwardLane(data []complex128, fa [3]int, rank int) ([]complex128, error) {
	buf, err := core.FromComplex128(data, core.NewShape(fa[0], fa[1], fa[2]))
	if err != nil {
		return nil, err
	}
	var spec *core.Buffer
	switch rank {
	case 1:
		spec, err = fft.FFT(buf)
	case 2:
		spec, err = fft.FFT2(buf)
	default:
		spec, err = fft.FFT3(buf)
	}
	if err != nil {
		return nil, err
	}
	return spec.Complex128s(), nil
}

// inverseLane inverts one spectrum lane. The inverse transform's default
// 1/n scaling is exactly the normalization circular convolution needs.
func inverseLane(data []complex128, fa [3]int, rank int) ([]complex128, error) {
	buf, err := core.FromComplex128(data, core.NewShape(fa[0], fa[1], fa[2]))
	if err != nil {
		return nil, err
	}
	var out *core.Buffer
	switch rank {
	case 1:
		out, err = fft.IFFT(buf)
	case 2:
		out, err = fft.IFFT2(buf)
	default:
		out, err = fft.IFFT3(buf)
	}
	if err != nil {
		return nil, err
	}
	return out.Complex128s(), nil
}
