package conv

import "github.com/cwbudde/algo-signal/internal/vecmath"

// simdThreshold is the minimum axis-0 kernel length before the scaled
// block accumulation path is used.
const simdThreshold = 4

// spatialFullReal accumulates the full linear convolution of one real
// signal lane with one kernel lane into dst. All three arrays are
// column-major over the convolved axes: the signal shaped sa, the
// kernel ka, the destination fa with fa[i] = sa[i]+ka[i]-1.
func spatialFullReal(dst, a []float64, sa [3]int, b []float64, ka, fa [3]int) {
	var temp []float64
	if ka[0] >= simdThreshold {
		temp = make([]float64, ka[0])
	}
	for j2 := 0; j2 < ka[2]; j2++ {
		for j1 := 0; j1 < ka[1]; j1++ {
			brow := b[(j2*ka[1]+j1)*ka[0] : (j2*ka[1]+j1+1)*ka[0]]
			for i2 := 0; i2 < sa[2]; i2++ {
				for i1 := 0; i1 < sa[1]; i1++ {
					arow := a[(i2*sa[1]+i1)*sa[0] : (i2*sa[1]+i1+1)*sa[0]]
					drow := dst[((i2+j2)*fa[1]+(i1+j1))*fa[0]:]
					if temp != nil {
						for i0, v := range arow {
							vecmath.ScaleBlock(temp, brow, v)
							vecmath.AddBlockInPlace(drow[i0:i0+ka[0]], temp)
						}
					} else {
						for i0, v := range arow {
							for j0, w := range brow {
								drow[i0+j0] += v * w
							}
						}
					}
				}
			}
		}
	}
}

// spatialFullComplex is the complex counterpart of spatialFullReal.
func spatialFullComplex(dst, a []complex128, sa [3]int, b []complex128, ka, fa [3]int) {
	for j2 := 0; j2 < ka[2]; j2++ {
		for j1 := 0; j1 < ka[1]; j1++ {
			brow := b[(j2*ka[1]+j1)*ka[0] : (j2*ka[1]+j1+1)*ka[0]]
			for i2 := 0; i2 < sa[2]; i2++ {
				for i1 := 0; i1 < sa[1]; i1++ {
					arow := a[(i2*sa[1]+i1)*sa[0] : (i2*sa[1]+i1+1)*sa[0]]
					drow := dst[((i2+j2)*fa[1]+(i1+j1))*fa[0]:]
					for i0, v := range arow {
						for j0, w := range brow {
							drow[i0+j0] += v * w
						}
					}
				}
			}
		}
	}
}

// trimReal copies the mode window of a full lane into a packed output
// lane. off is the per-axis start inside the full extents.
func trimReal(dst, full []float64, fa, oa, off [3]int) {
	for i2 := 0; i2 < oa[2]; i2++ {
		for i1 := 0; i1 < oa[1]; i1++ {
			srcBase := ((i2+off[2])*fa[1]+(i1+off[1]))*fa[0] + off[0]
			dstBase := (i2*oa[1] + i1) * oa[0]
			copy(dst[dstBase:dstBase+oa[0]], full[srcBase:srcBase+oa[0]])
		}
	}
}

// trimComplex is the complex counterpart of trimReal.
func trimComplex(dst, full []complex128, fa, oa, off [3]int) {
	for i2 := 0; i2 < oa[2]; i2++ {
		for i1 := 0; i1 < oa[1]; i1++ {
			srcBase := ((i2+off[2])*fa[1]+(i1+off[1]))*fa[0] + off[0]
			dstBase := (i2*oa[1] + i1) * oa[0]
			copy(dst[dstBase:dstBase+oa[0]], full[srcBase:srcBase+oa[0]])
		}
	}
}
