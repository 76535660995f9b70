package interp

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-signal/internal/testutil"
	"github.com/cwbudde/algo-signal/signal/core"
)

func realBuf(t *testing.T, data []float64, dims ...int) *core.Buffer {
	t.Helper()
	b, err := core.FromFloat64(data, core.NewShape(dims...))
	if err != nil {
		t.Fatalf("buffer: %v", err)
	}
	return b
}

func floats(t *testing.T, b *core.Buffer) []float64 {
	t.Helper()
	out, err := b.Float64s()
	if err != nil {
		t.Fatalf("float access: %v", err)
	}
	return out
}

func TestApprox1Nearest(t *testing.T) {
	sig := realBuf(t, []float64{10, 20, 30}, 3)
	pos := realBuf(t, []float64{0, 0.4, 0.6, 2}, 4)

	out, err := Approx1(sig, pos, Nearest, -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, floats(t, out), []float64{10, 10, 20, 30}, 0)
}

func TestApprox1LinearOnRamp(t *testing.T) {
	sig := realBuf(t, testutil.Ramp(8), 8)
	pos := realBuf(t, []float64{0, 0.5, 1.25, 6.75, 7}, 5)

	out, err := Approx1(sig, pos, Linear, -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// On the ramp 1..n, position p interpolates to p+1.
	testutil.RequireSliceNearlyEqual(t, floats(t, out), []float64{1, 1.5, 2.25, 7.75, 8}, 1e-12)
}

func TestApprox1CubicExactOnLinearData(t *testing.T) {
	sig := realBuf(t, testutil.Ramp(8), 8)
	pos := realBuf(t, []float64{1.5, 2.25, 5.75}, 3)

	out, err := Approx1(sig, pos, Cubic, -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, floats(t, out), []float64{2.5, 3.25, 6.75}, 1e-12)
}

func TestApprox1OffGrid(t *testing.T) {
	sig := realBuf(t, testutil.Ramp(4), 4)
	pos := realBuf(t, []float64{-0.5, 1, 3.5}, 3)

	out, err := Approx1(sig, pos, Linear, 99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, floats(t, out), []float64{99, 2, 99}, 0)
}

func TestApprox1BatchLanes(t *testing.T) {
	n, batch := 6, 3
	data := testutil.DeterministicNoise(1, 1, n*batch)
	pos := realBuf(t, []float64{0.5, 2.5, 4.5}, 3)

	out, err := Approx1(realBuf(t, data, n, batch), pos, Linear, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Shape()[0] != 3 || out.Shape()[1] != batch {
		t.Fatalf("output shape %v", out.Shape())
	}
	got := floats(t, out)
	for lane := 0; lane < batch; lane++ {
		single, err := Approx1(realBuf(t, data[lane*n:(lane+1)*n], n), pos, Linear, 0)
		if err != nil {
			t.Fatalf("lane %d: %v", lane, err)
		}
		testutil.RequireSliceNearlyEqual(t, got[lane*3:(lane+1)*3], floats(t, single), 0)
	}
}

// planeBuf builds the column-major grid f(i,j) = 2i + 3j.
func planeBuf(t *testing.T, n0, n1 int) *core.Buffer {
	t.Helper()
	data := make([]float64, n0*n1)
	for j := 0; j < n1; j++ {
		for i := 0; i < n0; i++ {
			data[j*n0+i] = 2*float64(i) + 3*float64(j)
		}
	}
	return realBuf(t, data, n0, n1)
}

func TestApprox2ExactOnPlane(t *testing.T) {
	// Interior positions keep every cubic tap on the grid, where both
	// kernels reproduce the plane exactly.
	sig := planeBuf(t, 6, 5)
	pos0 := realBuf(t, []float64{1.5, 2.25, 3}, 3)
	pos1 := realBuf(t, []float64{1.5, 1.75, 2}, 3)

	want := []float64{2*1.5 + 3*1.5, 2*2.25 + 3*1.75, 2*3 + 3*2}
	for _, m := range []Method{Linear, Cubic} {
		out, err := Approx2(sig, pos0, pos1, m, -1)
		if err != nil {
			t.Fatalf("method %d: %v", m, err)
		}
		testutil.RequireSliceNearlyEqual(t, floats(t, out), want, 1e-12)
	}
}

func TestApprox2Nearest(t *testing.T) {
	sig := planeBuf(t, 4, 4)
	pos0 := realBuf(t, []float64{0.4, 2.6}, 2)
	pos1 := realBuf(t, []float64{0.4, 2.6}, 2)

	out, err := Approx2(sig, pos0, pos1, Nearest, -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, floats(t, out), []float64{0, 2*3 + 3*3}, 0)
}

func TestApprox2OffGrid(t *testing.T) {
	sig := planeBuf(t, 4, 4)
	pos0 := realBuf(t, []float64{1, -1, 1}, 3)
	pos1 := realBuf(t, []float64{1, 1, 3.5}, 3)

	out, err := Approx2(sig, pos0, pos1, Linear, -7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, floats(t, out), []float64{5, -7, -7}, 0)
}

func TestApprox2GridPositions(t *testing.T) {
	sig := planeBuf(t, 6, 6)
	pos0 := realBuf(t, []float64{0.5, 1.5, 2.5, 3.5}, 2, 2)
	pos1 := realBuf(t, []float64{0.25, 1.25, 2.25, 3.25}, 2, 2)

	out, err := Approx2(sig, pos0, pos1, Linear, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Shape()[0] != 2 || out.Shape()[1] != 2 {
		t.Fatalf("output shape %v", out.Shape())
	}
	p0 := []float64{0.5, 1.5, 2.5, 3.5}
	p1 := []float64{0.25, 1.25, 2.25, 3.25}
	want := make([]float64, 4)
	for i := range want {
		want[i] = 2*p0[i] + 3*p1[i]
	}
	testutil.RequireSliceNearlyEqual(t, floats(t, out), want, 1e-12)
}

func TestInterpErrors(t *testing.T) {
	sig := realBuf(t, testutil.Ramp(4), 4)
	pos := realBuf(t, []float64{1}, 1)

	if _, err := Approx1(sig, pos, Method(9), 0); !errors.Is(err, core.ErrInvalidArgument) {
		t.Fatalf("method: got %v, want ErrInvalidArgument", err)
	}

	matrixPos := realBuf(t, make([]float64, 4), 2, 2)
	if _, err := Approx1(sig, matrixPos, Linear, 0); !errors.Is(err, core.ErrInvalidArgument) {
		t.Fatalf("matrix positions: got %v, want ErrInvalidArgument", err)
	}

	c, err := core.FromComplex128(make([]complex128, 4), core.NewShape(4))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Approx1(c, pos, Linear, 0); !errors.Is(err, core.ErrUnsupportedType) {
		t.Fatalf("complex signal: got %v, want ErrUnsupportedType", err)
	}

	grid := planeBuf(t, 4, 4)
	other := realBuf(t, []float64{1, 2}, 2)
	if _, err := Approx2(grid, pos, other, Linear, 0); !errors.Is(err, core.ErrDimension) {
		t.Fatalf("position shapes: got %v, want ErrDimension", err)
	}
}
