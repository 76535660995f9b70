package fft

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-signal/internal/testutil"
	"github.com/cwbudde/algo-signal/signal/core"
)

func TestR2CHalfSpectrumMatchesFullTransform(t *testing.T) {
	for _, n := range []int{8, 9, 15, 32} {
		src := testutil.DeterministicNoise(int64(n), 1, n)
		sig := realBuffer(t, src, core.NewShape(n))

		half, err := FFTR2C(sig)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		wantLen := n/2 + 1
		if half.Shape()[0] != wantLen {
			t.Fatalf("n=%d: half length %d, want %d", n, half.Shape()[0], wantLen)
		}

		full, err := FFT(sig)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		testutil.RequireComplexSliceNearlyEqual(t, half.Complex128s(), full.Complex128s()[:wantLen], 1e-11)
	}
}

// Inverting a half spectrum with the matching parity flag reproduces the
// original real signal.
func TestC2RInvertsR2C(t *testing.T) {
	for _, n := range []int{7, 8, 15, 16, 31} {
		src := testutil.DeterministicNoise(int64(100+n), 1, n)
		sig := realBuffer(t, src, core.NewShape(n))

		half, err := FFTR2C(sig)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		back, err := FFTC2R(half, n%2 == 1)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if back.DType() != core.F64 {
			t.Fatalf("n=%d: dtype %v, want f64", n, back.DType())
		}
		if back.Shape()[0] != n {
			t.Fatalf("n=%d: output length %d", n, back.Shape()[0])
		}
		got, err := back.Float64s()
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		testutil.RequireSliceNearlyEqual(t, got, src, 1e-10)
	}
}

func TestC2RInvertsR2C2D(t *testing.T) {
	for _, n0 := range []int{6, 9} {
		shape := core.NewShape(n0, 5)
		src := testutil.DeterministicNoise(int64(n0), 1, shape.Elements())
		sig := realBuffer(t, src, shape)

		half, err := FFT2R2C(sig)
		if err != nil {
			t.Fatalf("n0=%d: %v", n0, err)
		}
		if half.Shape()[0] != n0/2+1 || half.Shape()[1] != 5 {
			t.Fatalf("n0=%d: half shape %v", n0, half.Shape())
		}

		back, err := FFT2C2R(half, n0%2 == 1)
		if err != nil {
			t.Fatalf("n0=%d: %v", n0, err)
		}
		got, err := back.Float64s()
		if err != nil {
			t.Fatalf("n0=%d: %v", n0, err)
		}
		testutil.RequireSliceNearlyEqual(t, got, src, 1e-10)
	}
}

func TestC2RInvertsR2C3D(t *testing.T) {
	shape := core.NewShape(8, 4, 3)
	src := testutil.DeterministicNoise(7, 1, shape.Elements())
	sig := realBuffer(t, src, shape)

	half, err := FFT3R2C(sig)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	back, err := FFT3C2R(half, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := back.Float64s()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, got, src, 1e-10)
}

// Batched r2c: lanes along the second dimension transform independently.
func TestR2CBatch(t *testing.T) {
	n, batch := 12, 3
	shape := core.NewShape(n, batch)
	src := testutil.DeterministicNoise(41, 1, shape.Elements())

	half, err := FFTR2C(realBuffer(t, src, shape))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h := n/2 + 1
	if half.Shape()[0] != h || half.Shape()[1] != batch {
		t.Fatalf("half shape %v", half.Shape())
	}
	got := half.Complex128s()

	for lane := 0; lane < batch; lane++ {
		single, err := FFTR2C(realBuffer(t, src[lane*n:(lane+1)*n], core.NewShape(n)))
		if err != nil {
			t.Fatalf("lane %d: %v", lane, err)
		}
		testutil.RequireComplexSliceNearlyEqual(t, got[lane*h:(lane+1)*h], single.Complex128s(), 1e-11)
	}
}

func TestR2CPadOverride(t *testing.T) {
	n, padded := 10, 16
	src := testutil.DeterministicNoise(51, 1, n)

	got, err := FFTR2C(realBuffer(t, src, core.NewShape(n)), WithDim0(padded))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Shape()[0] != padded/2+1 {
		t.Fatalf("half length %d, want %d", got.Shape()[0], padded/2+1)
	}

	manual := make([]float64, padded)
	copy(manual, src)
	want, err := FFTR2C(realBuffer(t, manual, core.NewShape(padded)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.RequireComplexSliceNearlyEqual(t, got.Complex128s(), want.Complex128s(), 1e-11)
}

func TestR2CRejectsComplexInput(t *testing.T) {
	sig := complexBuffer(t, make([]complex128, 8), core.NewShape(8))
	if _, err := FFTR2C(sig); !errors.Is(err, core.ErrUnsupportedType) {
		t.Fatalf("got %v, want ErrUnsupportedType", err)
	}
}

func TestC2RRejectsRealInput(t *testing.T) {
	sig := realBuffer(t, make([]float64, 8), core.NewShape(8))
	if _, err := FFTC2R(sig, false); !errors.Is(err, core.ErrUnsupportedType) {
		t.Fatalf("got %v, want ErrUnsupportedType", err)
	}
}

func TestC2RRejectsDimOverride(t *testing.T) {
	sig := complexBuffer(t, make([]complex128, 5), core.NewShape(5))
	if _, err := FFTC2R(sig, false, WithDim0(12)); !errors.Is(err, core.ErrInvalidArgument) {
		t.Fatalf("got %v, want ErrInvalidArgument", err)
	}
}

func TestR2CFloat32Precision(t *testing.T) {
	src := testutil.DeterministicSine(1000, 44100, 1, 24)
	f32 := make([]float32, len(src))
	for i, v := range src {
		f32[i] = float32(v)
	}
	b, err := core.FromFloat32(f32, core.NewShape(24))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	half, err := FFTR2C(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if half.DType() != core.C64 {
		t.Fatalf("dtype %v, want c64", half.DType())
	}

	ref, err := FFTR2C(realBuffer(t, src, core.NewShape(24)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.RequireComplexSliceNearlyEqual(t, half.Complex128s(), ref.Complex128s(), 1e-3)
}
