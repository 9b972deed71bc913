package rouse

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestTwoLocusMSDBoundaries(t *testing.T) {
	msd, err := TwoLocusMSD([]float64{0, 1, inf()}, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if msd[0] != 0 {
		t.Errorf("MSD(0) = %g, want exactly 0", msd[0])
	}
	if !approx(msd[2], 2, 1e-12) {
		t.Errorf("MSD(inf) = %g, want 2", msd[2])
	}
	if msd[1] <= 0 || msd[1] >= 2 {
		t.Errorf("MSD(1) = %g, want strictly between 0 and the plateau", msd[1])
	}

	single, err := TwoLocusMSDAt(inf(), 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if single != msd[2] {
		t.Errorf("scalar and sequence results disagree: %g vs %g", single, msd[2])
	}
}

func TestTwoLocusMSDInvalidArguments(t *testing.T) {
	if _, err := TwoLocusMSD([]float64{-1}, 1, 1); !errors.Is(err, ErrInvalidLag) {
		t.Errorf("negative lag: expected ErrInvalidLag, got %v", err)
	}
	if _, err := TwoLocusMSD([]float64{nan()}, 1, 1); !errors.Is(err, ErrInvalidLag) {
		t.Errorf("NaN lag: expected ErrInvalidLag, got %v", err)
	}
	if _, err := TwoLocusMSDAt(1, -1, 1); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("negative diffusion: expected ErrInvalidParameter, got %v", err)
	}
	if _, err := TwoLocusMSDAt(1, 1, 0); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("zero spring: expected ErrInvalidParameter, got %v", err)
	}
}

func TestTwoLocusMSDAllTimescales(t *testing.T) {
	// Twenty decades of lag: every value must come out finite and the curve
	// monotonically non-decreasing, approaching the saturation value.
	dts := floats.LogSpan(make([]float64, 41), 1e-10, 1e10)
	msd, err := TwoLocusMSD(dts, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	prev := 0.0
	for i, v := range msd {
		if v < 0 || v > 2+1e-12 {
			t.Fatalf("dt=%g: MSD=%g outside [0, plateau]", dts[i], v)
		}
		if v < prev {
			t.Fatalf("dt=%g: MSD decreased (%g after %g)", dts[i], v, prev)
		}
		prev = v
	}
	if msd[len(msd)-1] < 1.9 {
		t.Errorf("MSD(1e10) = %g, should be close to the plateau 2", msd[len(msd)-1])
	}
}

func TestTwoLocusMSDShortTimeRegime(t *testing.T) {
	// While the loci are uncorrelated the pair MSD is twice the free
	// single-locus MSD, 4*D*sqrt(dt/(pi*k)).
	for _, dt := range []float64{1e-8, 1e-6, 1e-4} {
		got, err := TwoLocusMSDAt(dt, 1, 1)
		if err != nil {
			t.Fatal(err)
		}
		want := 4 * math.Sqrt(dt/math.Pi)
		if !approx(got, want, 1e-6*want) {
			t.Errorf("dt=%g: MSD=%g, want %g", dt, got, want)
		}
	}
}
