package rouse

import (
	"errors"
	"math"
	"testing"
)

func TestMSDBoundaryValues(t *testing.T) {
	m, err := New(5, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	// Relative coordinate of beads 1 and 3: two bonds apart, so the one-axis
	// steady-state squared distance is 2*D/k and MSD(inf) = 2*d*2.
	w := []float64{0, 1, 0, -1, 0}
	dts := []float64{0, 1, 10, 100, inf()}

	msd, err := m.MSD(dts, w)
	if err != nil {
		t.Fatal(err)
	}
	if msd[0] != 0 {
		t.Errorf("MSD(0) = %g, want exactly 0", msd[0])
	}
	if !approx(msd[len(msd)-1], 12, 1e-10) {
		t.Errorf("MSD(inf) = %g, want 12", msd[len(msd)-1])
	}

	single, err := m.MSDAt(inf(), w)
	if err != nil {
		t.Fatal(err)
	}
	if !approx(single, msd[len(msd)-1], 1e-12) {
		t.Errorf("scalar and sequence MSD disagree: %g vs %g", single, msd[len(msd)-1])
	}
}

func TestMSDMatchesACF(t *testing.T) {
	m, err := New(5, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	w := []float64{0, 1, 0, -1, 0}
	dts := []float64{0, 0.01, 1, 10, 100, inf()}

	msd, err := m.MSD(dts, w)
	if err != nil {
		t.Fatal(err)
	}
	acf, err := m.ACF(dts, w)
	if err != nil {
		t.Fatal(err)
	}

	// MSD and ACF travel separate code paths; their identity is the solver
	// cross-check.
	for i := range dts {
		if want := 2 * (acf[0] - acf[i]); !approx(msd[i], want, 1e-10) {
			t.Errorf("dt=%v: MSD=%g but 2*(ACF(0)-ACF)=%g", dts[i], msd[i], want)
		}
	}

	last, err := m.ACFAt(inf(), w)
	if err != nil {
		t.Fatal(err)
	}
	if !approx(last, acf[len(acf)-1], 1e-12) {
		t.Errorf("scalar and sequence ACF disagree: %g vs %g", last, acf[len(acf)-1])
	}
}

func TestMSDInvalidLags(t *testing.T) {
	m, err := New(5, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.MSD([]float64{-1}, nil); !errors.Is(err, ErrInvalidLag) {
		t.Errorf("negative lag: expected ErrInvalidLag, got %v", err)
	}
	if _, err := m.MSD([]float64{nan()}, nil); !errors.Is(err, ErrInvalidLag) {
		t.Errorf("NaN lag: expected ErrInvalidLag, got %v", err)
	}
	if _, err := m.ACF([]float64{-1}, nil); !errors.Is(err, ErrInvalidLag) {
		t.Errorf("ACF negative lag: expected ErrInvalidLag, got %v", err)
	}
	if _, err := m.ACF([]float64{nan()}, nil); !errors.Is(err, ErrInvalidLag) {
		t.Errorf("ACF NaN lag: expected ErrInvalidLag, got %v", err)
	}
}

func TestMSDInfiniteLagNeedsSteadyState(t *testing.T) {
	m, err := New(5, 1, 1)
	if err != nil {
		t.Fatal(err)
	}

	// The default weight probes absolute position; an unanchored chain
	// diffuses without bound.
	if _, err := m.MSD([]float64{inf()}, nil); !errors.Is(err, ErrNoSteadyState) {
		t.Errorf("expected ErrNoSteadyState, got %v", err)
	}
	if _, err := m.MSD([]float64{inf()}, []float64{0, 1, 0, 0, 0}); !errors.Is(err, ErrNoSteadyState) {
		t.Errorf("single-bead weight: expected ErrNoSteadyState, got %v", err)
	}

	// A weight summing to zero probes pure shape and saturates fine.
	v, err := m.MSDAt(inf(), []float64{0, 1, 0, -1, 0})
	if err != nil {
		t.Fatal(err)
	}
	if math.IsInf(v, 0) || v <= 0 {
		t.Errorf("relative-coordinate MSD(inf) should be finite and positive, got %g", v)
	}

	// Finite lags stay valid for any weight.
	msd, err := m.MSD([]float64{0, 1, 10, 100}, []float64{0, 0, 1, 0, 0})
	if err != nil {
		t.Fatal(err)
	}
	if msd[0] != 0 {
		t.Errorf("MSD(0) = %g, want 0", msd[0])
	}
}

func TestMSDBallisticDrift(t *testing.T) {
	m, err := New(5, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.SetForce(3, []float64{0, 1, 0}); err != nil {
		t.Fatal(err)
	}
	if err := m.UpdateForceOnly(false); err != nil {
		t.Fatal(err)
	}

	dts := []float64{0, 1, 10, 100}
	driven, err := m.MSD(dts, nil)
	if err != nil {
		t.Fatal(err)
	}

	free, err := New(5, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	base, err := free.MSD(dts, nil)
	if err != nil {
		t.Fatal(err)
	}

	// The net force adds (v*dt)^2 on top of the diffusive MSD; at dt=100 the
	// quadratic term dominates.
	for i := range dts {
		if driven[i] < base[i] {
			t.Errorf("dt=%v: drift should only add displacement (%g < %g)", dts[i], driven[i], base[i])
		}
	}
	v := 1.0 / 5 // net force per bead, projected back onto each bead
	wantExtra := v * 100 * v * 100
	if got := driven[3] - base[3]; !approx(got, wantExtra, 1e-6*wantExtra) {
		t.Errorf("ballistic excess at dt=100: got %g, want %g", got, wantExtra)
	}
}

func TestContactFrequency(t *testing.T) {
	m, err := New(5, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	hic, err := m.ContactFrequency()
	if err != nil {
		t.Fatal(err)
	}

	infs := 0
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			if math.IsInf(hic.At(i, j), 1) {
				infs++
			}
		}
	}
	if infs != 5 {
		t.Errorf("expected exactly 5 infinite entries (the diagonal), got %d", infs)
	}

	// Homogeneous chain: adjacent beads all sit at unit bond variance, so the
	// first off-diagonal is constant 1.
	for i := 0; i < 4; i++ {
		if !approx(hic.At(i, i+1), 1, 1e-10) {
			t.Errorf("adjacent contact (%d,%d) = %g, want 1", i, i+1, hic.At(i, i+1))
		}
		if hic.At(i, i+1) != hic.At(i+1, i) {
			t.Errorf("contact map must be symmetric at (%d,%d)", i, i+1)
		}
	}

	// Contact decays with contour distance.
	if hic.At(0, 4) >= hic.At(0, 1) {
		t.Errorf("distant contact %g should be rarer than adjacent %g", hic.At(0, 4), hic.At(0, 1))
	}
}

func TestTimescales(t *testing.T) {
	m, err := New(5, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	ts, err := m.Timescales()
	if err != nil {
		t.Fatal(err)
	}
	if ts[TimescaleMicroscopic] != 1 {
		t.Errorf("t_microscopic = %g, want 1", ts[TimescaleMicroscopic])
	}
	ratio := ts[TimescaleEquilibration] / ts[TimescaleRouse]
	if !approx(ratio, math.Pi*math.Pi*math.Pi/4, 1e-10) {
		t.Errorf("t_equilibration/t_Rouse = %g, want pi^3/4", ratio)
	}

	// The slowest internal mode slows quadratically with chain length.
	big, err := New(50, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	tsBig, err := big.Timescales()
	if err != nil {
		t.Fatal(err)
	}
	scale := tsBig[TimescaleRouse] / ts[TimescaleRouse]
	if !approx(scale, 100, 10) {
		t.Errorf("t_Rouse(N=50)/t_Rouse(N=5) = %g, want about (50/5)^2", scale)
	}
}

func TestGammaAndRee(t *testing.T) {
	m, err := New(5, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got := m.Gamma(); !approx(got, 6/math.Sqrt(math.Pi), 1e-12) {
		t.Errorf("Gamma = %g, want 6/sqrt(pi)", got)
	}
	if got := m.RMSRee(0); !approx(got*got, 12, 1e-10) {
		t.Errorf("RMSRee()^2 = %g, want 12", got*got)
	}
	if got := m.RMSRee(3); !approx(got*got, 9, 1e-10) {
		t.Errorf("RMSRee(3)^2 = %g, want 9", got*got)
	}
}

func TestWeightLengthMismatch(t *testing.T) {
	m, err := New(5, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.MSD([]float64{1}, []float64{1, 2}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}
