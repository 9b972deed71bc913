package rouse

import (
	"errors"
	"testing"
)

func TestSetupFlow(t *testing.T) {
	m, err := NewWithOptions(5, 1, 1, Options{DeferDynamics: true})
	if err != nil {
		t.Fatal(err)
	}
	if err := m.SetForce(4, []float64{1, 0, 0}); err != nil {
		t.Fatal(err)
	}
	if err := m.UpdateDynamics(); err != nil {
		t.Fatal(err)
	}
	if err := m.AddTether(0, 1, nil); err != nil {
		t.Fatal(err)
	}
	if err := m.UpdateDynamics(); err != nil {
		t.Fatal(err)
	}
}

func TestForceOnlyBlockedByStructuralChange(t *testing.T) {
	m, err := New(5, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.AddTether(0, 1, nil); err != nil {
		t.Fatal(err)
	}

	// A force-only refresh must not paper over a pending structural change.
	if err := m.UpdateForceOnly(false); !errors.Is(err, ErrStaleDynamics) {
		t.Errorf("expected ErrStaleDynamics, got %v", err)
	}
	if err := m.CheckDynamics(false); !errors.Is(err, ErrStaleDynamics) {
		t.Errorf("expected ErrStaleDynamics from check, got %v", err)
	}

	if err := m.UpdateForceOnly(true); err != nil {
		t.Fatalf("overridden force-only update failed: %v", err)
	}
	if err := m.CheckDynamics(false); err != nil {
		t.Errorf("check should pass after overridden update, got %v", err)
	}
}

func TestCheckDynamics(t *testing.T) {
	m, err := New(5, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.CheckStep(1, false); err != nil {
		t.Errorf("fresh model with valid step should pass, got %v", err)
	}

	deferred, err := NewWithOptions(5, 1, 1, Options{DeferDynamics: true})
	if err != nil {
		t.Fatal(err)
	}
	if err := deferred.CheckDynamics(false); !errors.Is(err, ErrStaleDynamics) {
		t.Errorf("deferred model should be stale, got %v", err)
	}
	if err := deferred.CheckStep(1, true); err != nil {
		t.Fatalf("run-if-necessary should self-heal, got %v", err)
	}

	if err := deferred.SetSpring(2); err != nil {
		t.Fatal(err)
	}
	if err := deferred.CheckStep(1, false); !errors.Is(err, ErrStaleDynamics) {
		t.Errorf("spring change should invalidate dynamics, got %v", err)
	}
}

func TestForceChangeTakesCheapPath(t *testing.T) {
	m, err := New(5, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	basis := m.dyn.basis

	if err := m.SetForce(2, []float64{0, 0, 1}); err != nil {
		t.Fatal(err)
	}
	if m.cache != dynForceStale {
		t.Fatalf("force change should mark force-stale, got state %d", m.cache)
	}
	if err := m.CheckDynamics(true); err != nil {
		t.Fatal(err)
	}
	if m.dyn.basis != basis {
		t.Error("force-only refresh must keep the eigendecomposition")
	}
}

func TestSnapshotMirrorsLiveParameters(t *testing.T) {
	m, err := New(5, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	if m.dyn.diff != 2 || m.dyn.spring != 3 {
		t.Errorf("snapshot (D=%g, k=%g) does not mirror live (2, 3)", m.dyn.diff, m.dyn.spring)
	}

	if err := m.SetDiffusion(0); err != nil {
		t.Fatal(err)
	}
	if err := m.CheckDynamics(true); err != nil {
		t.Fatal(err)
	}
	if m.dyn.diff != 0 {
		t.Errorf("snapshot D=%g after refresh, want 0", m.dyn.diff)
	}
}

func TestBadStepSizes(t *testing.T) {
	m, err := New(3, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	for _, dt := range []float64{-1, nan(), inf()} {
		if err := m.CheckStep(dt, true); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("dt=%v: expected ErrInvalidParameter, got %v", dt, err)
		}
	}
}
