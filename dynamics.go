package rouse

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// cacheState tracks how far the cached dynamics lag behind the live model.
// Mutators declare the transition they cause: structural changes (D, k, A)
// invalidate the eigendecomposition, force changes only the projected force.
type cacheState int

const (
	dynStructureStale cacheState = iota
	dynForceStale
	dynFresh
)

// eigTolScale sets the relative cutoff below which an eigenvalue of A is
// treated as an exact zero mode.
const eigTolScale = 1e-12

// dynamics is the frozen snapshot all propagation and observable math runs
// on. It never reads the live model fields, which is what makes the
// staleness contract enforceable.
type dynamics struct {
	diff   float64
	spring float64

	basis *mat.Dense // eigenvectors of A, one per column
	vals  []float64  // eigenvalues, ascending; exact zeros for null modes
	zero  []bool     // marks the null modes

	forceModes *mat.Dense // Q^T F, n x dim

	step *stepOperator // operator for the most recent step size, if any
}

// stepOperator holds the per-mode mean decay and one-step noise variance
// for a fixed step size.
type stepOperator struct {
	dt    float64
	decay []float64
	noise []float64
}

// UpdateDynamics recomputes the full dynamics snapshot from the current
// (D, k, A, F): the expensive path, one eigendecomposition per call.
func (m *Model) UpdateDynamics() error {
	var eig mat.EigenSym
	if ok := eig.Factorize(m.conn, true); !ok {
		return fmt.Errorf("%w: eigendecomposition of connectivity matrix failed", ErrInvalidParameter)
	}
	vals := eig.Values(nil)
	var basis mat.Dense
	eig.VectorsTo(&basis)

	tol := eigTolScale
	if max := vals[len(vals)-1]; max > 1 {
		tol *= max
	}
	zero := make([]bool, len(vals))
	for i, v := range vals {
		if math.Abs(v) <= tol {
			zero[i] = true
			vals[i] = 0
		}
	}

	d := &dynamics{
		diff:   m.diff,
		spring: m.spring,
		basis:  &basis,
		vals:   vals,
		zero:   zero,
	}
	d.projectForce(m.force)
	m.dyn = d
	m.cache = dynFresh
	return nil
}

// UpdateForceOnly refreshes only the force-dependent quantities, keeping the
// eigendecomposition. Blocked while a structural change is pending, since
// the projection would run against a stale basis; override forces it anyway.
func (m *Model) UpdateForceOnly(override bool) error {
	if m.dyn == nil {
		return fmt.Errorf("%w: no dynamics computed yet", ErrStaleDynamics)
	}
	if m.cache == dynStructureStale && !override {
		return fmt.Errorf("%w: structural change pending, full update required", ErrStaleDynamics)
	}
	m.dyn.projectForce(m.force)
	m.cache = dynFresh
	return nil
}

// CheckDynamics is the gate in front of every derived computation. With
// runIfNecessary it transparently refreshes whatever is stale, taking the
// cheap force-only path when the structure is intact; otherwise a stale
// cache is an error.
func (m *Model) CheckDynamics(runIfNecessary bool) error {
	switch m.cache {
	case dynFresh:
		return nil
	case dynForceStale:
		if !runIfNecessary {
			return fmt.Errorf("%w: force changed since last update", ErrStaleDynamics)
		}
		return m.UpdateForceOnly(false)
	default:
		if !runIfNecessary {
			return fmt.Errorf("%w: model changed since last update", ErrStaleDynamics)
		}
		return m.UpdateDynamics()
	}
}

// CheckStep is CheckDynamics plus the guarantee that a step operator for dt
// is cached. Computing a missing operator is not a staleness violation, so
// it happens regardless of runIfNecessary.
func (m *Model) CheckStep(dt float64, runIfNecessary bool) error {
	if err := m.CheckDynamics(runIfNecessary); err != nil {
		return err
	}
	return m.dyn.ensureStep(dt)
}

func (d *dynamics) projectForce(force *mat.Dense) {
	var fm mat.Dense
	fm.Mul(d.basis.T(), force)
	d.forceModes = &fm
}

func (d *dynamics) dims() (n, dim int) {
	return d.forceModes.Dims()
}

func (d *dynamics) ensureStep(dt float64) error {
	if d.step != nil && d.step.dt == dt {
		return nil
	}
	op, err := d.computeStep(dt)
	if err != nil {
		return err
	}
	d.step = op
	return nil
}

func (d *dynamics) computeStep(dt float64) (*stepOperator, error) {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		return nil, fmt.Errorf("%w: step size must be finite and non-negative, got %v", ErrInvalidParameter, dt)
	}
	op := &stepOperator{
		dt:    dt,
		decay: make([]float64, len(d.vals)),
		noise: make([]float64, len(d.vals)),
	}
	for i, lam := range d.vals {
		if d.zero[i] {
			// Free mode: no relaxation, plain diffusion.
			op.decay[i] = 1
			op.noise[i] = 2 * d.diff * dt
			continue
		}
		rate := d.spring * lam
		op.decay[i] = math.Exp(-rate * dt)
		op.noise[i] = d.diff / rate * -math.Expm1(-2*rate*dt)
	}
	return op, nil
}

// requireBoundedMean fails when the force has a component along a free mode:
// the mean then drifts ballistically and has no stationary value.
func (d *dynamics) requireBoundedMean() error {
	n, dim := d.dims()
	for i := 0; i < n; i++ {
		if !d.zero[i] {
			continue
		}
		for ax := 0; ax < dim; ax++ {
			if math.Abs(d.forceModes.At(i, ax)) > nullOverlapTol {
				return fmt.Errorf("%w: net force drives unbounded drift of the unanchored chain", ErrNoSteadyState)
			}
		}
	}
	return nil
}

// nullOverlapTol is the absolute cutoff below which a projection onto the
// null space of A counts as zero.
const nullOverlapTol = 1e-10
