package rouse

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Propagate advances a Gaussian state (mean N x d, per-axis covariance
// N x N) by the time step dt. The mean follows exp(-k*A*dt) toward its
// force-balance shape, with free modes drifting ballistically under any net
// force; the covariance interpolates toward the steady-state covariance at
// the rate set by the same operator. The step operator for dt stays cached
// for PropagateMean and PropagateCov.
func (m *Model) Propagate(mean *mat.Dense, cov *mat.SymDense, dt float64) (*mat.Dense, *mat.SymDense, error) {
	if err := m.CheckStep(dt, true); err != nil {
		return nil, nil, err
	}
	pm, err := m.dyn.propagateMean(mean, m.dyn.step)
	if err != nil {
		return nil, nil, err
	}
	pc, err := m.dyn.propagateCov(cov, m.dyn.step)
	if err != nil {
		return nil, nil, err
	}
	return pm, pc, nil
}

// PropagateMean applies the most recently cached step operator to a mean.
func (m *Model) PropagateMean(mean *mat.Dense) (*mat.Dense, error) {
	if err := m.CheckDynamics(true); err != nil {
		return nil, err
	}
	if m.dyn.step == nil {
		return nil, fmt.Errorf("%w: call Propagate or CheckStep first", ErrNoStepOperator)
	}
	return m.dyn.propagateMean(mean, m.dyn.step)
}

// PropagateCov applies the most recently cached step operator to a
// per-axis covariance.
func (m *Model) PropagateCov(cov *mat.SymDense) (*mat.SymDense, error) {
	if err := m.CheckDynamics(true); err != nil {
		return nil, err
	}
	if m.dyn.step == nil {
		return nil, fmt.Errorf("%w: call Propagate or CheckStep first", ErrNoStepOperator)
	}
	return m.dyn.propagateCov(cov, m.dyn.step)
}

// Evolve draws one stochastic realization of the chain a time dt after the
// exact configuration conf (N x d), sampling each axis independently from
// the propagated Gaussian. The random source is explicit so evolution is
// reproducible under a fixed seed.
func (m *Model) Evolve(conf *mat.Dense, dt float64, rng *rand.Rand) (*mat.Dense, error) {
	if err := m.CheckStep(dt, true); err != nil {
		return nil, err
	}
	d := m.dyn
	op := d.step
	n, dim := d.dims()
	if r, c := conf.Dims(); r != n || c != dim {
		return nil, fmt.Errorf("%w: configuration is %dx%d, want %dx%d", ErrDimensionMismatch, r, c, n, dim)
	}

	var y mat.Dense
	y.Mul(d.basis.T(), conf)
	for i := 0; i < n; i++ {
		sd := math.Sqrt(op.noise[i])
		for ax := 0; ax < dim; ax++ {
			y.Set(i, ax, d.stepMean(y.At(i, ax), i, ax, op)+sd*rng.NormFloat64())
		}
	}
	var out mat.Dense
	out.Mul(d.basis, &y)
	return &out, nil
}

// ConfSS draws a single configuration from the steady-state distribution,
// with the free modes pinned at the origin. Fails when a net force leaves
// the chain without a stationary mean.
func (m *Model) ConfSS(rng *rand.Rand) (*mat.Dense, error) {
	if err := m.CheckDynamics(true); err != nil {
		return nil, err
	}
	d := m.dyn
	if err := d.requireBoundedMean(); err != nil {
		return nil, err
	}
	n, dim := d.dims()

	y := mat.NewDense(n, dim, nil)
	for i := 0; i < n; i++ {
		if d.zero[i] {
			continue
		}
		rate := d.spring * d.vals[i]
		sd := math.Sqrt(d.diff / rate)
		for ax := 0; ax < dim; ax++ {
			y.Set(i, ax, d.forceModes.At(i, ax)/rate+sd*rng.NormFloat64())
		}
	}
	var out mat.Dense
	out.Mul(d.basis, y)
	return &out, nil
}

// stepMean advances a single mode coordinate by one step: exponential
// relaxation toward force balance, or free drift on a null mode.
func (d *dynamics) stepMean(y float64, mode, ax int, op *stepOperator) float64 {
	g := d.forceModes.At(mode, ax)
	if d.zero[mode] {
		return y + g*op.dt
	}
	rate := d.spring * d.vals[mode]
	return op.decay[mode]*y + -math.Expm1(-rate*op.dt)*g/rate
}

func (d *dynamics) propagateMean(mean *mat.Dense, op *stepOperator) (*mat.Dense, error) {
	n, dim := d.dims()
	if r, c := mean.Dims(); r != n || c != dim {
		return nil, fmt.Errorf("%w: mean is %dx%d, want %dx%d", ErrDimensionMismatch, r, c, n, dim)
	}
	var y mat.Dense
	y.Mul(d.basis.T(), mean)
	for i := 0; i < n; i++ {
		for ax := 0; ax < dim; ax++ {
			y.Set(i, ax, d.stepMean(y.At(i, ax), i, ax, op))
		}
	}
	var out mat.Dense
	out.Mul(d.basis, &y)
	return &out, nil
}

func (d *dynamics) propagateCov(cov *mat.SymDense, op *stepOperator) (*mat.SymDense, error) {
	n, _ := d.dims()
	if cov.SymmetricDim() != n {
		return nil, fmt.Errorf("%w: covariance is %dx%d, want %dx%d", ErrDimensionMismatch, cov.SymmetricDim(), cov.SymmetricDim(), n, n)
	}
	// Work in the eigenbasis: the decay is diagonal and the one-step noise
	// is diagonal because the rotated white noise stays white.
	var t, hat mat.Dense
	t.Mul(d.basis.T(), cov)
	hat.Mul(&t, d.basis)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := op.decay[i] * op.decay[j] * hat.At(i, j)
			if i == j {
				v += op.noise[i]
			}
			hat.Set(i, j, v)
		}
	}
	var u, out mat.Dense
	u.Mul(d.basis, &hat)
	out.Mul(&u, d.basis.T())
	return denseToSym(&out), nil
}
