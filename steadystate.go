package rouse

import (
	"gonum.org/v1/gonum/mat"
)

// SteadyState returns the stationary mean (N x d) and per-axis covariance
// (N x N) of the bead positions. The covariance solves the continuous
// Lyapunov equation k*A*C + C*k*A = 2*D*I, which in the eigenbasis of A is
// an entrywise division over the non-zero eigenvalues.
//
// Free modes carry no stationary covariance; the returned matrices describe
// the chain's shape, with the free modes pinned at the origin. A force
// component along a free mode makes even the mean unbounded and fails with
// ErrNoSteadyState.
func (m *Model) SteadyState() (*mat.Dense, *mat.SymDense, error) {
	if err := m.CheckDynamics(true); err != nil {
		return nil, nil, err
	}
	d := m.dyn
	if err := d.requireBoundedMean(); err != nil {
		return nil, nil, err
	}
	n, dim := d.dims()

	// Mean: each non-null mode sits at its force-balance point g/(k*lambda).
	modes := mat.NewDense(n, dim, nil)
	for i := 0; i < n; i++ {
		if d.zero[i] {
			continue
		}
		for ax := 0; ax < dim; ax++ {
			modes.Set(i, ax, d.forceModes.At(i, ax)/(d.spring*d.vals[i]))
		}
	}
	var mean mat.Dense
	mean.Mul(d.basis, modes)

	// No noise, no fluctuation: short-circuit before any spectral division.
	if d.diff == 0 {
		return &mean, mat.NewSymDense(n, nil), nil
	}

	sigma := make([]float64, n)
	for i, lam := range d.vals {
		if !d.zero[i] {
			sigma[i] = d.diff / (d.spring * lam)
		}
	}
	var t, cov mat.Dense
	t.Mul(d.basis, mat.NewDiagDense(n, sigma))
	cov.Mul(&t, d.basis.T())
	return &mean, denseToSym(&cov), nil
}

// denseToSym copies a numerically symmetric product into a SymDense,
// averaging away roundoff asymmetry.
func denseToSym(a *mat.Dense) *mat.SymDense {
	n, _ := a.Dims()
	s := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s.SetSym(i, j, 0.5*(a.At(i, j)+a.At(j, i)))
		}
	}
	return s
}
