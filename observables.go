package rouse

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// validateLag rejects negative and NaN time lags. +Inf is a valid lag; its
// admissibility depends on the observable.
func validateLag(dt float64) error {
	if math.IsNaN(dt) || dt < 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidLag, dt)
	}
	return nil
}

// weightModes projects a bead weight vector onto the eigenbasis. A nil
// weight selects the displacement of bead 0.
func (d *dynamics) weightModes(w []float64) ([]float64, error) {
	n, _ := d.dims()
	if w == nil {
		w = make([]float64, n)
		w[0] = 1
	}
	if len(w) != n {
		return nil, fmt.Errorf("%w: weight vector length %d, want %d", ErrDimensionMismatch, len(w), n)
	}
	var cv mat.VecDense
	cv.MulVec(d.basis.T(), mat.NewVecDense(n, w))
	c := make([]float64, n)
	for i := range c {
		c[i] = cv.AtVec(i)
	}
	return c, nil
}

// MSD returns the mean squared displacement of the scalar observable
// x(t) = w . r(t), summed over the d coordinate axes, for each lag in dts.
// A nil w selects bead 0. Lags must be non-negative and not NaN; dt = +Inf
// is admitted only when w avoids the free modes, i.e. when the projection
// the weight probes has a finite steady state. A weight summing to zero
// (pure relative coordinate) therefore saturates even on an unanchored
// chain.
func (m *Model) MSD(dts []float64, w []float64) ([]float64, error) {
	if err := m.CheckDynamics(true); err != nil {
		return nil, err
	}
	c, err := m.dyn.weightModes(w)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(dts))
	for i, dt := range dts {
		v, err := m.dyn.msd(dt, c)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// MSDAt is MSD for a single lag.
func (m *Model) MSDAt(dt float64, w []float64) (float64, error) {
	out, err := m.MSD([]float64{dt}, w)
	if err != nil {
		return 0, err
	}
	return out[0], nil
}

// ACF returns the steady-state autocovariance <x(0)x(dt)> - <x>^2 of the
// same observable, restricted to the non-null modes: the free translation
// carries no stationary correlation and is excluded. Wherever the weight
// kills the free modes, MSD(dt) = 2*(ACF(0) - ACF(dt)) holds exactly; the
// two sides are computed along separate paths, so the identity doubles as a
// solver cross-check.
func (m *Model) ACF(dts []float64, w []float64) ([]float64, error) {
	if err := m.CheckDynamics(true); err != nil {
		return nil, err
	}
	c, err := m.dyn.weightModes(w)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(dts))
	for i, dt := range dts {
		v, err := m.dyn.acf(dt, c)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// ACFAt is ACF for a single lag.
func (m *Model) ACFAt(dt float64, w []float64) (float64, error) {
	out, err := m.ACF([]float64{dt}, w)
	if err != nil {
		return 0, err
	}
	return out[0], nil
}

func (d *dynamics) msd(dt float64, c []float64) (float64, error) {
	if err := validateLag(dt); err != nil {
		return 0, err
	}
	n, dim := d.dims()

	if math.IsInf(dt, 1) {
		for i := 0; i < n; i++ {
			if d.zero[i] && math.Abs(c[i]) > nullOverlapTol {
				return 0, fmt.Errorf("%w: weight overlaps the free translational mode, MSD grows without bound", ErrNoSteadyState)
			}
		}
		var total float64
		for i := 0; i < n; i++ {
			if d.zero[i] {
				continue
			}
			total += c[i] * c[i] * 2 * d.diff / (d.spring * d.vals[i])
		}
		return float64(dim) * total, nil
	}
	if dt == 0 {
		return 0, nil
	}

	// Relaxing modes: fluctuation around the (force-shifted) mean.
	var total float64
	for i := 0; i < n; i++ {
		if d.zero[i] {
			continue
		}
		rate := d.spring * d.vals[i]
		total += c[i] * c[i] * 2 * d.diff / rate * -math.Expm1(-rate*dt)
	}
	// Free modes: centre-of-mass diffusion, plus ballistic drift squared for
	// any net force along them.
	for i := 0; i < n; i++ {
		if d.zero[i] {
			total += c[i] * c[i] * 2 * d.diff * dt
		}
	}
	total *= float64(dim)
	for ax := 0; ax < dim; ax++ {
		var drift float64
		for i := 0; i < n; i++ {
			if d.zero[i] {
				drift += c[i] * d.forceModes.At(i, ax)
			}
		}
		total += drift * dt * drift * dt
	}
	return total, nil
}

func (d *dynamics) acf(dt float64, c []float64) (float64, error) {
	if err := validateLag(dt); err != nil {
		return 0, err
	}
	n, dim := d.dims()
	var total float64
	for i := 0; i < n; i++ {
		if d.zero[i] {
			continue
		}
		rate := d.spring * d.vals[i]
		total += c[i] * c[i] * d.diff / rate * math.Exp(-rate*dt)
	}
	return float64(dim) * total, nil
}

// ContactFrequency returns the N x N steady-state contact map: entry (i,j)
// is J^(-d/2) with J the one-axis mean squared distance between beads i and
// j, the standard Gaussian-chain contact scaling. Diagonal entries are +Inf.
func (m *Model) ContactFrequency() (*mat.SymDense, error) {
	if err := m.CheckDynamics(true); err != nil {
		return nil, err
	}
	d := m.dyn
	n, _ := d.dims()
	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		out.SetSym(i, i, math.Inf(1))
		for j := i + 1; j < n; j++ {
			var msq float64
			for p := 0; p < n; p++ {
				if d.zero[p] {
					continue
				}
				dq := d.basis.At(i, p) - d.basis.At(j, p)
				msq += d.diff / (d.spring * d.vals[p]) * dq * dq
			}
			out.SetSym(i, j, math.Pow(msq, -float64(m.dim)/2))
		}
	}
	return out, nil
}

// Timescale map keys returned by Timescales.
const (
	TimescaleMicroscopic   = "t_microscopic"
	TimescaleRouse         = "t_Rouse"
	TimescaleEquilibration = "t_equilibration"
)

// Timescales returns the characteristic times of the chain:
//
//   - t_microscopic: single-bond relaxation, 1/k, independent of N
//   - t_Rouse: relaxation of the slowest internal mode, 1/(k*lambda_min);
//     grows as N^2 for the plain chain
//   - t_equilibration: full relaxation to steady state, pi^3/4 * t_Rouse
//
// A single bead has no internal modes and reports +Inf for the latter two.
func (m *Model) Timescales() (map[string]float64, error) {
	if err := m.CheckDynamics(true); err != nil {
		return nil, err
	}
	d := m.dyn
	tRouse := math.Inf(1)
	for i, lam := range d.vals {
		if !d.zero[i] {
			// Eigenvalues are ascending; the first non-zero one is the slowest.
			tRouse = 1 / (d.spring * lam)
			break
		}
	}
	return map[string]float64{
		TimescaleMicroscopic:   1 / d.spring,
		TimescaleRouse:         tRouse,
		TimescaleEquilibration: math.Pi * math.Pi * math.Pi / 4 * tRouse,
	}, nil
}

// Gamma returns the prefactor of the subdiffusive regime MSD ~ Gamma*sqrt(t)
// of a single locus, 2*d*D/sqrt(pi*k). For the default chain (D=k=1, d=3)
// this is 6/sqrt(pi).
func (m *Model) Gamma() float64 {
	return 2 * float64(m.dim) * m.diff / math.Sqrt(math.Pi*m.spring)
}

// RMSRee returns the root-mean-square end-to-end distance of a homogeneous
// chain segment of the given contour length, sqrt(d*L*D/k). A non-positive
// contour length selects the whole chain, L = N-1.
func (m *Model) RMSRee(contour float64) float64 {
	if contour <= 0 {
		contour = float64(m.n - 1)
	}
	return math.Sqrt(float64(m.dim) * contour * m.diff / m.spring)
}
