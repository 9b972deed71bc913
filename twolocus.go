package rouse

import (
	"fmt"
	"math"
)

// TwoLocusMSD returns the MSD of the vector between two loci at unit contour
// separation on an infinite Rouse chain, per coordinate axis, for each lag
// in dts. No Model is needed; the chain enters only through the diffusion
// coefficient and spring constant.
//
// The closed form
//
//	MSD(t) = 4*D*sqrt(t/(pi*k)) * (1 - exp(-1/(4*k*t))) + 2*D/k * erfc(1/(2*sqrt(k*t)))
//
// covers all regimes: it vanishes at t=0, grows as twice the free single-locus
// MSD while the loci are still uncorrelated, crosses over on the internal
// stress-propagation scale, and saturates at 2*D/k. The expm1/erfc pairing
// keeps it stable over at least twenty decades of t.
func TwoLocusMSD(dts []float64, diffusion, spring float64) ([]float64, error) {
	out := make([]float64, len(dts))
	for i, dt := range dts {
		v, err := TwoLocusMSDAt(dt, diffusion, spring)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// TwoLocusMSDAt is TwoLocusMSD for a single lag.
func TwoLocusMSDAt(dt, diffusion, spring float64) (float64, error) {
	if diffusion < 0 {
		return 0, fmt.Errorf("%w: diffusion coefficient must be non-negative, got D=%g", ErrInvalidParameter, diffusion)
	}
	if spring <= 0 {
		return 0, fmt.Errorf("%w: spring constant must be positive, got k=%g", ErrInvalidParameter, spring)
	}
	if err := validateLag(dt); err != nil {
		return 0, err
	}
	if dt == 0 {
		return 0, nil
	}
	if math.IsInf(dt, 1) {
		return 2 * diffusion / spring, nil
	}
	x := 1 / (4 * spring * dt)
	free := 4 * diffusion * math.Sqrt(dt/(math.Pi*spring)) * -math.Expm1(-x)
	saturated := 2 * diffusion / spring * math.Erfc(math.Sqrt(x))
	return free + saturated, nil
}
