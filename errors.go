package rouse

import "errors"

// Domain errors. All failures returned by the package wrap one of these,
// so callers can discriminate with errors.Is.
var (
	// ErrInvalidParameter indicates a model parameter outside its valid range
	// (N < 1, D < 0, k <= 0, bad bead index, ...).
	ErrInvalidParameter = errors.New("rouse: invalid parameter")

	// ErrInvalidLag indicates a negative or NaN time lag.
	ErrInvalidLag = errors.New("rouse: time lag must be non-negative and not NaN")

	// ErrStaleDynamics indicates the cached dynamics no longer reflect the
	// live model state and a refresh was not permitted.
	ErrStaleDynamics = errors.New("rouse: dynamics out of date with model state")

	// ErrNoSteadyState indicates a query that needs a finite stationary
	// mean or covariance in a direction where none exists.
	ErrNoSteadyState = errors.New("rouse: no finite steady state for requested quantity")

	// ErrNoStepOperator indicates a cached-step operation before any step
	// operator has been computed.
	ErrNoStepOperator = errors.New("rouse: no step operator cached")

	// ErrDimensionMismatch indicates an input whose shape does not match the model.
	ErrDimensionMismatch = errors.New("rouse: dimension mismatch")
)
