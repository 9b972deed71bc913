// Package rouse models the statistical dynamics of a linear polymer chain
// under the Rouse model: N beads coupled by harmonic springs, driven by
// thermal noise and optional constant forces, evolving as a linear
// Ornstein-Uhlenbeck process.
//
// Instead of averaging over simulated trajectories, the package propagates
// the mean and covariance of the bead ensemble analytically through the
// eigenbasis of the connectivity matrix:
//
//   - [Model]: chain topology, parameters and the cached dynamics
//   - [Model.SteadyState]: stationary distribution via the Lyapunov equation
//   - [Model.Propagate]: exact one-step evolution of a Gaussian state
//   - [Model.MSD], [Model.ACF]: weighted displacement statistics
//   - [Model.ContactFrequency]: steady-state inter-bead contact map
//   - [TwoLocusMSD]: closed-form two-locus MSD on an infinite chain
//
// Single stochastic realizations can still be drawn with [Model.ConfSS] and
// [Model.Evolve], which sample from the exact propagated Gaussian using an
// injected random source.
//
// # Free translation
//
// An unanchored chain has a zero eigenvalue: the centre of mass diffuses
// without bound and has no stationary distribution. All steady-state
// quantities are therefore restricted to the orthogonal complement of that
// mode; queries that genuinely need the unbounded direction fail with
// [ErrNoSteadyState].
package rouse
