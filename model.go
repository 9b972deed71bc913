package rouse

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// DefaultDim is the spatial dimensionality used when none is given. Each
// coordinate axis evolves as an independent copy of the same scalar system.
const DefaultDim = 3

// Bond is an extra harmonic spring between two beads, beyond the
// nearest-neighbour springs of the chain backbone. A zero Weight means
// the default unit spring.
type Bond struct {
	I, J   int
	Weight float64
}

// Tether anchors a bead to a fixed point in space with its own stiffness.
// A nil Anchor means the origin.
type Tether struct {
	Bead      int
	Stiffness float64
	Anchor    []float64
}

// Options configures optional Model parameters.
type Options struct {
	// Dim is the spatial dimensionality; 0 means DefaultDim.
	Dim int
	// Bonds are extra springs applied on top of the backbone.
	Bonds []Bond
	// DeferDynamics skips the eager eigendecomposition; it is then computed
	// on first use or by an explicit UpdateDynamics call.
	DeferDynamics bool
}

// Model is an N-bead Rouse chain with diffusion coefficient D, spring
// constant k and a constant per-bead force. The connectivity matrix and
// force are mutable; derived quantities go through the dynamics cache so the
// expensive eigendecomposition runs at most once per structural change.
type Model struct {
	n      int
	dim    int
	diff   float64 // diffusion coefficient D
	spring float64 // spring constant k

	force *mat.Dense    // n x dim, constant external force per bead
	conn  *mat.SymDense // n x n connectivity matrix A

	bonds   []Bond
	tethers []Tether

	dyn   *dynamics
	cache cacheState
}

// New creates a chain of n beads in three dimensions with no extra bonds and
// eagerly computed dynamics.
func New(n int, diffusion, spring float64) (*Model, error) {
	return NewWithOptions(n, diffusion, spring, Options{})
}

// NewWithOptions creates a chain with explicit options.
func NewWithOptions(n int, diffusion, spring float64, opt Options) (*Model, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: need at least one bead, got N=%d", ErrInvalidParameter, n)
	}
	if diffusion < 0 {
		return nil, fmt.Errorf("%w: diffusion coefficient must be non-negative, got D=%g", ErrInvalidParameter, diffusion)
	}
	if spring <= 0 {
		return nil, fmt.Errorf("%w: spring constant must be positive, got k=%g", ErrInvalidParameter, spring)
	}
	dim := opt.Dim
	if dim == 0 {
		dim = DefaultDim
	}
	if dim < 1 {
		return nil, fmt.Errorf("%w: spatial dimension must be positive, got d=%d", ErrInvalidParameter, dim)
	}

	m := &Model{
		n:      n,
		dim:    dim,
		diff:   diffusion,
		spring: spring,
		force:  mat.NewDense(n, dim, nil),
		conn:   chainConnectivity(n),
		cache:  dynStructureStale,
	}
	for _, b := range opt.Bonds {
		if err := m.AddBond(b.I, b.J, b.Weight); err != nil {
			return nil, err
		}
	}
	if !opt.DeferDynamics {
		if err := m.UpdateDynamics(); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// N returns the number of beads.
func (m *Model) N() int { return m.n }

// Dim returns the spatial dimensionality.
func (m *Model) Dim() int { return m.dim }

// Diffusion returns the diffusion coefficient D.
func (m *Model) Diffusion() float64 { return m.diff }

// Spring returns the spring constant k.
func (m *Model) Spring() float64 { return m.spring }

// SetDiffusion sets D and marks the full dynamics stale.
func (m *Model) SetDiffusion(d float64) error {
	if d < 0 {
		return fmt.Errorf("%w: diffusion coefficient must be non-negative, got D=%g", ErrInvalidParameter, d)
	}
	m.diff = d
	m.cache = dynStructureStale
	return nil
}

// SetSpring sets k and marks the full dynamics stale.
func (m *Model) SetSpring(k float64) error {
	if k <= 0 {
		return fmt.Errorf("%w: spring constant must be positive, got k=%g", ErrInvalidParameter, k)
	}
	m.spring = k
	m.cache = dynStructureStale
	return nil
}

// Force returns a copy of the constant force on one bead.
func (m *Model) Force(bead int) ([]float64, error) {
	if bead < 0 || bead >= m.n {
		return nil, fmt.Errorf("%w: bead index %d out of range [0,%d)", ErrInvalidParameter, bead, m.n)
	}
	f := make([]float64, m.dim)
	for ax := range f {
		f[ax] = m.force.At(bead, ax)
	}
	return f, nil
}

// SetForce sets the constant force on one bead. Only the force-dependent
// part of the dynamics becomes stale; the eigendecomposition survives.
func (m *Model) SetForce(bead int, f []float64) error {
	if bead < 0 || bead >= m.n {
		return fmt.Errorf("%w: bead index %d out of range [0,%d)", ErrInvalidParameter, bead, m.n)
	}
	if len(f) != m.dim {
		return fmt.Errorf("%w: force vector length %d, want %d", ErrDimensionMismatch, len(f), m.dim)
	}
	for ax, v := range f {
		m.force.Set(bead, ax, v)
	}
	if m.cache == dynFresh {
		m.cache = dynForceStale
	}
	return nil
}

// Connectivity returns a copy of the connectivity matrix A.
func (m *Model) Connectivity() *mat.SymDense {
	c := mat.NewSymDense(m.n, nil)
	c.CopySym(m.conn)
	return c
}

// Bonds returns the extra bonds beyond the chain backbone.
func (m *Model) Bonds() []Bond {
	out := make([]Bond, len(m.bonds))
	copy(out, m.bonds)
	return out
}

// Tethers returns the tethers added so far.
func (m *Model) Tethers() []Tether {
	out := make([]Tether, len(m.tethers))
	copy(out, m.tethers)
	return out
}

// Equal reports whether two models describe the same system. Only the live
// state (N, d, D, k, A, F) enters; the dynamics cache is derived and ignored.
// Inequality is the exact negation.
func (m *Model) Equal(other *Model) bool {
	if other == nil {
		return false
	}
	return m.n == other.n &&
		m.dim == other.dim &&
		m.diff == other.diff &&
		m.spring == other.spring &&
		mat.Equal(m.conn, other.conn) &&
		mat.Equal(m.force, other.force)
}

// String renders the model parameters, noting extra bonds beyond the
// backbone and tethers.
func (m *Model) String() string {
	s := fmt.Sprintf("rouse.Model(N=%d, D=%g, k=%g, d=%d)", m.n, m.diff, m.spring, m.dim)
	if len(m.bonds) > 0 {
		s += fmt.Sprintf(" with %d additional bonds", len(m.bonds))
	}
	return s
}
