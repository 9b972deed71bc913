package rouse

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// chainConnectivity builds the Laplacian of an unbranched n-bead chain:
// -1 between neighbours, bead degree on the diagonal. For n=1 there are no
// bonds and the matrix is zero.
func chainConnectivity(n int) *mat.SymDense {
	a := mat.NewSymDense(n, nil)
	for i := 0; i < n-1; i++ {
		a.SetSym(i, i+1, -1)
		a.SetSym(i, i, a.At(i, i)+1)
		a.SetSym(i+1, i+1, a.At(i+1, i+1)+1)
	}
	return a
}

// AddBond adds an extra spring of the given weight between beads i and j.
// A zero weight means the default unit spring. Repeated bonds accumulate.
// The full dynamics become stale.
func (m *Model) AddBond(i, j int, weight float64) error {
	if i < 0 || i >= m.n || j < 0 || j >= m.n {
		return fmt.Errorf("%w: bond (%d,%d) out of range for N=%d", ErrInvalidParameter, i, j, m.n)
	}
	if i == j {
		return fmt.Errorf("%w: bond endpoints must differ, got (%d,%d)", ErrInvalidParameter, i, j)
	}
	if weight == 0 {
		weight = 1
	}
	if weight < 0 {
		return fmt.Errorf("%w: bond weight must be positive, got %g", ErrInvalidParameter, weight)
	}
	m.conn.SetSym(i, j, m.conn.At(i, j)-weight)
	m.conn.SetSym(i, i, m.conn.At(i, i)+weight)
	m.conn.SetSym(j, j, m.conn.At(j, j)+weight)
	m.bonds = append(m.bonds, Bond{I: i, J: j, Weight: weight})
	m.cache = dynStructureStale
	return nil
}

// AddTether anchors a bead to a fixed point with the given stiffness,
// relative to the chain's unit springs. A nil anchor means the origin; a
// displaced anchor additionally pulls the bead through the force term.
// The full dynamics become stale.
//
// AddTether(0, 1, nil) reproduces the conventional default of pinning the
// first bead to the origin with unit stiffness.
func (m *Model) AddTether(bead int, stiffness float64, anchor []float64) error {
	if bead < 0 || bead >= m.n {
		return fmt.Errorf("%w: bead index %d out of range [0,%d)", ErrInvalidParameter, bead, m.n)
	}
	if stiffness <= 0 {
		return fmt.Errorf("%w: tether stiffness must be positive, got %g", ErrInvalidParameter, stiffness)
	}
	if anchor != nil && len(anchor) != m.dim {
		return fmt.Errorf("%w: anchor length %d, want %d", ErrDimensionMismatch, len(anchor), m.dim)
	}

	m.conn.SetSym(bead, bead, m.conn.At(bead, bead)+stiffness)
	if anchor != nil {
		// The tether spring k*stiffness pulls toward the anchor point.
		for ax, a := range anchor {
			m.force.Set(bead, ax, m.force.At(bead, ax)+m.spring*stiffness*a)
		}
	}

	t := Tether{Bead: bead, Stiffness: stiffness}
	if anchor != nil {
		t.Anchor = append([]float64(nil), anchor...)
	}
	m.tethers = append(m.tethers, t)
	m.cache = dynStructureStale
	return nil
}
