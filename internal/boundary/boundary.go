// Package boundary provides displacement boundary-condition behaviors for
// the constraint module. Every factory here matches
// simulation.ConstraintFactory: it receives the anchor state copied at
// finalize time plus a back-reference to the live system.
package boundary

import (
	"fmt"

	"github.com/pierremaillar/rodsim/internal/simulation"
	"github.com/pierremaillar/rodsim/internal/vecmat"
)

// Free is a no-op boundary condition. Useful as an explicit statement that
// a rod is unconstrained.
func Free(_ simulation.Anchor, _ simulation.System) (simulation.Constraint, error) {
	return freeBC{}, nil
}

type freeBC struct{}

func (freeBC) ConstrainValues(simulation.System, float64) {}
func (freeBC) ConstrainRates(simulation.System, float64)  {}

// OneEndFixed pins the first constrained node to its anchored position and
// director and zeroes its rates. Requires exactly one position and one
// director index in the builder configuration.
func OneEndFixed(anchor simulation.Anchor, _ simulation.System) (simulation.Constraint, error) {
	if len(anchor.Positions) != 1 || len(anchor.Directors) != 1 {
		return nil, fmt.Errorf(
			"OneEndFixed wants one constrained position and one constrained director, got %d and %d",
			len(anchor.Positions), len(anchor.Directors))
	}
	return &oneEndFixedBC{position: anchor.Positions[0], director: anchor.Directors[0]}, nil
}

type oneEndFixedBC struct {
	position vecmat.Vec3
	director vecmat.Mat3
}

func (bc *oneEndFixedBC) ConstrainValues(sys simulation.System, _ float64) {
	sys.Positions()[0] = bc.position
	sys.Directors()[0] = bc.director
}

func (bc *oneEndFixedBC) ConstrainRates(sys simulation.System, _ float64) {
	sys.Velocities()[0] = vecmat.Vec3{}
	sys.AngularVelocities()[0] = vecmat.Vec3{}
}

// Fixed pins every constrained index to its anchored value and zeroes the
// matching rates. The builder's index sets choose which nodes and elements
// are held; indices are resolved the same way the anchor was taken.
func Fixed(posIdx, dirIdx []int) simulation.ConstraintFactory {
	return func(anchor simulation.Anchor, sys simulation.System) (simulation.Constraint, error) {
		if len(anchor.Positions) != len(posIdx) || len(anchor.Directors) != len(dirIdx) {
			return nil, fmt.Errorf(
				"Fixed wants anchors matching its index sets: %d/%d positions, %d/%d directors",
				len(anchor.Positions), len(posIdx), len(anchor.Directors), len(dirIdx))
		}
		bc := &fixedBC{anchor: anchor}
		for _, i := range posIdx {
			j, err := resolve(i, len(sys.Positions()))
			if err != nil {
				return nil, err
			}
			bc.posIdx = append(bc.posIdx, j)
		}
		for _, i := range dirIdx {
			j, err := resolve(i, len(sys.Directors()))
			if err != nil {
				return nil, err
			}
			bc.dirIdx = append(bc.dirIdx, j)
		}
		return bc, nil
	}
}

type fixedBC struct {
	anchor simulation.Anchor
	posIdx []int
	dirIdx []int
}

func (bc *fixedBC) ConstrainValues(sys simulation.System, _ float64) {
	positions := sys.Positions()
	for k, i := range bc.posIdx {
		positions[i] = bc.anchor.Positions[k]
	}
	directors := sys.Directors()
	for k, i := range bc.dirIdx {
		directors[i] = bc.anchor.Directors[k]
	}
}

func (bc *fixedBC) ConstrainRates(sys simulation.System, _ float64) {
	velocities := sys.Velocities()
	for _, i := range bc.posIdx {
		velocities[i] = vecmat.Vec3{}
	}
	omegas := sys.AngularVelocities()
	for _, i := range bc.dirIdx {
		omegas[i] = vecmat.Vec3{}
	}
}

func resolve(idx, n int) (int, error) {
	resolved := idx
	if resolved < 0 {
		resolved += n
	}
	if resolved < 0 || resolved >= n {
		return 0, fmt.Errorf("boundary: index %d out of range for extent %d", idx, n)
	}
	return resolved, nil
}
