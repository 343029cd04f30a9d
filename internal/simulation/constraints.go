package simulation

import "fmt"

// Constraint is the displacement boundary-condition capability. Value
// constraining fixes positions and directors; rate constraining fixes
// velocities and angular velocities. What either means numerically belongs
// to the behavior; the framework only guarantees that and when they run.
type Constraint interface {
	ConstrainValues(sys System, time float64)
	ConstrainRates(sys System, time float64)
}

// ConstraintFactory constructs a constraint operator at finalize time. The
// anchor holds copied state for the requested degree-of-freedom indices; sys
// is an unowned back-reference to the live system.
type ConstraintFactory func(anchor Anchor, sys System) (Constraint, error)

// ConstraintBuilder stages one boundary condition for one system. Configure
// it with Using plus the constrained index sets, in any order, before
// finalize. Chaining is ergonomic, not required.
type ConstraintBuilder struct {
	sysIdx  int
	factory ConstraintFactory
	posIdx  []int
	dirIdx  []int
	touched bool
	err     error
}

// Using supplies the behavior factory. A nil factory is recorded as a
// configuration error and surfaces at finalize.
func (b *ConstraintBuilder) Using(f ConstraintFactory) *ConstraintBuilder {
	b.touched = true
	if f == nil {
		b.err = fmt.Errorf("constraint for system %d: %w", b.sysIdx, ErrInvalidBehavior)
		return b
	}
	b.factory = f
	return b
}

// WithConstrainedPositions selects the position columns whose finalize-time
// values the behavior receives as anchor state. Negative indices count from
// the end. May be empty for pure-rate constraints.
func (b *ConstraintBuilder) WithConstrainedPositions(idx ...int) *ConstraintBuilder {
	b.touched = true
	b.posIdx = append(b.posIdx, idx...)
	return b
}

// WithConstrainedDirectors selects the director layers snapshotted into the
// anchor, analogous to WithConstrainedPositions.
func (b *ConstraintBuilder) WithConstrainedDirectors(idx ...int) *ConstraintBuilder {
	b.touched = true
	b.dirIdx = append(b.dirIdx, idx...)
	return b
}

func (b *ConstraintBuilder) systemIndex() int { return b.sysIdx }

func (b *ConstraintBuilder) build(reg *registry) (Constraint, error) {
	if b.err != nil {
		return nil, b.err
	}
	if !b.touched {
		return nil, ErrUnconfiguredBuilder
	}
	if b.factory == nil {
		return nil, ErrMissingBehavior
	}
	sys := reg.at(b.sysIdx)
	anchor, err := snapshot(sys, b.posIdx, b.dirIdx)
	if err != nil {
		return nil, err
	}
	op, err := b.factory(anchor, sys)
	if err != nil {
		return nil, &ConstructionError{Feature: "constraint", SystemIdx: b.sysIdx, Wrapped: err}
	}
	return op, nil
}
