package simulation

import "fmt"

// Forcing is the external-load capability: operators add forces and torques
// into the system's load accumulators each synchronize call.
type Forcing interface {
	ApplyForces(sys System, time float64)
	ApplyTorques(sys System, time float64)
}

// ForcingFactory constructs a forcing operator at finalize time with a
// back-reference to the live system.
type ForcingFactory func(sys System) (Forcing, error)

// ForcingBuilder stages one external load for one system.
type ForcingBuilder struct {
	sysIdx  int
	factory ForcingFactory
	touched bool
	err     error
}

func (b *ForcingBuilder) Using(f ForcingFactory) *ForcingBuilder {
	b.touched = true
	if f == nil {
		b.err = fmt.Errorf("forcing for system %d: %w", b.sysIdx, ErrInvalidBehavior)
		return b
	}
	b.factory = f
	return b
}

func (b *ForcingBuilder) systemIndex() int { return b.sysIdx }

func (b *ForcingBuilder) build(reg *registry) (Forcing, error) {
	if b.err != nil {
		return nil, b.err
	}
	if !b.touched {
		return nil, ErrUnconfiguredBuilder
	}
	op, err := b.factory(reg.at(b.sysIdx))
	if err != nil {
		return nil, &ConstructionError{Feature: "forcing", SystemIdx: b.sysIdx, Wrapped: err}
	}
	return op, nil
}
