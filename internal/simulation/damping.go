package simulation

import "fmt"

// Damper is the rate-damping capability, invoked after every dynamic stage.
type Damper interface {
	DampenRates(sys System, time float64)
}

type DamperFactory func(sys System) (Damper, error)

// DamperBuilder stages one damper for one system.
type DamperBuilder struct {
	sysIdx  int
	factory DamperFactory
	touched bool
	err     error
}

func (b *DamperBuilder) Using(f DamperFactory) *DamperBuilder {
	b.touched = true
	if f == nil {
		b.err = fmt.Errorf("damper for system %d: %w", b.sysIdx, ErrInvalidBehavior)
		return b
	}
	b.factory = f
	return b
}

func (b *DamperBuilder) systemIndex() int { return b.sysIdx }

func (b *DamperBuilder) build(reg *registry) (Damper, error) {
	if b.err != nil {
		return nil, b.err
	}
	if !b.touched {
		return nil, ErrUnconfiguredBuilder
	}
	op, err := b.factory(reg.at(b.sysIdx))
	if err != nil {
		return nil, &ConstructionError{Feature: "damper", SystemIdx: b.sysIdx, Wrapped: err}
	}
	return op, nil
}
