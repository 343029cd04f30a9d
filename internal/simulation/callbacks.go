package simulation

import "fmt"

// Callback is the diagnostics capability, invoked once per completed
// timestep with the step counter.
type Callback interface {
	Observe(sys System, time float64, step int)
}

type CallbackFactory func(sys System) (Callback, error)

// CallbackBuilder stages one diagnostic collector for one system.
type CallbackBuilder struct {
	sysIdx  int
	factory CallbackFactory
	touched bool
	err     error
}

func (b *CallbackBuilder) Using(f CallbackFactory) *CallbackBuilder {
	b.touched = true
	if f == nil {
		b.err = fmt.Errorf("callback for system %d: %w", b.sysIdx, ErrInvalidBehavior)
		return b
	}
	b.factory = f
	return b
}

func (b *CallbackBuilder) systemIndex() int { return b.sysIdx }

func (b *CallbackBuilder) build(reg *registry) (Callback, error) {
	if b.err != nil {
		return nil, b.err
	}
	if !b.touched {
		return nil, ErrUnconfiguredBuilder
	}
	op, err := b.factory(reg.at(b.sysIdx))
	if err != nil {
		return nil, &ConstructionError{Feature: "callback", SystemIdx: b.sysIdx, Wrapped: err}
	}
	return op, nil
}
