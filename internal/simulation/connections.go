package simulation

import "fmt"

// Connection couples two systems, injecting equal-and-opposite loads into
// both during synchronize. Dispatch passes both back-references, first then
// second, in the order they were connected.
type Connection interface {
	ApplyForces(first, second System, time float64)
	ApplyTorques(first, second System, time float64)
}

type ConnectionFactory func(first, second System) (Connection, error)

// boundConnection pins the second system's index next to the operator; the
// sealed list is keyed (and sorted) on the first system's index.
type boundConnection struct {
	op        Connection
	secondIdx int
}

// ConnectionBuilder stages one inter-system coupling.
type ConnectionBuilder struct {
	firstIdx  int
	secondIdx int
	factory   ConnectionFactory
	touched   bool
	err       error
}

func (b *ConnectionBuilder) Using(f ConnectionFactory) *ConnectionBuilder {
	b.touched = true
	if f == nil {
		b.err = fmt.Errorf("connection for systems (%d, %d): %w", b.firstIdx, b.secondIdx, ErrInvalidBehavior)
		return b
	}
	b.factory = f
	return b
}

func (b *ConnectionBuilder) systemIndex() int { return b.firstIdx }

func (b *ConnectionBuilder) build(reg *registry) (boundConnection, error) {
	if b.err != nil {
		return boundConnection{}, b.err
	}
	if !b.touched {
		return boundConnection{}, ErrUnconfiguredBuilder
	}
	op, err := b.factory(reg.at(b.firstIdx), reg.at(b.secondIdx))
	if err != nil {
		return boundConnection{}, &ConstructionError{Feature: "connection", SystemIdx: b.firstIdx, Wrapped: err}
	}
	return boundConnection{op: op, secondIdx: b.secondIdx}, nil
}
