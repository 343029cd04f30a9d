package simulation

import (
	"errors"
	"fmt"
)

// Setup errors. All of them abort the setup phase before any stepping
// begins; none are recoverable at runtime.
var (
	// ErrUnregisteredSystem indicates a feature was requested for a system
	// never appended to the simulation.
	ErrUnregisteredSystem = errors.New("simulation: system not registered")

	// ErrUnconfiguredBuilder indicates finalize found a staged builder that
	// was never configured.
	ErrUnconfiguredBuilder = errors.New("simulation: builder never configured")

	// ErrMissingBehavior indicates a builder was configured (index sets or
	// other options) but no behavior factory was ever supplied via Using.
	ErrMissingBehavior = errors.New("simulation: no behavior supplied to builder")

	// ErrInvalidBehavior indicates the supplied behavior factory does not
	// satisfy the feature's contract (a nil factory).
	ErrInvalidBehavior = errors.New("simulation: invalid behavior factory")

	// ErrSealed indicates an attempt to register systems or builders, or to
	// finalize again, after the simulation has been finalized.
	ErrSealed = errors.New("simulation: already finalized")

	// ErrIndexOutOfRange indicates a constrained degree-of-freedom index
	// does not resolve against the target system's extents.
	ErrIndexOutOfRange = errors.New("simulation: constrained index out of range")
)

// ConstructionError wraps a behavior factory failure with context about the
// argument convention, so a misassembled constraint is diagnosable.
type ConstructionError struct {
	Feature   string
	SystemIdx int
	Wrapped   error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf(
		"simulation: constructing %s operator for system %d: %v "+
			"(factories receive copied anchor state first, then the live system back-reference)",
		e.Feature, e.SystemIdx, e.Wrapped)
}

func (e *ConstructionError) Unwrap() error {
	return e.Wrapped
}
