// Package simulation is the orchestration core: it registers bodies,
// collects feature builders (constraints, forcing, damping, connections,
// diagnostics), and seals them into immutable dispatch lists consumed by a
// time stepper.
//
// Setup follows a strict two-phase protocol:
//
//	sim := simulation.New()
//	idx, _ := sim.Append(rod)
//	b, _ := sim.Constrain(rod)
//	b.Using(boundary.OneEndFixed).WithConstrainedPositions(0).WithConstrainedDirectors(0)
//	if err := sim.Finalize(); err != nil { ... }
//
// Finalize is one-shot. It injects periodic-boundary synchronizers for
// ring-topology systems, turns every staged builder into an operator
// (snapshotting anchor state by value, never aliasing live arrays), sorts
// each operator list ascending by system index with stable tie-break, and
// applies the constraints once at time zero. Any registration after
// Finalize, or a second Finalize, fails with [ErrSealed].
//
// # Thread Safety
//
// The framework is single-threaded: registration, finalize and dispatch all
// run on one goroutine. Dispatch never mutates the sealed lists, so calling
// it every integrator sub-step is safe and reproducible.
package simulation
