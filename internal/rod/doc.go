// Package rod provides the discretized slender-body system driven by the
// orchestration core.
//
// A [Rod] satisfies [simulation.System] plus the capabilities the rest of
// the toolkit probes for:
//
//   - simulation.RingTopology for closed rings (ghost junction node)
//   - forcing.Loadable via the external force/torque accumulators
//   - stepper.Integrable via the kinematic/dynamic half-step methods
package rod
