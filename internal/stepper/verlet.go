package stepper

import "github.com/pierremaillar/rodsim/internal/simulation"

// PositionVerlet is a symplectic kick-drift-kick stepper. Per step:
// half kinematic drift, value constraints, load synchronize + full dynamic
// kick, damping and rate constraints, second half drift, value constraints
// again. Constraints run at every stage boundary so boundary state is never
// left inconsistent within a step.
type PositionVerlet struct{}

func NewPositionVerlet() PositionVerlet { return PositionVerlet{} }

func (PositionVerlet) Step(sim *simulation.Simulation, systems []Integrable, time, dt float64) float64 {
	half := 0.5 * dt

	for _, sys := range systems {
		sys.KinematicStep(half)
	}
	time += half
	sim.ConstrainValues(time)

	for _, sys := range systems {
		sys.ResetLoads()
	}
	sim.Synchronize(time)
	for _, sys := range systems {
		sys.UpdateAccelerations(time)
		sys.DynamicStep(dt)
	}
	sim.DampenRates(time)
	sim.ConstrainRates(time)

	for _, sys := range systems {
		sys.KinematicStep(half)
	}
	time += half
	sim.ConstrainValues(time)

	return time
}
