package stepper

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/pierremaillar/rodsim/internal/simulation"
)

// Integrable is what the driver needs from a system beyond the framework's
// state view: stage updates it can call between constraint dispatches.
type Integrable interface {
	simulation.System
	KinematicStep(dt float64)
	DynamicStep(dt float64)
	UpdateAccelerations(time float64)
	ResetLoads()
}

// Stepper advances every integrable system through one timestep, invoking
// the simulation's sealed dispatch entry points at its stage boundaries.
// Implementations must call the dispatch functions in the same order every
// step; that ordering is the reproducibility contract.
type Stepper interface {
	Step(sim *simulation.Simulation, systems []Integrable, time, dt float64) float64
}

// Config bounds one integration run.
type Config struct {
	Dt       float64
	Duration float64
}

func (c Config) validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("stepper: dt must be positive, got %g", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("stepper: duration must be positive, got %g", c.Duration)
	}
	return nil
}

// ErrNotFinalized indicates Integrate was called before the simulation was
// sealed.
var ErrNotFinalized = errors.New("stepper: simulation must be finalized before integration")

// ErrNotIntegrable indicates a registered system does not support stage
// updates.
var ErrNotIntegrable = errors.New("stepper: registered system is not integrable")

// Integrate drives the sealed simulation from time zero for cfg.Duration,
// applying callbacks after every completed step. Context cancellation is
// checked between steps; a canceled run returns ctx.Err with the simulation
// left at the last completed step.
func Integrate(ctx context.Context, sim *simulation.Simulation, st Stepper, cfg Config) (int, error) {
	if err := cfg.validate(); err != nil {
		return 0, err
	}
	if !sim.Finalized() {
		return 0, ErrNotFinalized
	}

	systems := make([]Integrable, 0, sim.Len())
	for i := 0; i < sim.Len(); i++ {
		in, ok := sim.SystemAt(i).(Integrable)
		if !ok {
			return 0, fmt.Errorf("%w: system %d", ErrNotIntegrable, i)
		}
		systems = append(systems, in)
	}

	// rounding, not truncation: Duration/Dt quotients like 2.0/1e-4 land
	// fractionally below the integer in float64
	steps := int(math.Round(cfg.Duration / cfg.Dt))
	time := 0.0
	for step := 0; step < steps; step++ {
		select {
		case <-ctx.Done():
			return step, ctx.Err()
		default:
		}
		time = st.Step(sim, systems, time, cfg.Dt)
		sim.ApplyCallbacks(time, step+1)
	}
	return steps, nil
}
