// Package damping provides rate-damping behaviors for the damping module.
package damping

import (
	"fmt"
	"math"

	"github.com/pierremaillar/rodsim/internal/simulation"
)

// AnalyticalLinear damps translational and angular rates exponentially:
// after each dynamic stage every rate is multiplied by exp(-coefficient*dt).
// Unconditionally stable for any positive coefficient.
func AnalyticalLinear(coefficient, dt float64) simulation.DamperFactory {
	return func(simulation.System) (simulation.Damper, error) {
		if coefficient < 0 {
			return nil, fmt.Errorf("damping: coefficient must be non-negative, got %g", coefficient)
		}
		if dt <= 0 {
			return nil, fmt.Errorf("damping: dt must be positive, got %g", dt)
		}
		return &analyticalLinear{factor: math.Exp(-coefficient * dt)}, nil
	}
}

type analyticalLinear struct {
	factor float64
}

func (d *analyticalLinear) DampenRates(sys simulation.System, _ float64) {
	velocities := sys.Velocities()
	for i := range velocities {
		velocities[i] = velocities[i].Scale(d.factor)
	}
	omegas := sys.AngularVelocities()
	for i := range omegas {
		omegas[i] = omegas[i].Scale(d.factor)
	}
}
