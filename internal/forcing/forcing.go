// Package forcing provides external-load behaviors for the forcing module.
package forcing

import (
	"errors"
	"math"

	"github.com/pierremaillar/rodsim/internal/simulation"
	"github.com/pierremaillar/rodsim/internal/vecmat"
)

// Loadable is the capability forcing operators need beyond the basic system
// view: mutable per-node force and per-element torque accumulators. Probed
// at construction time so a mismatch fails during finalize, not mid-step.
type Loadable interface {
	simulation.System
	ExternalForces() []vecmat.Vec3
	ExternalTorques() []vecmat.Vec3
}

// ErrNotLoadable indicates the target system exposes no load accumulators.
var ErrNotLoadable = errors.New("forcing: system does not accept external loads")

// Gravity applies a uniform acceleration to every node, scaled by nodeMass.
func Gravity(acc vecmat.Vec3, nodeMass float64) simulation.ForcingFactory {
	return func(sys simulation.System) (simulation.Forcing, error) {
		l, ok := sys.(Loadable)
		if !ok {
			return nil, ErrNotLoadable
		}
		return &gravity{target: l, forcePerNode: acc.Scale(nodeMass)}, nil
	}
}

type gravity struct {
	target       Loadable
	forcePerNode vecmat.Vec3
}

func (g *gravity) ApplyForces(_ simulation.System, _ float64) {
	forces := g.target.ExternalForces()
	for i := range forces {
		forces[i] = forces[i].Add(g.forcePerNode)
	}
}

func (g *gravity) ApplyTorques(simulation.System, float64) {}

// EndpointForces applies start/end forces to the rod's first and last
// nodes, ramped linearly over rampUpTime (immediately at full strength when
// rampUpTime is zero).
func EndpointForces(start, end vecmat.Vec3, rampUpTime float64) simulation.ForcingFactory {
	return func(sys simulation.System) (simulation.Forcing, error) {
		l, ok := sys.(Loadable)
		if !ok {
			return nil, ErrNotLoadable
		}
		return &endpointForces{target: l, start: start, end: end, rampUpTime: rampUpTime}, nil
	}
}

type endpointForces struct {
	target     Loadable
	start, end vecmat.Vec3
	rampUpTime float64
}

func (f *endpointForces) ApplyForces(_ simulation.System, time float64) {
	factor := 1.0
	if f.rampUpTime > 0 {
		factor = math.Min(1.0, time/f.rampUpTime)
	}
	forces := f.target.ExternalForces()
	forces[0] = forces[0].Add(f.start.Scale(factor))
	forces[len(forces)-1] = forces[len(forces)-1].Add(f.end.Scale(factor))
}

func (f *endpointForces) ApplyTorques(simulation.System, float64) {}

// UniformTorques applies the same torque to every element.
func UniformTorques(torque vecmat.Vec3) simulation.ForcingFactory {
	return func(sys simulation.System) (simulation.Forcing, error) {
		l, ok := sys.(Loadable)
		if !ok {
			return nil, ErrNotLoadable
		}
		return &uniformTorques{target: l, torque: torque}, nil
	}
}

type uniformTorques struct {
	target Loadable
	torque vecmat.Vec3
}

func (u *uniformTorques) ApplyForces(simulation.System, float64) {}

func (u *uniformTorques) ApplyTorques(_ simulation.System, _ float64) {
	torques := u.target.ExternalTorques()
	for i := range torques {
		torques[i] = torques[i].Add(u.torque)
	}
}
