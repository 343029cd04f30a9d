// Package connection provides inter-system coupling behaviors for the
// connections module.
package connection

import (
	"errors"

	"github.com/pierremaillar/rodsim/internal/forcing"
	"github.com/pierremaillar/rodsim/internal/simulation"
)

// ErrNotLoadable indicates one of the connected systems exposes no load
// accumulators.
var ErrNotLoadable = errors.New("connection: system does not accept external loads")

// SpringJoint couples node firstNode of the first system to node secondNode
// of the second with a linear spring of the given stiffness and rest
// length. Negative node indices count from the end.
func SpringJoint(stiffness, restLength float64, firstNode, secondNode int) simulation.ConnectionFactory {
	return func(first, second simulation.System) (simulation.Connection, error) {
		a, ok := first.(forcing.Loadable)
		if !ok {
			return nil, ErrNotLoadable
		}
		b, ok := second.(forcing.Loadable)
		if !ok {
			return nil, ErrNotLoadable
		}
		i := firstNode
		if i < 0 {
			i += len(first.Positions())
		}
		j := secondNode
		if j < 0 {
			j += len(second.Positions())
		}
		if i < 0 || i >= len(first.Positions()) || j < 0 || j >= len(second.Positions()) {
			return nil, errors.New("connection: joint node index out of range")
		}
		return &springJoint{
			first: a, second: b,
			firstNode: i, secondNode: j,
			stiffness: stiffness, restLength: restLength,
		}, nil
	}
}

type springJoint struct {
	first, second         forcing.Loadable
	firstNode, secondNode int
	stiffness             float64
	restLength            float64
}

func (s *springJoint) ApplyForces(_, _ simulation.System, _ float64) {
	pa := s.first.Positions()[s.firstNode]
	pb := s.second.Positions()[s.secondNode]
	d := pb.Sub(pa)
	length := d.Norm()
	if length == 0 {
		return
	}
	f := d.Scale(s.stiffness * (length - s.restLength) / length)
	forcesA := s.first.ExternalForces()
	forcesA[s.firstNode] = forcesA[s.firstNode].Add(f)
	forcesB := s.second.ExternalForces()
	forcesB[s.secondNode] = forcesB[s.secondNode].Sub(f)
}

func (s *springJoint) ApplyTorques(_, _ simulation.System, _ float64) {}
