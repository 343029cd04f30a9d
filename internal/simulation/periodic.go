package simulation

// periodicBoundarySynchronizer keeps a ring system's wrap-around junction
// coherent: the trailing node and element slots mirror the leading ones for
// position, director, velocity and angular velocity. Ring systems must
// reserve those trailing slots as ghosts of node 0 and element 0; the copy
// would clobber real state otherwise. One synchronizer is injected per
// ring-flagged system during finalize; users never construct it.
type periodicBoundarySynchronizer struct{}

func newPeriodicBoundarySynchronizer(_ Anchor, _ System) (Constraint, error) {
	return periodicBoundarySynchronizer{}, nil
}

func (periodicBoundarySynchronizer) ConstrainValues(sys System, _ float64) {
	positions := sys.Positions()
	positions[len(positions)-1] = positions[0]
	directors := sys.Directors()
	directors[len(directors)-1] = directors[0]
}

func (periodicBoundarySynchronizer) ConstrainRates(sys System, _ float64) {
	velocities := sys.Velocities()
	velocities[len(velocities)-1] = velocities[0]
	omegas := sys.AngularVelocities()
	omegas[len(omegas)-1] = omegas[0]
}
