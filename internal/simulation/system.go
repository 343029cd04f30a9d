package simulation

import (
	"fmt"

	"github.com/pierremaillar/rodsim/internal/vecmat"
)

// System is the state-array view the framework needs from a simulated body.
// Implementations must be comparable (in practice, pointers) so the registry
// can key them for index lookup. The returned slices alias live state; the
// framework never retains them beyond a dispatch call, and snapshots taken
// during finalize are value copies.
type System interface {
	// Positions returns the per-node position collection.
	Positions() []vecmat.Vec3
	// Directors returns the per-element orientation frames.
	Directors() []vecmat.Mat3
	// Velocities returns the per-node translational velocities.
	Velocities() []vecmat.Vec3
	// AngularVelocities returns the per-element angular velocities.
	AngularVelocities() []vecmat.Vec3
}

// RingTopology is an optional capability: systems whose ends are joined
// report true and receive an injected periodic-boundary synchronizer at
// finalize time. Such systems must reserve their trailing node and element
// slots as ghosts mirroring the leading ones, since the synchronizer
// overwrites those slots every dispatch.
type RingTopology interface {
	RingTopology() bool
}

// Anchor carries the deep-copied state a constraint snapshotted at finalize
// time: one entry per constrained position index and director index, in the
// order they were requested. Vec3 and Mat3 are value types, so the entries
// never alias the live arrays.
type Anchor struct {
	Positions []vecmat.Vec3
	Directors []vecmat.Mat3
}

// resolveIndex maps idx (negative values count from the end) into [0, n).
func resolveIndex(idx, n int) (int, error) {
	resolved := idx
	if resolved < 0 {
		resolved += n
	}
	if resolved < 0 || resolved >= n {
		return 0, fmt.Errorf("%w: index %d against extent %d", ErrIndexOutOfRange, idx, n)
	}
	return resolved, nil
}

// snapshot copies the requested position columns and director layers out of
// the live system state. Taken at finalize time so the anchor reflects
// post-setup, pre-simulation state.
func snapshot(sys System, posIdx, dirIdx []int) (Anchor, error) {
	var a Anchor
	positions := sys.Positions()
	for _, idx := range posIdx {
		i, err := resolveIndex(idx, len(positions))
		if err != nil {
			return Anchor{}, err
		}
		a.Positions = append(a.Positions, positions[i])
	}
	directors := sys.Directors()
	for _, idx := range dirIdx {
		i, err := resolveIndex(idx, len(directors))
		if err != nil {
			return Anchor{}, err
		}
		a.Directors = append(a.Directors, directors[i])
	}
	return a, nil
}
