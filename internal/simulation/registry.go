package simulation

import "fmt"

// registry owns system index assignment. Indices are dense, assigned in
// registration order, and never reused.
type registry struct {
	systems []System
	indices map[System]int
	sealed  bool
}

func newRegistry() *registry {
	return &registry{indices: make(map[System]int)}
}

func (r *registry) append(sys System) (int, error) {
	if r.sealed {
		return 0, fmt.Errorf("cannot register system: %w", ErrSealed)
	}
	if idx, ok := r.indices[sys]; ok {
		return idx, nil
	}
	idx := len(r.systems)
	r.systems = append(r.systems, sys)
	r.indices[sys] = idx
	return idx, nil
}

// lookup resolves a system to its index, failing immediately for systems
// that were never appended.
func (r *registry) lookup(sys System) (int, error) {
	idx, ok := r.indices[sys]
	if !ok {
		return 0, fmt.Errorf("%w: append the system before attaching features", ErrUnregisteredSystem)
	}
	return idx, nil
}

func (r *registry) at(idx int) System { return r.systems[idx] }

func (r *registry) len() int { return len(r.systems) }

func (r *registry) seal() { r.sealed = true }
