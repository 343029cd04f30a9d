package simulation

import "fmt"

// Simulation owns the system registry and one module per feature category.
// Setup is strictly two-phase: append systems and stage builders while open,
// then Finalize once to seal everything. After sealing only the dispatch
// entry points may be used; registration attempts fail with ErrSealed.
type Simulation struct {
	reg         *registry
	constraints *featureModule[Constraint]
	forcing     *featureModule[Forcing]
	dampers     *featureModule[Damper]
	connections *featureModule[boundConnection]
	callbacks   *featureModule[Callback]
	finalized   bool
}

func New() *Simulation {
	return &Simulation{
		reg:         newRegistry(),
		constraints: newFeatureModule[Constraint]("constraints"),
		forcing:     newFeatureModule[Forcing]("forcing"),
		dampers:     newFeatureModule[Damper]("dampers"),
		connections: newFeatureModule[boundConnection]("connections"),
		callbacks:   newFeatureModule[Callback]("callbacks"),
	}
}

// Append registers a system and assigns it the next dense index. Appending
// the same system twice returns its existing index.
func (s *Simulation) Append(sys System) (int, error) {
	return s.reg.append(sys)
}

// Len reports the number of registered systems.
func (s *Simulation) Len() int { return s.reg.len() }

// SystemAt returns the system registered at idx, in registration order.
func (s *Simulation) SystemAt(idx int) System { return s.reg.at(idx) }

// Constrain stages a displacement boundary condition against sys. The
// returned builder must be configured via Using before Finalize.
func (s *Simulation) Constrain(sys System) (*ConstraintBuilder, error) {
	idx, err := s.reg.lookup(sys)
	if err != nil {
		return nil, fmt.Errorf("constrain: %w", err)
	}
	b := &ConstraintBuilder{sysIdx: idx}
	if err := s.constraints.add(b); err != nil {
		return nil, err
	}
	return b, nil
}

// AddForcing stages an external load against sys.
func (s *Simulation) AddForcing(sys System) (*ForcingBuilder, error) {
	idx, err := s.reg.lookup(sys)
	if err != nil {
		return nil, fmt.Errorf("add forcing: %w", err)
	}
	b := &ForcingBuilder{sysIdx: idx}
	if err := s.forcing.add(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Dampen stages a rate damper against sys.
func (s *Simulation) Dampen(sys System) (*DamperBuilder, error) {
	idx, err := s.reg.lookup(sys)
	if err != nil {
		return nil, fmt.Errorf("dampen: %w", err)
	}
	b := &DamperBuilder{sysIdx: idx}
	if err := s.dampers.add(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Connect stages a coupling between two registered systems. The sealed list
// is ordered by the first system's index.
func (s *Simulation) Connect(first, second System) (*ConnectionBuilder, error) {
	firstIdx, err := s.reg.lookup(first)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	secondIdx, err := s.reg.lookup(second)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	b := &ConnectionBuilder{firstIdx: firstIdx, secondIdx: secondIdx}
	if err := s.connections.add(b); err != nil {
		return nil, err
	}
	return b, nil
}

// CollectDiagnostics stages a per-step observer against sys.
func (s *Simulation) CollectDiagnostics(sys System) (*CallbackBuilder, error) {
	idx, err := s.reg.lookup(sys)
	if err != nil {
		return nil, fmt.Errorf("collect diagnostics: %w", err)
	}
	b := &CallbackBuilder{sysIdx: idx}
	if err := s.callbacks.add(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Finalize seals the simulation. In order: inject periodic-boundary
// synchronizers for ring-flagged systems, finalize every feature module
// (constraints first, so later features see consistent boundary state),
// seal the registry, and apply the constraint dispatch once at time zero so
// initial conditions agree with the boundary conditions before stepping
// starts. One-shot: a second call fails with ErrSealed.
func (s *Simulation) Finalize() error {
	if s.finalized {
		return fmt.Errorf("finalize: %w", ErrSealed)
	}

	for idx := 0; idx < s.reg.len(); idx++ {
		sys := s.reg.at(idx)
		ring, ok := sys.(RingTopology)
		if !ok || !ring.RingTopology() {
			continue
		}
		b := &ConstraintBuilder{sysIdx: idx}
		b.Using(newPeriodicBoundarySynchronizer)
		if err := s.constraints.add(b); err != nil {
			return err
		}
	}

	modules := []interface{ finalize(*registry) error }{
		s.constraints, s.forcing, s.dampers, s.connections, s.callbacks,
	}
	for _, m := range modules {
		if err := m.finalize(s.reg); err != nil {
			return err
		}
	}

	s.reg.seal()
	s.finalized = true

	s.ConstrainValues(0.0)
	s.ConstrainRates(0.0)
	return nil
}

// Finalized reports whether the one-way open-to-sealed transition happened.
func (s *Simulation) Finalized() bool { return s.finalized }

// ConstrainValues applies every sealed boundary condition's value
// enforcement, ascending by system index, stable within a system.
func (s *Simulation) ConstrainValues(time float64) {
	s.constraints.each(func(sysIdx int, op Constraint) {
		op.ConstrainValues(s.reg.at(sysIdx), time)
	})
}

// ConstrainRates applies every sealed boundary condition's rate enforcement.
func (s *Simulation) ConstrainRates(time float64) {
	s.constraints.each(func(sysIdx int, op Constraint) {
		op.ConstrainRates(s.reg.at(sysIdx), time)
	})
}

// Synchronize applies external loads: standalone forcing first, then
// inter-system connections, forces before torques for each.
func (s *Simulation) Synchronize(time float64) {
	s.forcing.each(func(sysIdx int, op Forcing) {
		op.ApplyForces(s.reg.at(sysIdx), time)
	})
	s.connections.each(func(sysIdx int, bc boundConnection) {
		bc.op.ApplyForces(s.reg.at(sysIdx), s.reg.at(bc.secondIdx), time)
	})
	s.forcing.each(func(sysIdx int, op Forcing) {
		op.ApplyTorques(s.reg.at(sysIdx), time)
	})
	s.connections.each(func(sysIdx int, bc boundConnection) {
		bc.op.ApplyTorques(s.reg.at(sysIdx), s.reg.at(bc.secondIdx), time)
	})
}

// DampenRates applies every sealed damper.
func (s *Simulation) DampenRates(time float64) {
	s.dampers.each(func(sysIdx int, op Damper) {
		op.DampenRates(s.reg.at(sysIdx), time)
	})
}

// ApplyCallbacks runs every sealed diagnostic observer for one step.
func (s *Simulation) ApplyCallbacks(time float64, step int) {
	s.callbacks.each(func(sysIdx int, op Callback) {
		op.Observe(s.reg.at(sysIdx), time, step)
	})
}
