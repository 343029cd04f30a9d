package stepper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pierremaillar/rodsim/internal/boundary"
	"github.com/pierremaillar/rodsim/internal/callback"
	"github.com/pierremaillar/rodsim/internal/damping"
	"github.com/pierremaillar/rodsim/internal/forcing"
	"github.com/pierremaillar/rodsim/internal/rod"
	"github.com/pierremaillar/rodsim/internal/simulation"
	"github.com/pierremaillar/rodsim/internal/vecmat"
)

// cantilever assembles a clamped rod under gravity with damping and a
// per-step recorder, finalized and ready to integrate.
func cantilever(t *testing.T) (*simulation.Simulation, *rod.Rod, *callback.Recorder) {
	t.Helper()

	body, err := rod.NewStraight(vecmat.Vec3{}, vecmat.Vec3{1, 0, 0}, rod.Params{
		Nodes: 6, Length: 1, Mass: 0.5, Stiffness: 100,
	})
	require.NoError(t, err)

	sim := simulation.New()
	_, err = sim.Append(body)
	require.NoError(t, err)

	cb, err := sim.Constrain(body)
	require.NoError(t, err)
	cb.Using(boundary.OneEndFixed).WithConstrainedPositions(0).WithConstrainedDirectors(0)

	fb, err := sim.AddForcing(body)
	require.NoError(t, err)
	fb.Using(forcing.Gravity(vecmat.Vec3{0, -9.81, 0}, body.NodeMass()))

	db, err := sim.Dampen(body)
	require.NoError(t, err)
	db.Using(damping.AnalyticalLinear(5.0, 1e-3))

	rec := callback.NewRecorder(1)
	ob, err := sim.CollectDiagnostics(body)
	require.NoError(t, err)
	ob.Using(rec.Factory())

	require.NoError(t, sim.Finalize())
	return sim, body, rec
}

func TestIntegrate_CantileverBendsUnderGravity(t *testing.T) {
	sim, body, rec := cantilever(t)

	steps, err := Integrate(context.Background(), sim, NewPositionVerlet(), Config{
		Dt: 1e-3, Duration: 0.5,
	})
	require.NoError(t, err)
	assert.Equal(t, 500, steps)

	// clamped end pinned, free end sagging
	assert.Equal(t, vecmat.Vec3{}, body.Positions()[0])
	tip := body.Positions()[len(body.Positions())-1]
	assert.Less(t, tip[1], 0.0, "tip should sag below the clamp")

	// state stays finite under damping
	for i, p := range body.Positions() {
		require.True(t, p.IsValid(), "node %d diverged: %v", i, p)
	}

	// one observation per step
	assert.Len(t, rec.History, 500)
	assert.Equal(t, 1, rec.History[0].Step)
	assert.InDelta(t, 1e-3, rec.History[0].Time, 1e-12)
}

func TestIntegrate_ConstraintHoldsEveryStep(t *testing.T) {
	sim, _, rec := cantilever(t)

	_, err := Integrate(context.Background(), sim, NewPositionVerlet(), Config{
		Dt: 1e-3, Duration: 0.05,
	})
	require.NoError(t, err)

	for _, sample := range rec.History {
		require.Equal(t, vecmat.Vec3{}, sample.Positions[0],
			"clamped node drifted at t=%g", sample.Time)
	}
}

func TestIntegrate_TimeAdvancesMonotonically(t *testing.T) {
	sim, _, rec := cantilever(t)

	_, err := Integrate(context.Background(), sim, NewPositionVerlet(), Config{
		Dt: 1e-3, Duration: 0.02,
	})
	require.NoError(t, err)

	for i := 1; i < len(rec.History); i++ {
		require.Greater(t, rec.History[i].Time, rec.History[i-1].Time)
	}
	last := rec.History[len(rec.History)-1].Time
	require.InDelta(t, 0.02, last, 1e-9)
}

func TestIntegrate_StepCountRoundsFractionalQuotient(t *testing.T) {
	body, err := rod.NewStraight(vecmat.Vec3{}, vecmat.Vec3{1, 0, 0}, rod.Params{
		Nodes: 3, Length: 1, Mass: 1, Stiffness: 10,
	})
	require.NoError(t, err)

	sim := simulation.New()
	_, err = sim.Append(body)
	require.NoError(t, err)
	require.NoError(t, sim.Finalize())

	// 2.0/0.1 lands fractionally below 20 in float64; truncation would
	// silently drop the final step
	steps, err := Integrate(context.Background(), sim, NewPositionVerlet(), Config{
		Dt: 0.1, Duration: 2.0,
	})
	require.NoError(t, err)
	assert.Equal(t, 20, steps)
}

// stretchedRing assembles a finalized ring whose seam node is pulled outward
// so the closing segment carries force from the first step.
func stretchedRing(t *testing.T) (*simulation.Simulation, *rod.Rod) {
	t.Helper()

	body, err := rod.NewRing(vecmat.Vec3{}, rod.Params{
		Nodes: 13, Length: 1, Mass: 0.5, Stiffness: 50,
	})
	require.NoError(t, err)
	body.Positions()[0] = body.Positions()[0].Scale(1.05)

	sim := simulation.New()
	_, err = sim.Append(body)
	require.NoError(t, err)
	require.NoError(t, sim.Finalize())
	return sim, body
}

func TestFinalize_RingClosingFrameIntact(t *testing.T) {
	body, err := rod.NewRing(vecmat.Vec3{}, rod.Params{
		Nodes: 13, Length: 1, Mass: 0.5, Stiffness: 50,
	})
	require.NoError(t, err)

	sim := simulation.New()
	_, err = sim.Append(body)
	require.NoError(t, err)
	require.NoError(t, sim.Finalize())

	// the time-zero constraint application must leave the closing element
	// framed along its own chord; only the ghost element mirrors element 0
	closing := body.NumNodes() - 2
	d := body.Directors()[closing]
	tangent := vecmat.Vec3{d[2][0], d[2][1], d[2][2]}
	chord := body.Positions()[closing+1].Sub(body.Positions()[closing])
	chord = chord.Scale(1 / chord.Norm())
	assert.InDelta(t, 1.0, tangent.Dot(chord), 1e-12)
}

func TestIntegrate_RingSeamConservesMomentum(t *testing.T) {
	sim, body := stretchedRing(t)

	_, err := Integrate(context.Background(), sim, NewPositionVerlet(), Config{
		Dt: 1e-3, Duration: 0.1,
	})
	require.NoError(t, err)

	// purely internal forces: the seam reaction must land on node 0, so
	// net momentum over the distinct nodes stays at zero
	var momentum vecmat.Vec3
	vs := body.Velocities()
	for _, v := range vs[:len(vs)-1] {
		momentum = momentum.Add(v.Scale(body.NodeMass()))
	}
	assert.Less(t, momentum.Norm(), 1e-9)

	for i, p := range body.Positions() {
		require.True(t, p.IsValid(), "node %d diverged: %v", i, p)
	}
}

func TestIntegrate_RequiresFinalize(t *testing.T) {
	body, err := rod.NewStraight(vecmat.Vec3{}, vecmat.Vec3{1, 0, 0}, rod.Params{
		Nodes: 3, Length: 1, Mass: 1, Stiffness: 10,
	})
	require.NoError(t, err)

	sim := simulation.New()
	_, err = sim.Append(body)
	require.NoError(t, err)

	_, err = Integrate(context.Background(), sim, NewPositionVerlet(), Config{Dt: 1e-3, Duration: 0.1})
	require.ErrorIs(t, err, ErrNotFinalized)
}

// inertSystem satisfies simulation.System but not Integrable.
type inertSystem struct {
	positions []vecmat.Vec3
}

func (s *inertSystem) Positions() []vecmat.Vec3         { return s.positions }
func (s *inertSystem) Directors() []vecmat.Mat3         { return nil }
func (s *inertSystem) Velocities() []vecmat.Vec3        { return nil }
func (s *inertSystem) AngularVelocities() []vecmat.Vec3 { return nil }

func TestIntegrate_RejectsNonIntegrableSystems(t *testing.T) {
	sim := simulation.New()
	_, err := sim.Append(&inertSystem{positions: make([]vecmat.Vec3, 3)})
	require.NoError(t, err)
	require.NoError(t, sim.Finalize())

	_, err = Integrate(context.Background(), sim, NewPositionVerlet(), Config{Dt: 1e-3, Duration: 0.1})
	require.ErrorIs(t, err, ErrNotIntegrable)
}

func TestIntegrate_ConfigValidation(t *testing.T) {
	sim, _, _ := cantilever(t)

	_, err := Integrate(context.Background(), sim, NewPositionVerlet(), Config{Dt: 0, Duration: 1})
	require.Error(t, err)

	_, err = Integrate(context.Background(), sim, NewPositionVerlet(), Config{Dt: 1e-3, Duration: 0})
	require.Error(t, err)
}

func TestIntegrate_ContextCancellation(t *testing.T) {
	sim, _, _ := cantilever(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	steps, err := Integrate(ctx, sim, NewPositionVerlet(), Config{Dt: 1e-3, Duration: 1})
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, steps)
}

func TestPositionVerlet_SingleStepKinematics(t *testing.T) {
	// free rod with uniform initial velocity: one step must translate every
	// node by v*dt with no internal excitation
	body, err := rod.NewStraight(vecmat.Vec3{}, vecmat.Vec3{1, 0, 0}, rod.Params{
		Nodes: 4, Length: 1, Mass: 1, Stiffness: 100,
	})
	require.NoError(t, err)
	for i := range body.Velocities() {
		body.Velocities()[i] = vecmat.Vec3{0, 0.5, 0}
	}

	sim := simulation.New()
	_, err = sim.Append(body)
	require.NoError(t, err)
	require.NoError(t, sim.Finalize())

	before := append([]vecmat.Vec3(nil), body.Positions()...)
	const dt = 1e-2
	end := NewPositionVerlet().Step(sim, []Integrable{body}, 0, dt)

	assert.InDelta(t, dt, end, 1e-15)
	for i, p := range body.Positions() {
		want := before[i].Add(vecmat.Vec3{0, 0.5 * dt, 0})
		for axis := 0; axis < 3; axis++ {
			require.InDelta(t, want[axis], p[axis], 1e-12, "node %d axis %d", i, axis)
		}
	}
}
