package damping

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pierremaillar/rodsim/internal/rod"
	"github.com/pierremaillar/rodsim/internal/vecmat"
)

func TestAnalyticalLinear_DecaysRates(t *testing.T) {
	r, err := rod.NewStraight(vecmat.Vec3{}, vecmat.Vec3{1, 0, 0}, rod.Params{
		Nodes: 3, Length: 1, Mass: 1, Stiffness: 10,
	})
	require.NoError(t, err)

	const coefficient, dt = 2.0, 0.1
	op, err := AnalyticalLinear(coefficient, dt)(r)
	require.NoError(t, err)

	r.Velocities()[0] = vecmat.Vec3{1, 0, 0}
	r.AngularVelocities()[1] = vecmat.Vec3{0, 3, 0}

	op.DampenRates(r, 0)

	factor := math.Exp(-coefficient * dt)
	assert.InDelta(t, factor, r.Velocities()[0][0], 1e-12)
	assert.InDelta(t, 3*factor, r.AngularVelocities()[1][1], 1e-12)

	// repeated application keeps shrinking, never flips sign
	for i := 0; i < 100; i++ {
		op.DampenRates(r, 0)
	}
	assert.Greater(t, r.Velocities()[0][0], 0.0)
	assert.Less(t, r.Velocities()[0][0], factor)
}

func TestAnalyticalLinear_Validation(t *testing.T) {
	r, err := rod.NewStraight(vecmat.Vec3{}, vecmat.Vec3{1, 0, 0}, rod.Params{
		Nodes: 3, Length: 1, Mass: 1, Stiffness: 10,
	})
	require.NoError(t, err)

	_, err = AnalyticalLinear(-1, 0.1)(r)
	require.Error(t, err)

	_, err = AnalyticalLinear(1, 0)(r)
	require.Error(t, err)
}
