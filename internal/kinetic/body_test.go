package kinetic

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/Rink-Sense/internal/vmath"
)

const frameStep = 0.016

func newTestBody(t *testing.T, x, y float64) *Body {
	t.Helper()
	b, err := NewBody(vmath.V(x, y), 1, 200)
	require.NoError(t, err)
	return b
}

func TestNewBody_RejectsNonPositiveMass(t *testing.T) {
	_, err := NewBody(vmath.Zero, 0, 200)
	assert.Error(t, err)
	_, err = NewBody(vmath.Zero, -1, 200)
	assert.Error(t, err)
}

func TestIntegrate_SpeedNeverExceedsMax(t *testing.T) {
	rng := rand.New(rand.NewSource(7)) // #nosec G404 -- test only
	b := newTestBody(t, 0, 0)
	for i := 0; i < 5000; i++ {
		mag := rng.Float64() * 1e6
		force := vmath.V(rng.Float64()*2-1, rng.Float64()*2-1).Normalize().Scale(mag)
		b.ApplySteering(force)
		b.Integrate(frameStep)
		require.LessOrEqual(t, b.Speed(), b.MaxSpeed+1e-9, "iteration %d force %s", i, force)
	}
}

func TestIntegrate_ClearsSteering(t *testing.T) {
	b := newTestBody(t, 0, 0)
	b.ApplySteering(vmath.V(10, 0))
	b.ApplySteering(vmath.V(0, 5))
	assert.Equal(t, vmath.V(10, 5), b.Steering)

	b.Integrate(frameStep)
	assert.Equal(t, vmath.Zero, b.Steering)
	assert.InDelta(t, 0.16, b.Velocity.X(), 1e-12)
	assert.InDelta(t, 0.08, b.Velocity.Y(), 1e-12)
	assert.InDelta(t, 0.16*frameStep, b.Position.X(), 1e-12)
}

func TestIntegrate_HeavierBodyAcceleratesLess(t *testing.T) {
	light := newTestBody(t, 0, 0)
	heavy, err := NewBody(vmath.Zero, 4, 200)
	require.NoError(t, err)

	light.ApplySteering(vmath.V(100, 0))
	heavy.ApplySteering(vmath.V(100, 0))
	light.Integrate(frameStep)
	heavy.Integrate(frameStep)
	assert.InDelta(t, light.Speed()/4, heavy.Speed(), 1e-12)
}

func TestSeek_FullSpeedOutsideSlowingRadius(t *testing.T) {
	b := newTestBody(t, 0, 0)
	f := b.Seek(vmath.V(300, 0), 80)
	assert.True(t, f.ApproxEqual(vmath.V(200, 0), 1e-9), "got %s", f)
}

func TestArrive_ScalesDownInsideSlowingRadius(t *testing.T) {
	b := newTestBody(t, 0, 0)
	f := b.Arrive(vmath.V(40, 0), 80)
	assert.True(t, f.ApproxEqual(vmath.V(100, 0), 1e-9), "got %s", f)

	b.Velocity = vmath.V(50, 0)
	f = b.Arrive(vmath.V(40, 0), 80)
	assert.True(t, f.ApproxEqual(vmath.V(50, 0), 1e-9), "desired minus velocity, got %s", f)
}

func TestSeek_AtTargetOnlyCancelsVelocity(t *testing.T) {
	b := newTestBody(t, 10, 10)
	b.Velocity = vmath.V(3, -4)
	f := b.Seek(vmath.V(10, 10), 0)
	assert.Equal(t, vmath.V(-3, 4), f)
}

func TestWander_DeterministicGivenVelocity(t *testing.T) {
	b := newTestBody(t, 0, 0)
	assert.Equal(t, vmath.V(1, -30), b.Wander())

	b.Velocity = vmath.V(10, 0)
	assert.True(t, b.Wander().ApproxEqual(vmath.V(50, -30), 1e-9))
	assert.Equal(t, b.Wander(), b.Wander())
}

func TestPursuit_LeadsMovingTarget(t *testing.T) {
	b := newTestBody(t, 0, 0)
	target := newTestBody(t, 200, 0)
	target.Velocity = vmath.V(0, 100)

	// 200 units at max speed 200 is one second of look-ahead: aim at (200,100).
	want := b.Seek(vmath.V(200, 100), 0)
	assert.True(t, b.Pursuit(target).ApproxEqual(want, 1e-9))
}

func TestFollowLeader_TargetsPointBehindLeader(t *testing.T) {
	b := newTestBody(t, 0, 0)
	leader := newTestBody(t, 100, 0)
	leader.Velocity = vmath.V(10, 0)

	want := b.Arrive(vmath.V(60, 0), 30)
	assert.True(t, b.FollowLeader(leader).ApproxEqual(want, 1e-9))
}

func TestSeparation_ZeroWithoutNeighboursInRadius(t *testing.T) {
	b := newTestBody(t, 0, 0)
	far := newTestBody(t, 100, 0)
	assert.Equal(t, vmath.Zero, b.Separation(nil, 50))
	assert.Equal(t, vmath.Zero, b.Separation([]*Body{b}, 50))
	assert.Equal(t, vmath.Zero, b.Separation([]*Body{b, far}, 50))
}

func TestSeparation_PushesAwayFromNeighbour(t *testing.T) {
	b := newTestBody(t, 0, 0)
	near := newTestBody(t, 10, 0)
	f := b.Separation([]*Body{b, near}, 50)
	assert.True(t, f.ApproxEqual(vmath.V(-200, 0), 1e-9), "got %s", f)

	b.Velocity = vmath.V(-50, 0)
	f = b.Separation([]*Body{near}, 50)
	assert.True(t, f.ApproxEqual(vmath.V(-150, 0), 1e-9), "velocity subtracted, got %s", f)
}

func TestCollisionAvoidance_ZeroWithoutOpponentsInRadius(t *testing.T) {
	b := newTestBody(t, 0, 0)
	far := newTestBody(t, 0, 150)
	assert.Equal(t, vmath.Zero, b.CollisionAvoidance([]*Body{far}, 100))
}

func TestCollisionAvoidance_IgnoresOwnVelocity(t *testing.T) {
	b := newTestBody(t, 0, 0)
	b.Velocity = vmath.V(-50, 0)
	opp := newTestBody(t, 0, 20)
	f := b.CollisionAvoidance([]*Body{opp}, 100)
	assert.True(t, f.ApproxEqual(vmath.V(0, -200), 1e-9), "got %s", f)
}

func TestRepulsion_CoincidentBodyIgnored(t *testing.T) {
	b := newTestBody(t, 5, 5)
	same := newTestBody(t, 5, 5)
	f := b.CollisionAvoidance([]*Body{same}, 100)
	assert.Equal(t, vmath.Zero, f)
}
