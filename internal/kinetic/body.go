// Package kinetic integrates steering forces into motion and provides the
// steering behaviours athletes compose each frame.
package kinetic

import (
	"github.com/pkg/errors"

	"github.com/Garsondee/Rink-Sense/internal/vmath"
)

const (
	wanderCircleDist   = 50.0 // forward offset of the wander circle
	wanderDisplacement = 30.0 // lateral pull applied from the circle centre
	leaderBehindDist   = 40.0 // follow point distance behind the leader
	leaderSlowRadius   = 30.0
)

// Body owns position and velocity and accumulates steering for one frame.
type Body struct {
	Position vmath.Vec2
	Velocity vmath.Vec2
	Steering vmath.Vec2 // consumed and cleared by Integrate
	Mass     float64
	MaxSpeed float64
}

// NewBody creates a body at rest. Mass must be positive.
func NewBody(pos vmath.Vec2, mass, maxSpeed float64) (*Body, error) {
	if mass <= 0 {
		return nil, errors.Errorf("kinetic: mass must be > 0, got %v", mass)
	}
	if maxSpeed < 0 {
		return nil, errors.Errorf("kinetic: max speed must be >= 0, got %v", maxSpeed)
	}
	return &Body{Position: pos, Mass: mass, MaxSpeed: maxSpeed}, nil
}

// ApplySteering adds force to this frame's steering total.
func (b *Body) ApplySteering(force vmath.Vec2) {
	b.Steering = b.Steering.Add(force)
}

// ResetSteering discards any accumulated steering.
func (b *Body) ResetSteering() {
	b.Steering = vmath.Zero
}

// Integrate advances the body by dt seconds with explicit Euler integration.
// Velocity is capped at MaxSpeed and the steering accumulator is cleared.
func (b *Body) Integrate(dt float64) {
	accel := b.Steering.Div(b.Mass)
	b.Velocity = b.Velocity.Add(accel.Scale(dt)).Limit(b.MaxSpeed)
	b.Position = b.Position.Add(b.Velocity.Scale(dt))
	b.Steering = vmath.Zero
}

// Heading is the unit direction of travel, zero when stationary.
func (b *Body) Heading() vmath.Vec2 {
	return b.Velocity.Normalize()
}

// Speed returns |velocity|.
func (b *Body) Speed() float64 {
	return b.Velocity.Len()
}

// Seek returns the force steering toward target. With a positive slowing
// radius the desired speed falls off linearly inside that radius (arrive).
func (b *Body) Seek(target vmath.Vec2, slowingRadius float64) vmath.Vec2 {
	desired := target.Sub(b.Position)
	dist := desired.Len()
	speed := b.MaxSpeed
	if slowingRadius > 0 && dist <= slowingRadius {
		speed *= dist / slowingRadius
	}
	return desired.Normalize().Scale(speed).Sub(b.Velocity)
}

// Arrive is Seek with a slowing radius.
func (b *Body) Arrive(target vmath.Vec2, slowingRadius float64) vmath.Vec2 {
	return b.Seek(target, slowingRadius)
}

// Wander returns a forward-biased lateral offset. It keeps no state, so the
// result depends only on the current velocity.
func (b *Body) Wander() vmath.Vec2 {
	center := vmath.V(1, 0)
	if !b.Velocity.IsZero() {
		center = b.Velocity.Normalize().Scale(wanderCircleDist)
	}
	return center.Add(vmath.V(0, -wanderDisplacement))
}

// Pursuit seeks the point target will reach after distance/MaxSpeed seconds
// at its current velocity.
func (b *Body) Pursuit(target *Body) vmath.Vec2 {
	lookAhead := 0.0
	if b.MaxSpeed > 0 {
		lookAhead = vmath.Dist(b.Position, target.Position) / b.MaxSpeed
	}
	future := target.Position.Add(target.Velocity.Scale(lookAhead))
	return b.Seek(future, 0)
}

// FollowLeader arrives at a point behind the leader along its heading.
func (b *Body) FollowLeader(leader *Body) vmath.Vec2 {
	behind := leader.Position.Sub(leader.Heading().Scale(leaderBehindDist))
	return b.Arrive(behind, leaderSlowRadius)
}

// Separation steers away from neighbours closer than radius. The body itself
// and coincident neighbours are skipped.
func (b *Body) Separation(neighbors []*Body, radius float64) vmath.Vec2 {
	steer := b.repulsion(neighbors, radius)
	if steer.IsZero() {
		return vmath.Zero
	}
	return steer.Normalize().Scale(b.MaxSpeed).Sub(b.Velocity)
}

// CollisionAvoidance is Separation against opponents without subtracting the
// current velocity.
func (b *Body) CollisionAvoidance(opponents []*Body, radius float64) vmath.Vec2 {
	steer := b.repulsion(opponents, radius)
	if steer.IsZero() {
		return vmath.Zero
	}
	return steer.Normalize().Scale(b.MaxSpeed)
}

// repulsion averages inverse-distance weighted directions away from every
// other body inside radius.
func (b *Body) repulsion(others []*Body, radius float64) vmath.Vec2 {
	sum := vmath.Zero
	count := 0
	for _, o := range others {
		if o == nil || o == b {
			continue
		}
		d := vmath.Dist(b.Position, o.Position)
		if d <= 0 || d >= radius {
			continue
		}
		sum = sum.Add(b.Position.Sub(o.Position).Normalize().Div(d))
		count++
	}
	if count == 0 {
		return vmath.Zero
	}
	return sum.Div(float64(count))
}
