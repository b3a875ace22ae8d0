package game

import "github.com/Garsondee/Rink-Sense/internal/vmath"

// Puck is the single contested object. owner is a back-reference into the
// roster and never controls an athlete's lifetime.
type Puck struct {
	Position vmath.Vec2
	Velocity vmath.Vec2
	Radius   float64
	owner    *Athlete
}

func newPuck(pos vmath.Vec2, radius float64) *Puck {
	return &Puck{Position: pos, Radius: radius}
}

// Owner returns the carrier, or nil when the puck is free.
func (p *Puck) Owner() *Athlete {
	return p.owner
}

// Free reports whether nobody carries the puck.
func (p *Puck) Free() bool {
	return p.owner == nil
}

// setOwner hands the puck to a. A change of owner stops the puck dead.
func (p *Puck) setOwner(a *Athlete) {
	if p.owner != a {
		p.owner = a
		p.Velocity = vmath.Zero
	}
}

func (p *Puck) clearOwner() {
	p.owner = nil
}

// update carries the puck ahead of its owner, or lets it slide and slow down.
func (p *Puck) update(dt, ahead, friction float64) {
	if p.owner != nil {
		p.Velocity = vmath.Zero
		p.placeAheadOfOwner(ahead)
		return
	}
	p.Position = p.Position.Add(p.Velocity.Scale(dt))
	p.Velocity = p.Velocity.Scale(friction)
}

// placeAheadOfOwner snaps the puck to the blade. A stationary owner has no
// heading, so the puck stays where it is.
func (p *Puck) placeAheadOfOwner(ahead float64) {
	if p.owner == nil {
		return
	}
	heading := p.owner.body.Heading()
	if heading.IsZero() {
		return
	}
	p.Position = p.owner.body.Position.Add(heading.Scale(ahead))
}

// strike releases the puck toward dest at speed.
func (p *Puck) strike(dest vmath.Vec2, ahead, speed float64) {
	p.placeAheadOfOwner(ahead)
	p.clearOwner()
	if dir := dest.Sub(p.Position); !dir.IsZero() {
		p.Velocity = dir.Normalize().Scale(speed)
	}
}

// recenter puts a free, motionless puck on the faceoff spot.
func (p *Puck) recenter(at vmath.Vec2) {
	p.Position = at
	p.Velocity = vmath.Zero
	p.clearOwner()
}
