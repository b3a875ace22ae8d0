package game

import (
	"fmt"

	"github.com/Garsondee/Rink-Sense/internal/vmath"
)

// resolvePickup gives a free puck to the first athlete in roster order that is
// within pickup radius. At most one pickup happens per frame.
func (ps *PlayState) resolvePickup() {
	if !ps.puck.Free() {
		return
	}
	hits := ps.index.within(ps.puck.Position, ps.tuning.PickupRadius)
	if len(hits) == 0 {
		return
	}
	a := ps.roster[hits[0]]
	ps.puck.setOwner(a)
	ps.SimLog.Add(ps.tick, a.label, a.team.String(), "puck", "pickup", ps.puck.Position.String(), 0)
	ps.narrate(a, a.team, PlayPickup, "picks up the puck")
}

// resolveContacts pushes apart every unordered pair of athletes closer than
// the collision radius, lower roster index first. A contact involving the
// carrier may knock the puck to the other athlete.
func (ps *PlayState) resolveContacts() {
	t := &ps.tuning
	for i, a := range ps.roster {
		for _, j := range ps.index.within(a.body.Position, t.CollisionRadius) {
			if j <= i {
				continue
			}
			b := ps.roster[j]
			ps.bump(a, b, t.CollisionImpulse)
			if !ps.frozen {
				ps.maybeTransfer(a, b)
			}
		}
	}
}

// bump applies equal and opposite separating impulses, keeping both athletes
// under their speed cap. Coincident athletes have no separating direction and
// are left alone.
func (ps *PlayState) bump(a, b *Athlete, impulse float64) {
	dir := a.body.Position.Sub(b.body.Position).Normalize()
	if dir.IsZero() {
		return
	}
	a.body.Velocity = a.body.Velocity.Add(dir.Scale(impulse / a.body.Mass)).Limit(a.body.MaxSpeed)
	b.body.Velocity = b.body.Velocity.Sub(dir.Scale(impulse / b.body.Mass)).Limit(b.body.MaxSpeed)
}

// maybeTransfer moves the puck across a contact with TransferChance.
func (ps *PlayState) maybeTransfer(a, b *Athlete) {
	var from, to *Athlete
	switch ps.puck.owner {
	case a:
		from, to = a, b
	case b:
		from, to = b, a
	default:
		return
	}
	if ps.rng.Float64() >= ps.tuning.TransferChance {
		return
	}
	ps.puck.setOwner(to)
	ps.SimLog.Add(ps.tick, to.label, to.team.String(), "puck", "transfer",
		fmt.Sprintf("%s → %s", from.label, to.label), 0)
	if from.team != to.team {
		ps.narrate(to, to.team, PlaySteal, fmt.Sprintf("strips %s", from.label))
	} else {
		ps.narrate(to, to.team, PlayPickup, fmt.Sprintf("takes it off %s", from.label))
	}
}

// PuckContacts lists athletes within pickup radius of the puck, in roster
// order. The renderer uses it to highlight contested pucks.
func (ps *PlayState) PuckContacts() []*Athlete {
	var out []*Athlete
	for _, a := range ps.roster {
		if vmath.Dist(a.body.Position, ps.puck.Position) < ps.tuning.PickupRadius {
			out = append(out, a)
		}
	}
	return out
}
