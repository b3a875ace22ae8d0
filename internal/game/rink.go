package game

import (
	"github.com/pkg/errors"

	"github.com/Garsondee/Rink-Sense/internal/vmath"
)

// ErrInvalidRoster is returned when a match is set up with an empty team.
var ErrInvalidRoster = errors.New("invalid roster")

// Rink is the playable rectangle with its origin at the top-left corner.
type Rink struct {
	Width  float64
	Height float64
}

func newRink(w, h float64) (Rink, error) {
	if w <= 0 || h <= 0 {
		return Rink{}, errors.Errorf("rink must have positive size, got %vx%v", w, h)
	}
	return Rink{Width: w, Height: h}, nil
}

// Center is the faceoff spot.
func (r Rink) Center() vmath.Vec2 {
	return vmath.V(r.Width/2, r.Height/2)
}

// Clamp confines p to the rink interior inset by margin.
func (r Rink) Clamp(p vmath.Vec2, margin float64) vmath.Vec2 {
	return p.Clamp(margin, margin, r.Width-margin, r.Height-margin)
}

// InHalf reports whether p lies in team's own half (left half for TeamLeft).
func (r Rink) InHalf(team Team, p vmath.Vec2) bool {
	half := r.Width / 2
	if team == TeamLeft {
		return p.X() < half
	}
	return p.X() >= half
}

// Goal is an axis-aligned net centred on Position. Score counts goals the
// owning team has scored; it only ever increases until a match reset.
type Goal struct {
	Position vmath.Vec2
	Width    float64
	Height   float64
	Team     Team
	Score    int
}

// Contains reports whether p lies inside the net rectangle, edges included.
func (g *Goal) Contains(p vmath.Vec2) bool {
	hw, hh := g.Width/2, g.Height/2
	return p.X() >= g.Position.X()-hw && p.X() <= g.Position.X()+hw &&
		p.Y() >= g.Position.Y()-hh && p.Y() <= g.Position.Y()+hh
}
