package game

import (
	"time"

	"github.com/Garsondee/Rink-Sense/internal/vmath"
)

// AthleteView is the read-only render view of one athlete.
type AthleteView struct {
	ID       int
	Label    string
	Team     Team
	Role     Role
	State    AthleteState
	Position vmath.Vec2
	Velocity vmath.Vec2
	Manual   bool
	Carrier  bool
}

// PuckView is the read-only render view of the puck.
type PuckView struct {
	Position vmath.Vec2
	Radius   float64
	Owner    string // carrier label, "" when free
}

// GoalView is the read-only render view of a net.
type GoalView struct {
	Team     Team
	Position vmath.Vec2
	Width    float64
	Height   float64
	Score    int
}

// Snapshot is everything a renderer needs for one frame. It shares no
// memory with the PlayState.
type Snapshot struct {
	Tick       int
	Rink       Rink
	Athletes   []AthleteView
	Puck       PuckView
	Goals      [2]GoalView
	Frozen     bool
	FreezeLeft time.Duration
	Control    string
}

// Snapshot copies the renderable state of the match.
func (ps *PlayState) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:       ps.tick,
		Rink:       ps.rink,
		Athletes:   make([]AthleteView, len(ps.roster)),
		Puck:       PuckView{Position: ps.puck.Position, Radius: ps.puck.Radius},
		Frozen:     ps.frozen,
		FreezeLeft: ps.FreezeLeft(),
		Control:    ps.ControlLabel(),
	}
	for i, a := range ps.roster {
		snap.Athletes[i] = AthleteView{
			ID:       a.id,
			Label:    a.label,
			Team:     a.team,
			Role:     a.role,
			State:    a.State(),
			Position: a.body.Position,
			Velocity: a.body.Velocity,
			Manual:   a.manual,
			Carrier:  ps.puck.owner == a,
		}
	}
	if owner := ps.puck.owner; owner != nil {
		snap.Puck.Owner = owner.label
	}
	for i, g := range []*Goal{ps.leftGoal, ps.rightGoal} {
		snap.Goals[i] = GoalView{Team: g.Team, Position: g.Position, Width: g.Width, Height: g.Height, Score: g.Score}
	}
	return snap
}
