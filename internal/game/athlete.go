package game

import (
	"fmt"

	"github.com/Garsondee/Rink-Sense/internal/fsm"
	"github.com/Garsondee/Rink-Sense/internal/kinetic"
	"github.com/Garsondee/Rink-Sense/internal/vmath"
)

// Athlete is an autonomous skater: a kinetic body driven by a pushdown
// machine of hockey behaviours. The world is passed into every behaviour
// rather than held, so all reads and writes of shared state go through the
// PlayState of the current tick.
type Athlete struct {
	id      int
	label   string // e.g. "L0", "R3"
	team    Team
	role    Role
	body    *kinetic.Body
	initial vmath.Vec2
	manual  bool // steered by the pointer instead of the machine

	brain     *fsm.Machine[AthleteState, *PlayState]
	lastState AthleteState // last state reported to the logs
}

func newAthlete(id, slot int, team Team, pos vmath.Vec2, t Tuning) (*Athlete, error) {
	body, err := kinetic.NewBody(pos, t.AthleteMass, t.AthleteSpeed)
	if err != nil {
		return nil, err
	}
	a := &Athlete{
		id:      id,
		label:   fmt.Sprintf("%s%d", team.labelPrefix(), slot),
		team:    team,
		role:    roleForSlot(slot),
		body:    body,
		initial: pos,
	}
	a.brain = fsm.New(StateIdle, map[AthleteState]fsm.Behavior[*PlayState]{
		StateIdle:          a.idle,
		StatePursuePuck:    a.pursuePuck,
		StateAttack:        a.attack,
		StateStealPuck:     a.stealPuck,
		StateDefend:        a.defend,
		StatePatrol:        a.patrol,
		StateCelebrateGoal: a.celebrateGoal,
	})
	a.brain.Push(StateIdle)
	a.lastState = StateIdle
	return a, nil
}

func (a *Athlete) ID() int                     { return a.id }
func (a *Athlete) Label() string               { return a.label }
func (a *Athlete) Team() Team                  { return a.team }
func (a *Athlete) Role() Role                  { return a.role }
func (a *Athlete) Position() vmath.Vec2        { return a.body.Position }
func (a *Athlete) Velocity() vmath.Vec2        { return a.body.Velocity }
func (a *Athlete) InitialPosition() vmath.Vec2 { return a.initial }
func (a *Athlete) Manual() bool                { return a.manual }

// State is the behaviour that will run on the next tick.
func (a *Athlete) State() AthleteState {
	return a.brain.Current()
}

// IsInState reports whether s is the active behaviour.
func (a *Athlete) IsInState(s AthleteState) bool {
	return a.brain.Current() == s
}

// StackDepth is the number of suspended plus active behaviours.
func (a *Athlete) StackDepth() int {
	return a.brain.Depth()
}

// update runs one frame: clear steering, decide, integrate.
func (a *Athlete) update(ps *PlayState, dt float64) {
	a.body.ResetSteering()
	if a.manual {
		a.followPointer(ps)
	} else {
		a.brain.Tick(ps)
	}
	a.body.Integrate(dt)
	ps.noteState(a)
}

// followPointer is the manual control path: bleed off excess speed, then
// arrive at the pointer if one has been supplied.
func (a *Athlete) followPointer(ps *PlayState) {
	t := &ps.tuning
	if a.body.Speed() > a.body.MaxSpeed*0.5 {
		a.body.Velocity = a.body.Velocity.Scale(t.ManualBrake)
	}
	if p, ok := ps.Pointer(); ok {
		a.body.ApplySteering(a.body.Arrive(p, t.ManualSlowRadius))
	}
}

// ForceCelebrateGoal drops every pending behaviour and holds CelebrateGoal.
func (a *Athlete) ForceCelebrateGoal() {
	a.brain.Reset(StateCelebrateGoal)
}

// ForcePursuePuck drops every pending behaviour and chases the puck.
func (a *Athlete) ForcePursuePuck() {
	a.brain.Reset(StatePursuePuck)
}

// ResetToIdle drops every pending behaviour and idles.
func (a *Athlete) ResetToIdle() {
	a.brain.Reset(StateIdle)
}

// PrepareForMatch sends the athlete back to its home position.
func (a *Athlete) PrepareForMatch() {
	a.brain.Reset(StateDefend)
}

// switchTo replaces the active behaviour with s.
func (a *Athlete) switchTo(s AthleteState) {
	a.brain.Replace(s)
}

func (a *Athlete) distTo(p vmath.Vec2) float64 {
	return vmath.Dist(a.body.Position, p)
}

// faceTowards points the athlete at p with a token velocity.
func (a *Athlete) faceTowards(p vmath.Vec2, speed float64) {
	if dir := p.Sub(a.body.Position); !dir.IsZero() {
		a.body.Velocity = dir.Normalize().Scale(speed)
	}
}

// carrierAhead reports whether carrier is at least as close to the opponent
// goal as this athlete is.
func (a *Athlete) carrierAhead(ps *PlayState, carrier *Athlete) bool {
	goal := ps.OpponentGoalPosition(a.team)
	return vmath.Dist(goal, carrier.body.Position) <= vmath.Dist(goal, a.body.Position)
}

// supportPosition is a spot beside and ahead of the carrier toward the
// opponent goal.
func (a *Athlete) supportPosition(ps *PlayState, carrier *Athlete) vmath.Vec2 {
	t := &ps.tuning
	toGoal := ps.OpponentGoalPosition(a.team).Sub(carrier.body.Position).Normalize()
	side := vmath.V(-t.SupportSide, 0)
	if a.team == TeamRight {
		side = vmath.V(t.SupportSide, 0)
	}
	return carrier.body.Position.Add(toGoal.Scale(t.SupportAhead)).Add(side)
}

func (a *Athlete) String() string {
	return fmt.Sprintf("%s[%s %s %s]", a.label, a.role, a.State(), a.body.Position)
}
