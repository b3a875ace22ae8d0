package game

import (
	"time"

	"github.com/pkg/errors"

	"github.com/Garsondee/Rink-Sense/internal/vmath"
)

// simEpoch is where every TestSim clock starts, so runs are repeatable.
var simEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// TestSim is a headless match harness for tests and batch tools. It drives a
// PlayState on a ManualClock that advances exactly one frame per tick, so the
// celebration freeze is measured in ticks rather than wall time.
type TestSim struct {
	PS       *PlayState
	SimLog   *SimLog
	Clock    *ManualClock
	Reporter *MatchReporter

	play       []Option
	placements []placement
	puckAt     *vmath.Vec2
	manual     bool
}

type placement struct {
	team Team
	slot int
	pos  vmath.Vec2
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // play-state options and logging; applied first
	simOptPlace                      // athlete and puck placement; applied after rosters exist
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithPlay forwards PlayState options (seed, rink, tuning, team sizes).
func WithPlay(opts ...Option) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.play = append(ts.play, opts...)
	}}
}

// WithVerbose enables per-tick position logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.SimLog = NewSimLog(v)
	}}
}

// WithManualPlayer leaves the left captain under pointer control. TestSim
// runs every athlete autonomously otherwise.
func WithManualPlayer() SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.manual = true
	}}
}

// WithAthleteAt puts team's athlete in slot at (x,y) and makes that its home
// position.
func WithAthleteAt(team Team, slot int, x, y float64) SimOption {
	return SimOption{simOptPlace, func(ts *TestSim) {
		ts.placements = append(ts.placements, placement{team: team, slot: slot, pos: vmath.V(x, y)})
	}}
}

// WithPuckAt drops a free, motionless puck at (x,y).
func WithPuckAt(x, y float64) SimOption {
	return SimOption{simOptPlace, func(ts *TestSim) {
		p := vmath.V(x, y)
		ts.puckAt = &p
	}}
}

// NewTestSim constructs a TestSim in two ordered passes:
//  1. Infrastructure (play options, logging), then the PlayState itself
//  2. Placement of athletes and puck
func NewTestSim(opts ...SimOption) (*TestSim, error) {
	ts := &TestSim{
		SimLog: NewSimLog(false),
		Clock:  NewManualClock(simEpoch),
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}

	base := []Option{WithSeed(1), WithClock(ts.Clock), WithSimLog(ts.SimLog), WithManualLeftCaptain(ts.manual)}
	ps, err := NewPlayState(append(base, ts.play...)...)
	if err != nil {
		return nil, errors.Wrap(err, "test sim")
	}
	ts.PS = ps
	ts.Reporter = NewMatchReporter(0, 0)

	for _, o := range opts {
		if o.kind == simOptPlace {
			o.fn(ts)
		}
	}
	for _, p := range ts.placements {
		a := ts.Athlete(p.team, p.slot)
		if a == nil {
			return nil, errors.Wrapf(ErrInvalidRoster, "no %s athlete in slot %d", p.team, p.slot)
		}
		a.body.Position = p.pos
		a.body.Velocity = vmath.Zero
		a.initial = p.pos
	}
	if ts.puckAt != nil {
		ts.PS.PlacePuck(*ts.puckAt)
	}
	return ts, nil
}

// Athlete returns team's athlete in slot, or nil.
func (ts *TestSim) Athlete(team Team, slot int) *Athlete {
	members := ts.PS.Team(team)
	if slot < 0 || slot >= len(members) {
		return nil
	}
	return members[slot]
}

// Move teleports a without touching its home position.
func (ts *TestSim) Move(a *Athlete, x, y float64) {
	a.body.Position = vmath.V(x, y)
	a.body.Velocity = vmath.Zero
}

// RunTicks advances the match n ticks.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.step()
	}
}

// RunUntil advances the match up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.step()
		if predicate(ts) {
			return ts.PS.Tick()
		}
	}
	return -1
}

// step mirrors the windowed driver: advance the clock one frame, update,
// observe.
func (ts *TestSim) step() {
	ts.Clock.Advance(ts.PS.tuning.frameDuration())
	ts.PS.Update()
	ts.Reporter.Observe(ts.PS)
}

// CurrentTick returns the number of updates run so far.
func (ts *TestSim) CurrentTick() int {
	return ts.PS.Tick()
}

// Summary returns the SimLog summary of the current match state.
func (ts *TestSim) Summary() string {
	return ts.SimLog.Summary(ts.PS)
}

// The input collaborator surface, so scripted scenarios can drive a TestSim.

func (ts *TestSim) SetPointer(p vmath.Vec2) { ts.PS.SetPointer(p) }
func (ts *TestSim) RandomizePositions()     { ts.PS.RandomizePositions() }
func (ts *TestSim) ResetMatch() error       { return ts.PS.ResetMatch() }
func (ts *TestSim) SetManual(on bool)       { ts.PS.SetManual(on) }
func (ts *TestSim) PlacePuck(p vmath.Vec2)  { ts.PS.PlacePuck(p) }
func (ts *TestSim) Score() (int, int)       { return ts.PS.Score() }

// Strike behaves like a click: it only fires when the pointer-controlled
// athlete carries the puck. Without a manual athlete the carrier shoots.
func (ts *TestSim) Strike(p vmath.Vec2) {
	if ts.PS.ManualAthlete() != nil {
		ts.PS.HandleClick(p)
		return
	}
	if !ts.PS.Puck().Free() {
		ts.PS.StrikePuck(p)
	}
}
