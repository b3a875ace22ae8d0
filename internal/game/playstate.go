package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"github.com/Garsondee/Rink-Sense/internal/kinetic"
	"github.com/Garsondee/Rink-Sense/internal/vmath"
)

const (
	defaultRinkWidth  = 1200
	defaultRinkHeight = 700

	controlLabelManual = "Player Control"
	controlLabelAI     = "AI Control"
)

// PlayState owns the rink, both rosters, the puck and both goals, and runs
// the fixed-order frame update. It is single-threaded: Update must return
// before the next call.
type PlayState struct {
	tuning Tuning
	rink   Rink
	puck   *Puck
	left   []*Athlete
	right  []*Athlete
	roster []*Athlete // left then right; iteration order for every pass

	leftGoal  *Goal
	rightGoal *Goal

	frozen      bool
	epoch       uint64 // bumped by every reset; stale continuations compare against it
	celebration celebration
	clock       Clock

	rng        *rand.Rand
	pointer    vmath.Vec2
	hasPointer bool
	manualLead bool // left captain starts under pointer control
	tick       int

	index    *spatialIndex
	SimLog   *SimLog
	plays    *PlayByPlay

	onScore   func(left, right int)
	onControl func(label string)
}

// Option configures a PlayState before its rosters are built.
type Option func(*PlayState)

// WithRink sets the rink size.
func WithRink(w, h float64) Option {
	return func(ps *PlayState) { ps.rink = Rink{Width: w, Height: h} }
}

// WithSeed makes every random draw (spawns, puck transfers) reproducible.
func WithSeed(seed int64) Option {
	return func(ps *PlayState) {
		ps.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- gameplay only
	}
}

// WithTeamSizes sets the roster sizes. Both must be positive.
func WithTeamSizes(left, right int) Option {
	return func(ps *PlayState) {
		ps.tuning.LeftTeamSize = left
		ps.tuning.RightTeamSize = right
	}
}

// WithTuning replaces all gameplay constants.
func WithTuning(t Tuning) Option {
	return func(ps *PlayState) { ps.tuning = t }
}

// WithClock sets the clock the post-goal freeze is measured on.
func WithClock(c Clock) Option {
	return func(ps *PlayState) { ps.clock = c }
}

// WithManualLeftCaptain puts the first left athlete under pointer control.
func WithManualLeftCaptain(on bool) Option {
	return func(ps *PlayState) { ps.manualLead = on }
}

// WithSimLog routes structured events to sl.
func WithSimLog(sl *SimLog) Option {
	return func(ps *PlayState) { ps.SimLog = sl }
}

// WithPlayByPlay routes match commentary to pb.
func WithPlayByPlay(pb *PlayByPlay) Option {
	return func(ps *PlayState) { ps.plays = pb }
}

// NewPlayState builds a match ready for its first Update. Empty teams and
// degenerate geometry are rejected here; nothing fails after setup.
func NewPlayState(opts ...Option) (*PlayState, error) {
	ps := &PlayState{
		tuning:     DefaultTuning(),
		rink:       Rink{Width: defaultRinkWidth, Height: defaultRinkHeight},
		clock:      wallClock{},
		manualLead: true,
		index:      newSpatialIndex(),
		SimLog:     NewSimLog(false),
	}
	for _, o := range opts {
		o(ps)
	}
	if ps.rng == nil {
		ps.rng = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- gameplay only
	}
	if err := ps.initialize(); err != nil {
		return nil, errors.Wrap(err, "new play state")
	}
	return ps, nil
}

// initialize (re)creates rink furniture and rosters, then shuffles a faceoff.
func (ps *PlayState) initialize() error {
	if err := ps.tuning.validate(); err != nil {
		return err
	}
	rink, err := newRink(ps.rink.Width, ps.rink.Height)
	if err != nil {
		return err
	}
	ps.rink = rink
	t := &ps.tuning

	ps.leftGoal = &Goal{Position: vmath.V(t.GoalInset, rink.Height/2), Width: t.GoalWidth, Height: t.GoalHeight, Team: TeamLeft}
	ps.rightGoal = &Goal{Position: vmath.V(rink.Width-t.GoalInset, rink.Height/2), Width: t.GoalWidth, Height: t.GoalHeight, Team: TeamRight}
	ps.puck = newPuck(rink.Center(), t.PuckRadius)

	if ps.left, err = ps.createTeam(TeamLeft, t.LeftTeamSize, 0); err != nil {
		return err
	}
	if ps.right, err = ps.createTeam(TeamRight, t.RightTeamSize, len(ps.left)); err != nil {
		return err
	}
	ps.roster = append(append([]*Athlete{}, ps.left...), ps.right...)
	ps.left[0].manual = ps.manualLead

	ps.RandomizePositions()
	return nil
}

// createTeam lines a team up on its home line, evenly spaced top to bottom.
func (ps *PlayState) createTeam(team Team, size, firstID int) ([]*Athlete, error) {
	if size <= 0 {
		return nil, errors.Wrapf(ErrInvalidRoster, "%s team has %d athletes", team, size)
	}
	x := ps.tuning.RosterInset
	if team == TeamRight {
		x = ps.rink.Width - ps.tuning.RosterInset
	}
	out := make([]*Athlete, 0, size)
	for i := 0; i < size; i++ {
		y := ps.rink.Height / float64(size+1) * float64(i+1)
		a, err := newAthlete(firstID+i, i, team, vmath.V(x, y), ps.tuning)
		if err != nil {
			return nil, errors.Wrapf(err, "%s athlete %d", team, i)
		}
		out = append(out, a)
	}
	return out, nil
}

// Update advances the match one frame. Order is fixed: athletes, puck,
// pickups, athlete contacts, goal check, boundary clamp. A frame on which the
// post-goal freeze expires is spent on the faceoff reset instead.
func (ps *PlayState) Update() {
	ps.tick++
	if ps.frozen && ps.celebration.due(ps.epoch, ps.clock.Now()) {
		ps.resumeAfterGoal()
		return
	}

	dt := ps.tuning.FrameStep
	for _, a := range ps.roster {
		a.update(ps, dt)
	}
	ps.puck.update(dt, ps.tuning.PuckAhead, ps.tuning.PuckFriction)

	ps.index.rebuild(ps.roster)
	if !ps.frozen {
		ps.resolvePickup()
	}
	ps.resolveContacts()
	if !ps.frozen {
		ps.checkGoal()
	}
	ps.applyRinkConstraints()
	ps.logPositions()
	ps.notifyControl()
}

// checkGoal scores a puck that has crossed into either net.
func (ps *PlayState) checkGoal() {
	var scorer *Goal
	switch {
	case ps.leftGoal.Contains(ps.puck.Position):
		scorer = ps.rightGoal
	case ps.rightGoal.Contains(ps.puck.Position):
		scorer = ps.leftGoal
	default:
		return
	}
	scorer.Score++
	ps.SimLog.Add(ps.tick, "--", scorer.Team.String(), "goal", "score",
		fmt.Sprintf("%s scores %d-%d", scorer.Team, ps.leftGoal.Score, ps.rightGoal.Score), float64(scorer.Score))
	ps.narrate(nil, scorer.Team, PlayGoal, fmt.Sprintf("%s scores! %d-%d", scorer.Team, ps.leftGoal.Score, ps.rightGoal.Score))
	ps.startCelebration()
	if ps.onScore != nil {
		ps.onScore(ps.leftGoal.Score, ps.rightGoal.Score)
	}
}

// startCelebration forces every athlete into CelebrateGoal and freezes the
// world until the celebration deadline.
func (ps *PlayState) startCelebration() {
	for _, a := range ps.roster {
		a.ForceCelebrateGoal()
		a.body.Velocity = vmath.Zero
		ps.noteState(a)
	}
	ps.frozen = true
	ps.celebration.schedule(ps.epoch, ps.clock.Now().Add(ps.tuning.CelebrationDuration))
	ps.SimLog.Add(ps.tick, "--", "--", "match", "freeze", ps.tuning.CelebrationDuration.String(), ps.tuning.CelebrationDuration.Seconds())
}

// resumeAfterGoal is the freeze continuation: unfreeze, idle everyone and
// set up a fresh faceoff.
func (ps *PlayState) resumeAfterGoal() {
	ps.celebration.cancel()
	ps.frozen = false
	ps.SimLog.Add(ps.tick, "--", "--", "match", "resume", "faceoff", 0)
	ps.RandomizePositions()
	ps.narrate(nil, TeamLeft, PlayFaceoff, "faceoff at centre ice")
}

// RandomizePositions re-centres the puck and scatters each team inside its
// own half near the centre line. Any pending celebration is superseded.
func (ps *PlayState) RandomizePositions() {
	ps.supersedeRound()
	ps.puck.recenter(ps.rink.Center())

	t := &ps.tuning
	half := ps.rink.Width / 2
	depth := minFloat(t.SpawnDepth, half)
	bandLo := ps.rink.Height * (1 - t.SpawnBandFrac) / 2
	bandHi := ps.rink.Height - bandLo

	for _, a := range ps.roster {
		minX := half - depth
		if a.team == TeamRight {
			minX = half
		}
		x := minX + ps.rng.Float64()*depth
		y := bandLo + ps.rng.Float64()*(bandHi-bandLo)
		a.body.Position = vmath.V(x, y)
		a.body.Velocity = vmath.Zero
		a.body.ResetSteering()
		a.ResetToIdle()
		ps.noteState(a)
	}
	ps.SimLog.Add(ps.tick, "--", "--", "match", "randomize", ps.puck.Position.String(), 0)
}

// ResetMatch clears the score and rebuilds the whole match from scratch.
func (ps *PlayState) ResetMatch() error {
	ps.supersedeRound()
	if err := ps.initialize(); err != nil {
		return errors.Wrap(err, "reset match")
	}
	ps.SimLog.Add(ps.tick, "--", "--", "match", "reset", "0-0", 0)
	ps.narrate(nil, TeamLeft, PlayReset, "new match 0-0")
	if ps.onScore != nil {
		ps.onScore(0, 0)
	}
	return nil
}

// FreezeLeft is how long the current goal freeze still has to run, zero when
// play is live.
func (ps *PlayState) FreezeLeft() time.Duration {
	if !ps.frozen || !ps.celebration.pending {
		return 0
	}
	if left := ps.celebration.deadline.Sub(ps.clock.Now()); left > 0 {
		return left
	}
	return 0
}

// supersedeRound invalidates any pending celebration and lifts the freeze.
func (ps *PlayState) supersedeRound() {
	ps.epoch++
	ps.celebration.cancel()
	ps.frozen = false
}

// applyRinkConstraints keeps athletes and puck inside the boards.
func (ps *PlayState) applyRinkConstraints() {
	for _, a := range ps.roster {
		a.body.Position = ps.rink.Clamp(a.body.Position, ps.tuning.AthleteMargin)
	}
	ps.puck.Position = ps.rink.Clamp(ps.puck.Position, ps.tuning.PuckMargin)
}

// --- Input collaborator ---

// SetPointer records the pointer position used by the manual athlete and by
// strikes.
func (ps *PlayState) SetPointer(p vmath.Vec2) {
	ps.pointer = p
	ps.hasPointer = true
}

// Pointer returns the last pointer position, if any.
func (ps *PlayState) Pointer() (vmath.Vec2, bool) {
	return ps.pointer, ps.hasPointer
}

// HandleClick strikes toward p when the manually controlled athlete carries
// the puck and play is live. Returns whether a strike happened.
func (ps *PlayState) HandleClick(p vmath.Vec2) bool {
	ps.SetPointer(p)
	player := ps.ManualAthlete()
	if ps.frozen || player == nil || ps.puck.Owner() != player {
		return false
	}
	return ps.StrikePuck(p)
}

// StrikePuck snaps the puck ahead of its carrier, releases it and sends it
// toward dest at strike speed. A free puck is struck from where it lies.
func (ps *PlayState) StrikePuck(dest vmath.Vec2) bool {
	carrier := ps.puck.Owner()
	ps.puck.strike(dest, ps.tuning.PuckAhead, ps.tuning.StrikeSpeed)
	label := "--"
	team := "--"
	if carrier != nil {
		label = carrier.label
		team = carrier.team.String()
	}
	ps.SimLog.Add(ps.tick, label, team, "puck", "strike", dest.String(), ps.tuning.StrikeSpeed)
	if carrier != nil {
		ps.narrate(carrier, carrier.team, PlayShot, fmt.Sprintf("shoots toward (%.0f,%.0f)", dest.X(), dest.Y()))
	}
	return true
}

// SetManual switches the left captain between pointer and autonomous control.
func (ps *PlayState) SetManual(on bool) {
	ps.manualLead = on
	if len(ps.left) > 0 {
		ps.left[0].manual = on
	}
}

// ManualAthlete returns the pointer-controlled athlete, or nil.
func (ps *PlayState) ManualAthlete() *Athlete {
	for _, a := range ps.left {
		if a.manual {
			return a
		}
	}
	return nil
}

// PlacePuck drops a free, motionless puck at p.
func (ps *PlayState) PlacePuck(p vmath.Vec2) {
	ps.puck.recenter(p)
}

// OnScoreChanged registers fn to be told about every score change.
func (ps *PlayState) OnScoreChanged(fn func(left, right int)) {
	ps.onScore = fn
}

// OnControlChanged registers fn to receive the control label every frame.
func (ps *PlayState) OnControlChanged(fn func(label string)) {
	ps.onControl = fn
}

func (ps *PlayState) notifyControl() {
	if ps.onControl != nil {
		ps.onControl(ps.ControlLabel())
	}
}

// ControlLabel names who drives the left captain.
func (ps *PlayState) ControlLabel() string {
	if len(ps.left) > 0 && ps.left[0].manual {
		return controlLabelManual
	}
	return controlLabelAI
}

// --- World queries used by behaviours ---

func (ps *PlayState) Frozen() bool        { return ps.frozen }
func (ps *PlayState) Tick() int           { return ps.tick }
func (ps *PlayState) Rink() Rink          { return ps.rink }
func (ps *PlayState) Puck() *Puck         { return ps.puck }
func (ps *PlayState) Roster() []*Athlete  { return ps.roster }
func (ps *PlayState) Tuning() Tuning      { return ps.tuning }
func (ps *PlayState) LeftGoal() *Goal     { return ps.leftGoal }
func (ps *PlayState) RightGoal() *Goal    { return ps.rightGoal }
func (ps *PlayState) Score() (int, int)   { return ps.leftGoal.Score, ps.rightGoal.Score }
func (ps *PlayState) PuckOwner() *Athlete { return ps.puck.owner }

// Team returns the roster of team.
func (ps *PlayState) Team(team Team) []*Athlete {
	if team == TeamLeft {
		return ps.left
	}
	return ps.right
}

// TeamHasPuck reports whether team's athlete carries the puck.
func (ps *PlayState) TeamHasPuck(team Team) bool {
	return ps.puck.owner != nil && ps.puck.owner.team == team
}

// OpponentGoalPosition is the net team attacks.
func (ps *PlayState) OpponentGoalPosition(team Team) vmath.Vec2 {
	if team == TeamLeft {
		return ps.rightGoal.Position
	}
	return ps.leftGoal.Position
}

// possessionState picks Attack or StealPuck for a carried puck.
func (ps *PlayState) possessionState(team Team) AthleteState {
	if ps.TeamHasPuck(team) {
		return StateAttack
	}
	return StateStealPuck
}

// ClosestToPuck returns team's athlete nearest the puck; ties go to the
// earlier roster slot.
func (ps *PlayState) ClosestToPuck(team Team) *Athlete {
	var best *Athlete
	bestDist := 0.0
	for _, a := range ps.Team(team) {
		d := vmath.Dist(a.body.Position, ps.puck.Position)
		if best == nil || d < bestDist {
			best, bestDist = a, d
		}
	}
	return best
}

// IsClosestToPuck reports whether a is its team's closest athlete.
func (ps *PlayState) IsClosestToPuck(a *Athlete) bool {
	return ps.ClosestToPuck(a.team) == a
}

// ShouldPursuePuck selects pursuers of a free puck: the closest athlete; any
// athlete in reach when the closest is far off; or anyone near it when no
// teammate is already chasing.
func (ps *PlayState) ShouldPursuePuck(a *Athlete) bool {
	t := &ps.tuning
	closest := ps.ClosestToPuck(a.team)
	if closest == a {
		return true
	}
	mine := a.distTo(ps.puck.Position)
	if closest != nil && closest.distTo(ps.puck.Position) > t.PursueFallbackGap && mine < t.PursueFallbackReach {
		return true
	}
	return !ps.anyonePursuing(a.team) && mine < t.PursueSoloRange
}

func (ps *PlayState) anyonePursuing(team Team) bool {
	for _, a := range ps.Team(team) {
		if a.IsInState(StatePursuePuck) {
			return true
		}
	}
	return false
}

// teammateBodies lists a's team, a included; steering skips the self entry.
func (ps *PlayState) teammateBodies(a *Athlete) []*kinetic.Body {
	return bodiesOf(ps.Team(a.team))
}

func (ps *PlayState) opponentBodies(team Team) []*kinetic.Body {
	return bodiesOf(ps.Team(team.Opponent()))
}

func bodiesOf(as []*Athlete) []*kinetic.Body {
	out := make([]*kinetic.Body, len(as))
	for i, a := range as {
		out[i] = a.body
	}
	return out
}

// AthleteNear returns the first athlete in roster order within radius of p.
func (ps *PlayState) AthleteNear(p vmath.Vec2, radius float64) *Athlete {
	ps.index.rebuild(ps.roster)
	if hits := ps.index.within(p, radius); len(hits) > 0 {
		return ps.roster[hits[0]]
	}
	return nil
}

// --- Logging ---

// noteState logs a behaviour change since the last report for a.
func (ps *PlayState) noteState(a *Athlete) {
	cur := a.State()
	if cur == a.lastState {
		return
	}
	ps.SimLog.Add(ps.tick, a.label, a.team.String(), "state", "change",
		fmt.Sprintf("%s → %s", a.lastState, cur), 0)
	a.lastState = cur
}

func (ps *PlayState) logPositions() {
	if !ps.SimLog.Verbose() {
		return
	}
	for _, a := range ps.roster {
		ps.SimLog.AddVerbose(ps.tick, a.label, a.team.String(), "move", "position", a.body.Position.String(), a.body.Speed())
	}
	ps.SimLog.AddVerbose(ps.tick, "--", "--", "puck", "position", ps.puck.Position.String(), ps.puck.Velocity.Len())
}

// narrate posts a commentary line when a play-by-play feed is attached.
func (ps *PlayState) narrate(a *Athlete, team Team, kind PlayKind, msg string) {
	if ps.plays == nil {
		return
	}
	label := "--"
	if a != nil {
		label = a.label
	}
	ps.plays.Add(ps.tick, label, team, kind, msg)
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
