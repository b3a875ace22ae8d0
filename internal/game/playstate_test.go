package game

import (
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/Garsondee/Rink-Sense/internal/vmath"
)

func TestNewPlayState_Defaults(t *testing.T) {
	ps, err := NewPlayState(WithSeed(1))
	if err != nil {
		t.Fatalf("NewPlayState: %v", err)
	}
	if len(ps.Team(TeamLeft)) != 5 || len(ps.Team(TeamRight)) != 6 || len(ps.Roster()) != 11 {
		t.Fatalf("expected 5v6, got %dv%d", len(ps.Team(TeamLeft)), len(ps.Team(TeamRight)))
	}
	if ps.Rink().Width != 1200 || ps.Rink().Height != 700 {
		t.Fatalf("expected a 1200x700 rink, got %vx%v", ps.Rink().Width, ps.Rink().Height)
	}
	if ps.ControlLabel() != "Player Control" || ps.ManualAthlete() != ps.Team(TeamLeft)[0] {
		t.Fatal("expected the left captain under pointer control by default")
	}
	if ps.LeftGoal().Position != vmath.V(5, 350) || ps.RightGoal().Position != vmath.V(1195, 350) {
		t.Fatalf("unexpected goal positions %s %s", ps.LeftGoal().Position, ps.RightGoal().Position)
	}
	if ps.Puck().Position != ps.Rink().Center() || !ps.Puck().Free() {
		t.Fatal("expected a free puck on the faceoff spot")
	}
	if ps.Frozen() || ps.Tick() != 0 {
		t.Fatal("expected a live match at tick 0")
	}
}

func TestNewPlayState_RosterLayout(t *testing.T) {
	ps, err := NewPlayState(WithSeed(1))
	if err != nil {
		t.Fatalf("NewPlayState: %v", err)
	}
	wantRoles := []Role{RoleForward, RoleForward, RoleNeutral, RoleNeutral, RoleDefender, RoleDefender}
	for i, a := range ps.Team(TeamRight) {
		if a.Role() != wantRoles[i] {
			t.Fatalf("R%d: expected %s, got %s", i, wantRoles[i], a.Role())
		}
		home := a.InitialPosition()
		if home.X() != 1000 || home.Y() != 700.0/7*float64(i+1) {
			t.Fatalf("%s: unexpected home %s", a.Label(), home)
		}
	}
	if got := ps.Team(TeamLeft)[3].Label(); got != "L3" {
		t.Fatalf("expected label L3, got %s", got)
	}
	if got := ps.Team(TeamRight)[0].ID(); got != 5 {
		t.Fatalf("expected right ids to follow left ids, got %d", got)
	}
}

func TestNewPlayState_FaceoffSpawnsInOwnHalf(t *testing.T) {
	ps, err := NewPlayState(WithSeed(5))
	if err != nil {
		t.Fatalf("NewPlayState: %v", err)
	}
	half := ps.Rink().Width / 2
	depth := ps.Tuning().SpawnDepth
	for _, a := range ps.Roster() {
		p := a.Position()
		if a.Team() == TeamLeft && (p.X() < half-depth || p.X() >= half) {
			t.Fatalf("%s spawned at %s, outside [%v,%v)", a.Label(), p, half-depth, half)
		}
		if a.Team() == TeamRight && (p.X() < half || p.X() >= half+depth) {
			t.Fatalf("%s spawned at %s, outside [%v,%v)", a.Label(), p, half, half+depth)
		}
		if p.Y() < 209.9 || p.Y() > 490.1 {
			t.Fatalf("%s spawned at %s, outside the central band", a.Label(), p)
		}
		if !a.IsInState(StateIdle) {
			t.Fatalf("%s starts in %s", a.Label(), a.State())
		}
	}
}

func TestNewPlayState_RejectsEmptyTeams(t *testing.T) {
	for _, sizes := range [][2]int{{0, 3}, {3, 0}, {-1, 1}} {
		_, err := NewPlayState(WithTeamSizes(sizes[0], sizes[1]))
		if !errors.Is(err, ErrInvalidRoster) {
			t.Fatalf("sizes %v: expected ErrInvalidRoster, got %v", sizes, err)
		}
	}
	if _, err := NewTestSim(WithPlay(WithTeamSizes(0, 0))); !errors.Is(err, ErrInvalidRoster) {
		t.Fatalf("expected ErrInvalidRoster through TestSim, got %v", err)
	}
}

func TestNewPlayState_RejectsBadGeometry(t *testing.T) {
	if _, err := NewPlayState(WithRink(0, 700)); err == nil {
		t.Fatal("expected an error for a zero-width rink")
	}
	tu := DefaultTuning()
	tu.AthleteMass = 0
	if _, err := NewPlayState(WithTuning(tu)); err == nil {
		t.Fatal("expected an error for massless athletes")
	}
}

func TestResetMatch_RebuildsRosters(t *testing.T) {
	ts, err := NewTestSim(WithPlay(WithSeed(4)))
	if err != nil {
		t.Fatalf("NewTestSim: %v", err)
	}
	ts.RunTicks(300)
	old := ts.Athlete(TeamLeft, 0)
	var scored []int
	ts.PS.OnScoreChanged(func(l, r int) { scored = append(scored, l, r) })

	if err := ts.ResetMatch(); err != nil {
		t.Fatalf("ResetMatch: %v", err)
	}
	if ts.Athlete(TeamLeft, 0) == old {
		t.Fatal("expected fresh athletes after a reset")
	}
	if len(scored) != 2 || scored[0] != 0 || scored[1] != 0 {
		t.Fatalf("expected one (0,0) score notification, got %v", scored)
	}
	if !ts.PS.Puck().Free() || ts.PS.Puck().Position != ts.PS.Rink().Center() {
		t.Fatal("expected a free puck at centre after reset")
	}
}

func TestPursuerSelection(t *testing.T) {
	ts, err := NewTestSim(
		WithPlay(WithTeamSizes(1, 3)),
		WithAthleteAt(TeamLeft, 0, 100, 100),
		WithAthleteAt(TeamRight, 0, 600, 300),
		WithAthleteAt(TeamRight, 1, 600, 420),
		WithAthleteAt(TeamRight, 2, 750, 350),
		WithPuckAt(600, 350),
	)
	if err != nil {
		t.Fatalf("NewTestSim: %v", err)
	}
	r0, r1, r2 := ts.Athlete(TeamRight, 0), ts.Athlete(TeamRight, 1), ts.Athlete(TeamRight, 2)

	if ts.PS.ClosestToPuck(TeamRight) != r0 || !ts.PS.IsClosestToPuck(r0) {
		t.Fatal("expected R0 closest to the puck")
	}
	if !ts.PS.ShouldPursuePuck(r0) {
		t.Fatal("the closest athlete always pursues")
	}
	if !ts.PS.ShouldPursuePuck(r1) {
		t.Fatal("expected R1 to chase while nobody is pursuing and it is near")
	}
	if ts.PS.ShouldPursuePuck(r2) {
		t.Fatal("expected R2 to hold: closest is near and R2 is out of solo range")
	}

	r0.ForcePursuePuck()
	if ts.PS.ShouldPursuePuck(r1) {
		t.Fatal("expected R1 to hold once R0 is pursuing")
	}

	// The closest teammate is far off: anyone within reach may chase.
	ts.Move(r0, 600, 100)
	ts.Move(r1, 600, 560)
	if ts.PS.ClosestToPuck(TeamRight) != r2 {
		t.Fatal("expected R2 closest after moving R0 and R1")
	}
	ts.Move(r2, 600, 460)
	if !ts.PS.ShouldPursuePuck(r1) {
		t.Fatal("expected R1 in fallback reach of a distant closest teammate")
	}
}

func TestClosestToPuck_TieGoesToEarlierSlot(t *testing.T) {
	ts, err := NewTestSim(
		WithPlay(WithTeamSizes(1, 2)),
		WithAthleteAt(TeamRight, 0, 600, 300),
		WithAthleteAt(TeamRight, 1, 600, 400),
		WithPuckAt(600, 350),
	)
	if err != nil {
		t.Fatalf("NewTestSim: %v", err)
	}
	if ts.PS.ClosestToPuck(TeamRight) != ts.Athlete(TeamRight, 0) {
		t.Fatal("expected the tie to go to R0")
	}
}

func TestAthleteNear(t *testing.T) {
	ts, err := NewTestSim(
		WithPlay(WithTeamSizes(1, 1)),
		WithAthleteAt(TeamLeft, 0, 100, 100),
		WithAthleteAt(TeamRight, 0, 1000, 600),
	)
	if err != nil {
		t.Fatalf("NewTestSim: %v", err)
	}
	if got := ts.PS.AthleteNear(vmath.V(108, 100), 16); got != ts.Athlete(TeamLeft, 0) {
		t.Fatalf("expected L0 near the click, got %v", got)
	}
	if got := ts.PS.AthleteNear(vmath.V(600, 350), 16); got != nil {
		t.Fatalf("expected nobody at centre ice, got %v", got)
	}
}

func TestStrikePuck_FreePuck(t *testing.T) {
	ts, err := NewTestSim(WithPuckAt(600, 350))
	if err != nil {
		t.Fatalf("NewTestSim: %v", err)
	}
	ts.PS.StrikePuck(vmath.V(600, 650))
	if v := ts.PS.Puck().Velocity; v.X() != 0 || v.Y() <= 0 {
		t.Fatalf("expected the free puck to slide down the rink, v=%s", v)
	}
	if !ts.SimLog.HasEntry("puck", "strike", "") {
		t.Fatal("expected a strike event")
	}
}

func TestSnapshot(t *testing.T) {
	ts, err := NewTestSim(
		WithPlay(WithTeamSizes(1, 1)),
		WithAthleteAt(TeamLeft, 0, 300, 350),
		WithAthleteAt(TeamRight, 0, 1000, 100),
		WithPuckAt(310, 350),
	)
	if err != nil {
		t.Fatalf("NewTestSim: %v", err)
	}
	ts.RunTicks(1)

	snap := ts.PS.Snapshot()
	if snap.Tick != 1 || len(snap.Athletes) != 2 {
		t.Fatalf("unexpected snapshot header: tick=%d athletes=%d", snap.Tick, len(snap.Athletes))
	}
	if !snap.Athletes[0].Carrier || snap.Athletes[1].Carrier || snap.Puck.Owner != "L0" {
		t.Fatalf("expected L0 as the only carrier, got %+v", snap.Puck)
	}
	if snap.Goals[0].Team != TeamLeft || snap.Goals[1].Team != TeamRight {
		t.Fatal("expected goals in left, right order")
	}
	if snap.Control != "AI Control" {
		t.Fatalf("expected AI control in TestSim, got %q", snap.Control)
	}

	// The snapshot is a copy.
	snap.Athletes[0].Position = vmath.V(0, 0)
	if ts.Athlete(TeamLeft, 0).Position() == vmath.V(0, 0) {
		t.Fatal("snapshot shares memory with the match")
	}
}

func TestSummaryAndReportText(t *testing.T) {
	ts, err := NewTestSim(
		WithPlay(WithTeamSizes(1, 1)),
		WithAthleteAt(TeamLeft, 0, 600, 100),
		WithAthleteAt(TeamRight, 0, 700, 600),
		WithPuckAt(5, 350),
	)
	if err != nil {
		t.Fatalf("NewTestSim: %v", err)
	}
	ts.RunTicks(61)

	summary := ts.Summary()
	for _, want := range []string{"Score: left=0  right=1  frozen=true", "left states: celebrate=1", "goals=1", "last goal: T=1 right scores 0-1"} {
		if !strings.Contains(summary, want) {
			t.Fatalf("summary missing %q:\n%s", want, summary)
		}
	}

	report := MatchReportText(ts.PS, ts.Reporter, ts.Athlete(TeamLeft, 0), 120)
	for _, want := range []string{"RinkSense match report", "== SELECTED (L0 left Forward) ==", "celebrate"} {
		if !strings.Contains(report, want) {
			t.Fatalf("report missing %q:\n%s", want, report)
		}
	}
}
