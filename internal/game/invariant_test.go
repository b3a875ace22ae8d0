package game

import (
	"testing"
)

// --- Invariant helpers ---

// checkFrame verifies the per-frame match invariants and returns the score
// so callers can check it never goes backwards.
func checkFrame(t *testing.T, ts *TestSim, prevLeft, prevRight int) (int, int) {
	t.Helper()
	ps := ts.PS
	tu := ps.Tuning()
	rink := ps.Rink()

	for _, a := range ps.Roster() {
		p := a.Position()
		if p.X() < tu.AthleteMargin || p.X() > rink.Width-tu.AthleteMargin ||
			p.Y() < tu.AthleteMargin || p.Y() > rink.Height-tu.AthleteMargin {
			t.Fatalf("T=%d %s outside the boards at %s", ps.Tick(), a.Label(), p)
		}
		if speed := a.body.Speed(); speed > a.body.MaxSpeed+1e-6 {
			t.Fatalf("T=%d %s at %.3f over its cap %.1f", ps.Tick(), a.Label(), speed, a.body.MaxSpeed)
		}
		if ps.Frozen() && !a.IsInState(StateCelebrateGoal) {
			t.Fatalf("T=%d %s is %s during a freeze", ps.Tick(), a.Label(), a.State())
		}
	}

	puck := ps.Puck()
	if p := puck.Position; p.X() < tu.PuckMargin || p.X() > rink.Width-tu.PuckMargin ||
		p.Y() < tu.PuckMargin || p.Y() > rink.Height-tu.PuckMargin {
		t.Fatalf("T=%d puck outside the boards at %s", ps.Tick(), p)
	}
	if owner := puck.Owner(); owner != nil {
		found := false
		for _, a := range ps.Roster() {
			if a == owner {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("T=%d puck owner %s is not on the roster", ps.Tick(), owner.Label())
		}
		if !puck.Velocity.IsZero() {
			t.Fatalf("T=%d carried puck is moving on its own: %s", ps.Tick(), puck.Velocity)
		}
	}

	carriers := 0
	for _, av := range ps.Snapshot().Athletes {
		if av.Carrier {
			carriers++
		}
	}
	if carriers > 1 {
		t.Fatalf("T=%d %d athletes carry the puck", ps.Tick(), carriers)
	}

	left, right := ps.Score()
	if left < prevLeft || right < prevRight {
		t.Fatalf("T=%d score went backwards: %d-%d → %d-%d", ps.Tick(), prevLeft, prevRight, left, right)
	}
	return left, right
}

// --- Invariants over long runs ---

func TestInvariant_LongRunHoldsEveryFrame(t *testing.T) {
	for _, seed := range []int64{1, 7, 42} {
		ts, err := NewTestSim(WithPlay(WithSeed(seed)))
		if err != nil {
			t.Fatalf("seed %d: NewTestSim: %v", seed, err)
		}
		left, right := 0, 0
		for i := 0; i < 3000; i++ {
			ts.RunTicks(1)
			left, right = checkFrame(t, ts, left, right)
		}
		t.Logf("seed %d: %s", seed, ts.Reporter.FormatLatest())
	}
}

func TestInvariant_ManualCaptainRun(t *testing.T) {
	ts, err := NewTestSim(WithManualPlayer(), WithPlay(WithSeed(3)))
	if err != nil {
		t.Fatalf("NewTestSim: %v", err)
	}
	rink := ts.PS.Rink()
	left, right := 0, 0
	for i := 0; i < 1200; i++ {
		// Sweep the pointer along the rink so the captain keeps skating.
		ts.SetPointer(rink.Center().Add(rink.Center().Sub(ts.PS.Puck().Position)))
		if i%90 == 0 {
			ts.Strike(ts.PS.RightGoal().Position)
		}
		ts.RunTicks(1)
		left, right = checkFrame(t, ts, left, right)
	}
}

func TestInvariant_GoalsMatchLog(t *testing.T) {
	ts, err := NewTestSim(WithPlay(WithSeed(11)))
	if err != nil {
		t.Fatalf("NewTestSim: %v", err)
	}
	ts.RunTicks(5000)

	left, right := ts.PS.Score()
	logged := ts.SimLog.CountCategory("goal", "score")
	if logged != left+right {
		t.Fatalf("expected %d goal events for a %d-%d score, got %d", left+right, left, right, logged)
	}
	// Every goal but possibly the last is followed by exactly one faceoff.
	resumes := ts.SimLog.CountCategory("match", "resume")
	if resumes != logged && resumes != logged-1 {
		t.Fatalf("expected %d or %d resume events, got %d", logged, logged-1, resumes)
	}
}

// --- Determinism ---

func TestInvariant_SameSeedSameMatch(t *testing.T) {
	run := func() *TestSim {
		ts, err := NewTestSim(WithPlay(WithSeed(9)))
		if err != nil {
			t.Fatalf("NewTestSim: %v", err)
		}
		ts.RunTicks(1500)
		return ts
	}
	a, b := run(), run()

	ea, eb := a.SimLog.Entries(), b.SimLog.Entries()
	if len(ea) != len(eb) {
		t.Fatalf("same seed produced %d vs %d log entries", len(ea), len(eb))
	}
	for i := range ea {
		if ea[i] != eb[i] {
			t.Fatalf("logs diverge at entry %d:\n  %s\n  %s", i, ea[i], eb[i])
		}
	}
	for i, av := range a.PS.Snapshot().Athletes {
		bv := b.PS.Snapshot().Athletes[i]
		if av.Position != bv.Position || av.State != bv.State {
			t.Fatalf("%s diverged: %s %s vs %s %s", av.Label, av.Position, av.State, bv.Position, bv.State)
		}
	}
}

func TestInvariant_DifferentSeedsDifferentFaceoffs(t *testing.T) {
	a, err := NewTestSim(WithPlay(WithSeed(1)))
	if err != nil {
		t.Fatalf("NewTestSim: %v", err)
	}
	b, err := NewTestSim(WithPlay(WithSeed(2)))
	if err != nil {
		t.Fatalf("NewTestSim: %v", err)
	}
	same := true
	for i, av := range a.PS.Snapshot().Athletes {
		if av.Position != b.PS.Snapshot().Athletes[i].Position {
			same = false
			break
		}
	}
	if same {
		t.Fatal("expected different seeds to scatter athletes differently")
	}
}
