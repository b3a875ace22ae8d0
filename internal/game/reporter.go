package game

import (
	"fmt"
	"strings"
)

const (
	// reportSampleTicks is how often the reporter snapshots the match (~1s at 60TPS).
	reportSampleTicks = 60
	// reportWindowTicks is the sliding window for recent-behaviour reports (~10s at 60TPS).
	reportWindowTicks = 600
)

// --- Snapshot types ---

// TeamReport captures one team's state at one point in time.
type TeamReport struct {
	Team            Team
	Score           int
	States          map[AthleteState]int
	PossessionTicks int // cumulative ticks this team has carried the puck
	AvgSpeed        float64
	InOwnHalf       int
}

// MatchReport is a full snapshot of the match at one sampled tick.
type MatchReport struct {
	Tick      int
	Left      TeamReport
	Right     TeamReport
	FreeTicks int // cumulative ticks with a free puck
	Frozen    bool
	Carrier   string // label of the puck carrier, "" when free
}

func (r *MatchReport) team(t Team) *TeamReport {
	if t == TeamLeft {
		return &r.Left
	}
	return &r.Right
}

// MatchReporter observes every tick and keeps a history of periodic
// snapshots for the HUD report and the headless batch runner.
type MatchReporter struct {
	sampleTicks int
	windowTicks int
	history     []MatchReport

	ticks      int
	possession [2]int
	freeTicks  int
	frozenTick int
}

// NewMatchReporter creates a reporter that snapshots every sampleTicks and
// summarises the last windowTicks. Non-positive values select the defaults.
func NewMatchReporter(sampleTicks, windowTicks int) *MatchReporter {
	if sampleTicks <= 0 {
		sampleTicks = reportSampleTicks
	}
	if windowTicks <= 0 {
		windowTicks = reportWindowTicks
	}
	return &MatchReporter{sampleTicks: sampleTicks, windowTicks: windowTicks}
}

// Observe tallies one tick of ps and snapshots it on sample boundaries.
func (r *MatchReporter) Observe(ps *PlayState) {
	r.ticks++
	switch owner := ps.PuckOwner(); {
	case ps.Frozen():
		r.frozenTick++
	case owner == nil:
		r.freeTicks++
	default:
		r.possession[owner.Team()]++
	}
	if r.ticks%r.sampleTicks == 0 {
		r.Collect(ps)
	}
}

// Collect takes a snapshot of ps immediately.
func (r *MatchReporter) Collect(ps *PlayState) {
	left, right := ps.Score()
	rpt := MatchReport{
		Tick:      ps.Tick(),
		Left:      TeamReport{Team: TeamLeft, Score: left, States: map[AthleteState]int{}},
		Right:     TeamReport{Team: TeamRight, Score: right, States: map[AthleteState]int{}},
		FreeTicks: r.freeTicks,
		Frozen:    ps.Frozen(),
	}
	if owner := ps.PuckOwner(); owner != nil {
		rpt.Carrier = owner.Label()
	}
	for _, team := range []Team{TeamLeft, TeamRight} {
		tr := rpt.team(team)
		tr.PossessionTicks = r.possession[team]
		members := ps.Team(team)
		for _, a := range members {
			tr.States[a.State()]++
			tr.AvgSpeed += a.body.Speed()
			if ps.Rink().InHalf(team, a.Position()) {
				tr.InOwnHalf++
			}
		}
		if len(members) > 0 {
			tr.AvgSpeed /= float64(len(members))
		}
	}
	r.history = append(r.history, rpt)
}

// Latest returns the most recent snapshot, or nil.
func (r *MatchReporter) Latest() *MatchReport {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// History returns all snapshots, oldest first.
func (r *MatchReporter) History() []MatchReport {
	return r.history
}

// Totals returns cumulative tick counts since the reporter was created.
func (r *MatchReporter) Totals() MatchTotals {
	return MatchTotals{
		Ticks:           r.ticks,
		LeftPossession:  r.possession[TeamLeft],
		RightPossession: r.possession[TeamRight],
		FreeTicks:       r.freeTicks,
		FrozenTicks:     r.frozenTick,
	}
}

// MatchTotals are cumulative counters over a whole run.
type MatchTotals struct {
	Ticks           int
	LeftPossession  int
	RightPossession int
	FreeTicks       int
	FrozenTicks     int
}

// PossessionPct returns each team's share of live (unfrozen) ticks, 0-100.
func (mt MatchTotals) PossessionPct() (left, right, free float64) {
	live := float64(mt.LeftPossession + mt.RightPossession + mt.FreeTicks)
	if live == 0 {
		return 0, 0, 0
	}
	return float64(mt.LeftPossession) / live * 100,
		float64(mt.RightPossession) / live * 100,
		float64(mt.FreeTicks) / live * 100
}

// WindowSummary aggregates the snapshots inside the recent window.
func (r *MatchReporter) WindowSummary() *WindowReport {
	if len(r.history) == 0 {
		return nil
	}

	latestTick := r.history[len(r.history)-1].Tick
	cutoff := latestTick - r.windowTicks
	var window []MatchReport
	for i := len(r.history) - 1; i >= 0; i-- {
		if r.history[i].Tick < cutoff {
			break
		}
		window = append(window, r.history[i])
	}
	if len(window) == 0 {
		return nil
	}

	n := float64(len(window))
	oldest, newest := window[len(window)-1], window[0]
	wr := &WindowReport{
		FromTick:      oldest.Tick,
		ToTick:        newest.Tick,
		SampleCount:   len(window),
		LeftStatePct:  make(map[AthleteState]float64),
		RightStatePct: make(map[AthleteState]float64),
		LeftScore:     newest.Left.Score,
		RightScore:    newest.Right.Score,
	}

	leftTotal, rightTotal := 0.0, 0.0
	for _, rpt := range window {
		for st, c := range rpt.Left.States {
			wr.LeftStatePct[st] += float64(c)
			leftTotal += float64(c)
		}
		for st, c := range rpt.Right.States {
			wr.RightStatePct[st] += float64(c)
			rightTotal += float64(c)
		}
		wr.AvgLeftSpeed += rpt.Left.AvgSpeed
		wr.AvgRightSpeed += rpt.Right.AvgSpeed
		if rpt.Frozen {
			wr.FrozenSamples++
		}
	}
	for st := range wr.LeftStatePct {
		wr.LeftStatePct[st] = wr.LeftStatePct[st] / leftTotal * 100
	}
	for st := range wr.RightStatePct {
		wr.RightStatePct[st] = wr.RightStatePct[st] / rightTotal * 100
	}
	wr.AvgLeftSpeed /= n
	wr.AvgRightSpeed /= n

	wr.LeftPossessionTicks = newest.Left.PossessionTicks - oldest.Left.PossessionTicks
	wr.RightPossessionTicks = newest.Right.PossessionTicks - oldest.Right.PossessionTicks
	wr.FreeTicks = newest.FreeTicks - oldest.FreeTicks
	return wr
}

// WindowReport is an aggregated summary over a time window.
type WindowReport struct {
	FromTick, ToTick int
	SampleCount      int

	// State distribution as percentages (0-100).
	LeftStatePct  map[AthleteState]float64
	RightStatePct map[AthleteState]float64

	AvgLeftSpeed, AvgRightSpeed float64
	FrozenSamples               int

	// Deltas across the window.
	LeftPossessionTicks, RightPossessionTicks int
	FreeTicks                                 int

	LeftScore, RightScore int
}

// Format returns a human-readable multi-line string of the window summary.
func (wr *WindowReport) Format() string {
	if wr == nil {
		return "No data collected yet.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Match Report (T=%d..%d, %d samples) ===\n",
		wr.FromTick, wr.ToTick, wr.SampleCount)
	fmt.Fprintf(&sb, "Score: left %d - %d right\n", wr.LeftScore, wr.RightScore)

	for _, side := range []struct {
		name string
		pct  map[AthleteState]float64
	}{{"LEFT", wr.LeftStatePct}, {"RIGHT", wr.RightStatePct}} {
		fmt.Fprintf(&sb, "\n--- %s State Distribution ---\n", side.name)
		for _, st := range allStates {
			if pct, ok := side.pct[st]; ok && pct > 0.5 {
				fmt.Fprintf(&sb, "  %-10s %5.1f%%\n", st, pct)
			}
		}
	}

	sb.WriteString("\n--- Puck ---\n")
	fmt.Fprintf(&sb, "  possession left=%d right=%d free=%d ticks\n",
		wr.LeftPossessionTicks, wr.RightPossessionTicks, wr.FreeTicks)
	fmt.Fprintf(&sb, "  avg speed left=%.1f right=%.1f\n", wr.AvgLeftSpeed, wr.AvgRightSpeed)
	if wr.FrozenSamples > 0 {
		fmt.Fprintf(&sb, "  frozen samples: %d\n", wr.FrozenSamples)
	}
	return sb.String()
}

// FormatLatest returns a compact one-snapshot summary.
func (r *MatchReporter) FormatLatest() string {
	rpt := r.Latest()
	if rpt == nil {
		return "No data collected yet.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "T=%d  score %d-%d", rpt.Tick, rpt.Left.Score, rpt.Right.Score)
	if rpt.Carrier != "" {
		fmt.Fprintf(&sb, "  carrier %s", rpt.Carrier)
	} else {
		sb.WriteString("  puck free")
	}
	if rpt.Frozen {
		sb.WriteString("  [celebrating]")
	}
	sb.WriteByte('\n')
	return sb.String()
}
