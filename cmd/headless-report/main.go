package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Garsondee/Rink-Sense/internal/config"
	"github.com/Garsondee/Rink-Sense/internal/game"
	"github.com/Garsondee/Rink-Sense/internal/scenario"
)

const defaultSeedBase = 42

type runStats struct {
	runIndex int
	seed     int64
	ticks    int

	leftScore  int
	rightScore int

	firstPickupTick int
	firstGoalTick   int
	firstLeftGoal   int
	firstRightGoal  int

	goals        int
	pickups      int
	transfers    int
	strikes      int
	stateChanges int
	resets       int

	leftPossession  float64
	rightPossession float64
	freePuck        float64
	frozenTicks     int

	scenarioName     string
	scenarioFailures []string

	windowSummary *game.WindowReport
	finalReport   string
}

func main() {
	if err := run(context.Background(), os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer, args []string) error {
	cfg, err := config.ParseHeadless(flag.NewFlagSet("headless-report", flag.ContinueOnError), args)
	if err != nil {
		return err
	}
	// Nobody holds a pointer in a batch run.
	cfg.Manual = false
	if cfg.Seed == 0 {
		cfg.Seed = defaultSeedBase
	}

	var sc *scenario.Scenario
	if cfg.Script != "" {
		if sc, err = scenario.LoadFile(cfg.Script); err != nil {
			return err
		}
	}

	p := message.NewPrinter(language.English)
	p.Fprintf(out, "=== Headless Match Report ===\n")
	p.Fprintf(out, "rink=%dx%d teams=%dv%d runs=%d ticks=%d seed_base=%d seed_step=%d",
		int(cfg.Width), int(cfg.Height), cfg.LeftSize, cfg.RightSize, cfg.Runs, cfg.Ticks, cfg.Seed, cfg.SeedStep)
	if sc != nil {
		p.Fprintf(out, " script=%s", sc.Name)
	}
	p.Fprintf(out, "\n\n")

	all := make([]runStats, 0, cfg.Runs)
	for i := 0; i < cfg.Runs; i++ {
		seed := cfg.Seed + int64(i)*cfg.SeedStep
		rs, err := runMatch(ctx, cfg, i+1, seed, sc)
		if err != nil {
			return errors.Wrapf(err, "run %d (seed=%d)", i+1, seed)
		}
		all = append(all, rs)
		printRun(p, out, rs, cfg.Verbose)
	}

	printAggregate(p, out, all)
	return nil
}

// runMatch plays one seeded match, either for a fixed tick count or by
// following the scenario.
func runMatch(ctx context.Context, cfg config.Headless, runIndex int, seed int64, sc *scenario.Scenario) (runStats, error) {
	ts, err := game.NewTestSim(
		game.WithVerbose(cfg.Verbose),
		game.WithPlay(cfg.Match.WithSeed(seed).Options()...),
	)
	if err != nil {
		return runStats{}, err
	}

	rs := runStats{runIndex: runIndex, seed: seed}
	if sc != nil {
		res, err := scenario.Run(ctx, ts, sc)
		if err != nil {
			return runStats{}, err
		}
		rs.scenarioName = res.Name
		rs.scenarioFailures = res.Failures
	} else {
		ts.RunTicks(cfg.Ticks)
	}

	collectStats(&rs, ts)
	if cfg.Verbose {
		rs.finalReport = game.MatchReportText(ts.PS, ts.Reporter, nil, 240)
	}
	return rs, nil
}

// collectStats reads a finished match's log and reporter.
func collectStats(rs *runStats, ts *game.TestSim) {
	entries := ts.SimLog.Entries()
	totals := ts.Reporter.Totals()

	rs.ticks = ts.CurrentTick()
	rs.leftScore, rs.rightScore = ts.Score()
	rs.firstPickupTick = firstTick(entries, "puck", "pickup", "")
	rs.firstGoalTick = firstTick(entries, "goal", "score", "")
	rs.firstLeftGoal = firstTick(entries, "goal", "score", "left scores")
	rs.firstRightGoal = firstTick(entries, "goal", "score", "right scores")
	rs.goals = ts.SimLog.CountCategory("goal", "score")
	rs.pickups = ts.SimLog.CountCategory("puck", "pickup")
	rs.transfers = ts.SimLog.CountCategory("puck", "transfer")
	rs.strikes = ts.SimLog.CountCategory("puck", "strike")
	rs.stateChanges = ts.SimLog.CountCategory("state", "change")
	rs.resets = ts.SimLog.CountCategory("match", "reset")
	rs.leftPossession, rs.rightPossession, rs.freePuck = totals.PossessionPct()
	rs.frozenTicks = totals.FrozenTicks
	rs.windowSummary = ts.Reporter.WindowSummary()
}

func firstTick(entries []game.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

func printRun(p *message.Printer, out io.Writer, rs runStats, verbose bool) {
	p.Fprintf(out, "--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	p.Fprintf(out, "final_score: left=%d right=%d after %d ticks\n", rs.leftScore, rs.rightScore, rs.ticks)
	p.Fprintf(out, "markers: first_pickup=%d first_goal=%d first_left_goal=%d first_right_goal=%d\n",
		rs.firstPickupTick, rs.firstGoalTick, rs.firstLeftGoal, rs.firstRightGoal)
	p.Fprintf(out, "event_totals: goal=%d pickup=%d transfer=%d strike=%d state_change=%d reset=%d\n",
		rs.goals, rs.pickups, rs.transfers, rs.strikes, rs.stateChanges, rs.resets)
	p.Fprintf(out, "possession_pct: left=%.1f right=%.1f free=%.1f frozen_ticks=%d\n",
		rs.leftPossession, rs.rightPossession, rs.freePuck, rs.frozenTicks)
	if rs.scenarioName != "" {
		status := "ok"
		if len(rs.scenarioFailures) > 0 {
			status = strings.Join(rs.scenarioFailures, "; ")
		}
		p.Fprintf(out, "scenario: %s %s\n", rs.scenarioName, status)
	}
	if rs.windowSummary != nil {
		ws := rs.windowSummary
		p.Fprintf(out, "window_samples=%d window_tick_range=%d..%d\n", ws.SampleCount, ws.FromTick, ws.ToTick)
		p.Fprintf(out, "window_avg_speed: left=%.1f right=%.1f frozen_samples=%d\n",
			ws.AvgLeftSpeed, ws.AvgRightSpeed, ws.FrozenSamples)
		p.Fprintf(out, "window_possession_ticks: left=%d right=%d free=%d\n",
			ws.LeftPossessionTicks, ws.RightPossessionTicks, ws.FreeTicks)
	}
	if verbose && rs.finalReport != "" {
		fmt.Fprint(out, rs.finalReport)
	}
	fmt.Fprintln(out)
}

func printAggregate(p *message.Printer, out io.Writer, all []runStats) {
	totalGoals := 0
	totalPickups := 0
	totalTransfers := 0
	totalStrikes := 0
	totalState := 0
	leftWins, rightWins, draws := 0, 0, 0
	leftPct, rightPct, freePct := 0.0, 0.0, 0.0
	failedScenarios := 0

	pickupTicks := make([]int, 0, len(all))
	goalTicks := make([]int, 0, len(all))

	for _, rs := range all {
		totalGoals += rs.goals
		totalPickups += rs.pickups
		totalTransfers += rs.transfers
		totalStrikes += rs.strikes
		totalState += rs.stateChanges
		leftPct += rs.leftPossession
		rightPct += rs.rightPossession
		freePct += rs.freePuck
		switch {
		case rs.leftScore > rs.rightScore:
			leftWins++
		case rs.rightScore > rs.leftScore:
			rightWins++
		default:
			draws++
		}
		if rs.firstPickupTick >= 0 {
			pickupTicks = append(pickupTicks, rs.firstPickupTick)
		}
		if rs.firstGoalTick >= 0 {
			goalTicks = append(goalTicks, rs.firstGoalTick)
		}
		if len(rs.scenarioFailures) > 0 {
			failedScenarios++
		}
	}

	n := len(all)
	p.Fprintln(out, "=== Aggregate ===")
	p.Fprintf(out, "runs=%d results: left=%d right=%d draw=%d\n", n, leftWins, rightWins, draws)
	p.Fprintf(out, "avg_events_per_run: goal=%.1f pickup=%.1f transfer=%.1f strike=%.1f state_change=%.1f\n",
		avg(totalGoals, n), avg(totalPickups, n), avg(totalTransfers, n), avg(totalStrikes, n), avg(totalState, n))
	p.Fprintf(out, "avg_possession_pct: left=%.1f right=%.1f free=%.1f\n",
		avgFloat(leftPct, n), avgFloat(rightPct, n), avgFloat(freePct, n))
	p.Fprintf(out, "marker_avg_ticks: first_pickup=%s first_goal=%s\n",
		avgTickString(pickupTicks), avgTickString(goalTicks))
	if failedScenarios > 0 {
		p.Fprintf(out, "scenario_failures=%d\n", failedScenarios)
	}
}

func avg(sum int, n int) float64 {
	return avgFloat(float64(sum), n)
}

func avgFloat(sum float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return sum / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}
