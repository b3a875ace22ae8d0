package game

import (
	"fmt"
	"strings"
)

// matchReport builds the clipboard report: window statistics, a state
// summary and, when an athlete is selected, its recent timeline.
func (g *Game) matchReport(selected *Athlete, lastTicks int) string {
	return MatchReportText(g.ps, g.reporter, selected, lastTicks)
}

// MatchReportText renders the match report for ps. reporter and selected
// may be nil.
func MatchReportText(ps *PlayState, reporter *MatchReporter, selected *Athlete, lastTicks int) string {
	if lastTicks <= 0 {
		lastTicks = 120
	}
	toTick := ps.Tick()
	fromTick := toTick - lastTicks + 1
	if fromTick < 0 {
		fromTick = 0
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- RinkSense match report ---\n")
	fmt.Fprintf(&b, "tick_range=[%d..%d] control=%s\n\n", fromTick, toTick, ps.ControlLabel())
	b.WriteString(ps.SimLog.Summary(ps))
	for _, ev := range []struct{ name, category, key string }{
		{"last goal", "goal", "score"},
		{"last transfer", "puck", "transfer"},
	} {
		if e, ok := ps.SimLog.LastOf(ev.category, ev.key); ok {
			fmt.Fprintf(&b, "%s: T=%d %s\n", ev.name, e.Tick, e.Value)
		}
	}
	b.WriteByte('\n')

	if reporter != nil {
		b.WriteString(reporter.WindowSummary().Format())
		lp, rp, fp := reporter.Totals().PossessionPct()
		fmt.Fprintf(&b, "possession: left=%.0f%% right=%.0f%% free=%.0f%%\n\n", lp, rp, fp)
	}

	if selected == nil {
		return b.String()
	}

	fmt.Fprintf(&b, "== SELECTED (%s %s %s) ==\n", selected.Label(), selected.Team(), selected.Role())
	var events []SimLogEntry
	for _, e := range ps.SimLog.FilterTickRange(fromTick, toTick) {
		if e.Athlete == selected.Label() {
			events = append(events, e)
		}
	}
	if len(events) == 0 {
		b.WriteString("(no events in range)\n")
		return b.String()
	}
	for _, st := range buildStages(events) {
		fmt.Fprintf(&b, "  T=%d..%d %s (%d events)\n", st.startTick, st.endTick, st.state, st.count)
	}
	b.WriteString("events:\n")
	for _, e := range events {
		b.WriteString("  ")
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// reportStage is a run of events during which the athlete stayed in one
// behaviour.
type reportStage struct {
	startTick int
	endTick   int
	state     string
	count     int
}

// buildStages splits an athlete's events at each state change. The stage
// name is the state entered ("idle → pursue" opens a "pursue" stage).
func buildStages(events []SimLogEntry) []reportStage {
	var stages []reportStage
	cur := reportStage{startTick: events[0].Tick, state: "?"}
	for _, e := range events {
		if e.Category == "state" && e.Key == "change" {
			if cur.count > 0 {
				stages = append(stages, cur)
			}
			next := e.Value
			if i := strings.LastIndex(next, "→ "); i >= 0 {
				next = next[i+len("→ "):]
			}
			cur = reportStage{startTick: e.Tick, state: next}
		}
		cur.endTick = e.Tick
		cur.count++
	}
	return append(stages, cur)
}
