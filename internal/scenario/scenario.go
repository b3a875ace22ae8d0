// Package scenario loads scripted input sequences written in Lua and plays
// them against a match.
package scenario

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/Garsondee/Rink-Sense/internal/vmath"
)

// ErrExpectation is wrapped by Result.Err when an expect_score step failed.
var ErrExpectation = errors.New("scenario expectation failed")

// Step kinds, as named in scripts.
const (
	KindTicks       = "ticks"
	KindPointer     = "pointer"
	KindStrike      = "strike"
	KindRandomize   = "randomize"
	KindReset       = "reset"
	KindManual      = "manual"
	KindPlacePuck   = "place_puck"
	KindExpectScore = "expect_score"
)

// Scenario is a named, ordered list of input steps.
type Scenario struct {
	Name  string
	Steps []Step
}

// Step is one scripted input. Only the fields its Kind uses are set.
type Step struct {
	Kind  string
	N     int        // ticks
	At    vmath.Vec2 // pointer, strike, place_puck
	On    bool       // manual
	Left  int        // expect_score
	Right int        // expect_score
}

func (s Step) String() string {
	switch s.Kind {
	case KindTicks:
		return fmt.Sprintf("ticks(%d)", s.N)
	case KindPointer, KindStrike, KindPlacePuck:
		return fmt.Sprintf("%s%s", s.Kind, s.At)
	case KindManual:
		return fmt.Sprintf("manual(%v)", s.On)
	case KindExpectScore:
		return fmt.Sprintf("expect_score(%d,%d)", s.Left, s.Right)
	default:
		return s.Kind + "()"
	}
}

// TotalTicks is how many updates the scenario runs.
func (sc *Scenario) TotalTicks() int {
	n := 0
	for _, s := range sc.Steps {
		if s.Kind == KindTicks {
			n += s.N
		}
	}
	return n
}

// Match is what a scenario drives. game.TestSim satisfies it.
type Match interface {
	RunTicks(n int)
	SetPointer(p vmath.Vec2)
	Strike(p vmath.Vec2)
	RandomizePositions()
	ResetMatch() error
	SetManual(on bool)
	PlacePuck(p vmath.Vec2)
	Score() (left, right int)
}

// Result records what happened while a scenario ran.
type Result struct {
	Name     string
	Steps    int
	Ticks    int
	Failures []string
}

// Err returns nil when every expectation held.
func (r Result) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	return errors.Wrapf(ErrExpectation, "%s: %s", r.Name, strings.Join(r.Failures, "; "))
}

// Run applies sc's steps to m in order. Failed expectations are collected in
// the Result; only cancellation and match errors abort the run.
func Run(ctx context.Context, m Match, sc *Scenario) (Result, error) {
	res := Result{Name: sc.Name}
	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return res, errors.Wrapf(err, "step %d %s", i+1, step)
		}
		switch step.Kind {
		case KindTicks:
			m.RunTicks(step.N)
			res.Ticks += step.N
		case KindPointer:
			m.SetPointer(step.At)
		case KindStrike:
			m.Strike(step.At)
		case KindRandomize:
			m.RandomizePositions()
		case KindReset:
			if err := m.ResetMatch(); err != nil {
				return res, errors.Wrapf(err, "step %d %s", i+1, step)
			}
		case KindManual:
			m.SetManual(step.On)
		case KindPlacePuck:
			m.PlacePuck(step.At)
		case KindExpectScore:
			if l, r := m.Score(); l != step.Left || r != step.Right {
				res.Failures = append(res.Failures,
					fmt.Sprintf("step %d: expected score %d-%d, got %d-%d", i+1, step.Left, step.Right, l, r))
			}
		default:
			return res, errors.Errorf("step %d: unknown kind %q", i+1, step.Kind)
		}
		res.Steps++
	}
	return res, nil
}
