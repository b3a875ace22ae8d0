package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Garsondee/Rink-Sense/internal/game"
)

func TestFirstTick(t *testing.T) {
	entries := []game.SimLogEntry{
		{Tick: 3, Category: "puck", Key: "pickup", Value: "(10.0,10.0)"},
		{Tick: 9, Category: "goal", Key: "score", Value: "right scores 0-1"},
		{Tick: 40, Category: "goal", Key: "score", Value: "left scores 1-1"},
	}

	if got := firstTick(entries, "goal", "score", ""); got != 9 {
		t.Fatalf("expected first goal at 9, got %d", got)
	}
	if got := firstTick(entries, "goal", "score", "left scores"); got != 40 {
		t.Fatalf("expected first left goal at 40, got %d", got)
	}
	if got := firstTick(entries, "puck", "transfer", ""); got != -1 {
		t.Fatalf("expected -1 for missing event, got %d", got)
	}
}

func TestAvgTickString(t *testing.T) {
	if got := avgTickString(nil); got != "n/a" {
		t.Fatalf("expected n/a, got %s", got)
	}
	if got := avgTickString([]int{10, 20}); got != "15.0" {
		t.Fatalf("expected 15.0, got %s", got)
	}
	if got := avg(7, 0); got != 0 {
		t.Fatalf("expected 0 for empty average, got %f", got)
	}
}

func TestRunPrintsEveryRunAndAggregate(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), &out, []string{"-runs", "2", "-ticks", "120", "-seed", "7"})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	report := out.String()
	for _, want := range []string{"--- Run 1 (seed=7) ---", "--- Run 2 (seed=8) ---", "=== Aggregate ===", "runs=2"} {
		if !strings.Contains(report, want) {
			t.Fatalf("report missing %q:\n%s", want, report)
		}
	}
}

func TestRunRejectsZeroRuns(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), &out, []string{"-runs", "0"}); err == nil {
		t.Fatal("expected error for -runs 0")
	}
}

func TestRunMatchIsDeterministicPerSeed(t *testing.T) {
	var a, b bytes.Buffer
	args := []string{"-runs", "1", "-ticks", "600", "-seed", "11"}
	if err := run(context.Background(), &a, args); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := run(context.Background(), &b, args); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if a.String() != b.String() {
		t.Fatalf("same seed produced different reports:\n%s\n---\n%s", a.String(), b.String())
	}
}

func TestRunWithScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiet.lua")
	src := `return Scenario.new("quiet"):ticks(30):reset():expect_score(0, 0)`
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatalf("write script: %v", err)
	}

	var out bytes.Buffer
	if err := run(context.Background(), &out, []string{"-runs", "1", "-script", path}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "scenario: quiet ok") {
		t.Fatalf("expected scenario status line, got:\n%s", out.String())
	}
}
