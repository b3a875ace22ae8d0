package config

import (
	"flag"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/Rink-Sense/internal/game"
)

func TestParseMatchDefaults(t *testing.T) {
	fs := flag.NewFlagSet("game", flag.ContinueOnError)

	cfg, err := ParseMatch(fs, nil)
	require.NoError(t, err)
	assert.Equal(t, 1200.0, cfg.Width)
	assert.Equal(t, 700.0, cfg.Height)
	assert.Equal(t, 5, cfg.LeftSize)
	assert.Equal(t, 6, cfg.RightSize)
	assert.True(t, cfg.Manual)
	assert.Zero(t, cfg.Seed)
}

func TestParseMatchEnvThenFlags(t *testing.T) {
	t.Setenv("RINK_SEED", "99")
	t.Setenv("RINK_LEFT_SIZE", "3")
	fs := flag.NewFlagSet("game", flag.ContinueOnError)

	cfg, err := ParseMatch(fs, []string{"-left", "4", "-manual=false"})
	require.NoError(t, err)
	assert.Equal(t, int64(99), cfg.Seed)
	assert.Equal(t, 4, cfg.LeftSize, "flag overrides env")
	assert.False(t, cfg.Manual)
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("RINK_WIDTH", "wide")
	var cfg Match

	err := ParseEnv(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}

func TestParseMatchRejectsEmptyTeam(t *testing.T) {
	fs := flag.NewFlagSet("game", flag.ContinueOnError)

	_, err := ParseMatch(fs, []string{"-right", "0"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, game.ErrInvalidRoster))
}

func TestParseHeadless(t *testing.T) {
	t.Setenv("RINK_RUNS", "2")
	t.Setenv("RINK_SCRIPT", "drills/breakaway.lua")
	fs := flag.NewFlagSet("headless-report", flag.ContinueOnError)

	cfg, err := ParseHeadless(fs, []string{"-ticks", "600", "-seed", "7"})
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Runs)
	assert.Equal(t, 600, cfg.Ticks)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, int64(1), cfg.SeedStep)
	assert.Equal(t, "drills/breakaway.lua", cfg.Script)
	assert.Equal(t, 5, cfg.LeftSize)
}

func TestParseHeadlessRejectsZeroRuns(t *testing.T) {
	fs := flag.NewFlagSet("headless-report", flag.ContinueOnError)

	_, err := ParseHeadless(fs, []string{"-runs", "0"})
	assert.Error(t, err)
}

func TestOptionsBuildAPlayState(t *testing.T) {
	m := Match{Width: 800, Height: 400, LeftSize: 2, RightSize: 3, Seed: 5}

	ps, err := game.NewPlayState(m.Options()...)
	require.NoError(t, err)
	assert.Len(t, ps.Team(game.TeamLeft), 2)
	assert.Len(t, ps.Team(game.TeamRight), 3)
	assert.Equal(t, 800.0, ps.Rink().Width)
	assert.Nil(t, ps.ManualAthlete())
	assert.Equal(t, int64(9), m.WithSeed(9).Seed)
	assert.Equal(t, int64(5), m.Seed)
}
