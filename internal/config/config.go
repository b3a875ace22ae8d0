// Package config reads binary settings from RINK_* environment variables and
// lets command-line flags override them.
package config

import (
	"flag"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"

	"github.com/Garsondee/Rink-Sense/internal/game"
)

// Match holds the settings shared by every binary.
type Match struct {
	Width     float64 `env:"RINK_WIDTH"      envDefault:"1200"`
	Height    float64 `env:"RINK_HEIGHT"     envDefault:"700"`
	Seed      int64   `env:"RINK_SEED"`
	LeftSize  int     `env:"RINK_LEFT_SIZE"  envDefault:"5"`
	RightSize int     `env:"RINK_RIGHT_SIZE" envDefault:"6"`
	Manual    bool    `env:"RINK_MANUAL"     envDefault:"true"`
}

// Headless holds the batch report settings.
type Headless struct {
	Match
	Runs     int    `env:"RINK_RUNS"      envDefault:"5"`
	Ticks    int    `env:"RINK_TICKS"     envDefault:"3600"`
	SeedStep int64  `env:"RINK_SEED_STEP" envDefault:"1"`
	Script   string `env:"RINK_SCRIPT"`
	Verbose  bool   `env:"RINK_VERBOSE"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return errors.Wrap(err, "parse env")
	}
	return nil
}

// ParseMatch parses environment and flags into a Match.
func ParseMatch(fs *flag.FlagSet, args []string) (Match, error) {
	var cfg Match
	if err := ParseEnv(&cfg); err != nil {
		return Match{}, err
	}
	cfg.bind(fs)
	if err := fs.Parse(args); err != nil {
		return Match{}, errors.Wrap(err, "parse flags")
	}
	return cfg, cfg.Validate()
}

// ParseHeadless parses environment and flags into a Headless config.
func ParseHeadless(fs *flag.FlagSet, args []string) (Headless, error) {
	var cfg Headless
	if err := ParseEnv(&cfg); err != nil {
		return Headless{}, err
	}
	cfg.bind(fs)
	fs.IntVar(&cfg.Runs, "runs", cfg.Runs, "number of headless matches")
	fs.IntVar(&cfg.Ticks, "ticks", cfg.Ticks, "ticks per match")
	fs.Int64Var(&cfg.SeedStep, "seed-step", cfg.SeedStep, "seed increment between runs")
	fs.StringVar(&cfg.Script, "script", cfg.Script, "optional Lua scenario driving every run")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "print the event log of every run")
	if err := fs.Parse(args); err != nil {
		return Headless{}, errors.Wrap(err, "parse flags")
	}
	if cfg.Runs <= 0 {
		return Headless{}, errors.Errorf("runs must be > 0, got %d", cfg.Runs)
	}
	if cfg.Ticks <= 0 {
		return Headless{}, errors.Errorf("ticks must be > 0, got %d", cfg.Ticks)
	}
	return cfg, cfg.Validate()
}

func (m *Match) bind(fs *flag.FlagSet) {
	fs.Float64Var(&m.Width, "width", m.Width, "rink width")
	fs.Float64Var(&m.Height, "height", m.Height, "rink height")
	fs.Int64Var(&m.Seed, "seed", m.Seed, "random seed (0 picks one from the clock)")
	fs.IntVar(&m.LeftSize, "left", m.LeftSize, "left team size")
	fs.IntVar(&m.RightSize, "right", m.RightSize, "right team size")
	fs.BoolVar(&m.Manual, "manual", m.Manual, "start with the left captain under mouse control")
}

// Validate rejects settings no match can be built from.
func (m Match) Validate() error {
	if m.Width <= 0 || m.Height <= 0 {
		return errors.Errorf("rink must have positive size, got %vx%v", m.Width, m.Height)
	}
	if m.LeftSize <= 0 || m.RightSize <= 0 {
		return errors.Wrapf(game.ErrInvalidRoster, "team sizes left=%d right=%d", m.LeftSize, m.RightSize)
	}
	return nil
}

// Options converts the settings into PlayState options. A zero seed leaves
// the PlayState to seed itself from the clock.
func (m Match) Options() []game.Option {
	opts := []game.Option{
		game.WithRink(m.Width, m.Height),
		game.WithTeamSizes(m.LeftSize, m.RightSize),
		game.WithManualLeftCaptain(m.Manual),
	}
	if m.Seed != 0 {
		opts = append(opts, game.WithSeed(m.Seed))
	}
	return opts
}

// WithSeed returns a copy of m using seed.
func (m Match) WithSeed(seed int64) Match {
	m.Seed = seed
	return m
}
