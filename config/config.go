// SPDX-License-Identifier: MIT

// Package config resolves run settings from defaults, SLIDESHOW_* environment
// variables and an optional config file (any format viper reads).
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/katalvlaran/slideshow/slideshow"
	"github.com/katalvlaran/slideshow/solver"
)

// ErrInvalid reports a setting outside its domain.
var ErrInvalid = errors.New("config: invalid setting")

// Keys understood by Load. Environment variables use the SLIDESHOW_ prefix
// with dashes replaced by underscores, e.g. SLIDESHOW_TIME_LIMIT=90s.
const (
	KeyOutput    = "output"
	KeyTimeLimit = "time-limit"
	KeyGap       = "gap"
	KeyLPPath    = "lp"
	KeyHistory   = "history"
	KeyParallel  = "parallel"
)

// Config holds the resolved settings of a run.
type Config struct {
	// Output is the solution file of a single-instance run.
	Output string
	// TimeLimit and GapTolerance are handed to the solver.
	TimeLimit    time.Duration
	GapTolerance float64
	// LPPath, when set, receives the LP rendering of each model.
	LPPath string
	// HistoryDB, when set, is the SQLite file recording each run.
	HistoryDB string
	// Parallel bounds concurrent instances in directory mode.
	Parallel int
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Output:       slideshow.DefaultOutputName,
		TimeLimit:    solver.DefaultTimeLimit,
		GapTolerance: solver.DefaultGapTolerance,
		Parallel:     1,
	}
}

// Load resolves settings. path may be empty; a named file that cannot be
// read is an error.
func Load(path string) (Config, error) {
	def := Default()
	v := viper.New()
	v.SetDefault(KeyOutput, def.Output)
	v.SetDefault(KeyTimeLimit, def.TimeLimit)
	v.SetDefault(KeyGap, def.GapTolerance)
	v.SetDefault(KeyLPPath, "")
	v.SetDefault(KeyHistory, "")
	v.SetDefault(KeyParallel, def.Parallel)

	v.SetEnvPrefix("slideshow")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	c := Config{
		Output:       v.GetString(KeyOutput),
		TimeLimit:    v.GetDuration(KeyTimeLimit),
		GapTolerance: v.GetFloat64(KeyGap),
		LPPath:       v.GetString(KeyLPPath),
		HistoryDB:    v.GetString(KeyHistory),
		Parallel:     v.GetInt(KeyParallel),
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate checks every setting.
func (c Config) Validate() error {
	if c.Output == "" {
		return fmt.Errorf("%w: empty %s", ErrInvalid, KeyOutput)
	}
	if c.Parallel < 1 {
		return fmt.Errorf("%w: %s=%d must be ≥ 1", ErrInvalid, KeyParallel, c.Parallel)
	}
	if err := c.SolverOptions().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return nil
}

// SolverOptions returns the solver part of the configuration.
func (c Config) SolverOptions() solver.Options {
	return solver.Options{TimeLimit: c.TimeLimit, GapTolerance: c.GapTolerance}
}
