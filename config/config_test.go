// SPDX-License-Identifier: MIT

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/slideshow/config"
	"github.com/katalvlaran/slideshow/solver"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "slideshow.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	return path
}

func TestLoadDefaults(t *testing.T) {
	c, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), c)
	assert.Equal(t, "slideshow.sol", c.Output)
	assert.Equal(t, solver.DefaultOptions(), c.SolverOptions())
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("SLIDESHOW_TIME_LIMIT", "90s")
	t.Setenv("SLIDESHOW_HISTORY", "/tmp/runs.db")

	c, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, c.TimeLimit)
	assert.Equal(t, "/tmp/runs.db", c.HistoryDB)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, "output: best.sol\ngap: 0.01\nparallel: 4\ntime-limit: 2m\nlp: model.lp\n")

	c, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "best.sol", c.Output)
	assert.Equal(t, 0.01, c.GapTolerance)
	assert.Equal(t, 4, c.Parallel)
	assert.Equal(t, 2*time.Minute, c.TimeLimit)
	assert.Equal(t, "model.lp", c.LPPath)
}

func TestLoadErrors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = config.Load(writeConfig(t, "parallel: 0\n"))
	require.ErrorIs(t, err, config.ErrInvalid)

	_, err = config.Load(writeConfig(t, "gap: -1\n"))
	require.ErrorIs(t, err, config.ErrInvalid)
	require.ErrorIs(t, err, solver.ErrInvalidOptions)
}
