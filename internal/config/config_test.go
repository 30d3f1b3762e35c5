package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
rom: tetris.gb.zst
max_steps: 5000
rom_only: true
break_on_illegal: true
log_level: debug
`))
	require.NoError(t, err)

	assert.Equal(t, Config{
		ROM:            "tetris.gb.zst",
		MaxSteps:       5000,
		ROMOnly:        true,
		BreakOnIllegal: true,
		LogLevel:       "debug",
	}, cfg)
	assert.True(t, cfg.Debug())
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Parse([]byte("rom: game.gb\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxSteps, cfg.MaxSteps)
	assert.False(t, cfg.Debug())
}

func TestParse_Invalid(t *testing.T) {
	t.Run("unknown field", func(t *testing.T) {
		_, err := Parse([]byte("steps: 10\n"))
		assert.Error(t, err)
	})
	t.Run("log level", func(t *testing.T) {
		_, err := Parse([]byte("log_level: trace\n"))
		assert.ErrorIs(t, err, ErrInvalidLogLevel)
	})
	t.Run("negative steps", func(t *testing.T) {
		_, err := Parse([]byte("max_steps: -1\n"))
		assert.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sm83.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_steps: 42\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.MaxSteps)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
