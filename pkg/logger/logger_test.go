package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourusername/quiz-app/internal/config"
)

func TestInit_LevelAndFile(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "release"},
		Log:    config.LogConfig{Level: "warn", File: filepath.Join(t.TempDir(), "app.log")},
	}
	require.NoError(t, Init(cfg))

	assert.False(t, Log.Core().Enabled(zap.InfoLevel))
	assert.True(t, Log.Core().Enabled(zap.WarnLevel))
}

func TestInit_DebugModeForcesDebugLevel(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		Log:    config.LogConfig{Level: "error"},
	}
	require.NoError(t, Init(cfg))
	assert.True(t, Log.Core().Enabled(zap.DebugLevel))
}

func TestInit_BadLevel(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	err := Init(&config.Config{Log: config.LogConfig{Level: "loud"}})
	assert.Error(t, err)
}
