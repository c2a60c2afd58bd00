package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("chatty"))
}

func TestSetupWritesJSONFile(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	path := filepath.Join(t.TempDir(), "concierge.log")
	closer, err := Setup("info", path)
	require.NoError(t, err)

	slog.Info("session created", "session", "abc")
	slog.Debug("filtered out")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"session created"`)
	assert.Contains(t, string(data), `"session":"abc"`)
	assert.NotContains(t, string(data), "filtered out")
}

func TestSetupRejectsUnwritableFile(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	_, err := Setup("info", filepath.Join(t.TempDir(), "missing", "dir", "log"))
	require.Error(t, err)
}
