package providers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lpec/internal/structures"
)

func TestNewLogProviderCreatesChannelFiles(t *testing.T) {
	dir := t.TempDir()
	conf := &structures.Config{}
	conf.Logger.Level = "info"
	conf.Logger.Mode = 0644
	conf.Logger.Dir = dir

	logger, err := NewLogProvider(conf)
	require.NoError(t, err)
	defer logger.Close()

	logger.Infof(TypeApp, "starting")
	logger.Infof(TypeCollect, "collecting")
	logger.Warnf(TypeCheckpoint, "upgrading")

	for _, name := range []string{"app.log", "collect.log", "checkpoint.log"} {
		raw, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.NotEmpty(t, raw, name)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "collect.log"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"channel":"collect"`)
	assert.Contains(t, string(raw), "collecting")
}

func TestNewLogProviderLevelFiltering(t *testing.T) {
	dir := t.TempDir()
	conf := &structures.Config{}
	conf.Logger.Level = "warn"
	conf.Logger.Mode = 0644
	conf.Logger.Dir = dir

	logger, err := NewLogProvider(conf)
	require.NoError(t, err)
	defer logger.Close()

	logger.Infof(TypeApp, "suppressed")
	logger.Errorf(TypeApp, "kept")

	raw, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "suppressed")
	assert.Contains(t, string(raw), "kept")
}

func TestNewLogProviderAllLevels(t *testing.T) {
	dir := t.TempDir()
	conf := &structures.Config{}
	conf.Logger.Level = "trace"
	conf.Logger.Mode = 0644
	conf.Logger.Dir = dir

	logger, err := NewLogProvider(conf)
	require.NoError(t, err)
	defer logger.Close()

	logger.Debugf(TypeApp, "level=%s", "debug")
	logger.Infof(TypeApp, "level=%s", "info")
	logger.Warnf(TypeApp, "level=%s", "warn")
	logger.Errorf(TypeApp, "level=%s", "error")
	logger.Fatalf(TypeApp, "level=%s", "fatal")

	raw, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	for _, level := range []string{"debug", "info", "warn", "error", "fatal"} {
		assert.Contains(t, string(raw), "level="+level)
	}
}

func TestNewLogProviderBadLevel(t *testing.T) {
	conf := &structures.Config{}
	conf.Logger.Level = "loud"
	conf.Logger.Dir = t.TempDir()

	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}

func TestNewLogProviderBadDir(t *testing.T) {
	conf := &structures.Config{}
	conf.Logger.Level = "info"
	conf.Logger.Mode = 0644
	conf.Logger.Dir = filepath.Join(t.TempDir(), "missing")

	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}
