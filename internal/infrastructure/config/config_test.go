package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "BambooApp", cfg.App.Name)
	assert.Equal(t, "./bamboo_cache", cfg.App.CachePath)
	assert.Equal(t, 9222, cfg.Engine.RemoteDebugPort)
	assert.False(t, cfg.Engine.RemoteDebugging)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "BambooApp", cfg.App.Name)
	assert.True(t, cfg.Engine.EnableGPU)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("BAMBOO_APP_NAME", "TestShell")
	t.Setenv("BAMBOO_ENGINE_REMOTE_DEBUG_PORT", "9333")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "TestShell", cfg.App.Name)
	assert.Equal(t, 9333, cfg.Engine.RemoteDebugPort)
}

func TestResolvedPaths(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "./bamboo_cache", cfg.ResolvedCachePath())
	assert.Equal(t, "./bamboo.log", cfg.ResolvedLogPath())

	cfg.App.CachePath = ""
	assert.Contains(t, cfg.ResolvedCachePath(), cfg.App.Name)
}

func TestResolvedUserAgent(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "BambooApp/1.0.0 Bamboo/1.0", cfg.ResolvedUserAgent())

	cfg.App.UserAgent = "Custom/2.0"
	assert.Equal(t, "Custom/2.0", cfg.ResolvedUserAgent())
}
