// Package config holds process-level application configuration.
//
// Per-window appearance lives in the style package; this covers what
// the embedded engine needs before any window exists.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/bambooui/bamboo/internal/shared/paths"
)

// Config holds all application configuration.
type Config struct {
	App     AppConfig
	Engine  EngineConfig
	Logging LogConfig
	Metrics MetricsConfig
}

// AppConfig identifies the application to the engine and the pages it
// hosts.
type AppConfig struct {
	Name      string `envconfig:"APP_NAME" default:"BambooApp"`
	Version   string `envconfig:"APP_VERSION" default:"1.0.0"`
	UserAgent string `envconfig:"APP_USER_AGENT" default:""`
	CachePath string `envconfig:"APP_CACHE_PATH" default:"./bamboo_cache"`
}

// EngineConfig holds embedded engine switches.
type EngineConfig struct {
	EnableGPU              bool   `envconfig:"ENGINE_GPU" default:"true"`
	EnableWebGL            bool   `envconfig:"ENGINE_WEBGL" default:"true"`
	EnableMediaStream      bool   `envconfig:"ENGINE_MEDIA_STREAM" default:"false"`
	EnableNotifications    bool   `envconfig:"ENGINE_NOTIFICATIONS" default:"false"`
	IgnoreCertificateError bool   `envconfig:"ENGINE_IGNORE_CERT_ERRORS" default:"false"`
	RemoteDebugging        bool   `envconfig:"ENGINE_REMOTE_DEBUG" default:"false"`
	RemoteDebugPort        int    `envconfig:"ENGINE_REMOTE_DEBUG_PORT" default:"9222"`
	RemoteAddress          string `envconfig:"ENGINE_REMOTE_ADDR" default:""`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
	Path        string `envconfig:"LOG_PATH" default:"./bamboo.log"`
	ToConsole   bool   `envconfig:"LOG_CONSOLE" default:"true"`
}

// MetricsConfig holds metrics exposition configuration.
type MetricsConfig struct {
	Enabled bool   `envconfig:"METRICS_ENABLED" default:"false"`
	Address string `envconfig:"METRICS_ADDR" default:"localhost:9090"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("BAMBOO", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Name:      "BambooApp",
			Version:   "1.0.0",
			CachePath: "./bamboo_cache",
		},
		Engine: EngineConfig{
			EnableGPU:       true,
			EnableWebGL:     true,
			RemoteDebugPort: 9222,
		},
		Logging: LogConfig{
			Level:     "info",
			Path:      "./bamboo.log",
			ToConsole: true,
		},
		Metrics: MetricsConfig{
			Address: "localhost:9090",
		},
	}
}

// ResolvedUserAgent returns the explicit user agent, or the Name/Version
// derived one when unset.
func (c *Config) ResolvedUserAgent() string {
	if c.App.UserAgent != "" {
		return c.App.UserAgent
	}
	return fmt.Sprintf("%s/%s Bamboo/1.0", c.App.Name, c.App.Version)
}

// ResolvedCachePath returns the engine cache directory.
func (c *Config) ResolvedCachePath() string {
	return paths.CacheDir(c.App.CachePath, c.App.Name)
}

// ResolvedLogPath returns the log file path.
func (c *Config) ResolvedLogPath() string {
	return paths.LogFile(c.Logging.Path, c.App.Name)
}

// EnsureDirs creates the directories the engine writes to.
func (c *Config) EnsureDirs() error {
	return paths.EnsureDir(c.ResolvedCachePath())
}
