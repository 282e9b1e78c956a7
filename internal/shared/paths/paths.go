// Package paths resolves the filesystem locations the framework writes
// to: the engine cache and the log file. Relative configured paths are
// kept as-is; empty ones fall back to per-user standard directories.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CacheDir returns the engine cache directory for app. An explicit
// configured path wins; otherwise the user cache directory is used.
func CacheDir(configured, app string) string {
	if configured != "" {
		return ExpandHome(configured)
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(".", app+"_cache")
	}
	return filepath.Join(base, app)
}

// LogFile returns the log file path for app.
func LogFile(configured, app string) string {
	if configured != "" {
		return ExpandHome(configured)
	}
	return filepath.Join(".", app+".log")
}

// ExpandHome resolves a leading ~ against the user home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

// EnsureDir creates dir and parents if missing.
func EnsureDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("empty directory path")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return nil
}
