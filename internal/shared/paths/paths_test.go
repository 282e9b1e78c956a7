package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheDirPrefersConfigured(t *testing.T) {
	assert.Equal(t, "./my_cache", CacheDir("./my_cache", "Bamboo"))

	fallback := CacheDir("", "Bamboo")
	assert.Contains(t, fallback, "Bamboo")
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	assert.Equal(t, filepath.Join("/home/tester", "x"), ExpandHome("~/x"))
	assert.Equal(t, "/abs/x", ExpandHome("/abs/x"))
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureDir(dir))
	require.NoError(t, EnsureDir(dir))
	assert.Error(t, EnsureDir(""))
}
