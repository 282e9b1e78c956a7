package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bambooui/bamboo/internal/style"
)

func TestCornerBucket(t *testing.T) {
	assert.Equal(t, CornerDefault, CornerBucket(0))
	assert.Equal(t, CornerDefault, CornerBucket(-3))
	assert.Equal(t, CornerSmall, CornerBucket(1))
	assert.Equal(t, CornerSmall, CornerBucket(4))
	assert.Equal(t, CornerFull, CornerBucket(5))
	assert.Equal(t, CornerFull, CornerBucket(100))
}

func TestResolveMaterialDegrades(t *testing.T) {
	noMica := Capabilities{Acrylic: true}
	assert.Equal(t, style.MaterialAcrylic, ResolveMaterial(style.MaterialMica, noMica))
	assert.Equal(t, style.MaterialAcrylic, ResolveMaterial(style.MaterialMicaAlt, noMica))
	assert.Equal(t, style.MaterialAcrylic, ResolveMaterial(style.MaterialTabbed, noMica))

	nothing := Capabilities{}
	assert.Equal(t, style.MaterialNone, ResolveMaterial(style.MaterialMica, nothing))
	assert.Equal(t, style.MaterialNone, ResolveMaterial(style.MaterialAcrylic, nothing))
}

func TestResolveMaterialNeverUpgrades(t *testing.T) {
	full := FullCapabilities()
	assert.Equal(t, style.MaterialAcrylic, ResolveMaterial(style.MaterialAcrylic, full))
	assert.Equal(t, style.MaterialNone, ResolveMaterial(style.MaterialNone, full))
	assert.Equal(t, style.MaterialMica, ResolveMaterial(style.MaterialMica, full))
}

func TestDecoratedChromeIgnoresShadow(t *testing.T) {
	assert.True(t, DecoratedChrome(style.ChromeFull))
	assert.True(t, DecoratedChrome(style.ChromeNativeTitlebar))
	assert.False(t, DecoratedChrome(style.ChromeFrameless))
	assert.False(t, DecoratedChrome(style.ChromeCustomTitlebar))

	// Shadow is not an input: a native titlebar stays decorated with the
	// shadow off, and a frameless window stays bare with it on.
	s := style.Default()
	s.ChromeMode = style.ChromeNativeTitlebar
	s.Shadow.Enabled = false
	assert.True(t, DecoratedChrome(s.ChromeMode))

	s.ChromeMode = style.ChromeFrameless
	s.Shadow.Enabled = true
	assert.False(t, DecoratedChrome(s.ChromeMode))
}

func TestNeedsAlphaSurface(t *testing.T) {
	s := style.Default()
	assert.False(t, NeedsAlphaSurface(s))

	s.Transparent = true
	assert.True(t, NeedsAlphaSurface(s))

	s = style.Default()
	s.BackgroundOpacity = 0.5
	assert.True(t, NeedsAlphaSurface(s))
}
