package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bambooui/bamboo/internal/style"
)

const testHandle Handle = 42

func TestApplyIsTotalWithoutCapabilities(t *testing.T) {
	m := NewMemory(Capabilities{})

	s := style.Windows11Mica()
	s.CornerRadius = 20
	s.MacOSVibrancy = style.VibrancySidebar
	s.ChromeMode = style.ChromeFrameless

	// Must not panic and must not pretend to do unsupported work.
	m.Apply(testHandle, s)

	for _, op := range m.Ops() {
		assert.NotEqual(t, "cornerRadius", op.Name)
		assert.NotEqual(t, "vibrancy", op.Name)
		assert.NotEqual(t, "enableLayered", op.Name)
	}
}

func TestApplySequencesAlphaBeforeOpacity(t *testing.T) {
	m := NewMemory(FullCapabilities())

	s := style.Default()
	s.Transparent = true
	s.BackgroundOpacity = 0.3
	m.Apply(testHandle, s)

	names := m.OpNames()
	layered, opacity := -1, -1
	for i, n := range names {
		switch n {
		case "enableLayered":
			layered = i
		case "setOpacity":
			opacity = i
		}
	}
	require.GreaterOrEqual(t, layered, 0, "layered surface must be enabled")
	require.Greater(t, opacity, layered, "opacity must follow the layered enable")
}

func TestApplyOpaqueStyleSkipsAlphaSurface(t *testing.T) {
	m := NewMemory(FullCapabilities())
	m.Apply(testHandle, style.Default())
	assert.NotContains(t, m.OpNames(), "enableLayered")
}

func TestCornerRadiusBuckets(t *testing.T) {
	m := NewMemory(FullCapabilities())

	m.SetCornerRadius(testHandle, 3)
	m.SetCornerRadius(testHandle, 12)
	m.SetCornerRadius(testHandle, 0)

	ops := m.Ops()
	require.Len(t, ops, 3)
	assert.Equal(t, CornerSmall, ops[0].Args[0])
	assert.Equal(t, CornerFull, ops[1].Args[0])
	assert.Equal(t, CornerDefault, ops[2].Args[0])
}

func TestMaterialFallbackRecorded(t *testing.T) {
	m := NewMemory(Capabilities{Acrylic: true, LayeredAlpha: true})

	m.SetMaterial(testHandle, style.MaterialMica)

	ops := m.Ops()
	require.Len(t, ops, 1)
	assert.Equal(t, style.MaterialAcrylic, ops[0].Args[0])
}

func TestZeroHandleIsNoOp(t *testing.T) {
	m := NewMemory(FullCapabilities())
	m.Apply(None, style.FullCustom())
	m.SetDragRegions(None, []style.DragRegion{{Width: 10, Height: 10}})
	m.SetShadow(None, style.DefaultShadow())
	assert.Empty(t, m.Ops())
}

func TestFramelessTransparentScenario(t *testing.T) {
	// Frameless + transparent + opacity 0 + no shadow, on a platform
	// without rounding: decorations cleared, alpha enabled, fully
	// transparent, corner request silently ignored.
	caps := FullCapabilities()
	caps.CornerRadius = false
	m := NewMemory(caps)

	s := style.FullCustom()
	s.CornerRadius = 16
	m.Apply(testHandle, s)

	names := m.OpNames()
	assert.Contains(t, names, "chromeMode")
	assert.Contains(t, names, "enableLayered")
	assert.NotContains(t, names, "cornerRadius")

	for _, op := range m.Ops() {
		switch op.Name {
		case "chromeMode":
			assert.Equal(t, "frameless", op.Args[0])
		case "setOpacity":
			assert.Equal(t, 0.0, op.Args[0])
		case "shadow":
			assert.Equal(t, false, op.Args[0])
		}
	}
}
