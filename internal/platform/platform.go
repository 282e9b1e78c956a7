// Package platform applies a style.WindowStyle to a native window.
//
// One Adapter implementation exists per OS family, selected at build
// time. Adapters are total: unsupported properties degrade through the
// fallback chains in fallback.go or become no-ops, never errors. An
// adapter borrows the window handle for the duration of one call and
// must not retain it.
package platform

import (
	"github.com/bambooui/bamboo/internal/style"
)

// Handle is an opaque native window reference (HWND, X11 window id, ...).
type Handle uintptr

// None is the zero handle; all adapter calls no-op on it.
const None Handle = 0

// Capabilities reports what the running platform can actually do.
// Fallback decisions key off this, so callers never need native
// assumptions of their own.
type Capabilities struct {
	CornerRadius bool // native rounded-corner primitive
	Mica         bool // strong backdrop materials (Mica/MicaAlt/Tabbed)
	Acrylic      bool // blur-with-tint backdrop
	Vibrancy     bool // macOS vibrancy materials
	LayeredAlpha bool // per-pixel alpha / layered surface
	Decorations  bool // chrome-mode decoration control
	Shadow       bool // native shadow toggle
}

// Adapter mutates the native window to the nearest achievable visual
// state for a given style. Apply dispatches the whole model; the
// individual setters exist for the facade's single-field sugar and are
// equally total.
type Adapter interface {
	Name() string
	Capabilities() Capabilities

	Apply(h Handle, s style.WindowStyle)
	SetDragRegions(h Handle, regions []style.DragRegion)
	SetCornerRadius(h Handle, radius int)
	SetMaterial(h Handle, m style.WindowsMaterial)
	SetVibrancy(h Handle, v style.MacOSVibrancy)
	SetBackgroundColor(h Handle, c style.Color)
	SetTransparent(h Handle, transparent bool, opacity float64)
	SetShadow(h Handle, sh style.Shadow)
	SetResizable(h Handle, resizable bool)
}

// New returns the adapter for the compiled platform.
func New() Adapter {
	return newAdapter()
}
