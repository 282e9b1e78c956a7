//go:build !linux && !windows

package platform

import "github.com/bambooui/bamboo/internal/style"

// stubAdapter is the capability-empty adapter for platforms without a
// native implementation. Every operation is a no-op, keeping style
// application total.
type stubAdapter struct{}

func newAdapter() Adapter { return stubAdapter{} }

func (stubAdapter) Name() string { return "stub" }

func (stubAdapter) Capabilities() Capabilities { return Capabilities{} }

func (stubAdapter) Apply(Handle, style.WindowStyle) {}

func (stubAdapter) SetDragRegions(Handle, []style.DragRegion) {}

func (stubAdapter) SetCornerRadius(Handle, int) {}

func (stubAdapter) SetMaterial(Handle, style.WindowsMaterial) {}

func (stubAdapter) SetVibrancy(Handle, style.MacOSVibrancy) {}

func (stubAdapter) SetBackgroundColor(Handle, style.Color) {}

func (stubAdapter) SetTransparent(Handle, bool, float64) {}

func (stubAdapter) SetShadow(Handle, style.Shadow) {}

func (stubAdapter) SetResizable(Handle, bool) {}
