//go:build windows

package platform

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/bambooui/bamboo/internal/style"
)

// Win32 style bits and DWM attributes used by the adapter. The DWM
// attribute constants are not in x/sys/windows; values match dwmapi.h
// and the Windows 11 SDK additions.
const (
	gwlStyle   = -16
	gwlExStyle = -20

	wsCaption     = 0x00C00000
	wsSysMenu     = 0x00080000
	wsThickFrame  = 0x00040000
	wsMaximizeBox = 0x00010000
	wsPopup       = 0x80000000

	wsExLayered    = 0x00080000
	wsExToolWindow = 0x00000080
	wsExAppWindow  = 0x00040000

	lwaAlpha = 0x00000002

	swpNoSize       = 0x0001
	swpNoMove       = 0x0002
	swpNoZOrder     = 0x0004
	swpFrameChanged = 0x0020

	hwndTopmost   = ^uintptr(0)     // (HWND)-1
	hwndNoTopmost = ^uintptr(0) - 1 // (HWND)-2

	dwmwaNCRenderingPolicy  = 2
	dwmwaWindowCornerPref   = 33
	dwmwaMicaEffect         = 1029
	dwmwaSystemBackdropType = 38

	dwmncrpEnabled  = 2
	dwmncrpDisabled = 1

	dwmsbtNone         = 1
	dwmsbtMainWindow   = 2 // Mica
	dwmsbtTransient    = 3 // Acrylic
	dwmsbtTabbedWindow = 4

	dwmwcpDefault    = 0
	dwmwcpRound      = 2
	dwmwcpRoundSmall = 3
)

var (
	user32                       = windows.NewLazySystemDLL("user32.dll")
	dwmapi                       = windows.NewLazySystemDLL("dwmapi.dll")
	procGetWindowLongW           = user32.NewProc("GetWindowLongW")
	procSetWindowLongW           = user32.NewProc("SetWindowLongW")
	procSetWindowPos             = user32.NewProc("SetWindowPos")
	procSetLayeredWindowAttrs    = user32.NewProc("SetLayeredWindowAttributes")
	procInvalidateRect           = user32.NewProc("InvalidateRect")
	procDwmSetWindowAttribute    = dwmapi.NewProc("DwmSetWindowAttribute")
	procDwmExtendFrameIntoClient = dwmapi.NewProc("DwmExtendFrameIntoClientArea")
)

type margins struct {
	left, right, top, bottom int32
}

type windowsAdapter struct {
	win11 bool
}

func newAdapter() Adapter {
	major, _, build := windows.RtlGetNtVersionNumbers()
	return &windowsAdapter{win11: major >= 10 && build >= 22000}
}

func (a *windowsAdapter) Name() string { return "win32" }

func (a *windowsAdapter) Capabilities() Capabilities {
	return Capabilities{
		CornerRadius: a.win11,
		Mica:         a.win11,
		Acrylic:      true,
		LayeredAlpha: true,
		Decorations:  true,
		Shadow:       true,
	}
}

func getLong(h Handle, index int32) uintptr {
	r, _, _ := procGetWindowLongW.Call(uintptr(h), uintptr(index))
	return r
}

func setLong(h Handle, index int32, value uintptr) {
	procSetWindowLongW.Call(uintptr(h), uintptr(index), value)
}

func setDWMAttr(h Handle, attr uint32, value uint32) bool {
	hr, _, _ := procDwmSetWindowAttribute.Call(
		uintptr(h), uintptr(attr),
		uintptr(unsafe.Pointer(&value)), unsafe.Sizeof(value))
	return hr == 0
}

func extendFrame(h Handle, m margins) {
	procDwmExtendFrameIntoClient.Call(uintptr(h), uintptr(unsafe.Pointer(&m)))
}

func flushFrame(h Handle) {
	procSetWindowPos.Call(uintptr(h), 0, 0, 0, 0, 0,
		swpNoMove|swpNoSize|swpNoZOrder|swpFrameChanged)
}

func (a *windowsAdapter) Apply(h Handle, s style.WindowStyle) {
	if h == None {
		return
	}

	setLong(h, gwlStyle, chromeStyleBits(getLong(h, gwlStyle), s.ChromeMode, s.Resizable))
	if s.ChromeMode == style.ChromeCustomTitlebar {
		// Suppress caption painting by extending the frame into the
		// client area; the caption region stays alive for snap/maximize.
		extendFrame(h, margins{-1, -1, -1, -1})
	}

	if NeedsAlphaSurface(s) {
		a.SetTransparent(h, s.Transparent, s.BackgroundOpacity)
	}

	a.SetMaterial(h, s.WindowsMaterial)

	top := hwndNoTopmost
	if s.AlwaysOnTop {
		top = hwndTopmost
	}
	procSetWindowPos.Call(uintptr(h), top, 0, 0, 0, 0,
		swpNoMove|swpNoSize|swpFrameChanged)

	if s.CornerRadius > 0 {
		a.SetCornerRadius(h, s.CornerRadius)
	} else {
		setDWMAttr(h, dwmwaWindowCornerPref, dwmwcpDefault)
	}

	a.SetShadow(h, s.Shadow)
	a.SetResizable(h, s.Resizable)

	exStyle := getLong(h, gwlExStyle)
	if s.SkipTaskbar {
		exStyle |= wsExToolWindow
		exStyle &^= wsExAppWindow
	} else {
		exStyle &^= wsExToolWindow
		exStyle |= wsExAppWindow
	}
	setLong(h, gwlExStyle, exStyle)

	flushFrame(h)
}

// chromeStyleBits rewrites the WS_* chrome bits for mode. Every mode
// states its full bit pattern, so reapplying a decorated mode after a
// frameless phase does not inherit WS_POPUP from it.
func chromeStyleBits(winStyle uintptr, mode style.ChromeMode, resizable bool) uintptr {
	switch mode {
	case style.ChromeFull:
		// The engine's chrome runtime owns the frame.
		winStyle &^= wsPopup
	case style.ChromeNativeTitlebar:
		winStyle &^= wsPopup
		winStyle |= wsCaption | wsSysMenu | wsThickFrame
	case style.ChromeFrameless:
		winStyle &^= wsCaption | wsThickFrame
		winStyle |= wsPopup
		if resizable {
			winStyle |= wsThickFrame
		}
	case style.ChromeCustomTitlebar:
		winStyle &^= wsPopup | wsThickFrame
		winStyle |= wsCaption | wsSysMenu
	}
	return winStyle
}

func (a *windowsAdapter) SetDragRegions(h Handle, regions []style.DragRegion) {
	if h == None {
		return
	}
	// Regions are consulted from the engine's hit-test callback; force a
	// repaint so hit testing refreshes.
	procInvalidateRect.Call(uintptr(h), 0, 0)
}

func (a *windowsAdapter) SetCornerRadius(h Handle, radius int) {
	if h == None || !a.win11 {
		return
	}
	pref := uint32(dwmwcpDefault)
	switch CornerBucket(radius) {
	case CornerSmall:
		pref = dwmwcpRoundSmall
	case CornerFull:
		pref = dwmwcpRound
	}
	setDWMAttr(h, dwmwaWindowCornerPref, pref)
}

func (a *windowsAdapter) SetMaterial(h Handle, m style.WindowsMaterial) {
	if h == None {
		return
	}
	resolved := ResolveMaterial(m, a.Capabilities())

	backdrop := uint32(dwmsbtNone)
	switch resolved {
	case style.MaterialMica, style.MaterialMicaAlt:
		backdrop = dwmsbtMainWindow
	case style.MaterialAcrylic:
		backdrop = dwmsbtTransient
	case style.MaterialTabbed:
		backdrop = dwmsbtTabbedWindow
	}

	// Windows 11 22H2+ takes the backdrop type directly; older builds
	// fall back to the legacy Mica attribute.
	if !setDWMAttr(h, dwmwaSystemBackdropType, backdrop) {
		var micaOn uint32
		if resolved == style.MaterialMica || resolved == style.MaterialMicaAlt {
			micaOn = 1
		}
		setDWMAttr(h, dwmwaMicaEffect, micaOn)
	}

	if backdrop != dwmsbtNone {
		extendFrame(h, margins{-1, -1, -1, -1})
	}
}

func (a *windowsAdapter) SetVibrancy(h Handle, v style.MacOSVibrancy) {
	// macOS material, no-op here.
}

func (a *windowsAdapter) SetBackgroundColor(h Handle, c style.Color) {
	if h == None {
		return
	}
	// Visible only before the page paints; a repaint with the engine's
	// background setting is sufficient.
	procInvalidateRect.Call(uintptr(h), 0, 1)
}

func (a *windowsAdapter) SetTransparent(h Handle, transparent bool, opacity float64) {
	if h == None {
		return
	}
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	exStyle := getLong(h, gwlExStyle)
	if transparent || opacity < 1.0 {
		// Layered surface first, alpha second; the reverse order has no
		// visible effect.
		setLong(h, gwlExStyle, exStyle|wsExLayered)
		procSetLayeredWindowAttrs.Call(uintptr(h), 0, uintptr(byte(opacity*255)), lwaAlpha)
	} else {
		setLong(h, gwlExStyle, exStyle&^uintptr(wsExLayered))
	}
}

func (a *windowsAdapter) SetShadow(h Handle, sh style.Shadow) {
	if h == None {
		return
	}
	policy := uint32(dwmncrpDisabled)
	bottom := int32(0)
	if sh.Enabled {
		policy = dwmncrpEnabled
		bottom = 1
	}
	setDWMAttr(h, dwmwaNCRenderingPolicy, policy)
	extendFrame(h, margins{0, 0, 0, bottom})
}

func (a *windowsAdapter) SetResizable(h Handle, resizable bool) {
	if h == None {
		return
	}
	winStyle := getLong(h, gwlStyle)
	if resizable {
		winStyle |= wsThickFrame | wsMaximizeBox
	} else {
		winStyle &^= wsThickFrame | wsMaximizeBox
	}
	setLong(h, gwlStyle, winStyle)
	flushFrame(h)
}

var _ Adapter = (*windowsAdapter)(nil)
