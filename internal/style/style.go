// Package style defines the declarative window appearance model.
//
// A WindowStyle describes the desired chrome, materials, transparency,
// shadow and interaction policy of a window. It is always fully
// populated; "use the platform default" is expressed by value (corner
// radius 0, material None), never by absence. Applying a style is the
// platform adapter's job; the model itself is pure data.
package style

// ChromeMode selects how much native window chrome the OS draws.
type ChromeMode int

const (
	// ChromeFull is the full native browser UI: address bar, tabs,
	// toolbar. Identical to running the embedded engine's own shell.
	ChromeFull ChromeMode = iota

	// ChromeNativeTitlebar keeps only the system titlebar and borders;
	// the page supplies the rest of the UI.
	ChromeNativeTitlebar

	// ChromeFrameless removes all OS chrome. Requires drag regions for
	// window movement.
	ChromeFrameless

	// ChromeCustomTitlebar keeps the system window controls but hides
	// native caption painting; the caption region stays alive so window
	// manager affordances (snap, maximize) keep working.
	ChromeCustomTitlebar
)

func (m ChromeMode) String() string {
	switch m {
	case ChromeFull:
		return "full"
	case ChromeFrameless:
		return "frameless"
	case ChromeCustomTitlebar:
		return "customTitlebar"
	default:
		return "nativeTitlebar"
	}
}

// MacOSVibrancy selects the macOS background material.
type MacOSVibrancy int

const (
	VibrancyNone MacOSVibrancy = iota
	VibrancySidebar
	VibrancyMenu
	VibrancyPopover
	VibrancyHudWindow
	VibrancyUnderWindowBackground
	VibrancyUnderPageBackground
	VibrancyTitlebar
	VibrancyHeaderView
	VibrancySheet
	VibrancyWindowBackground
	VibrancyContentBackground
	VibrancyFullScreenUI // macOS 14+
)

// WindowsMaterial selects the Windows backdrop material.
type WindowsMaterial int

const (
	MaterialNone WindowsMaterial = iota
	MaterialMica
	MaterialMicaAlt
	MaterialAcrylic
	MaterialTabbed
)

func (m WindowsMaterial) String() string {
	switch m {
	case MaterialMica:
		return "mica"
	case MaterialMicaAlt:
		return "micaAlt"
	case MaterialAcrylic:
		return "acrylic"
	case MaterialTabbed:
		return "tabbed"
	default:
		return "none"
	}
}

// ContextMenuStyle controls the right-click menu.
type ContextMenuStyle int

const (
	ContextMenuDefault ContextMenuStyle = iota
	// ContextMenuCustom clears the native menu and emits a bridge event;
	// rendering a replacement menu is left to page script.
	ContextMenuCustom
	ContextMenuDisabled
)

// ScrollbarStyle controls page scrollbar appearance via injected CSS.
type ScrollbarStyle int

const (
	ScrollbarDefault ScrollbarStyle = iota
	ScrollbarHidden
	ScrollbarOverlay
)

// FullscreenMode controls how fullscreen requests are honored.
type FullscreenMode int

const (
	FullscreenDisabled FullscreenMode = iota
	FullscreenNative
	// FullscreenKiosk hides taskbar/dock/menubar too.
	FullscreenKiosk
)

// DragRegion is a rectangle eligible for native window move in frameless
// windows. Draggable=false punches a "hole" inside an earlier draggable
// region; later regions win where they overlap.
type DragRegion struct {
	X, Y, Width, Height int
	Draggable           bool
}

// Contains reports whether the point lies inside the region.
func (r DragRegion) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// HitTest resolves a point against an ordered region set. Later regions
// override earlier ones.
func HitTest(regions []DragRegion, x, y int) bool {
	drag := false
	for _, r := range regions {
		if r.Contains(x, y) {
			drag = r.Draggable
		}
	}
	return drag
}

// Shadow describes the window drop shadow.
type Shadow struct {
	Enabled bool
	Color   Color
	Blur    int
	Spread  int
	OffsetX int
	OffsetY int
}

// DefaultShadow returns the default enabled shadow.
func DefaultShadow() Shadow {
	return Shadow{
		Enabled: true,
		Color:   RGBA(0, 0, 0, 80),
		Blur:    20,
		OffsetY: 4,
	}
}

// TitlebarButtonPosition anchors the macOS traffic lights, in pixels
// from the window's top-left corner.
type TitlebarButtonPosition struct {
	X int
	Y int
}

// TitlebarStyle customizes the titlebar for NativeTitlebar and
// CustomTitlebar chrome modes.
type TitlebarStyle struct {
	Visible               bool
	Title                 string // empty = use page <title>
	Background            Color
	Foreground            Color
	Height                int
	ShowTitle             bool
	ShowIcon              bool
	IconPath              string
	TransparentOnInactive bool

	// macOS "hidden titlebar": traffic lights float above web content.
	MacOSHidden         bool
	MacOSButtonPosition *TitlebarButtonPosition
}

// DefaultTitlebar returns the default titlebar style.
func DefaultTitlebar() TitlebarStyle {
	return TitlebarStyle{
		Visible:    true,
		Background: RGB(245, 245, 245),
		Foreground: Black(),
		Height:     38,
		ShowTitle:  true,
	}
}

// WindowStyle is the full declarative description of window appearance
// and behavior. All fields are meaningful at all times; the platform
// adapter decides what is actually achievable.
type WindowStyle struct {
	ChromeMode ChromeMode
	Titlebar   TitlebarStyle

	BackgroundColor   Color
	BackgroundOpacity float64 // 0..1; <1 implies a layered/alpha surface
	Transparent       bool    // per-pixel alpha from page content

	MacOSVibrancy   MacOSVibrancy
	WindowsMaterial WindowsMaterial

	Shadow       Shadow
	CornerRadius int // 0 = platform default

	Resizable   bool
	Minimizable bool
	Maximizable bool
	AlwaysOnTop bool
	SkipTaskbar bool
	Fullscreen  FullscreenMode

	DragRegions []DragRegion

	Scrollbar   ScrollbarStyle
	ContextMenu ContextMenuStyle

	DevTools       bool
	DevToolsDocked bool

	ZoomFactor float64
	AllowZoom  bool

	AllowTextSelection bool
}

// Default returns the baseline style: native titlebar, opaque white
// background, default shadow, resizable.
func Default() WindowStyle {
	return WindowStyle{
		ChromeMode:         ChromeNativeTitlebar,
		Titlebar:           DefaultTitlebar(),
		BackgroundColor:    White(),
		BackgroundOpacity:  1.0,
		Shadow:             DefaultShadow(),
		Resizable:          true,
		Minimizable:        true,
		Maximizable:        true,
		Fullscreen:         FullscreenNative,
		ZoomFactor:         1.0,
		AllowZoom:          true,
		AllowTextSelection: true,
	}
}

// Clone returns a deep copy. The drag-region slice and the titlebar
// button anchor are the only reference-carrying fields.
func (s WindowStyle) Clone() WindowStyle {
	out := s
	if s.DragRegions != nil {
		out.DragRegions = make([]DragRegion, len(s.DragRegions))
		copy(out.DragRegions, s.DragRegions)
	}
	if s.Titlebar.MacOSButtonPosition != nil {
		pos := *s.Titlebar.MacOSButtonPosition
		out.Titlebar.MacOSButtonPosition = &pos
	}
	return out
}

// FullBrowser is the full engine chrome experience.
func FullBrowser() WindowStyle {
	s := Default()
	s.ChromeMode = ChromeFull
	return s
}

// FullCustom is a frameless, transparent window for 100% page-driven UI.
func FullCustom() WindowStyle {
	s := Default()
	s.ChromeMode = ChromeFrameless
	s.Transparent = true
	s.BackgroundOpacity = 0.0
	s.Shadow.Enabled = false
	s.Scrollbar = ScrollbarHidden
	s.ContextMenu = ContextMenuDisabled
	return s
}

// MacOSModern is the hidden-titlebar look: traffic lights over a full
// web canvas with a vibrancy material.
func MacOSModern(vibrancy MacOSVibrancy) WindowStyle {
	s := Default()
	s.ChromeMode = ChromeCustomTitlebar
	s.Titlebar.MacOSHidden = true
	s.Titlebar.Height = 0
	s.MacOSVibrancy = vibrancy
	s.BackgroundOpacity = 0.85
	s.Shadow.Blur = 30
	return s
}

// Windows11Mica is the frosted-glass Mica look.
func Windows11Mica() WindowStyle {
	s := Default()
	s.WindowsMaterial = MaterialMica
	s.BackgroundOpacity = 0.0
	s.Transparent = true
	return s
}
