package platform

import "github.com/bambooui/bamboo/internal/style"

// CornerPreference is the platform-native rounding bucket a requested
// corner radius falls into.
type CornerPreference int

const (
	CornerDefault CornerPreference = iota // radius 0: leave the OS alone
	CornerSmall
	CornerFull
)

// smallCornerMax is the largest radius still mapped to the "small"
// rounding bucket on platforms with tiered rounding (Windows 11).
const smallCornerMax = 4

// CornerBucket scales a requested radius into the platform rounding
// tiers. Radius <= 0 means platform default.
func CornerBucket(radius int) CornerPreference {
	switch {
	case radius <= 0:
		return CornerDefault
	case radius <= smallCornerMax:
		return CornerSmall
	default:
		return CornerFull
	}
}

// ResolveMaterial walks the fixed material priority chain
// (Mica-class -> Acrylic -> none) until it finds one the platform
// supports. A material is only ever downgraded, never upgraded: a
// request for Acrylic on a Mica-capable system stays Acrylic.
func ResolveMaterial(m style.WindowsMaterial, caps Capabilities) style.WindowsMaterial {
	switch m {
	case style.MaterialMica, style.MaterialMicaAlt, style.MaterialTabbed:
		if caps.Mica {
			return m
		}
		if caps.Acrylic {
			return style.MaterialAcrylic
		}
		return style.MaterialNone
	case style.MaterialAcrylic:
		if caps.Acrylic {
			return style.MaterialAcrylic
		}
		return style.MaterialNone
	default:
		return style.MaterialNone
	}
}

// DecoratedChrome reports whether the window manager should draw its
// decorations for the chrome mode. Shadow does not participate; it is
// an independent toggle with its own adapter operation.
func DecoratedChrome(mode style.ChromeMode) bool {
	return mode == style.ChromeFull || mode == style.ChromeNativeTitlebar
}

// NeedsAlphaSurface reports whether the style requires the layered /
// per-pixel-alpha capability to be enabled before opacity is applied.
// The two native operations must be sequenced in this order or the
// opacity change has no visible effect.
func NeedsAlphaSurface(s style.WindowStyle) bool {
	return s.Transparent || s.BackgroundOpacity < 1.0
}
