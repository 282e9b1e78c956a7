package style

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// fileStyle is the YAML shape for a style preset file. Only the fields
// that make sense in static configuration are exposed; everything else
// keeps its default.
type fileStyle struct {
	Preset            string   `yaml:"preset"` // fullBrowser|fullCustom|macosModern|windows11Mica
	ChromeMode        *string  `yaml:"chromeMode"`
	CornerRadius      *int     `yaml:"cornerRadius"`
	Transparent       *bool    `yaml:"transparent"`
	BackgroundOpacity *float64 `yaml:"backgroundOpacity"`
	AlwaysOnTop       *bool    `yaml:"alwaysOnTop"`
	SkipTaskbar       *bool    `yaml:"skipTaskbar"`
	Resizable         *bool    `yaml:"resizable"`
	ShadowEnabled     *bool    `yaml:"shadow"`
	Scrollbar         *string  `yaml:"scrollbar"`
	ZoomFactor        *float64 `yaml:"zoomFactor"`
	TitlebarHeight    *int     `yaml:"titlebarHeight"`
}

// LoadFile reads a style preset from a YAML file. The preset names match
// the built-in constructors; explicit fields override the preset.
func LoadFile(path string) (WindowStyle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("style: read %s: %w", path, err)
	}
	return parseFile(data)
}

func parseFile(data []byte) (WindowStyle, error) {
	var fs fileStyle
	if err := yaml.Unmarshal(data, &fs); err != nil {
		return Default(), fmt.Errorf("style: parse: %w", err)
	}

	s := Default()
	switch fs.Preset {
	case "", "default":
	case "fullBrowser":
		s = FullBrowser()
	case "fullCustom":
		s = FullCustom()
	case "macosModern":
		s = MacOSModern(VibrancyWindowBackground)
	case "windows11Mica":
		s = Windows11Mica()
	default:
		return s, fmt.Errorf("style: unknown preset %q", fs.Preset)
	}

	if fs.ChromeMode != nil {
		mode, err := parseChromeMode(*fs.ChromeMode)
		if err != nil {
			return s, err
		}
		s.ChromeMode = mode
	}
	if fs.CornerRadius != nil {
		s.CornerRadius = *fs.CornerRadius
	}
	if fs.Transparent != nil {
		s.Transparent = *fs.Transparent
	}
	if fs.BackgroundOpacity != nil {
		s.BackgroundOpacity = clamp01(*fs.BackgroundOpacity)
	}
	if fs.AlwaysOnTop != nil {
		s.AlwaysOnTop = *fs.AlwaysOnTop
	}
	if fs.SkipTaskbar != nil {
		s.SkipTaskbar = *fs.SkipTaskbar
	}
	if fs.Resizable != nil {
		s.Resizable = *fs.Resizable
	}
	if fs.ShadowEnabled != nil {
		s.Shadow.Enabled = *fs.ShadowEnabled
	}
	if fs.Scrollbar != nil {
		switch *fs.Scrollbar {
		case "default":
			s.Scrollbar = ScrollbarDefault
		case "hidden":
			s.Scrollbar = ScrollbarHidden
		case "overlay":
			s.Scrollbar = ScrollbarOverlay
		default:
			return s, fmt.Errorf("style: unknown scrollbar %q", *fs.Scrollbar)
		}
	}
	if fs.ZoomFactor != nil {
		s.ZoomFactor = *fs.ZoomFactor
	}
	if fs.TitlebarHeight != nil {
		s.Titlebar.Height = *fs.TitlebarHeight
	}
	return s, nil
}

func parseChromeMode(name string) (ChromeMode, error) {
	switch name {
	case "full":
		return ChromeFull, nil
	case "nativeTitlebar":
		return ChromeNativeTitlebar, nil
	case "frameless":
		return ChromeFrameless, nil
	case "customTitlebar":
		return ChromeCustomTitlebar, nil
	}
	return ChromeNativeTitlebar, fmt.Errorf("style: unknown chrome mode %q", name)
}
