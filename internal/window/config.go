package window

import "github.com/bambooui/bamboo/internal/style"

// Config describes one window at creation time. The zero value plus
// Defaults() is a usable standard window.
type Config struct {
	Title  string
	URL    string
	Width  int
	Height int
	X      int
	Y      int

	// Size bounds; zero means unbounded. Resize clamps into them.
	MinWidth  int
	MinHeight int
	MaxWidth  int
	MaxHeight int

	// Centered overrides X/Y.
	Centered bool

	// Style is the initial appearance model. Nil means style.Default().
	Style *style.WindowStyle
}

// Defaults fills unset dimensions.
func (c *Config) Defaults() {
	if c.Width <= 0 {
		c.Width = 1024
	}
	if c.Height <= 0 {
		c.Height = 768
	}
	if c.Title == "" {
		c.Title = "Bamboo"
	}
}
