package platform

import (
	"fmt"
	"sync"

	"github.com/bambooui/bamboo/internal/style"
)

// Op is one recorded native operation of the memory adapter.
type Op struct {
	Name string
	Args []interface{}
}

func (o Op) String() string { return fmt.Sprintf("%s%v", o.Name, o.Args) }

// Memory is an in-process adapter used by the headless engine and by
// tests. It honors the same fallback chains and operation sequencing as
// the real adapters, but records native calls instead of issuing them.
type Memory struct {
	caps Capabilities

	mu  sync.Mutex
	ops []Op
}

// FullCapabilities describes a platform that supports everything.
func FullCapabilities() Capabilities {
	return Capabilities{
		CornerRadius: true,
		Mica:         true,
		Acrylic:      true,
		Vibrancy:     true,
		LayeredAlpha: true,
		Decorations:  true,
		Shadow:       true,
	}
}

// NewMemory creates a recording adapter with the given capability set.
func NewMemory(caps Capabilities) *Memory {
	return &Memory{caps: caps}
}

func (m *Memory) Name() string               { return "memory" }
func (m *Memory) Capabilities() Capabilities { return m.caps }

// Ops returns a copy of the recorded operation log.
func (m *Memory) Ops() []Op {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Op, len(m.ops))
	copy(out, m.ops)
	return out
}

// OpNames returns just the operation names, in order.
func (m *Memory) OpNames() []string {
	ops := m.Ops()
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = op.Name
	}
	return names
}

// Reset clears the operation log.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = nil
}

func (m *Memory) record(name string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, Op{Name: name, Args: args})
}

func (m *Memory) Apply(h Handle, s style.WindowStyle) {
	if h == None {
		return
	}
	if m.caps.Decorations {
		m.record("chromeMode", s.ChromeMode.String(), s.Resizable)
	}
	if NeedsAlphaSurface(s) {
		m.SetTransparent(h, s.Transparent, s.BackgroundOpacity)
	}
	m.SetMaterial(h, s.WindowsMaterial)
	m.SetVibrancy(h, s.MacOSVibrancy)
	m.record("alwaysOnTop", s.AlwaysOnTop)
	m.SetCornerRadius(h, s.CornerRadius)
	m.SetShadow(h, s.Shadow)
	m.SetResizable(h, s.Resizable)
	m.record("skipTaskbar", s.SkipTaskbar)
}

func (m *Memory) SetDragRegions(h Handle, regions []style.DragRegion) {
	if h == None {
		return
	}
	copied := make([]style.DragRegion, len(regions))
	copy(copied, regions)
	m.record("dragRegions", copied)
}

func (m *Memory) SetCornerRadius(h Handle, radius int) {
	if h == None || !m.caps.CornerRadius {
		return
	}
	m.record("cornerRadius", CornerBucket(radius))
}

func (m *Memory) SetMaterial(h Handle, mat style.WindowsMaterial) {
	if h == None {
		return
	}
	resolved := ResolveMaterial(mat, m.caps)
	if resolved == style.MaterialNone && mat == style.MaterialNone {
		return
	}
	m.record("material", resolved)
}

func (m *Memory) SetVibrancy(h Handle, v style.MacOSVibrancy) {
	if h == None || !m.caps.Vibrancy || v == style.VibrancyNone {
		return
	}
	m.record("vibrancy", v)
}

func (m *Memory) SetBackgroundColor(h Handle, c style.Color) {
	if h == None {
		return
	}
	m.record("backgroundColor", c)
}

func (m *Memory) SetTransparent(h Handle, transparent bool, opacity float64) {
	if h == None || !m.caps.LayeredAlpha {
		return
	}
	// The alpha surface must be enabled before opacity is applied.
	m.record("enableLayered", transparent)
	m.record("setOpacity", opacity)
}

func (m *Memory) SetShadow(h Handle, sh style.Shadow) {
	if h == None || !m.caps.Shadow {
		return
	}
	m.record("shadow", sh.Enabled)
}

func (m *Memory) SetResizable(h Handle, resizable bool) {
	if h == None || !m.caps.Decorations {
		return
	}
	m.record("resizable", resizable)
}

var _ Adapter = (*Memory)(nil)
