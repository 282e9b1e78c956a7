package headless

import (
	"sync"

	"github.com/bambooui/bamboo/internal/platform"
	"github.com/bambooui/bamboo/internal/script"
	"github.com/bambooui/bamboo/internal/window"
)

type taskKind int

const (
	taskToPage taskKind = iota
	taskToNative
)

type task struct {
	kind taskKind
	text string
}

// surface is a window without a screen: page script runs in a goja
// runtime and the native window is a struct of remembered state.
//
// Both bridge directions flow through one queue, so each direction is
// FIFO and re-entrant calls (script posted from inside a handler reply)
// cannot recurse.
type surface struct {
	win *window.Window
	rt  *script.Runtime

	mu      sync.Mutex
	queue   []task
	running bool

	history    []string
	histPos    int
	title      string
	mode       string // "", minimized, maximized
	hidden     bool
	x, y       int
	width      int
	height     int
	centered   bool
	zoomLevel  float64
	fullscreen bool
	devTools   bool
	findQuery  string
	printed    int
	pdfs       []string
	closed     bool
}

func (s *surface) enqueue(t task) {
	s.mu.Lock()
	s.queue = append(s.queue, t)
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	for {
		if len(s.queue) == 0 {
			s.running = false
			s.mu.Unlock()
			return
		}
		next := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		switch next.kind {
		case taskToPage:
			// Page script errors stay on the page, as in a real engine.
			_ = s.rt.Execute(next.text)
		case taskToNative:
			s.win.HandleScriptMessage(next.text)
		}
		s.mu.Lock()
	}
}

// post receives serialized messages from page script.
func (s *surface) post(text string) {
	s.enqueue(task{kind: taskToNative, text: text})
}

func (s *surface) ExecuteScript(src string) {
	s.enqueue(task{kind: taskToPage, text: src})
}

// LoadURL completes instantly: there is no network and no renderer.
// Forward history entries are discarded, as in a real engine.
func (s *surface) LoadURL(url string) {
	s.mu.Lock()
	s.history = append(s.history[:s.histPos], url)
	s.histPos = len(s.history)
	s.mu.Unlock()
	s.navigate(url)
}

func (s *surface) navigate(url string) {
	s.win.NotifyLoadStart(url)
	s.win.NotifyLoadEnd(url)
}

func (s *surface) Reload() {
	s.mu.Lock()
	if s.histPos == 0 {
		s.mu.Unlock()
		return
	}
	url := s.history[s.histPos-1]
	s.mu.Unlock()
	s.navigate(url)
}

func (s *surface) GoBack() {
	s.mu.Lock()
	if s.histPos <= 1 {
		s.mu.Unlock()
		return
	}
	s.histPos--
	url := s.history[s.histPos-1]
	s.mu.Unlock()
	s.navigate(url)
}

func (s *surface) GoForward() {
	s.mu.Lock()
	if s.histPos >= len(s.history) {
		s.mu.Unlock()
		return
	}
	s.histPos++
	url := s.history[s.histPos-1]
	s.mu.Unlock()
	s.navigate(url)
}

// StopLoad is a no-op: loads here finish before they can be stopped.
func (s *surface) StopLoad() {}

func (s *surface) SetTitle(title string) {
	s.mu.Lock()
	s.title = title
	s.mu.Unlock()
}

func (s *surface) SetZoomLevel(level float64) {
	s.mu.Lock()
	s.zoomLevel = level
	s.mu.Unlock()
}

func (s *surface) SetFullscreen(on bool) {
	s.mu.Lock()
	s.fullscreen = on
	s.mu.Unlock()
	s.win.NotifyFullscreenChange(on)
}

func (s *surface) Minimize() { s.setMode("minimized") }
func (s *surface) Maximize() { s.setMode("maximized") }
func (s *surface) Restore()  { s.setMode("") }

func (s *surface) setMode(mode string) {
	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()
}

func (s *surface) Show() {
	s.mu.Lock()
	s.hidden = false
	s.mu.Unlock()
}

func (s *surface) Hide() {
	s.mu.Lock()
	s.hidden = true
	s.mu.Unlock()
}

func (s *surface) Focus() {
	s.win.NotifyFocusChange(true)
}

func (s *surface) Resize(width, height int) {
	s.mu.Lock()
	s.width, s.height = width, height
	s.mu.Unlock()
}

func (s *surface) Move(x, y int) {
	s.mu.Lock()
	s.x, s.y = x, y
	s.centered = false
	s.mu.Unlock()
}

func (s *surface) Center() {
	s.mu.Lock()
	s.centered = true
	s.mu.Unlock()
}

// Find has no document text to search; it reports an empty final
// result so callers see the session complete.
func (s *surface) Find(text string, forward, matchCase bool) {
	s.mu.Lock()
	s.findQuery = text
	s.mu.Unlock()
	s.win.NotifyFind(0, 0, true)
}

func (s *surface) StopFind(clear bool) {
	s.mu.Lock()
	s.findQuery = ""
	s.mu.Unlock()
}

func (s *surface) Print() {
	s.mu.Lock()
	s.printed++
	s.mu.Unlock()
}

func (s *surface) PrintToPDF(path string) {
	s.mu.Lock()
	s.pdfs = append(s.pdfs, path)
	s.mu.Unlock()
}

func (s *surface) OpenDevTools() {
	s.mu.Lock()
	s.devTools = true
	s.mu.Unlock()
}

func (s *surface) CloseDevTools() {
	s.mu.Lock()
	s.devTools = false
	s.mu.Unlock()
}

func (s *surface) CloseSurface() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()
	s.rt.Close()
	s.win.NotifyClosed()
}

// Handle returns a nonzero token so the style adapter treats the
// surface as real.
func (s *surface) Handle() platform.Handle { return platform.Handle(1) }

var _ window.Surface = (*surface)(nil)
