// Package headless is an engine without a browser: page script runs in
// an embedded goja interpreter and window state is plain bookkeeping.
// It exists for tests, CI and server-side rendering of bridge traffic,
// and exercises the exact same window facade as a real engine.
package headless

import (
	"fmt"
	"sync"

	"github.com/bambooui/bamboo/internal/infrastructure/config"
	"github.com/bambooui/bamboo/internal/infrastructure/logging"
	"github.com/bambooui/bamboo/internal/script"
	"github.com/bambooui/bamboo/internal/shared/id"
	"github.com/bambooui/bamboo/internal/window"
)

// Engine implements engine.Engine with goja-backed surfaces.
type Engine struct {
	log *logging.Logger

	mu       sync.Mutex
	cfg      *config.Config
	surfaces map[id.WindowID]*surface
	quit     chan struct{}
	quitOnce sync.Once
}

// New builds a headless engine.
func New(log *logging.Logger) *Engine {
	if log == nil {
		log = logging.NewNop()
	}
	return &Engine{
		log:      log,
		surfaces: make(map[id.WindowID]*surface),
		quit:     make(chan struct{}),
	}
}

func (e *Engine) Name() string { return "headless" }

func (e *Engine) Initialize(cfg *config.Config) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cfg = cfg
	return nil
}

// CreateWindow gives w a goja-backed surface. Page loads complete
// synchronously, so the window is Loaded when this returns if the
// config carried a URL.
func (e *Engine) CreateWindow(w *window.Window) error {
	s := &surface{win: w}
	rt, err := script.NewRuntime(s.post, e.log)
	if err != nil {
		return fmt.Errorf("headless: script runtime: %w", err)
	}
	s.rt = rt

	e.mu.Lock()
	e.surfaces[w.ID()] = s
	e.mu.Unlock()

	w.NotifyCreated(s)
	return nil
}

// RunScript executes src as page script in w, the headless stand-in
// for a page's own <script> tags. It goes through the surface queue so
// bridge traffic the script produces is fully pumped before return.
func (e *Engine) RunScript(w *window.Window, src string) error {
	s, err := e.surfaceFor(w)
	if err != nil {
		return err
	}
	s.ExecuteScript(src)
	return nil
}

// EvalPage evaluates src in w's page and returns the exported value.
// Meant for reading page state; scripts that emit bridge traffic
// belong in RunScript.
func (e *Engine) EvalPage(w *window.Window, src string) (interface{}, error) {
	s, err := e.surfaceFor(w)
	if err != nil {
		return nil, err
	}
	return s.rt.Eval(src)
}

func (e *Engine) surfaceFor(w *window.Window) (*surface, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.surfaces[w.ID()]
	if !ok {
		return nil, fmt.Errorf("headless: unknown window %s", w.ID())
	}
	return s, nil
}

func (e *Engine) Run() error {
	<-e.quit
	return nil
}

func (e *Engine) Quit() {
	e.quitOnce.Do(func() { close(e.quit) })
}

func (e *Engine) Shutdown() error {
	e.Quit()
	e.mu.Lock()
	surfaces := e.surfaces
	e.surfaces = make(map[id.WindowID]*surface)
	e.mu.Unlock()
	for _, s := range surfaces {
		s.CloseSurface()
	}
	return nil
}
