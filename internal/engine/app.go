package engine

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/bambooui/bamboo/internal/infrastructure/config"
	"github.com/bambooui/bamboo/internal/infrastructure/logging"
	"github.com/bambooui/bamboo/internal/infrastructure/monitoring"
	"github.com/bambooui/bamboo/internal/shared/id"
	"github.com/bambooui/bamboo/internal/window"
)

// App owns one engine for the process lifetime: initialization,
// window bookkeeping, the interface loop and teardown.
type App struct {
	mu          sync.Mutex
	cfg         *config.Config
	eng         Engine
	log         *logging.Logger
	metrics     *monitoring.Metrics
	registry    *prometheus.Registry
	loop        *Loop
	windows     map[id.WindowID]*window.Window
	initialized bool
	shutdown    sync.Once
}

// ErrInitialization marks a failed engine bring-up. It is the only
// error Initialize produces besides what the engine itself reports.
var ErrInitialization = errors.New("engine initialization failed")

var (
	sharedApp *App
	appOnce   sync.Once
)

// Shared returns the process-wide application instance.
func Shared() *App {
	appOnce.Do(func() {
		sharedApp = NewApp()
	})
	return sharedApp
}

// NewApp builds an unattached application. Tests use this to avoid the
// process singleton.
func NewApp() *App {
	return &App{
		log:     logging.NewNop(),
		loop:    NewLoop(),
		windows: make(map[id.WindowID]*window.Window),
	}
}

// Initialize attaches the engine and starts the interface loop. Calling
// it again is a no-op returning the first outcome's state.
func (a *App) Initialize(eng Engine, cfg *config.Config, log *logging.Logger) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.initialized {
		return nil
	}
	if cfg == nil {
		cfg = config.LoadOrDefault()
	}
	if log != nil {
		a.log = log
	}

	if err := eng.Initialize(cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrInitialization, err)
	}
	a.eng = eng
	a.cfg = cfg
	// Per-app registry so repeated initialization in one process (tests,
	// embedding) cannot collide on collector names.
	a.registry = prometheus.NewRegistry()
	a.metrics = monitoring.NewMetricsWith(a.registry)
	a.loop.Start()

	if cfg.Metrics.Enabled {
		go a.serveMetrics(cfg.Metrics.Address)
	}

	a.initialized = true
	a.log.Info("application initialized",
		zap.String("engine", eng.Name()),
		zap.String("app", cfg.App.Name))
	return nil
}

func (a *App) serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	if err := http.ListenAndServe(addr, mux); err != nil {
		a.log.Warn("metrics endpoint stopped", zap.Error(err))
	}
}

// NewWindow creates a window and asks the engine for its surface.
func (a *App) NewWindow(cfg window.Config, opts ...window.Option) (*window.Window, error) {
	a.mu.Lock()
	if !a.initialized {
		a.mu.Unlock()
		return nil, fmt.Errorf("app not initialized")
	}
	eng, log, metrics := a.eng, a.log, a.metrics
	a.mu.Unlock()

	opts = append([]window.Option{
		window.WithLogger(log),
		window.WithMetrics(metrics),
	}, opts...)
	w := window.New(cfg, opts...)

	if err := eng.CreateWindow(w); err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}

	a.mu.Lock()
	a.windows[w.ID()] = w
	a.mu.Unlock()
	return w, nil
}

// Window returns a window by identifier.
func (a *App) Window(winID id.WindowID) (*window.Window, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	w, ok := a.windows[winID]
	return w, ok
}

// Windows returns all known windows.
func (a *App) Windows() []*window.Window {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]*window.Window, 0, len(a.windows))
	for _, w := range a.windows {
		out = append(out, w)
	}
	return out
}

// Loop exposes the interface loop for engine implementations.
func (a *App) Loop() *Loop { return a.loop }

// Config returns the active configuration, nil before Initialize.
func (a *App) Config() *config.Config {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cfg
}

// Run pumps the engine loop until Quit. Blocks the calling goroutine.
func (a *App) Run() error {
	a.mu.Lock()
	eng := a.eng
	a.mu.Unlock()
	if eng == nil {
		return fmt.Errorf("app not initialized")
	}
	return eng.Run()
}

// Quit asks the engine loop to return.
func (a *App) Quit() {
	a.mu.Lock()
	eng := a.eng
	a.mu.Unlock()
	if eng != nil {
		eng.Quit()
	}
}

// Shutdown tears the engine down exactly once. Safe after or instead of
// Run.
func (a *App) Shutdown() error {
	var err error
	a.shutdown.Do(func() {
		a.loop.Stop()
		a.mu.Lock()
		eng, metrics := a.eng, a.metrics
		a.mu.Unlock()
		if metrics != nil {
			metrics.Close()
		}
		if eng != nil {
			err = eng.Shutdown()
		}
		a.log.Info("application shut down")
	})
	return err
}
