// Package remote runs windows whose rendering surface lives in another
// process. A shell (browser, webview host) dials the websocket
// endpoint, pairs with a pending window and from then on relays bridge
// traffic and lifecycle events both ways.
package remote

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/bambooui/bamboo/internal/bridge"
	"github.com/bambooui/bamboo/internal/infrastructure/config"
	"github.com/bambooui/bamboo/internal/infrastructure/logging"
	"github.com/bambooui/bamboo/internal/window"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Surfaces connect from local shells, not pages.
		return true
	},
}

// Engine implements engine.Engine over websocket-attached surfaces.
type Engine struct {
	log *logging.Logger

	mu       sync.Mutex
	cfg      *config.Config
	pending  []*window.Window
	surfaces map[*remoteSurface]struct{}
	server   *http.Server
	quit     chan struct{}
	quitOnce sync.Once
}

// New builds a remote engine.
func New(log *logging.Logger) *Engine {
	if log == nil {
		log = logging.NewNop()
	}
	return &Engine{
		log:      log,
		surfaces: make(map[*remoteSurface]struct{}),
		quit:     make(chan struct{}),
	}
}

func (e *Engine) Name() string { return "remote" }

// Initialize starts the websocket listener when the config names an
// address. With an empty address the caller mounts Handler itself.
func (e *Engine) Initialize(cfg *config.Config) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cfg = cfg

	if addr := cfg.Engine.RemoteAddress; addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/surface", e.Handler())
		e.server = &http.Server{Addr: addr, Handler: mux}
		go func() {
			if err := e.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				e.log.Error("surface listener failed", zap.Error(err))
			}
		}()
	}
	return nil
}

// CreateWindow queues w until a surface process connects for it.
func (e *Engine) CreateWindow(w *window.Window) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pending = append(e.pending, w)
	return nil
}

// Handler returns the websocket endpoint surfaces dial.
func (e *Engine) Handler() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(rw, r, nil)
		if err != nil {
			e.log.Warn("surface upgrade failed", zap.Error(err))
			return
		}
		e.handleConnection(conn)
	})
}

func (e *Engine) handleConnection(conn *websocket.Conn) {
	defer conn.Close()
	// Frame overhead on top of the bridge's own payload limit.
	conn.SetReadLimit(bridge.MaxMessageSize + 4096)

	var hello Frame
	if err := conn.ReadJSON(&hello); err != nil || hello.Kind != KindHello {
		conn.WriteJSON(Frame{Kind: KindError, Message: "expected hello frame"})
		return
	}

	w, err := e.takePending()
	if err != nil {
		conn.WriteJSON(Frame{Kind: KindError, Message: err.Error()})
		return
	}

	s := &remoteSurface{connID: uuid.NewString(), win: w, conn: conn}
	s.onDead = func(dead *remoteSurface) { e.dropSurface(dead) }
	e.mu.Lock()
	e.surfaces[s] = struct{}{}
	e.mu.Unlock()

	e.log.Info("surface attached",
		zap.String("conn", s.connID),
		zap.String("window", w.ID().String()))
	w.NotifyCreated(s)

	e.readLoop(s)
}

func (e *Engine) takePending() (*window.Window, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.pending) == 0 {
		return nil, fmt.Errorf("no window awaiting a surface")
	}
	w := e.pending[0]
	e.pending = e.pending[1:]
	return w, nil
}

func (e *Engine) dropSurface(s *remoteSurface) {
	e.mu.Lock()
	delete(e.surfaces, s)
	e.mu.Unlock()
}

// readLoop pumps frames until the connection dies. Frame order on the
// socket is the inbound FIFO.
func (e *Engine) readLoop(s *remoteSurface) {
	w := s.win
	for {
		var f Frame
		if err := s.conn.ReadJSON(&f); err != nil {
			e.log.Debug("surface read loop ended",
				zap.String("window", w.ID().String()), zap.Error(err))
			break
		}

		switch f.Kind {
		case KindBridge:
			w.HandleScriptMessage(f.Text)
		case KindEvent:
			e.handleEvent(w, f)
		default:
			e.log.Warn("unknown surface frame", zap.String("kind", f.Kind))
		}
	}
	e.dropSurface(s)
	if w.State() != window.StateClosed {
		w.NotifyClosed()
	}
}

func (e *Engine) handleEvent(w *window.Window, f Frame) {
	switch f.Event {
	case EventLoadStart:
		w.NotifyLoadStart(f.URL)
	case EventLoadEnd:
		w.NotifyLoadEnd(f.URL)
	case EventTitle:
		w.NotifyTitleChange(f.Title)
	case EventConsole:
		w.NotifyConsole(f.LogLevel, f.Message, f.Source)
	case EventFocus:
		w.NotifyFocusChange(f.On)
	case EventFind:
		w.NotifyFind(f.Matches, f.Ordinal, f.Final)
	case EventFullscreen:
		w.NotifyFullscreenChange(f.On)
	case EventCloseReq:
		w.Close()
	case EventClosed:
		w.NotifyClosed()
	case EventContextMenu:
		w.HandleContextMenu(f.X, f.Y)
	default:
		e.log.Warn("unknown surface event", zap.String("event", f.Event))
	}
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
	server := e.server
	surfaces := make([]*remoteSurface, 0, len(e.surfaces))
	for s := range e.surfaces {
		surfaces = append(surfaces, s)
	}
	e.mu.Unlock()

	for _, s := range surfaces {
		s.conn.Close()
	}
	if server != nil {
		return server.Close()
	}
	return nil
}
