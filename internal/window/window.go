// Package window implements the native window facade: lifecycle state,
// the script message pump, call dispatch and the style model owner.
package window

import (
	"encoding/json"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/bambooui/bamboo/internal/bridge"
	"github.com/bambooui/bamboo/internal/infrastructure/logging"
	"github.com/bambooui/bamboo/internal/infrastructure/monitoring"
	"github.com/bambooui/bamboo/internal/platform"
	"github.com/bambooui/bamboo/internal/script"
	"github.com/bambooui/bamboo/internal/shared/id"
	"github.com/bambooui/bamboo/internal/shared/jsv"
	"github.com/bambooui/bamboo/internal/style"
)

// Surface is the engine-provided rendering surface behind one window.
// Implementations execute on the interface thread.
type Surface interface {
	ExecuteScript(src string)
	LoadURL(url string)
	Reload()
	GoBack()
	GoForward()
	StopLoad()
	SetTitle(title string)
	SetZoomLevel(level float64)
	SetFullscreen(on bool)
	Minimize()
	Maximize()
	Restore()
	Show()
	Hide()
	Focus()
	Resize(width, height int)
	Move(x, y int)
	Center()
	Find(text string, forward, matchCase bool)
	StopFind(clear bool)
	Print()
	PrintToPDF(path string)
	OpenDevTools()
	CloseDevTools()
	CloseSurface()
	Handle() platform.Handle
}

// MessageHandler receives one page-originated event payload.
type MessageHandler func(data json.RawMessage)

// zoomBase converts a zoom factor to the engine's logarithmic level.
const zoomBase = 1.2

// Window is the facade over one surface. Style mutations, script
// evaluation and message handling all funnel through here so ordering
// within each direction is preserved.
type Window struct {
	id      id.WindowID
	cfg     Config
	events  Events
	log     *logging.Logger
	metrics *monitoring.Metrics

	mu          sync.Mutex
	state       State
	surface     Surface
	adapter     platform.Adapter
	style       style.WindowStyle
	dragRegions []style.DragRegion
	title       string
	zoomFactor  float64

	registry   *bridge.Registry
	correlator *bridge.Correlator
	listeners  map[string][]MessageHandler

	// Script issued before the surface exists, replayed on creation.
	pendingScripts []string
}

// Option customizes a window at construction.
type Option func(*Window)

// WithLogger sets the structured logger.
func WithLogger(log *logging.Logger) Option {
	return func(w *Window) { w.log = log }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *monitoring.Metrics) Option {
	return func(w *Window) { w.metrics = m }
}

// WithAdapter overrides the platform style adapter.
func WithAdapter(a platform.Adapter) Option {
	return func(w *Window) { w.adapter = a }
}

// WithEvents sets the lifecycle callbacks.
func WithEvents(events Events) Option {
	return func(w *Window) { w.events = events }
}

// New builds a window facade. The surface attaches later through
// NotifyCreated; until then style and script operations are queued.
func New(cfg Config, opts ...Option) *Window {
	cfg.Defaults()

	w := &Window{
		id:         id.NewWindowID(),
		cfg:        cfg,
		log:        logging.NewNop(),
		state:      StateUninitialized,
		adapter:    platform.New(),
		style:      style.Default(),
		title:      cfg.Title,
		zoomFactor: 1.0,
		registry:   bridge.NewRegistry(),
		correlator: bridge.NewCorrelator(),
		listeners:  make(map[string][]MessageHandler),
	}
	if cfg.Style != nil {
		w.style = cfg.Style.Clone()
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// ID returns the window identifier.
func (w *Window) ID() id.WindowID { return w.id }

// State returns the current lifecycle state.
func (w *Window) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Title returns the last known document or configured title.
func (w *Window) Title() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.title
}

// Style returns a copy of the active style model.
func (w *Window) Style() style.WindowStyle {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.style.Clone()
}

func (w *Window) transition(next State) bool {
	if !w.state.canTransition(next) {
		w.log.Warn("illegal window state transition",
			zap.String("window", w.id.String()),
			zap.Stringer("from", w.state),
			zap.Stringer("to", next))
		return false
	}
	w.state = next
	return true
}

// NotifyCreated attaches the surface once the engine has a native
// window. Deferred style and scripts flush here, style first so the
// frame is right before anything becomes visible.
func (w *Window) NotifyCreated(s Surface) {
	w.mu.Lock()
	if !w.transition(StateCreated) {
		w.mu.Unlock()
		return
	}
	w.surface = s
	pending := w.pendingScripts
	w.pendingScripts = nil
	st := w.style.Clone()
	regions := append([]style.DragRegion(nil), w.dragRegions...)
	w.mu.Unlock()

	if w.metrics != nil {
		w.metrics.IncWindows()
	}

	w.applyStyle(s, st, "created")
	if len(regions) > 0 {
		w.adapter.SetDragRegions(s.Handle(), regions)
	}

	s.Resize(
		clamp(w.cfg.Width, w.cfg.MinWidth, w.cfg.MaxWidth),
		clamp(w.cfg.Height, w.cfg.MinHeight, w.cfg.MaxHeight))
	if w.cfg.Centered {
		s.Center()
	} else if w.cfg.X != 0 || w.cfg.Y != 0 {
		s.Move(w.cfg.X, w.cfg.Y)
	}

	for _, src := range pending {
		s.ExecuteScript(src)
	}

	if w.cfg.URL != "" {
		s.LoadURL(w.cfg.URL)
	}
}

// ShouldNavigate asks the veto hook whether url may commit. The engine
// consults this before starting a load.
func (w *Window) ShouldNavigate(url string) bool {
	if w.events.OnNavigation != nil {
		return w.events.OnNavigation(url)
	}
	return true
}

// NotifyLoadStart marks the beginning of a navigation. In-flight
// evaluations are settled with an error since their page is going away.
func (w *Window) NotifyLoadStart(url string) {
	w.mu.Lock()
	ok := w.transition(StateLoading)
	w.mu.Unlock()
	if !ok {
		return
	}
	w.correlator.DrainAll(&bridge.CallError{
		Kind:    bridge.FailureTimeout,
		Message: "navigation discarded pending evaluations",
	})
	w.log.Debug("load start", zap.String("window", w.id.String()), zap.String("url", url))
}

// NotifyLoadEnd marks a committed page. The bridge bootstrap and the
// derived stylesheet are injected before OnLoad observers run, so page
// script written against window.bamboo works from the load event on.
func (w *Window) NotifyLoadEnd(url string) {
	w.mu.Lock()
	if !w.transition(StateLoaded) {
		w.mu.Unlock()
		return
	}
	s := w.surface
	st := w.style.Clone()
	w.mu.Unlock()

	if s != nil {
		s.ExecuteScript(script.Bootstrap())
		s.ExecuteScript(style.InjectionScript(st))
	}
	if w.events.OnLoad != nil {
		w.events.OnLoad(url)
	}
}

// NotifyTitleChange records a document title change.
func (w *Window) NotifyTitleChange(title string) {
	w.mu.Lock()
	w.title = title
	w.mu.Unlock()
	if w.events.OnTitleChange != nil {
		w.events.OnTitleChange(title)
	}
}

// NotifyConsole forwards page console output.
func (w *Window) NotifyConsole(level, message, source string) {
	if w.events.OnConsole != nil {
		w.events.OnConsole(level, message, source)
		return
	}
	w.log.Debug("page console",
		zap.String("window", w.id.String()),
		zap.String("level", level),
		zap.String("message", message),
		zap.String("source", source))
}

// NotifyFocusChange forwards focus transitions.
func (w *Window) NotifyFocusChange(focused bool) {
	if w.events.OnFocusChange != nil {
		w.events.OnFocusChange(focused)
	}
}

// NotifyFind forwards in-page find results.
func (w *Window) NotifyFind(matches, activeOrdinal int, finalUpdate bool) {
	if w.events.OnFind != nil {
		w.events.OnFind(matches, activeOrdinal, finalUpdate)
	}
}

// NotifyFullscreenChange forwards HTML fullscreen transitions.
func (w *Window) NotifyFullscreenChange(fullscreen bool) {
	if w.events.OnFullscreenChange != nil {
		w.events.OnFullscreenChange(fullscreen)
	}
}

// Close starts window teardown. Closing is not cancelable; OnClose is
// a notification that it has begun.
func (w *Window) Close() {
	w.mu.Lock()
	if !w.transition(StateClosing) {
		w.mu.Unlock()
		return
	}
	s := w.surface
	w.mu.Unlock()
	if w.events.OnClose != nil {
		w.events.OnClose()
	}
	if s != nil {
		s.CloseSurface()
	} else {
		w.NotifyClosed()
	}
}

// NotifyClosed finalizes the window after the surface is gone.
func (w *Window) NotifyClosed() {
	w.mu.Lock()
	if w.state != StateClosing {
		w.transition(StateClosing)
	}
	if !w.transition(StateClosed) {
		w.mu.Unlock()
		return
	}
	w.surface = nil
	w.mu.Unlock()

	w.correlator.DrainAll(&bridge.CallError{
		Kind:    bridge.FailureTimeout,
		Message: "window closed",
	})
	if w.metrics != nil {
		w.metrics.DecWindows()
	}
	if w.events.OnClosed != nil {
		w.events.OnClosed()
	}
}

// Bind registers a native handler callable from page script. Rebinding
// a name replaces the previous handler.
func (w *Window) Bind(name string, fn bridge.Handler) {
	w.registry.Bind(name, fn)
}

// On subscribes to a page-originated event.
func (w *Window) On(event string, fn MessageHandler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners[event] = append(w.listeners[event], fn)
}

// Off removes all subscribers for event.
func (w *Window) Off(event string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.listeners, event)
}

// Send dispatches a native-originated event to page listeners.
func (w *Window) Send(event string, payload interface{}) {
	w.execute(bridge.DispatchScript(event, payload))
	if w.metrics != nil {
		w.metrics.RecordMessage("outbound", string(bridge.TypeMessage))
	}
}

// EvalJS evaluates code on the page and delivers the exported result to
// cb. A nil cb discards the result. Results of evaluations that never
// complete (navigation, close) are settled with an error.
func (w *Window) EvalJS(code string, cb bridge.EvalCallback) {
	wrapped := cb
	if w.metrics != nil {
		wrapped = func(v jsv.Value, err *bridge.CallError) {
			status := "ok"
			if err != nil {
				status = err.Kind.String()
			}
			w.metrics.RecordEval(status)
			if cb != nil {
				cb(v, err)
			}
		}
	}
	evalID := w.correlator.Register(wrapped)
	w.execute(bridge.EvalWrapper(evalID, code))
}

// execute runs src on the surface, or queues it until one exists.
func (w *Window) execute(src string) {
	w.mu.Lock()
	s := w.surface
	if s == nil {
		w.pendingScripts = append(w.pendingScripts, src)
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()
	s.ExecuteScript(src)
}

// HandleScriptMessage is the inbound pump: every serialized bridge
// envelope posted by page script lands here. Undecodable input is
// dropped with a log line; the channel itself is never torn down.
func (w *Window) HandleScriptMessage(text string) {
	env, err := bridge.Decode(text)
	if err != nil {
		w.log.Warn("dropping undecodable bridge message",
			zap.String("window", w.id.String()), zap.Error(err))
		if w.metrics != nil {
			w.metrics.RecordDecodeError()
		}
		return
	}
	if w.metrics != nil {
		w.metrics.RecordMessage("inbound", string(env.Type))
	}

	switch env.Type {
	case bridge.TypeMessage:
		w.handleMessage(env)
	case bridge.TypeCall:
		w.handleCall(env)
	case bridge.TypeSetStyle:
		w.handleSetStyle(env)
	case bridge.TypeSetDragRegions:
		w.handleSetDragRegions(env)
	case bridge.TypeWindowOp:
		w.handleWindowOp(env)
	}
}

func (w *Window) handleMessage(env *bridge.Envelope) {
	if env.Event == bridge.EvalResultEvent {
		if !w.correlator.SettleFromPayload(env.Data) {
			w.log.Debug("eval result for unknown id dropped",
				zap.String("window", w.id.String()))
		}
		return
	}

	w.mu.Lock()
	handlers := append([]MessageHandler(nil), w.listeners[env.Event]...)
	w.mu.Unlock()
	for _, fn := range handlers {
		fn(env.Data)
	}
}

func (w *Window) handleCall(env *bridge.Envelope) {
	start := time.Now()

	fn, ok := w.registry.Lookup(env.Name)
	if !ok {
		// Reply unconditionally so the page promise rejects now instead
		// of timing out.
		callErr := bridge.NewHandlerMissing(env.Name)
		w.execute(bridge.ResolveCallScript(env.ID, jsv.Absent(), callErr))
		w.recordCall(env.Name, callErr.Kind.String(), start)
		return
	}

	args := jsv.FromSlice(env.Args)
	result, err := fn(args)
	if err != nil {
		callErr, isCallErr := err.(*bridge.CallError)
		if !isCallErr {
			callErr = bridge.NewScriptException(err.Error())
		}
		w.execute(bridge.ResolveCallScript(env.ID, jsv.Absent(), callErr))
		w.recordCall(env.Name, callErr.Kind.String(), start)
		return
	}
	w.execute(bridge.ResolveCallScript(env.ID, result, nil))
	w.recordCall(env.Name, "ok", start)
}

func (w *Window) recordCall(name, status string, start time.Time) {
	if w.metrics != nil {
		w.metrics.RecordCall(name, status, time.Since(start))
	}
}

func (w *Window) handleSetStyle(env *bridge.Envelope) {
	w.mu.Lock()
	unknown := w.style.ApplyPartial(env.Style)
	st := w.style.Clone()
	s := w.surface
	w.mu.Unlock()

	for _, key := range unknown {
		w.log.Warn("ignoring unknown style key",
			zap.String("window", w.id.String()), zap.String("key", key))
	}
	w.applyStyle(s, st, "page")
}

func (w *Window) handleSetDragRegions(env *bridge.Envelope) {
	regions := make([]style.DragRegion, 0, len(env.Regions))
	for _, r := range env.Regions {
		regions = append(regions, style.DragRegion{
			X: r.X, Y: r.Y, Width: r.Width, Height: r.Height, Draggable: true,
		})
	}
	w.SetDragRegions(regions)
}

func (w *Window) handleWindowOp(env *bridge.Envelope) {
	if w.metrics != nil {
		w.metrics.RecordWindowOp(env.Op)
	}
	w.mu.Lock()
	s := w.surface
	w.mu.Unlock()
	if s == nil {
		w.log.Warn("window op before surface exists", zap.String("op", env.Op))
		return
	}

	switch env.Op {
	case bridge.OpMinimize:
		s.Minimize()
	case bridge.OpMaximize:
		s.Maximize()
	case bridge.OpRestore:
		s.Restore()
	case bridge.OpClose:
		w.Close()
	case bridge.OpPrint:
		s.Print()
	case bridge.OpDevTools:
		s.OpenDevTools()
	case bridge.OpSetTitle:
		if title, ok := env.Value.(string); ok {
			w.SetTitle(title)
		}
	case bridge.OpAlwaysOnTop:
		if on, ok := env.Value.(bool); ok {
			w.SetAlwaysOnTop(on)
		}
	case bridge.OpFullscreen:
		if on, ok := env.Value.(bool); ok {
			s.SetFullscreen(on)
		}
	case bridge.OpZoom:
		if factor, ok := env.Value.(float64); ok {
			w.SetZoom(factor)
		}
	default:
		w.log.Warn("unknown window op", zap.String("op", env.Op))
	}
}

// SetTitle updates the native title.
func (w *Window) SetTitle(title string) {
	w.mu.Lock()
	w.title = title
	s := w.surface
	w.mu.Unlock()
	if s != nil {
		s.SetTitle(title)
	}
}

// SetZoom sets the page zoom factor. The surface takes the engine's
// logarithmic level, factor 1.0 meaning level 0.
func (w *Window) SetZoom(factor float64) {
	if factor <= 0 {
		return
	}
	w.mu.Lock()
	w.zoomFactor = factor
	s := w.surface
	w.mu.Unlock()
	if s != nil {
		s.SetZoomLevel(math.Log(factor) / math.Log(zoomBase))
	}
}

// ZoomFactor returns the current zoom factor.
func (w *Window) ZoomFactor() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.zoomFactor
}

// Minimize asks the surface to minimize the native window.
func (w *Window) Minimize() { w.surfaceOp(Surface.Minimize) }

// Maximize asks the surface to maximize the native window.
func (w *Window) Maximize() { w.surfaceOp(Surface.Maximize) }

// Restore restores the native window from a minimized or maximized
// state.
func (w *Window) Restore() { w.surfaceOp(Surface.Restore) }

// Show and Hide toggle native window visibility.
func (w *Window) Show() { w.surfaceOp(Surface.Show) }
func (w *Window) Hide() { w.surfaceOp(Surface.Hide) }

// Focus gives the native window input focus. The resulting state comes
// back through NotifyFocusChange.
func (w *Window) Focus() { w.surfaceOp(Surface.Focus) }

// Resize sets the outer window size in pixels, clamped into the
// configured bounds.
func (w *Window) Resize(width, height int) {
	width = clamp(width, w.cfg.MinWidth, w.cfg.MaxWidth)
	height = clamp(height, w.cfg.MinHeight, w.cfg.MaxHeight)
	w.surfaceOp(func(s Surface) { s.Resize(width, height) })
}

func clamp(v, min, max int) int {
	if min > 0 && v < min {
		return min
	}
	if max > 0 && v > max {
		return max
	}
	return v
}

// Move places the window at screen coordinates.
func (w *Window) Move(x, y int) {
	w.surfaceOp(func(s Surface) { s.Move(x, y) })
}

// Center centers the window on its current display.
func (w *Window) Center() { w.surfaceOp(Surface.Center) }

// Reload reloads the current page; the load flows back through
// NotifyLoadStart/NotifyLoadEnd like any navigation.
func (w *Window) Reload() { w.surfaceOp(Surface.Reload) }

// Back navigates one entry back in the surface's history.
func (w *Window) Back() { w.surfaceOp(Surface.GoBack) }

// Forward navigates one entry forward in the surface's history.
func (w *Window) Forward() { w.surfaceOp(Surface.GoForward) }

// StopLoad cancels an in-flight load.
func (w *Window) StopLoad() { w.surfaceOp(Surface.StopLoad) }

// Find starts or advances a find-in-page session. Match counts arrive
// through NotifyFind and the OnFind event.
func (w *Window) Find(text string, forward, matchCase bool) {
	w.surfaceOp(func(s Surface) { s.Find(text, forward, matchCase) })
}

// StopFind ends the find session; clear also removes highlights.
func (w *Window) StopFind(clear bool) {
	w.surfaceOp(func(s Surface) { s.StopFind(clear) })
}

// Print hands off to the engine's print flow.
func (w *Window) Print() { w.surfaceOp(Surface.Print) }

// PrintToPDF writes the current page to path via the engine.
func (w *Window) PrintToPDF(path string) {
	w.surfaceOp(func(s Surface) { s.PrintToPDF(path) })
}

// OpenDevTools opens the engine's developer tools when it has any.
func (w *Window) OpenDevTools() { w.surfaceOp(Surface.OpenDevTools) }

// CloseDevTools closes the developer tools window.
func (w *Window) CloseDevTools() { w.surfaceOp(Surface.CloseDevTools) }

// SetFullscreen toggles engine fullscreen. The resulting state comes
// back through NotifyFullscreenChange.
func (w *Window) SetFullscreen(on bool) {
	w.surfaceOp(func(s Surface) { s.SetFullscreen(on) })
}

func (w *Window) surfaceOp(op func(Surface)) {
	w.mu.Lock()
	s := w.surface
	w.mu.Unlock()
	if s != nil {
		op(s)
	}
}

// SetAlwaysOnTop flips the always-on-top flag and re-dispatches the
// model.
func (w *Window) SetAlwaysOnTop(on bool) {
	w.UpdateStyle(func(s *style.WindowStyle) { s.AlwaysOnTop = on })
}

// SetStyle replaces the whole style model and dispatches it.
func (w *Window) SetStyle(st style.WindowStyle) {
	w.mu.Lock()
	w.style = st.Clone()
	applied := w.style.Clone()
	s := w.surface
	w.mu.Unlock()
	w.applyStyle(s, applied, "native")
}

// UpdateStyle mutates the model in place and dispatches the result.
// Partial native-side changes go through here so the adapter always
// sees the full model.
func (w *Window) UpdateStyle(mutate func(*style.WindowStyle)) {
	w.mu.Lock()
	mutate(&w.style)
	applied := w.style.Clone()
	s := w.surface
	w.mu.Unlock()
	w.applyStyle(s, applied, "native")
}

// applyStyle dispatches the full model: platform adapter first, then
// the derived stylesheet on a loaded page.
func (w *Window) applyStyle(s Surface, st style.WindowStyle, trigger string) {
	if s != nil {
		w.adapter.Apply(s.Handle(), st)
		w.mu.Lock()
		loaded := w.state == StateLoaded
		w.mu.Unlock()
		if loaded {
			s.ExecuteScript(style.InjectionScript(st))
		}
	}
	if w.metrics != nil {
		w.metrics.RecordStyleApplication(trigger)
	}
	if w.events.OnStyleChange != nil {
		w.events.OnStyleChange(st)
	}
}

// SetDragRegions replaces the active drag-region set.
func (w *Window) SetDragRegions(regions []style.DragRegion) {
	w.mu.Lock()
	w.dragRegions = append([]style.DragRegion(nil), regions...)
	s := w.surface
	w.mu.Unlock()
	if s != nil {
		w.adapter.SetDragRegions(s.Handle(), regions)
	}
}

// HitTestDrag reports whether the point falls in a draggable region.
// Later regions override earlier ones.
func (w *Window) HitTestDrag(x, y int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return style.HitTest(w.dragRegions, x, y)
}

// HandleContextMenu decides what happens on a right click. Returns true
// when the native menu must be suppressed. Under ContextMenuCustom the
// page receives the reserved __contextMenu event with the click
// coordinates and owns the rest.
func (w *Window) HandleContextMenu(x, y int) bool {
	w.mu.Lock()
	mode := w.style.ContextMenu
	w.mu.Unlock()

	switch mode {
	case style.ContextMenuDisabled:
		return true
	case style.ContextMenuCustom:
		w.Send(bridge.ContextMenuEvent, map[string]int{"x": x, "y": y})
		return true
	default:
		return false
	}
}

// LoadURL navigates the window.
func (w *Window) LoadURL(url string) {
	w.mu.Lock()
	s := w.surface
	w.mu.Unlock()
	if s == nil {
		w.mu.Lock()
		w.cfg.URL = url
		w.mu.Unlock()
		return
	}
	if w.ShouldNavigate(url) {
		s.LoadURL(url)
	}
}
