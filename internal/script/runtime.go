package script

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dop251/goja"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bambooui/bamboo"
	"github.com/bambooui/bamboo/internal/infrastructure/logging"
	"github.com/bambooui/bamboo/internal/shared/id"
)

// PostFunc receives serialized wire messages emitted by page script.
type PostFunc func(text string)

// Runtime hosts the window.bamboo bootstrap in a goja VM. It stands in
// for a real page: the same bootstrap source runs here as in an
// embedded browser, so bridge behavior can be exercised end to end
// without a rendering engine.
//
// The VM is not goroutine-safe; every entry point serializes on the
// runtime mutex, including timer callbacks.
type Runtime struct {
	vm   *goja.Runtime
	post PostFunc
	log  *logging.Logger
	mu   sync.Mutex

	// Timer state has its own lock so Close stays callable from inside
	// a running evaluation (a page script closing its own window).
	timersMu  sync.Mutex
	timers    map[int64]*time.Timer
	nextTimer int64
	closed    atomic.Bool
}

// ExecTimeout bounds a single synchronous evaluation.
const ExecTimeout = 5 * time.Second

// NewRuntime builds a runtime whose outbound messages go to post.
func NewRuntime(post PostFunc, log *logging.Logger) (*Runtime, error) {
	if log == nil {
		log = logging.NewNop()
	}
	r := &Runtime{
		vm:     goja.New(),
		post:   post,
		log:    log,
		timers: make(map[int64]*time.Timer),
	}
	if err := r.setupGlobals(); err != nil {
		return nil, err
	}
	if _, err := r.vm.RunString(Bootstrap()); err != nil {
		return nil, fmt.Errorf("script: bootstrap: %w", err)
	}
	return r, nil
}

// Execute runs script on the page, discarding the result. Used for the
// native-built _dispatch, _resolveCall and eval wrapper statements.
func (r *Runtime) Execute(src string) error {
	_, err := r.Eval(src)
	return err
}

// Eval runs script and exports its completion value.
func (r *Runtime) Eval(src string) (interface{}, error) {
	if r.closed.Load() {
		return nil, fmt.Errorf("script: runtime closed")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	timer := time.AfterFunc(ExecTimeout, func() {
		r.vm.Interrupt("execution timeout exceeded")
	})
	defer timer.Stop()
	defer r.vm.ClearInterrupt()

	val, err := r.vm.RunString(src)
	if err != nil {
		return nil, err
	}
	if val == nil || goja.IsUndefined(val) || goja.IsNull(val) {
		return nil, nil
	}
	return val.Export(), nil
}

// Close cancels outstanding timers and rejects further evaluations.
// Safe to call from inside a running evaluation.
func (r *Runtime) Close() {
	if !r.closed.CompareAndSwap(false, true) {
		return
	}
	r.timersMu.Lock()
	defer r.timersMu.Unlock()
	for _, t := range r.timers {
		t.Stop()
	}
	r.timers = nil
}

func (r *Runtime) setupGlobals() error {
	// The bootstrap addresses the page as window.
	if err := r.vm.Set("window", r.vm.GlobalObject()); err != nil {
		return err
	}

	r.vm.Set("__bambooPost", func(text string) {
		if r.post != nil {
			r.post(text)
		}
	})
	r.vm.Set("__bambooNewID", func() string {
		return id.NewCallID().String()
	})
	r.vm.Set("__bambooVersion", bamboo.Version)
	r.vm.Set("__bambooCallTimeout", CallTimeout.Milliseconds())

	console := r.vm.NewObject()
	console.Set("log", r.makeConsoleFunc(zapcore.InfoLevel))
	console.Set("info", r.makeConsoleFunc(zapcore.InfoLevel))
	console.Set("warn", r.makeConsoleFunc(zapcore.WarnLevel))
	console.Set("error", r.makeConsoleFunc(zapcore.ErrorLevel))
	r.vm.Set("console", console)

	r.vm.Set("setTimeout", r.setTimeout)
	r.vm.Set("clearTimeout", r.clearTimeout)
	return nil
}

func (r *Runtime) makeConsoleFunc(level zapcore.Level) func(call goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		var msg string
		for i, arg := range call.Arguments {
			if i > 0 {
				msg += " "
			}
			msg += arg.String()
		}
		r.log.Log(level, msg, zap.String("source", "page"))
		return goja.Undefined()
	}
}

// setTimeout schedules fn after delay milliseconds. The callback takes
// the runtime mutex before touching the VM, so it cannot interleave
// with a running evaluation.
func (r *Runtime) setTimeout(call goja.FunctionCall) goja.Value {
	if len(call.Arguments) == 0 || r.closed.Load() {
		return goja.Undefined()
	}
	fn, ok := goja.AssertFunction(call.Arguments[0])
	if !ok {
		return goja.Undefined()
	}
	delay := time.Duration(0)
	if len(call.Arguments) > 1 {
		delay = time.Duration(call.Arguments[1].ToInteger()) * time.Millisecond
	}

	r.timersMu.Lock()
	if r.timers == nil {
		r.timersMu.Unlock()
		return goja.Undefined()
	}
	r.nextTimer++
	handle := r.nextTimer
	r.timers[handle] = time.AfterFunc(delay, func() {
		if r.closed.Load() {
			return
		}
		r.timersMu.Lock()
		delete(r.timers, handle)
		r.timersMu.Unlock()

		r.mu.Lock()
		defer r.mu.Unlock()
		if r.closed.Load() {
			return
		}
		if _, err := fn(goja.Undefined()); err != nil {
			r.log.Warn("timer callback failed", zap.Error(err))
		}
	})
	r.timersMu.Unlock()
	return r.vm.ToValue(handle)
}

func (r *Runtime) clearTimeout(call goja.FunctionCall) goja.Value {
	if len(call.Arguments) == 0 {
		return goja.Undefined()
	}
	handle := call.Arguments[0].ToInteger()
	r.timersMu.Lock()
	if t, ok := r.timers[handle]; ok {
		t.Stop()
		delete(r.timers, handle)
	}
	r.timersMu.Unlock()
	return goja.Undefined()
}
