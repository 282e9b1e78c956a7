package bridge

import (
	"sync"

	"github.com/bambooui/bamboo/internal/shared/jsv"
)

// Handler is a native function callable from script. Arguments arrive
// as scalar values; the return value travels back through _resolveCall.
type Handler func(args []jsv.Value) (jsv.Value, error)

// Registry holds the named native handlers reachable from script calls.
// Binding an existing name replaces the previous handler.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Bind registers fn under name. A nil fn removes the binding.
func (r *Registry) Bind(name string, fn Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if fn == nil {
		delete(r.handlers, name)
		return
	}
	r.handlers[name] = fn
}

// Lookup returns the handler bound to name, if any.
func (r *Registry) Lookup(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.handlers[name]
	return fn, ok
}

// Names returns the bound handler names, for diagnostics.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.handlers))
	for n := range r.handlers {
		names = append(names, n)
	}
	return names
}
