package bridge

import (
	"encoding/json"
	"sync"

	"github.com/bambooui/bamboo/internal/shared/jsv"
)

// EvalCallback receives the settled result of one script evaluation.
// Exactly one of value/err is meaningful.
type EvalCallback func(value jsv.Value, err *CallError)

// Correlator matches native-initiated evaluations with their
// __evalResult completions. Identifiers are small integers assigned in
// issue order; each settles at most once, and results for unknown
// identifiers are dropped.
type Correlator struct {
	mu      sync.Mutex
	next    int
	pending map[int]EvalCallback
}

func NewCorrelator() *Correlator {
	return &Correlator{pending: make(map[int]EvalCallback)}
}

// Register stores cb and returns the identifier to embed in the
// evaluation wrapper. A nil cb still consumes an identifier so that the
// result is recognized and discarded instead of logged as unknown.
func (c *Correlator) Register(cb EvalCallback) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.next
	c.next++
	if cb == nil {
		cb = func(jsv.Value, *CallError) {}
	}
	c.pending[id] = cb
	return id
}

// Settle completes the evaluation id. Returns false when the identifier
// is unknown or already settled.
func (c *Correlator) Settle(id int, value jsv.Value, err *CallError) bool {
	c.mu.Lock()
	cb, ok := c.pending[id]
	if ok {
		delete(c.pending, id)
	}
	c.mu.Unlock()
	if !ok {
		return false
	}
	cb(value, err)
	return true
}

// SettleFromPayload decodes one __evalResult payload and settles the
// matching evaluation. Returns false for unknown or duplicate ids and
// for undecodable payloads.
func (c *Correlator) SettleFromPayload(data json.RawMessage) bool {
	var res EvalResult
	if err := json.Unmarshal(data, &res); err != nil {
		return false
	}
	if res.Error != nil {
		return c.Settle(res.ID, jsv.Absent(), NewScriptException(*res.Error))
	}
	return c.Settle(res.ID, jsv.FromInterface(res.Value), nil)
}

// Pending reports the number of unsettled evaluations.
func (c *Correlator) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// DrainAll settles every outstanding evaluation with err. Used when the
// page navigates away or the window closes, so no callback leaks.
func (c *Correlator) DrainAll(err *CallError) {
	c.mu.Lock()
	drained := c.pending
	c.pending = make(map[int]EvalCallback)
	c.mu.Unlock()
	for _, cb := range drained {
		cb(jsv.Absent(), err)
	}
}
