package bridge

import (
	"errors"
	"fmt"
)

// ErrProtocolDecode marks an inbound message that could not be decoded.
// The message is dropped; the channel stays up.
var ErrProtocolDecode = errors.New("bridge: protocol decode")

// FailureKind classifies why a call or evaluation settled with an error.
type FailureKind int

const (
	// FailureHandlerMissing means no native handler is bound for the
	// requested name. The reply is sent unconditionally so the caller's
	// promise rejects instead of timing out.
	FailureHandlerMissing FailureKind = iota
	// FailureScriptException means evaluated script threw.
	FailureScriptException
	// FailureTimeout means the script side gave up waiting.
	FailureTimeout
	// FailureDecode means a result payload could not be interpreted.
	FailureDecode
)

func (k FailureKind) String() string {
	switch k {
	case FailureHandlerMissing:
		return "handler_missing"
	case FailureScriptException:
		return "script_exception"
	case FailureTimeout:
		return "timeout"
	case FailureDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// CallError carries the failure class alongside the message delivered to
// the other side of the bridge.
type CallError struct {
	Kind    FailureKind
	Message string
}

func (e *CallError) Error() string {
	return fmt.Sprintf("bridge: %s: %s", e.Kind, e.Message)
}

// NewHandlerMissing builds the unconditional failure reply for a call
// naming an unbound handler.
func NewHandlerMissing(name string) *CallError {
	return &CallError{Kind: FailureHandlerMissing, Message: "unknown function: " + name}
}

// NewScriptException wraps an exception surfaced by script evaluation.
func NewScriptException(msg string) *CallError {
	return &CallError{Kind: FailureScriptException, Message: msg}
}
