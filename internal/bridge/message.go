// Package bridge implements the wire-level contract of the duplex
// script/native channel and the native-side call correlation.
//
// Every message is a single JSON object tagged with a type
// discriminator. Delivery within one direction is FIFO; there is no
// ordering guarantee between the two directions. A malformed inbound
// message is a protocol error local to that message: it is dropped and
// the channel continues.
package bridge

import (
	"encoding/json"
	"fmt"
)

// Type discriminates bridge messages.
type Type string

const (
	// TypeMessage is a fire-and-forget pub/sub event.
	TypeMessage Type = "message"
	// TypeCall is a script-to-native RPC call expecting a _resolveCall
	// completion.
	TypeCall Type = "call"
	// TypeSetStyle carries a partial style object.
	TypeSetStyle Type = "setStyle"
	// TypeSetDragRegions replaces the active drag-region set.
	TypeSetDragRegions Type = "setDragRegions"
	// TypeWindowOp requests a window operation (minimize, zoom, ...).
	TypeWindowOp Type = "windowOp"
)

// Window operation names carried by TypeWindowOp messages.
const (
	OpMinimize    = "minimize"
	OpMaximize    = "maximize"
	OpRestore     = "restore"
	OpClose       = "close"
	OpPrint       = "print"
	OpDevTools    = "devTools"
	OpSetTitle    = "setTitle"
	OpAlwaysOnTop = "alwaysOnTop"
	OpFullscreen  = "fullscreen"
	OpZoom        = "zoom"
)

// EvalResultEvent is the reserved event name carrying one-shot script
// evaluation results back to the native side.
const EvalResultEvent = "__evalResult"

// ContextMenuEvent is emitted when the style routes context menus to
// page script.
const ContextMenuEvent = "__contextMenu"

// Region is the wire shape of one drag region.
type Region struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Envelope is the decoded form of any bridge message. Fields are
// populated according to Type; unused fields stay zero.
type Envelope struct {
	Type Type `json:"type"`

	// TypeMessage
	Event string          `json:"event,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`

	// TypeCall
	Name string        `json:"name,omitempty"`
	Args []interface{} `json:"args,omitempty"`
	ID   string        `json:"id,omitempty"`

	// TypeSetStyle
	Style map[string]interface{} `json:"style,omitempty"`

	// TypeSetDragRegions
	Regions []Region `json:"regions,omitempty"`

	// TypeWindowOp
	Op    string      `json:"op,omitempty"`
	Value interface{} `json:"value,omitempty"`
}

// MaxMessageSize bounds one inbound message. Pages can construct
// arbitrarily large payloads; past this limit the message is dropped as
// a protocol error rather than parsed.
const MaxMessageSize = 1 << 20

// Decode parses one wire message. Unknown or missing discriminators are
// protocol errors; the caller drops the message and keeps the channel.
func Decode(text string) (*Envelope, error) {
	if len(text) > MaxMessageSize {
		return nil, fmt.Errorf("%w: message of %d bytes exceeds limit", ErrProtocolDecode, len(text))
	}
	var env Envelope
	if err := json.Unmarshal([]byte(text), &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProtocolDecode, err)
	}
	switch env.Type {
	case TypeMessage, TypeCall, TypeSetStyle, TypeSetDragRegions, TypeWindowOp:
		return &env, nil
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrProtocolDecode, env.Type)
	}
}

// Encode serializes a message for the wire.
func Encode(env *Envelope) (string, error) {
	data, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("bridge: encode: %w", err)
	}
	return string(data), nil
}

// EvalResult is the payload of the reserved __evalResult event.
type EvalResult struct {
	ID    int         `json:"id"`
	Value interface{} `json:"value"`
	Error *string     `json:"error"`
}
