// Package jsv defines the scalar value type exchanged across the
// script/native bridge.
//
// Values are intentionally limited to {absent, bool, number, string}.
// Richer payloads cross the bridge as encoded JSON text and are decoded
// by the receiving side. Numbers are always float64, matching JS.
package jsv

import (
	"encoding/json"
	"fmt"
)

// Kind discriminates the variants of a Value.
type Kind int

const (
	KindAbsent Kind = iota
	KindBool
	KindNumber
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	default:
		return "absent"
	}
}

// Value is a scalar bridge value. The zero value is the absent value.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
}

// Absent returns the absent (JS null/undefined) value.
func Absent() Value { return Value{} }

// Bool wraps a boolean.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// Number wraps a float64.
func Number(v float64) Value { return Value{kind: KindNumber, n: v} }

// String wraps a string.
func String(v string) Value { return Value{kind: KindString, s: v} }

// Kind reports which variant the value holds.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether the value is the absent variant.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// AsBool returns the boolean payload, if present.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsNumber returns the numeric payload, if present.
func (v Value) AsNumber() (float64, bool) { return v.n, v.kind == KindNumber }

// AsString returns the string payload, if present.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// Export converts to the equivalent Go interface value (nil for absent).
func (v Value) Export() interface{} {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.n
	case KindString:
		return v.s
	default:
		return nil
	}
}

// FromInterface converts an arbitrary decoded JSON value into a Value.
// Containers and unknown types collapse to the absent value, preserving
// the scalar-only invariant of the bridge.
func FromInterface(raw interface{}) Value {
	switch t := raw.(type) {
	case nil:
		return Absent()
	case bool:
		return Bool(t)
	case float64:
		return Number(t)
	case int:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Absent()
		}
		return Number(f)
	case string:
		return String(t)
	default:
		return Absent()
	}
}

// MarshalJSON encodes the value as JSON; absent encodes as null.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Export())
}

// UnmarshalJSON decodes a JSON scalar. Containers decode to absent.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("jsv: decode: %w", err)
	}
	*v = FromInterface(raw)
	return nil
}

// FromSlice converts a slice of decoded JSON values into bridge values.
func FromSlice(raw []interface{}) []Value {
	out := make([]Value, len(raw))
	for i, r := range raw {
		out[i] = FromInterface(r)
	}
	return out
}

func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindNumber:
		return fmt.Sprintf("%g", v.n)
	case KindString:
		return v.s
	default:
		return "null"
	}
}
