package bridge

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bambooui/bamboo/internal/shared/jsv"
)

func TestDecodeCall(t *testing.T) {
	env, err := Decode(`{"type":"call","name":"add","args":[2,3],"id":"call_01ABC"}`)
	require.NoError(t, err)
	assert.Equal(t, TypeCall, env.Type)
	assert.Equal(t, "add", env.Name)
	assert.Equal(t, "call_01ABC", env.ID)
	require.Len(t, env.Args, 2)
}

func TestDecodeMalformedIsProtocolError(t *testing.T) {
	_, err := Decode(`{"type":`)
	assert.ErrorIs(t, err, ErrProtocolDecode)

	_, err = Decode(`{"type":"teleport"}`)
	assert.ErrorIs(t, err, ErrProtocolDecode)

	_, err = Decode(`{}`)
	assert.ErrorIs(t, err, ErrProtocolDecode)
}

func TestDecodeRejectsOversizedMessage(t *testing.T) {
	huge := `{"type":"message","event":"x","data":"` + strings.Repeat("a", MaxMessageSize) + `"}`
	_, err := Decode(huge)
	assert.ErrorIs(t, err, ErrProtocolDecode)
}

func TestDecodeWindowOp(t *testing.T) {
	env, err := Decode(`{"type":"windowOp","op":"zoom","value":1.44}`)
	require.NoError(t, err)
	assert.Equal(t, OpZoom, env.Op)
	assert.Equal(t, 1.44, env.Value)
}

func TestRegistryLastBindingWins(t *testing.T) {
	r := NewRegistry()
	r.Bind("f", func([]jsv.Value) (jsv.Value, error) { return jsv.Number(1), nil })
	r.Bind("f", func([]jsv.Value) (jsv.Value, error) { return jsv.Number(2), nil })

	fn, ok := r.Lookup("f")
	require.True(t, ok)
	v, err := fn(nil)
	require.NoError(t, err)
	n, _ := v.AsNumber()
	assert.Equal(t, 2.0, n)

	r.Bind("f", nil)
	_, ok = r.Lookup("f")
	assert.False(t, ok)
}

func TestCorrelatorSettlesOnce(t *testing.T) {
	c := NewCorrelator()
	calls := 0
	id := c.Register(func(v jsv.Value, err *CallError) {
		calls++
		s, _ := v.AsString()
		assert.Equal(t, "ok", s)
		assert.Nil(t, err)
	})

	assert.True(t, c.Settle(id, jsv.String("ok"), nil))
	assert.False(t, c.Settle(id, jsv.String("again"), nil))
	assert.Equal(t, 1, calls)
	assert.Zero(t, c.Pending())
}

func TestCorrelatorDropsUnknownID(t *testing.T) {
	c := NewCorrelator()
	assert.False(t, c.Settle(999, jsv.Absent(), nil))
}

func TestCorrelatorSettleFromPayload(t *testing.T) {
	c := NewCorrelator()

	var got jsv.Value
	id := c.Register(func(v jsv.Value, err *CallError) {
		require.Nil(t, err)
		got = v
	})
	payload, _ := json.Marshal(EvalResult{ID: id, Value: 5.0})
	assert.True(t, c.SettleFromPayload(payload))
	n, ok := got.AsNumber()
	require.True(t, ok)
	assert.Equal(t, 5.0, n)

	var gotErr *CallError
	id = c.Register(func(v jsv.Value, err *CallError) { gotErr = err })
	msg := "ReferenceError: nope"
	payload, _ = json.Marshal(EvalResult{ID: id, Error: &msg})
	assert.True(t, c.SettleFromPayload(payload))
	require.NotNil(t, gotErr)
	assert.Equal(t, FailureScriptException, gotErr.Kind)
	assert.Contains(t, gotErr.Message, "nope")
}

func TestCorrelatorDrainAll(t *testing.T) {
	c := NewCorrelator()
	errs := 0
	for i := 0; i < 3; i++ {
		c.Register(func(v jsv.Value, err *CallError) {
			if err != nil {
				errs++
			}
		})
	}
	c.DrainAll(&CallError{Kind: FailureTimeout, Message: "window closing"})
	assert.Equal(t, 3, errs)
	assert.Zero(t, c.Pending())
}

func TestHandlerMissingMessage(t *testing.T) {
	err := NewHandlerMissing("frobnicate")
	assert.Equal(t, "unknown function: frobnicate", err.Message)
	assert.Equal(t, FailureHandlerMissing, err.Kind)
}

func TestResolveCallScript(t *testing.T) {
	script := ResolveCallScript("call_01X", jsv.Number(5), nil)
	assert.Contains(t, script, `_resolveCall("call_01X", 5, null)`)

	script = ResolveCallScript("call_01X", jsv.Absent(), NewHandlerMissing("add"))
	assert.Contains(t, script, `null, "unknown function: add"`)
}

func TestDispatchScriptEscapes(t *testing.T) {
	script := DispatchScript(`ev"ent`, map[string]interface{}{"k": "v"})
	assert.Contains(t, script, `_dispatch("ev\"ent"`)
	assert.Contains(t, script, `{"k":"v"}`)
}

func TestEvalWrapperEmbedsCodeAsJSON(t *testing.T) {
	script := EvalWrapper(7, `1 + "a"`)
	assert.Contains(t, script, "__id = 7")
	assert.Contains(t, script, EvalResultEvent)
	assert.Contains(t, script, `"1 + \"a\""`)
}
