package jsv

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroValueIsAbsent(t *testing.T) {
	var v Value
	assert.True(t, v.IsAbsent())
	assert.Equal(t, KindAbsent, v.Kind())
	assert.Nil(t, v.Export())
}

func TestAccessors(t *testing.T) {
	b, ok := Bool(true).AsBool()
	require.True(t, ok)
	assert.True(t, b)

	n, ok := Number(2.5).AsNumber()
	require.True(t, ok)
	assert.Equal(t, 2.5, n)

	s, ok := String("hi").AsString()
	require.True(t, ok)
	assert.Equal(t, "hi", s)

	// Cross-kind access misses
	_, ok = Bool(true).AsNumber()
	assert.False(t, ok)
	_, ok = String("x").AsBool()
	assert.False(t, ok)
}

func TestFromInterfaceCollapsesContainers(t *testing.T) {
	assert.True(t, FromInterface(map[string]interface{}{"a": 1}).IsAbsent())
	assert.True(t, FromInterface([]interface{}{1, 2}).IsAbsent())
	assert.Equal(t, Number(3), FromInterface(3))
	assert.Equal(t, Number(3), FromInterface(float64(3)))
}

func TestJSONRoundTrip(t *testing.T) {
	cases := []struct {
		in   Value
		want string
	}{
		{Absent(), "null"},
		{Bool(false), "false"},
		{Number(5), "5"},
		{String("hey"), `"hey"`},
	}
	for _, tc := range cases {
		data, err := json.Marshal(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, string(data))

		var back Value
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, tc.in, back)
	}
}

func TestUnmarshalContainerIsAbsent(t *testing.T) {
	var v Value
	require.NoError(t, json.Unmarshal([]byte(`{"nested":true}`), &v))
	assert.True(t, v.IsAbsent())
}

func TestFromSlice(t *testing.T) {
	vals := FromSlice([]interface{}{2.0, "x", nil, true})
	require.Len(t, vals, 4)
	assert.Equal(t, Number(2), vals[0])
	assert.Equal(t, String("x"), vals[1])
	assert.True(t, vals[2].IsAbsent())
	assert.Equal(t, Bool(true), vals[3])
}
