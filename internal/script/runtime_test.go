package script

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bambooui/bamboo"
	"github.com/bambooui/bamboo/internal/bridge"
	"github.com/bambooui/bamboo/internal/shared/jsv"
)

type capture struct {
	texts []string
}

func (c *capture) post(text string) { c.texts = append(c.texts, text) }

func (c *capture) last(t *testing.T) *bridge.Envelope {
	t.Helper()
	require.NotEmpty(t, c.texts)
	env, err := bridge.Decode(c.texts[len(c.texts)-1])
	require.NoError(t, err)
	return env
}

func newTestRuntime(t *testing.T) (*Runtime, *capture) {
	t.Helper()
	c := &capture{}
	r, err := NewRuntime(c.post, nil)
	require.NoError(t, err)
	t.Cleanup(r.Close)
	return r, c
}

func TestBootstrapIsIdempotent(t *testing.T) {
	r, _ := newTestRuntime(t)

	require.NoError(t, r.Execute("window.__marker = 1;"))
	require.NoError(t, r.Execute(Bootstrap()))

	v, err := r.Eval("window.__marker")
	require.NoError(t, err)
	assert.EqualValues(t, 1, v)
}

func TestCallTimesOutWithoutReply(t *testing.T) {
	r, _ := newTestRuntime(t)

	// The host publishes the timeout bound; shrink it for the test.
	v, err := r.Eval("window.__bambooCallTimeout")
	require.NoError(t, err)
	assert.EqualValues(t, CallTimeout.Milliseconds(), v)

	require.NoError(t, r.Execute(`window.__bambooCallTimeout = 20;`))
	require.NoError(t, r.Execute(`
		window.bamboo.call("slow").catch(function (e) { window.__err = String(e); });
	`))

	require.Eventually(t, func() bool {
		v, err := r.Eval("window.__err")
		if err != nil {
			return false
		}
		s, ok := v.(string)
		return ok && strings.Contains(s, "call timed out: slow")
	}, 2*time.Second, 10*time.Millisecond)
}

func TestBootstrapExposesVersion(t *testing.T) {
	r, _ := newTestRuntime(t)

	v, err := r.Eval("window.bamboo.version")
	require.NoError(t, err)
	assert.Equal(t, bamboo.Version, v)
}

func TestSendProducesMessageEnvelope(t *testing.T) {
	r, c := newTestRuntime(t)

	require.NoError(t, r.Execute(`window.bamboo.send("greet", {who: "world"});`))

	env := c.last(t)
	assert.Equal(t, bridge.TypeMessage, env.Type)
	assert.Equal(t, "greet", env.Event)
	assert.Contains(t, string(env.Data), `"who":"world"`)
}

func TestSendWithoutDataIsNull(t *testing.T) {
	r, c := newTestRuntime(t)
	require.NoError(t, r.Execute(`window.bamboo.send("ping");`))
	assert.Equal(t, "null", string(c.last(t).Data))
}

func TestCallRoundTrip(t *testing.T) {
	r, c := newTestRuntime(t)

	require.NoError(t, r.Execute(`
		window.bamboo.call("add", 2, 3).then(
			function (v) { window.__got = v; },
			function (e) { window.__err = String(e); });
	`))

	env := c.last(t)
	require.Equal(t, bridge.TypeCall, env.Type)
	assert.Equal(t, "add", env.Name)
	assert.True(t, strings.HasPrefix(env.ID, "call_"), "id %q", env.ID)
	require.Len(t, env.Args, 2)

	require.NoError(t, r.Execute(bridge.ResolveCallScript(env.ID, jsv.Number(5), nil)))

	v, err := r.Eval("window.__got")
	require.NoError(t, err)
	assert.EqualValues(t, 5, v)
}

func TestCallRejectionCarriesMessage(t *testing.T) {
	r, c := newTestRuntime(t)

	require.NoError(t, r.Execute(`
		window.bamboo.call("missing").catch(function (e) { window.__err = String(e); });
	`))
	env := c.last(t)

	reply := bridge.ResolveCallScript(env.ID, jsv.Absent(), bridge.NewHandlerMissing("missing"))
	require.NoError(t, r.Execute(reply))

	v, err := r.Eval("window.__err")
	require.NoError(t, err)
	assert.Contains(t, v.(string), "unknown function: missing")
}

func TestResolveCallUnknownIDIsDropped(t *testing.T) {
	r, _ := newTestRuntime(t)
	err := r.Execute(bridge.ResolveCallScript("call_NOPE", jsv.Number(1), nil))
	assert.NoError(t, err)
}

func TestCallIDsAreUniquePerCall(t *testing.T) {
	r, c := newTestRuntime(t)
	require.NoError(t, r.Execute(`
		for (var i = 0; i < 20; i++) { window.bamboo.call("f").catch(function () {}); }
	`))
	seen := map[string]bool{}
	for _, text := range c.texts {
		env, err := bridge.Decode(text)
		require.NoError(t, err)
		assert.False(t, seen[env.ID], "duplicate id %s", env.ID)
		seen[env.ID] = true
	}
}

func TestListenersDispatchAndOff(t *testing.T) {
	r, _ := newTestRuntime(t)

	require.NoError(t, r.Execute(`
		window.__hits = [];
		window.__fn = function (p) { window.__hits.push(p); };
		window.bamboo.on("tick", window.__fn);
	`))

	require.NoError(t, r.Execute(bridge.DispatchScript("tick", 1)))
	require.NoError(t, r.Execute(`window.bamboo.off("tick", window.__fn);`))
	require.NoError(t, r.Execute(bridge.DispatchScript("tick", 2)))

	v, err := r.Eval("window.__hits.length")
	require.NoError(t, err)
	assert.EqualValues(t, 1, v)
}

func TestListenerExceptionStaysLocal(t *testing.T) {
	r, _ := newTestRuntime(t)

	require.NoError(t, r.Execute(`
		window.__ok = false;
		window.bamboo.on("ev", function () { throw new Error("boom"); });
		window.bamboo.on("ev", function () { window.__ok = true; });
	`))
	require.NoError(t, r.Execute(bridge.DispatchScript("ev", nil)))

	v, err := r.Eval("window.__ok")
	require.NoError(t, err)
	assert.Equal(t, true, v)
}

func TestWindowOpSugar(t *testing.T) {
	r, c := newTestRuntime(t)

	require.NoError(t, r.Execute(`window.bamboo.setZoom(1.44);`))
	env := c.last(t)
	assert.Equal(t, bridge.TypeWindowOp, env.Type)
	assert.Equal(t, bridge.OpZoom, env.Op)
	assert.Equal(t, 1.44, env.Value)

	require.NoError(t, r.Execute(`window.bamboo.setTitle("hello");`))
	env = c.last(t)
	assert.Equal(t, bridge.OpSetTitle, env.Op)
	assert.Equal(t, "hello", env.Value)

	require.NoError(t, r.Execute(`window.bamboo.minimize();`))
	assert.Equal(t, bridge.OpMinimize, c.last(t).Op)
}

func TestSetStyleAndDragRegions(t *testing.T) {
	r, c := newTestRuntime(t)

	require.NoError(t, r.Execute(`window.bamboo.setStyle({cornerRadius: 8});`))
	env := c.last(t)
	assert.Equal(t, bridge.TypeSetStyle, env.Type)
	assert.Equal(t, 8.0, env.Style["cornerRadius"])

	require.NoError(t, r.Execute(`window.bamboo.setDragRegions([{x:0,y:0,width:800,height:38}]);`))
	env = c.last(t)
	require.Len(t, env.Regions, 1)
	assert.Equal(t, 38, env.Regions[0].Height)
}

func TestEvalWrapperReportsResultAndError(t *testing.T) {
	r, c := newTestRuntime(t)

	require.NoError(t, r.Execute(bridge.EvalWrapper(1, "6 * 7")))
	env := c.last(t)
	require.Equal(t, bridge.EvalResultEvent, env.Event)
	assert.Contains(t, string(env.Data), `"value":42`)

	require.NoError(t, r.Execute(bridge.EvalWrapper(2, "nope()")))
	env = c.last(t)
	assert.Contains(t, string(env.Data), "ReferenceError")
}
