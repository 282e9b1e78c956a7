package headless

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bambooui/bamboo/internal/bridge"
	"github.com/bambooui/bamboo/internal/engine"
	"github.com/bambooui/bamboo/internal/infrastructure/config"
	"github.com/bambooui/bamboo/internal/shared/jsv"
	"github.com/bambooui/bamboo/internal/window"
)

func newTestApp(t *testing.T) (*engine.App, *Engine, *window.Window) {
	t.Helper()
	app := engine.NewApp()
	eng := New(nil)
	require.NoError(t, app.Initialize(eng, config.Default(), nil))
	t.Cleanup(func() { app.Shutdown() })

	w, err := app.NewWindow(window.Config{URL: "app://index.html"})
	require.NoError(t, err)
	return app, eng, w
}

func TestWindowLoadsAndBridgeIsInstalled(t *testing.T) {
	_, eng, w := newTestApp(t)

	assert.Equal(t, window.StateLoaded, w.State())

	v, err := eng.EvalPage(w, "typeof window.bamboo")
	require.NoError(t, err)
	assert.Equal(t, "object", v)
}

func TestPageCallReachesNativeHandler(t *testing.T) {
	_, eng, w := newTestApp(t)

	w.Bind("add", func(args []jsv.Value) (jsv.Value, error) {
		a, _ := args[0].AsNumber()
		b, _ := args[1].AsNumber()
		return jsv.Number(a + b), nil
	})

	require.NoError(t, eng.RunScript(w, `
		window.bamboo.call("add", 2, 3).then(function (v) { window.__got = v; });
	`))

	v, err := eng.EvalPage(w, "window.__got")
	require.NoError(t, err)
	assert.EqualValues(t, 5, v)
}

func TestPageCallToUnknownHandlerRejects(t *testing.T) {
	_, eng, w := newTestApp(t)

	require.NoError(t, eng.RunScript(w, `
		window.bamboo.call("nope").catch(function (e) { window.__err = String(e); });
	`))

	v, err := eng.EvalPage(w, "window.__err")
	require.NoError(t, err)
	assert.Contains(t, v.(string), "unknown function: nope")
}

func TestPageDrivesWindowTitle(t *testing.T) {
	_, eng, w := newTestApp(t)

	require.NoError(t, eng.RunScript(w, `window.bamboo.setTitle("from page");`))
	assert.Equal(t, "from page", w.Title())
}

func TestPagePartialStyleUpdate(t *testing.T) {
	_, eng, w := newTestApp(t)

	require.NoError(t, eng.RunScript(w, `
		window.bamboo.setStyle({cornerRadius: 9, backgroundOpacity: 0.5});
	`))

	st := w.Style()
	assert.Equal(t, 9, st.CornerRadius)
	assert.Equal(t, 0.5, st.BackgroundOpacity)
}

func TestNativeEvalRoundTrip(t *testing.T) {
	_, _, w := newTestApp(t)

	var got jsv.Value
	w.EvalJS("6 * 7", func(v jsv.Value, err *bridge.CallError) {
		require.Nil(t, err)
		got = v
	})

	n, ok := got.AsNumber()
	require.True(t, ok)
	assert.Equal(t, 42.0, n)
}

func TestNativeEvalScriptException(t *testing.T) {
	_, _, w := newTestApp(t)

	var gotErr *bridge.CallError
	w.EvalJS("missingFn()", func(v jsv.Value, err *bridge.CallError) { gotErr = err })

	require.NotNil(t, gotErr)
	assert.Equal(t, bridge.FailureScriptException, gotErr.Kind)
}

func TestEventsBothDirections(t *testing.T) {
	_, eng, w := newTestApp(t)

	// Native to page.
	require.NoError(t, eng.RunScript(w, `
		window.bamboo.on("tick", function (p) { window.__p = p; });
	`))
	w.Send("tick", 5)
	v, err := eng.EvalPage(w, "window.__p")
	require.NoError(t, err)
	assert.EqualValues(t, 5, v)

	// Page to native.
	var got string
	w.On("greet", func(data json.RawMessage) { got = string(data) })
	require.NoError(t, eng.RunScript(w, `window.bamboo.send("greet", {who: "page"});`))
	assert.JSONEq(t, `{"who":"page"}`, got)
}

func TestHistoryNavigation(t *testing.T) {
	app, _, _ := newTestApp(t)

	var loads []string
	w, err := app.NewWindow(window.Config{URL: "app://a.html"},
		window.WithEvents(window.Events{
			OnLoad: func(url string) { loads = append(loads, url) },
		}))
	require.NoError(t, err)

	w.LoadURL("app://b.html")
	w.Back()
	w.Forward()
	w.Reload()

	assert.Equal(t, []string{
		"app://a.html", "app://b.html",
		"app://a.html", "app://b.html", "app://b.html",
	}, loads)
	assert.Equal(t, window.StateLoaded, w.State())

	// A fresh load discards forward history.
	w.Back()
	w.LoadURL("app://c.html")
	w.Forward()
	last := loads[len(loads)-1]
	assert.Equal(t, "app://c.html", last)
}

func TestPageCloseClosesWindow(t *testing.T) {
	_, eng, w := newTestApp(t)

	require.NoError(t, eng.RunScript(w, `window.bamboo.close();`))
	assert.Equal(t, window.StateClosed, w.State())
}
