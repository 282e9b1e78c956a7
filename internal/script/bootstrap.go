// Package script owns the page-side half of the bridge: the
// window.bamboo bootstrap source injected into every page, and a
// goja-hosted runtime that executes the same bootstrap for headless
// embedding and tests.
package script

import "time"

// CallTimeout is how long a script-side call waits for its
// _resolveCall completion before rejecting. The runtime publishes it
// to the page as window.__bambooCallTimeout; pages without a host
// value fall back to the same 30s.
const CallTimeout = 30 * time.Second

// Bootstrap returns the window.bamboo installation script. It is
// idempotent: re-injection on the same page is a no-op. The page talks
// to the native side through window.__bambooPost, which the embedding
// engine provides; call identifiers come from window.__bambooNewID when
// the host installs one, falling back to crypto.randomUUID. The call
// timeout is read from window.__bambooCallTimeout at each call.
func Bootstrap() string {
	return bootstrapJS
}

const bootstrapJS = `(function () {
  if (window.bamboo) { return; }

  var listeners = {};
  var pending = {};
  var DEFAULT_CALL_TIMEOUT_MS = 30000;

  function callTimeoutMs() {
    var ms = window.__bambooCallTimeout;
    return (typeof ms === "number" && ms > 0) ? ms : DEFAULT_CALL_TIMEOUT_MS;
  }

  function newId() {
    if (window.__bambooNewID) { return window.__bambooNewID(); }
    if (window.crypto && window.crypto.randomUUID) {
      return "call_" + window.crypto.randomUUID();
    }
    return "call_" + Date.now().toString(36) + Math.random().toString(36).slice(2);
  }

  function post(msg) {
    if (window.__bambooPost) { window.__bambooPost(JSON.stringify(msg)); }
  }

  window.bamboo = {
    version: window.__bambooVersion || null,
    platform: (window.navigator && window.navigator.platform) || null,

    send: function (event, data) {
      post({ type: "message", event: event, data: data === undefined ? null : data });
    },

    on: function (event, fn) {
      (listeners[event] = listeners[event] || []).push(fn);
    },

    off: function (event, fn) {
      var l = listeners[event];
      if (!l) { return; }
      if (!fn) { delete listeners[event]; return; }
      var i = l.indexOf(fn);
      if (i >= 0) { l.splice(i, 1); }
    },

    call: function (name) {
      var args = Array.prototype.slice.call(arguments, 1);
      var id = newId();
      return new Promise(function (resolve, reject) {
        var timer = setTimeout(function () {
          delete pending[id];
          reject(new Error("call timed out: " + name));
        }, callTimeoutMs());
        pending[id] = { resolve: resolve, reject: reject, timer: timer };
        post({ type: "call", name: name, args: args, id: id });
      });
    },

    setStyle: function (style) {
      post({ type: "setStyle", style: style || {} });
    },

    setDragRegions: function (regions) {
      post({ type: "setDragRegions", regions: regions || [] });
    },

    minimize: function () { post({ type: "windowOp", op: "minimize" }); },
    maximize: function () { post({ type: "windowOp", op: "maximize" }); },
    restore: function () { post({ type: "windowOp", op: "restore" }); },
    close: function () { post({ type: "windowOp", op: "close" }); },
    print: function () { post({ type: "windowOp", op: "print" }); },
    openDevTools: function () { post({ type: "windowOp", op: "devTools" }); },

    setTitle: function (title) {
      post({ type: "windowOp", op: "setTitle", value: String(title) });
    },
    setAlwaysOnTop: function (on) {
      post({ type: "windowOp", op: "alwaysOnTop", value: !!on });
    },
    setFullscreen: function (on) {
      post({ type: "windowOp", op: "fullscreen", value: !!on });
    },
    setZoom: function (factor) {
      post({ type: "windowOp", op: "zoom", value: Number(factor) });
    },

    _dispatch: function (event, payload) {
      var l = listeners[event];
      if (!l) { return; }
      l.slice().forEach(function (fn) {
        try { fn(payload); } catch (e) { /* listener errors stay local */ }
      });
    },

    _resolveCall: function (id, value, error) {
      var p = pending[id];
      if (!p) { return; }
      delete pending[id];
      clearTimeout(p.timer);
      if (error === null || error === undefined) {
        p.resolve(value);
      } else {
        p.reject(new Error(error));
      }
    }
  };
})();`
