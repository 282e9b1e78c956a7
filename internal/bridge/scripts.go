package bridge

import (
	"encoding/json"
	"fmt"

	"github.com/bambooui/bamboo/internal/shared/jsv"
)

// Script builders for the three native-to-script entry points. All
// dynamic content is JSON-encoded before interpolation so arbitrary
// strings cannot break out of the statement.

// ResolveCallScript completes the pending script promise id with either
// value or the failure message.
func ResolveCallScript(id string, value jsv.Value, callErr *CallError) string {
	idJSON, _ := json.Marshal(id)
	if callErr != nil {
		msgJSON, _ := json.Marshal(callErr.Message)
		return fmt.Sprintf(
			"window.bamboo && window.bamboo._resolveCall(%s, null, %s);",
			idJSON, msgJSON)
	}
	valJSON, err := json.Marshal(value)
	if err != nil {
		valJSON = []byte("null")
	}
	return fmt.Sprintf(
		"window.bamboo && window.bamboo._resolveCall(%s, %s, null);",
		idJSON, valJSON)
}

// DispatchScript delivers a native-originated event to script listeners.
func DispatchScript(event string, payload interface{}) string {
	evJSON, _ := json.Marshal(event)
	plJSON, err := json.Marshal(payload)
	if err != nil {
		plJSON = []byte("null")
	}
	return fmt.Sprintf(
		"window.bamboo && window.bamboo._dispatch(%s, %s);",
		evJSON, plJSON)
}

// EvalWrapper wraps code for one-shot evaluation. The wrapper reports
// completion through the reserved __evalResult event; exceptions are
// stringified rather than propagated, so evaluation never kills the
// page.
func EvalWrapper(id int, code string) string {
	codeJSON, _ := json.Marshal(code)
	return fmt.Sprintf(`(function(){
  var __id = %d;
  var __post = function(v, e) {
    if (window.bamboo) { window.bamboo.send(%q, {id: __id, value: v, error: e}); }
  };
  try {
    var __r = (0, eval)(%s);
    __post(__r === undefined ? null : __r, null);
  } catch (err) {
    __post(null, String(err));
  }
})();`, id, EvalResultEvent, codeJSON)
}
