package style

import "strings"

// StylesheetElementID is the reserved DOM element id for the injected
// stylesheet. Re-injection replaces the element's content instead of
// appending, so repeated loads leave exactly one stylesheet behind.
const StylesheetElementID = "__bamboo_s"

// CSS derives the stylesheet injected after each successful main-frame
// load: scrollbar policy plus text-selection permission. Returns "" when
// the style needs no injected rules.
func CSS(s WindowStyle) string {
	var css strings.Builder
	switch s.Scrollbar {
	case ScrollbarHidden:
		css.WriteString("::-webkit-scrollbar{display:none}*{-ms-overflow-style:none;scrollbar-width:none}")
	case ScrollbarOverlay:
		css.WriteString("::-webkit-scrollbar{width:8px;height:8px}" +
			"::-webkit-scrollbar-track{background:transparent}" +
			"::-webkit-scrollbar-thumb{background:rgba(0,0,0,.3);border-radius:4px}")
	}
	if !s.AllowTextSelection {
		css.WriteString("*{user-select:none;-webkit-user-select:none}")
	}
	return css.String()
}

// InjectionScript wraps the derived CSS in the idempotent injection
// snippet: a <style> element with the reserved id is created once and
// its content replaced on every call. A style with no derived rules
// still produces the snippet, so stale rules from a previous model are
// cleared rather than left behind.
func InjectionScript(s WindowStyle) string {
	css := CSS(s)
	escaped := strings.ReplaceAll(css, "`", "\\`")
	var b strings.Builder
	b.WriteString("(function(){var id='")
	b.WriteString(StylesheetElementID)
	b.WriteString("',el=document.getElementById(id);")
	b.WriteString("if(!el){el=document.createElement('style');el.id=id;document.head.appendChild(el)}")
	b.WriteString("el.textContent=`")
	b.WriteString(escaped)
	b.WriteString("`;})();")
	return b.String()
}
