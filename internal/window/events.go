package window

import "github.com/bambooui/bamboo/internal/style"

// Events holds the native-side lifecycle callbacks for one window. All
// fields are optional; callbacks run on the interface thread.
type Events struct {
	// OnLoad fires when a page finishes loading, after bridge and
	// stylesheet injection.
	OnLoad func(url string)

	// OnNavigation fires before a navigation commits. Returning false
	// vetoes it.
	OnNavigation func(url string) bool

	// OnTitleChange fires when the document title changes.
	OnTitleChange func(title string)

	// OnConsole receives page console output.
	OnConsole func(level, message, source string)

	// OnClose fires once teardown has begun, before the surface is
	// asked to close. Closing is not cancelable.
	OnClose func()

	// OnClosed fires once the window is gone.
	OnClosed func()

	// OnFocusChange fires when the window gains or loses focus.
	OnFocusChange func(focused bool)

	// OnFind reports in-page find results.
	OnFind func(matches int, activeOrdinal int, finalUpdate bool)

	// OnStyleChange fires after any style model change has been
	// dispatched, including page-initiated partial updates.
	OnStyleChange func(s style.WindowStyle)

	// OnFullscreenChange fires when HTML fullscreen is entered or left.
	OnFullscreenChange func(fullscreen bool)
}
