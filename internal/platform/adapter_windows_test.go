//go:build windows

package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bambooui/bamboo/internal/style"
)

func TestChromeStyleBitsPerMode(t *testing.T) {
	bits := chromeStyleBits(0, style.ChromeNativeTitlebar, true)
	assert.NotZero(t, bits&wsCaption)
	assert.NotZero(t, bits&wsThickFrame)
	assert.Zero(t, bits&wsPopup)

	bits = chromeStyleBits(0, style.ChromeFrameless, false)
	assert.NotZero(t, bits&wsPopup)
	assert.Zero(t, bits&wsCaption)
	assert.Zero(t, bits&wsThickFrame)

	bits = chromeStyleBits(0, style.ChromeFrameless, true)
	assert.NotZero(t, bits&wsThickFrame)

	bits = chromeStyleBits(0, style.ChromeCustomTitlebar, true)
	assert.NotZero(t, bits&wsCaption)
	assert.Zero(t, bits&wsThickFrame)
	assert.Zero(t, bits&wsPopup)
}

func TestChromeStyleBitsClearPopupAfterFrameless(t *testing.T) {
	frameless := chromeStyleBits(0, style.ChromeFrameless, false)
	assert.NotZero(t, frameless&wsPopup)

	for _, mode := range []style.ChromeMode{
		style.ChromeFull, style.ChromeNativeTitlebar, style.ChromeCustomTitlebar,
	} {
		bits := chromeStyleBits(frameless, mode, true)
		assert.Zero(t, bits&wsPopup, "mode %v keeps WS_POPUP", mode)
	}
}
