//go:build !nogui
// +build !nogui

package overlay

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/stretchr/testify/assert"
)

func TestModifierName(t *testing.T) {
	assert.Equal(t, "alt", modifierName(desktop.KeyAltLeft))
	assert.Equal(t, "alt", modifierName(desktop.KeyAltRight))
	assert.Equal(t, "ctrl", modifierName(desktop.KeyControlLeft))
	assert.Equal(t, "shift", modifierName(desktop.KeyShiftRight))
	assert.Equal(t, "", modifierName(fyne.KeyA))
}

func TestEventKeyName(t *testing.T) {
	assert.Equal(t, "h", eventKeyName(fyne.KeyH))
	assert.Equal(t, "space", eventKeyName(fyne.KeySpace))
	assert.Equal(t, "escape", eventKeyName(fyne.KeyEscape))
	assert.Equal(t, "enter", eventKeyName(fyne.KeyReturn))
	assert.Equal(t, "enter", eventKeyName(fyne.KeyEnter))
	assert.Equal(t, "backspace", eventKeyName(fyne.KeyBackspace))
	assert.Equal(t, "pageup", eventKeyName(fyne.KeyPageUp))
	assert.Equal(t, "left", eventKeyName(fyne.KeyLeft))
}

func TestProgressLabel(t *testing.T) {
	assert.Equal(t, "[1 / 4]", progressLabel(1, 4))
	assert.Equal(t, "[10 / 12]", progressLabel(10, 12))
}
