//go:build !nogui
// +build !nogui

package overlay

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"

	"tmuxtutor/internal/keys"
	"tmuxtutor/internal/log"
	"tmuxtutor/internal/practice"
)

var (
	colorAccent  = color.NRGBA{R: 0x00, G: 0xff, B: 0xff, A: 0xff}
	colorSuccess = color.NRGBA{R: 0x00, G: 0xff, B: 0x66, A: 0xff}
	colorWrong   = color.NRGBA{R: 0xff, G: 0x44, B: 0x44, A: 0xff}
	colorMuted   = color.NRGBA{R: 0xaa, G: 0xaa, B: 0xaa, A: 0xff}
	colorHint    = color.NRGBA{R: 0x66, G: 0x66, B: 0x66, A: 0xff}
)

// Overlay is a fullscreen practice window showing the current keybind and
// flashing feedback as keys are pressed.
type Overlay struct {
	fyneApp fyne.App
	window  fyne.Window

	keybind     *canvas.Text
	progress    *canvas.Text
	description *canvas.Text

	sequence *practice.Sequence
	mods     keys.ModSet
}

// New creates the overlay window.
func New() *Overlay {
	o := &Overlay{
		fyneApp: app.NewWithID("io.github.tmuxtutor"),
		mods:    keys.NewModSet(),
	}

	o.window = o.fyneApp.NewWindow("tmuxtutor practice")
	o.window.SetFullScreen(true)

	o.keybind = canvas.NewText("", colorAccent)
	o.keybind.TextSize = 96
	o.keybind.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	o.keybind.Alignment = fyne.TextAlignCenter

	o.progress = canvas.NewText("", color.White)
	o.progress.TextSize = 24
	o.progress.TextStyle = fyne.TextStyle{Monospace: true}
	o.progress.Alignment = fyne.TextAlignCenter

	o.description = canvas.NewText("", colorMuted)
	o.description.TextSize = 20
	o.description.TextStyle = fyne.TextStyle{Monospace: true}
	o.description.Alignment = fyne.TextAlignCenter

	hint := canvas.NewText("Press Escape to exit", colorHint)
	hint.TextSize = 16
	hint.TextStyle = fyne.TextStyle{Monospace: true}
	hint.Alignment = fyne.TextAlignCenter

	o.window.SetContent(container.NewVBox(
		layout.NewSpacer(),
		o.keybind,
		o.progress,
		o.description,
		layout.NewSpacer(),
		hint,
	))

	return o
}

// Run practices the given steps and blocks until the window closes.
// Returns true if every step was completed.
func (o *Overlay) Run(steps []practice.Step) bool {
	o.sequence = practice.NewSequence(steps, practice.Events{
		Show:    o.showStep,
		Correct: func() { o.flash(colorSuccess) },
		Wrong:   func() { o.flash(colorWrong) },
		Escaped: o.close,
		Done:    o.closeSoon,
	})

	if deskCanvas, ok := o.window.Canvas().(desktop.Canvas); ok {
		deskCanvas.SetOnKeyDown(o.onKeyDown)
		deskCanvas.SetOnKeyUp(o.onKeyUp)
	} else {
		log.Warn("desktop canvas unavailable, modifier tracking disabled")
	}

	o.sequence.Start()
	if !o.sequence.Completed() {
		o.window.ShowAndRun()
	}
	return o.sequence.Completed()
}

func (o *Overlay) showStep(display, description string, current, total int) {
	o.keybind.Text = display
	o.keybind.Color = colorAccent
	o.keybind.Refresh()
	o.progress.Text = progressLabel(current, total)
	o.progress.Refresh()
	o.description.Text = description
	o.description.Refresh()
}

func (o *Overlay) flash(c color.Color) {
	o.keybind.Color = c
	o.keybind.Refresh()
	time.AfterFunc(200*time.Millisecond, func() {
		o.keybind.Color = colorAccent
		o.keybind.Refresh()
	})
}

func (o *Overlay) close() {
	o.window.Close()
}

func (o *Overlay) closeSoon() {
	time.AfterFunc(300*time.Millisecond, o.window.Close)
}

func (o *Overlay) onKeyDown(ev *fyne.KeyEvent) {
	if mod := modifierName(ev.Name); mod != "" {
		o.mods[mod] = true
		return
	}
	o.sequence.HandleKey(o.mods, eventKeyName(ev.Name))
}

func (o *Overlay) onKeyUp(ev *fyne.KeyEvent) {
	if mod := modifierName(ev.Name); mod != "" {
		delete(o.mods, mod)
	}
}

func modifierName(name fyne.KeyName) string {
	switch name {
	case desktop.KeyAltLeft, desktop.KeyAltRight:
		return "alt"
	case desktop.KeyControlLeft, desktop.KeyControlRight:
		return "ctrl"
	case desktop.KeyShiftLeft, desktop.KeyShiftRight:
		return "shift"
	}
	return ""
}

// eventKeyName normalizes fyne key names to the lowercase names the
// practice sequence matches against.
func eventKeyName(name fyne.KeyName) string {
	switch name {
	case fyne.KeyReturn, fyne.KeyEnter:
		return "enter"
	case fyne.KeyBackspace:
		return "backspace"
	case fyne.KeyPageUp:
		return "pageup"
	case fyne.KeyPageDown:
		return "pagedown"
	}
	return strings.ToLower(string(name))
}

func progressLabel(current, total int) string {
	return fmt.Sprintf("[%d / %d]", current, total)
}

// Available reports whether the overlay can be shown in this build.
func Available() bool {
	return true
}
