package types

import "strings"

// Modifier is a tmux key modifier prefix letter as it appears in key
// notation ("C-a", "M-h").
type Modifier string

const (
	// ModCtrl is the Control key ("C-" prefix)
	ModCtrl Modifier = "C"
	// ModMeta is the Meta/Alt key ("M-" prefix)
	ModMeta Modifier = "M"
	// ModShift is the Shift key ("S-" prefix)
	ModShift Modifier = "S"
	// ModNone marks a binding with no modifier at all
	ModNone Modifier = ""
)

// BindingMode identifies the tmux key table a binding lives in.
type BindingMode string

const (
	// ModePrefix bindings require the prefix key first (tmux default table)
	ModePrefix BindingMode = "prefix"
	// ModeRoot bindings fire without a prefix (-n flag)
	ModeRoot BindingMode = "root"
	// ModeCopy is tmux's copy-mode table (-T copy-mode)
	ModeCopy BindingMode = "copy-mode"
	// ModeCopyVi is the vi-keys copy-mode table (-T copy-mode-vi)
	ModeCopyVi BindingMode = "copy-mode-vi"
)

// navCommands are the tmux command substrings that classify a binding as
// navigation-related. The same list drives style inference and the model's
// navigation query.
var navCommands = []string{
	"select-pane",
	"select-window",
	"next-window",
	"previous-window",
	"last-window",
	"switch-client",
}

// Keybinding is one parsed tmux key binding. Values are immutable after
// construction; a fresh parse produces a fresh list.
type Keybinding struct {
	Key         string      // base key token (letter, digit, symbol, or named key)
	Modifiers   []Modifier  // normalized to [ModNone] when the key has no prefix
	Command     string      // full tmux command, preserved verbatim
	Mode        BindingMode // which key table the binding lives in
	Description string      // annotation from a preceding comment line, if any
	RawLine     string      // original source line, kept for display only
}

// KeyCombo returns the canonical combination string, e.g. "M-h" or "C-M-a".
// A binding without modifiers is just its key.
func (k Keybinding) KeyCombo() string {
	mods := make([]string, 0, len(k.Modifiers))
	for _, m := range k.Modifiers {
		if m != ModNone {
			mods = append(mods, string(m))
		}
	}
	if len(mods) == 0 {
		return k.Key
	}
	return strings.Join(mods, "-") + "-" + k.Key
}

// HasModifier reports whether the binding carries the given modifier.
func (k Keybinding) HasModifier(m Modifier) bool {
	for _, mod := range k.Modifiers {
		if mod == m {
			return true
		}
	}
	return false
}

// IsNavigation reports whether the bound command moves between panes,
// windows, or clients.
func (k Keybinding) IsNavigation() bool {
	for _, cmd := range navCommands {
		if strings.Contains(k.Command, cmd) {
			return true
		}
	}
	return false
}

// IsResize reports whether the bound command resizes a pane.
func (k Keybinding) IsResize() bool {
	return strings.Contains(k.Command, "resize-pane")
}

// IsSplit reports whether the bound command splits a window.
func (k Keybinding) IsSplit() bool {
	return strings.Contains(k.Command, "split-window") || strings.Contains(k.Command, "split")
}
