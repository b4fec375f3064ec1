// Package keys translates tmux keybind notation into a human display form
// and into the canonical representation used to match live key events in the
// practice overlay.
//
// Only one modifier prefix is recognized per notation (M-, C-, S-, in that
// order). Stacked prefixes like C-M-x are a known limitation here; the
// config parser handles those separately.
package keys

import (
	"runtime"
	"strings"
)

// ModSet is the tool-internal modifier vocabulary, lowercase and distinct
// from the parser's modifier enum.
type ModSet map[string]bool

// NewModSet builds a set from the given modifier names.
func NewModSet(mods ...string) ModSet {
	set := make(ModSet, len(mods))
	for _, m := range mods {
		set[m] = true
	}
	return set
}

// Equal reports exact set equality.
func (s ModSet) Equal(other ModSet) bool {
	if len(s) != len(other) {
		return false
	}
	for m := range s {
		if !other[m] {
			return false
		}
	}
	return true
}

// Match is what a live key press must produce to satisfy a binding.
type Match struct {
	Modifiers ModSet
	Key       string
}

// Matches compares a raw key event against the expectation. Modifiers use
// exact set equality, the key exact string equality.
func (m Match) Matches(modifiers ModSet, key string) bool {
	return m.Modifiers.Equal(modifiers) && m.Key == key
}

// displayKeys maps tmux special key names to their display labels.
var displayKeys = map[string]string{
	"Space":    "Space",
	"Enter":    "Enter",
	"Tab":      "Tab",
	"BSpace":   "Backspace",
	"Escape":   "Escape",
	"Up":       "Up",
	"Down":     "Down",
	"Left":     "Left",
	"Right":    "Right",
	"Home":     "Home",
	"End":      "End",
	"PageUp":   "Page Up",
	"PageDown": "Page Down",
	"F1":       "F1",
	"F2":       "F2",
	"F3":       "F3",
	"F4":       "F4",
	"F5":       "F5",
	"F6":       "F6",
	"F7":       "F7",
	"F8":       "F8",
	"F9":       "F9",
	"F10":      "F10",
	"F11":      "F11",
	"F12":      "F12",
}

// matchKeys maps tmux special key names to the lowercase names key event
// sources report.
var matchKeys = map[string]string{
	"Space":  "space",
	"Enter":  "enter",
	"Tab":    "tab",
	"BSpace": "backspace",
	"Escape": "escape",
	"Up":     "up",
	"Down":   "down",
	"Left":   "left",
	"Right":  "right",
}

// shiftedSymbols maps US-keyboard shifted punctuation to its unshifted base
// key. Keyboards report the base key plus a shift modifier, not the
// produced symbol.
var shiftedSymbols = map[string]string{
	"{":  "[",
	"}":  "]",
	"<":  ",",
	">":  ".",
	"|":  `\`,
	"!":  "1",
	"@":  "2",
	"#":  "3",
	"$":  "4",
	"%":  "5",
	"^":  "6",
	"&":  "7",
	"*":  "8",
	"(":  "9",
	")":  "0",
	"_":  "-",
	"+":  "=",
	"~":  "`",
	":":  ";",
	`"`:  "'",
	"?":  "/",
}

// stripPrefix removes at most one modifier prefix and reports which one.
func stripPrefix(notation string) (rest, mod string) {
	switch {
	case strings.HasPrefix(notation, "M-"):
		return notation[2:], "alt"
	case strings.HasPrefix(notation, "C-"):
		return notation[2:], "ctrl"
	case strings.HasPrefix(notation, "S-"):
		return notation[2:], "shift"
	}
	return notation, ""
}

// Display converts tmux notation to a human-readable label, e.g.
// "M-H" -> "Alt + H". The Meta modifier is labeled Option on macOS.
func Display(notation string) string {
	return displayWithPlatform(notation, runtime.GOOS)
}

func displayWithPlatform(notation, goos string) string {
	rest, mod := stripPrefix(strings.TrimSpace(notation))

	var parts []string
	switch mod {
	case "alt":
		if goos == "darwin" {
			parts = append(parts, "Option")
		} else {
			parts = append(parts, "Alt")
		}
	case "ctrl":
		parts = append(parts, "Ctrl")
	case "shift":
		parts = append(parts, "Shift")
	}

	if label, ok := displayKeys[rest]; ok {
		parts = append(parts, label)
	} else {
		// Single characters display as-is, case preserved
		parts = append(parts, rest)
	}

	return strings.Join(parts, " + ")
}

// ExpectedKey converts tmux notation into the modifier set and lowercase
// key name a live key event must produce. Uppercase letters and shifted
// punctuation both imply shift: tmux encodes shift through case and symbol
// choice, never an explicit S- token for these. Unknown tokens pass through
// lowercased; this never fails.
func ExpectedKey(notation string) Match {
	rest, mod := stripPrefix(strings.TrimSpace(notation))

	modifiers := make(ModSet)
	if mod != "" {
		modifiers[mod] = true
	}

	if key, ok := matchKeys[rest]; ok {
		return Match{Modifiers: modifiers, Key: key}
	}

	if len(rest) == 1 && rest >= "A" && rest <= "Z" {
		modifiers["shift"] = true
		return Match{Modifiers: modifiers, Key: strings.ToLower(rest)}
	}

	if base, ok := shiftedSymbols[rest]; ok {
		modifiers["shift"] = true
		return Match{Modifiers: modifiers, Key: base}
	}

	return Match{Modifiers: modifiers, Key: strings.ToLower(rest)}
}
