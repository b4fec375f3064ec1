package tmux

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tmuxtutor/pkg/types"
)

func TestDetectStyle(t *testing.T) {
	t.Run("defaults on empty config", func(t *testing.T) {
		style := DetectStyle(nil, map[string]string{})
		assert.Equal(t, "C-b", style.PrefixKey)
		assert.False(t, style.UsesVimKeys)
		assert.False(t, style.UsesArrowKeys)
		assert.Empty(t, style.NavigationPattern)
	})

	t.Run("custom prefix", func(t *testing.T) {
		style := DetectStyle(nil, map[string]string{"prefix": "C-a"})
		assert.Equal(t, "C-a", style.PrefixKey)
	})

	t.Run("meta hjkl navigation", func(t *testing.T) {
		keybindings, options := Parse(`
bind -n M-h select-pane -L
bind -n M-j select-pane -D
bind -n M-k select-pane -U
bind -n M-l select-pane -R
`)
		style := DetectStyle(keybindings, options)
		assert.True(t, style.UsesVimKeys)
		assert.False(t, style.UsesArrowKeys)
		assert.True(t, style.PrefersMeta)
		assert.Equal(t, "M-hjkl", style.NavigationPattern)
	})

	t.Run("prefix hjkl navigation", func(t *testing.T) {
		keybindings, options := Parse(`
bind h select-pane -L
bind j select-pane -D
bind k select-pane -U
bind l select-pane -R
`)
		style := DetectStyle(keybindings, options)
		assert.True(t, style.UsesVimKeys)
		// All prefix-table, fewer than three root or meta vim bindings
		assert.Empty(t, style.NavigationPattern)
	})

	t.Run("root hjkl without meta", func(t *testing.T) {
		keybindings := []types.Keybinding{
			{Key: "h", Modifiers: []types.Modifier{types.ModNone}, Command: "select-pane -L", Mode: types.ModeRoot},
			{Key: "j", Modifiers: []types.Modifier{types.ModNone}, Command: "select-pane -D", Mode: types.ModeRoot},
			{Key: "k", Modifiers: []types.Modifier{types.ModNone}, Command: "select-pane -U", Mode: types.ModeRoot},
		}
		style := DetectStyle(keybindings, map[string]string{})
		assert.Equal(t, "hjkl (root)", style.NavigationPattern)
	})

	t.Run("two meta vim bindings is not a pattern", func(t *testing.T) {
		keybindings, options := Parse(`
bind -n M-h select-pane -L
bind -n M-l select-pane -R
`)
		style := DetectStyle(keybindings, options)
		assert.True(t, style.UsesVimKeys)
		assert.True(t, style.PrefersMeta)
		assert.Empty(t, style.NavigationPattern)
	})

	t.Run("arrow keys detected case sensitively", func(t *testing.T) {
		keybindings, options := Parse(`
bind Left select-pane -L
bind Right select-pane -R
`)
		style := DetectStyle(keybindings, options)
		assert.True(t, style.UsesArrowKeys)
		assert.False(t, style.UsesVimKeys)
	})

	t.Run("ctrl heavy config prefers ctrl", func(t *testing.T) {
		keybindings, options := Parse(`
bind C-h select-pane -L
bind C-j select-pane -D
bind C-k select-pane -U
bind q kill-pane
bind w choose-window
bind e command-prompt
bind t clock-mode
bind y copy-mode
bind u last-window
`)
		style := DetectStyle(keybindings, options)
		assert.True(t, style.PrefersCtrl)
		assert.False(t, style.PrefersMeta)
	})

	t.Run("root share alone flips prefers meta", func(t *testing.T) {
		keybindings := []types.Keybinding{
			{Key: "h", Modifiers: []types.Modifier{types.ModNone}, Command: "kill-pane", Mode: types.ModeRoot},
			{Key: "q", Modifiers: []types.Modifier{types.ModNone}, Command: "kill-pane", Mode: types.ModePrefix},
		}
		style := DetectStyle(keybindings, map[string]string{})
		assert.True(t, style.PrefersMeta)
	})

	t.Run("deterministic for same input", func(t *testing.T) {
		keybindings, options := Parse(GenerateDefaultConfig())
		first := DetectStyle(keybindings, options)
		second := DetectStyle(keybindings, options)
		assert.Equal(t, first, second)
	})
}
