package tui

import (
	"testing"

	alsrt "github.com/alecthomas/assert"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmuxtutor/internal/ai"
	"tmuxtutor/internal/tmux"
	"tmuxtutor/pkg/types"
)

func testConfig(t *testing.T) *tmux.Config {
	t.Helper()
	keybindings, options := tmux.Parse(`
set -g prefix C-a
bind -n M-h select-pane -L
bind -n M-j select-pane -D
bind -n M-k select-pane -U
bind -n M-l select-pane -R
`)
	return &tmux.Config{
		Keybindings: keybindings,
		RawOptions:  options,
		Style:       tmux.DetectStyle(keybindings, options),
	}
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelInitialization(t *testing.T) {
	m := New(testConfig(t), ai.NewSuggester(nil), nil)
	require.NotNil(t, m)
	assert.Equal(t, viewHome, m.view)
	assert.NotEmpty(t, m.list.Items())
}

func TestViewSwitching(t *testing.T) {
	m := New(testConfig(t), ai.NewSuggester(nil), nil)

	model, _ := m.Update(keyMsg("s"))
	assert.Equal(t, viewSuggestions, model.(*Model).view)

	model, _ = model.(*Model).Update(keyMsg("p"))
	assert.Equal(t, viewProgress, model.(*Model).view)

	model, _ = model.(*Model).Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, viewHome, model.(*Model).view)
}

func TestQuitKeys(t *testing.T) {
	m := New(testConfig(t), ai.NewSuggester(nil), nil)

	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	// escape on the home view also quits
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
}

func TestHomeViewContent(t *testing.T) {
	m := New(testConfig(t), ai.NewSuggester(nil), nil)
	out := m.View()

	alsrt.Contains(t, out, "tmuxtutor")
	alsrt.Contains(t, out, "Prefix:")
	assert.Contains(t, out, "vim-style navigation")
}

func TestHomeViewEmptyConfig(t *testing.T) {
	keybindings, options := tmux.Parse("")
	cfg := &tmux.Config{
		Keybindings: keybindings,
		RawOptions:  options,
		Style:       tmux.DetectStyle(keybindings, options),
	}

	m := New(cfg, ai.NewSuggester(nil), nil)
	assert.Contains(t, m.View(), "No custom keybindings")
}

func TestProgressViewWithoutTracker(t *testing.T) {
	m := New(testConfig(t), ai.NewSuggester(nil), nil)

	model, _ := m.Update(keyMsg("p"))
	m = model.(*Model)
	model, _ = m.Update(summaryMsg{})
	assert.Contains(t, model.(*Model).View(), "No progress recorded")
}

func TestWindowResizePropagates(t *testing.T) {
	m := New(testConfig(t), ai.NewSuggester(nil), nil)

	model, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, model.(*Model).width)
}

func TestTipItem(t *testing.T) {
	item := tipItem{tip: types.Tip{
		ID:       "nav-pane-hjkl",
		Name:     "Vim-style pane navigation",
		Keybind:  "h",
		Category: "navigation",
	}}

	alsrt.Contains(t, item.FilterValue(), "navigation")
	assert.Contains(t, item.Title(), "Vim-style pane navigation")
}
