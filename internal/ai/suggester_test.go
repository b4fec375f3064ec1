package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmuxtutor/internal/tmux"
	"tmuxtutor/pkg/types"
)

func configFrom(t *testing.T, content string) *tmux.Config {
	t.Helper()
	keybindings, options := tmux.Parse(content)
	return &tmux.Config{
		Keybindings: keybindings,
		RawOptions:  options,
		Style:       tmux.DetectStyle(keybindings, options),
	}
}

func TestSuggestions(t *testing.T) {
	s := NewSuggester(nil)

	t.Run("meta navigators get meta resize", func(t *testing.T) {
		cfg := configFrom(t, `
bind -n M-h select-pane -L
bind -n M-j select-pane -D
bind -n M-k select-pane -U
bind -n M-l select-pane -R
`)
		tips := s.Suggestions(cfg, "", 10)

		ids := tipIDs(tips)
		assert.Contains(t, ids, "resize-meta-hjkl")
	})

	t.Run("vim users get vim copy mode", func(t *testing.T) {
		cfg := configFrom(t, "bind h select-pane -L\n")
		ids := tipIDs(s.Suggestions(cfg, "", 10))
		assert.Contains(t, ids, "copy-vim-mode")
	})

	t.Run("vim copy not suggested when present", func(t *testing.T) {
		cfg := configFrom(t, `
bind h select-pane -L
bind -T copy-mode-vi v send -X begin-selection
`)
		ids := tipIDs(s.Suggestions(cfg, "", 20))
		assert.NotContains(t, ids, "copy-vim-mode")
	})

	t.Run("missing essentials included", func(t *testing.T) {
		cfg := configFrom(t, "bind q kill-pane\n")
		ids := tipIDs(s.Suggestions(cfg, "", 20))
		assert.Contains(t, ids, "reload-config")
		assert.Contains(t, ids, "pane-zoom")
		assert.Contains(t, ids, "session-picker")
	})

	t.Run("present essentials excluded", func(t *testing.T) {
		cfg := configFrom(t, "bind r source-file ~/.tmux.conf\nbind z resize-pane -Z\n")
		ids := tipIDs(s.Suggestions(cfg, "", 20))
		assert.NotContains(t, ids, "reload-config")
		assert.NotContains(t, ids, "pane-zoom")
		assert.Contains(t, ids, "session-picker")
	})

	t.Run("category tips appended without duplicates", func(t *testing.T) {
		cfg := configFrom(t, "bind q kill-pane\n")
		tips := s.Suggestions(cfg, "productivity", 50)

		seen := make(map[string]int)
		for _, tip := range tips {
			seen[tip.ID]++
		}
		for id, count := range seen {
			assert.Equal(t, 1, count, id)
		}
	})

	t.Run("limit respected", func(t *testing.T) {
		cfg := configFrom(t, "bind q kill-pane\n")
		assert.Len(t, s.Suggestions(cfg, "productivity", 2), 2)
	})
}

func TestRank(t *testing.T) {
	s := NewSuggester(nil)
	cfg := configFrom(t, "bind h select-pane -L\n") // vim user, few bindings

	vim := types.Tip{ID: "a", VimStyle: true, Difficulty: "beginner", RequiresPrefix: true}
	advanced := types.Tip{ID: "b", Difficulty: "advanced", RequiresPrefix: true}
	plain := types.Tip{ID: "c", Difficulty: "beginner", RequiresPrefix: true}

	ranked := s.Rank([]types.Tip{advanced, plain, vim}, cfg)
	require.Len(t, ranked, 3)
	assert.Equal(t, "a", ranked[0].ID)
	assert.Equal(t, "c", ranked[1].ID)
	assert.Equal(t, "b", ranked[2].ID)
}

func TestAISuggestionsRequiresClient(t *testing.T) {
	s := NewSuggester(nil)
	cfg := configFrom(t, "")
	_, err := s.AISuggestions(context.Background(), cfg, "")
	assert.Error(t, err)
}

func tipIDs(tips []types.Tip) []string {
	ids := make([]string, 0, len(tips))
	for _, tip := range tips {
		ids = append(ids, tip.ID)
	}
	return ids
}
