package discovery

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTips(t *testing.T) {
	t.Run("no filter returns everything", func(t *testing.T) {
		assert.Len(t, Tips(Filter{}), len(curatedTips))
	})

	t.Run("category filter", func(t *testing.T) {
		tips := Tips(Filter{Category: "navigation"})
		require.NotEmpty(t, tips)
		for _, tip := range tips {
			assert.Equal(t, "navigation", tip.Category)
		}
	})

	t.Run("vim only", func(t *testing.T) {
		tips := Tips(Filter{VimOnly: true})
		require.NotEmpty(t, tips)
		for _, tip := range tips {
			assert.True(t, tip.VimStyle)
		}
	})

	t.Run("no prefix only", func(t *testing.T) {
		tips := Tips(Filter{NoPrefixOnly: true})
		require.NotEmpty(t, tips)
		for _, tip := range tips {
			assert.False(t, tip.RequiresPrefix, tip.ID)
		}
	})

	t.Run("tag glob", func(t *testing.T) {
		tips := Tips(Filter{TagGlob: "clip*"})
		require.NotEmpty(t, tips)
		for _, tip := range tips {
			assert.Contains(t, tip.Tags, "clipboard")
		}
	})

	t.Run("filters compose", func(t *testing.T) {
		tips := Tips(Filter{Category: "resize", Difficulty: "intermediate", VimOnly: true})
		assert.Len(t, tips, 2)
	})

	t.Run("bad glob yields nothing", func(t *testing.T) {
		assert.Empty(t, Tips(Filter{TagGlob: "[unbalanced"}))
	})
}

func TestTipByID(t *testing.T) {
	tip, ok := TipByID("pane-zoom")
	require.True(t, ok)
	assert.Equal(t, "Zoom Pane Toggle", tip.Name)

	_, ok = TipByID("no-such-tip")
	assert.False(t, ok)
}

func TestRelatedTips(t *testing.T) {
	tip, ok := TipByID("resize-hjkl")
	require.True(t, ok)

	related := RelatedTips(tip)
	require.Len(t, related, 1)
	assert.Equal(t, "nav-pane-hjkl", related[0].ID)
}

func TestCategories(t *testing.T) {
	categories := Categories()
	assert.Contains(t, categories, "navigation")
	assert.Contains(t, categories, "productivity")
	assert.IsIncreasing(t, categories)
}

func TestSaveLoadTips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tips.json")
	require.NoError(t, SaveTips(path))

	tips, err := LoadTips(path)
	require.NoError(t, err)
	assert.Len(t, tips, len(curatedTips))
	assert.Equal(t, curatedTips[0].ID, tips[0].ID)
}
