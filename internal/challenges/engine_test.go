package challenges

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmuxtutor/pkg/types"
)

func TestChallenges(t *testing.T) {
	engine := NewEngine(nil)

	t.Run("no filter returns all builtins", func(t *testing.T) {
		assert.Len(t, engine.Challenges(Filter{}), 6)
	})

	t.Run("difficulty filter", func(t *testing.T) {
		got := engine.Challenges(Filter{Difficulty: "intermediate"})
		require.Len(t, got, 1)
		assert.Equal(t, "resize-pane", got[0].ID)
	})

	t.Run("type filter", func(t *testing.T) {
		got := engine.Challenges(Filter{Type: types.ChallengeSplit})
		require.Len(t, got, 2)
		assert.Equal(t, "split-horizontal", got[0].ID)
		assert.Equal(t, "split-vertical", got[1].ID)
	})

	t.Run("combined filter", func(t *testing.T) {
		got := engine.Challenges(Filter{Difficulty: "beginner", Type: types.ChallengeResize})
		assert.Empty(t, got)
	})
}

func TestByID(t *testing.T) {
	engine := NewEngine(nil)

	c, ok := engine.ByID("window-switch")
	require.True(t, ok)
	assert.Equal(t, "Switch Window", c.Name)
	require.NotNil(t, c.Expectation.TargetWindow)
	assert.Equal(t, 2, *c.Expectation.TargetWindow)

	_, ok = engine.ByID("no-such-challenge")
	assert.False(t, ok)
}

func TestForKeybind(t *testing.T) {
	engine := NewEngine(nil)

	c, ok := engine.ForKeybind("M-h")
	require.True(t, ok)
	assert.Equal(t, "nav-pane-left", c.ID)

	_, ok = engine.ForKeybind("C-b q")
	assert.False(t, ok)
}

func TestBuiltinIsCopied(t *testing.T) {
	a := Builtin()
	a[0].ID = "mutated"
	b := Builtin()
	assert.Equal(t, "nav-pane-left", b[0].ID)
}
