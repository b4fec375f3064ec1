package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "progress.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPreferences(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	t.Run("unset returns default", func(t *testing.T) {
		value, err := store.Preference(ctx, "theme", "dark")
		require.NoError(t, err)
		assert.Equal(t, "dark", value)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, store.SetPreference(ctx, "theme", "light"))

		value, err := store.Preference(ctx, "theme", "dark")
		require.NoError(t, err)
		assert.Equal(t, "light", value)
	})

	t.Run("set overwrites", func(t *testing.T) {
		require.NoError(t, store.SetPreference(ctx, "theme", "solarized"))

		value, err := store.Preference(ctx, "theme", "")
		require.NoError(t, err)
		assert.Equal(t, "solarized", value)
	})
}

func TestChallenges(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	done, err := store.IsChallengeCompleted(ctx, "nav-left")
	require.NoError(t, err)
	assert.False(t, done)

	require.NoError(t, store.MarkChallengeCompleted(ctx, "nav-left", 12.5, 2))

	done, err = store.IsChallengeCompleted(ctx, "nav-left")
	require.NoError(t, err)
	assert.True(t, done)

	t.Run("repeat completion keeps best time", func(t *testing.T) {
		require.NoError(t, store.MarkChallengeCompleted(ctx, "nav-left", 20.0, 1))

		completed, err := store.CompletedChallenges(ctx)
		require.NoError(t, err)
		require.Len(t, completed, 1)
		assert.Equal(t, 12.5, completed[0].TimeTaken)
		assert.Equal(t, 1, completed[0].Attempts)
	})
}

func TestLearnedKeybinds(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddLearnedKeybind(ctx, "M-h", "select-pane -L", "go left"))
	require.NoError(t, store.AddLearnedKeybind(ctx, "M-l", "select-pane -R", ""))

	keybinds, err := store.LearnedKeybinds(ctx, false)
	require.NoError(t, err)
	assert.Len(t, keybinds, 2)

	t.Run("integrated filter", func(t *testing.T) {
		require.NoError(t, store.MarkKeybindIntegrated(ctx, "M-h"))

		integrated, err := store.LearnedKeybinds(ctx, true)
		require.NoError(t, err)
		require.Len(t, integrated, 1)
		assert.Equal(t, "M-h", integrated[0].Keybind)
		assert.True(t, integrated[0].Integrated)
	})

	t.Run("re-adding updates command", func(t *testing.T) {
		require.NoError(t, store.AddLearnedKeybind(ctx, "M-h", "select-pane -L", "move left"))

		keybinds, err := store.LearnedKeybinds(ctx, false)
		require.NoError(t, err)
		assert.Len(t, keybinds, 2)
	})
}

func TestPractice(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.LogPractice(ctx, "M-h", true))
	require.NoError(t, store.LogPractice(ctx, "M-h", true))
	require.NoError(t, store.LogPractice(ctx, "M-h", false))
	require.NoError(t, store.LogPractice(ctx, "M-j", true))

	t.Run("stats for one keybind", func(t *testing.T) {
		stats, err := store.PracticeStatsFor(ctx, "M-h")
		require.NoError(t, err)
		assert.Equal(t, 3, stats.TotalAttempts)
		assert.Equal(t, 2, stats.Successful)
		assert.InDelta(t, 0.667, stats.SuccessRate(), 0.01)
	})

	t.Run("stats for unpracticed keybind", func(t *testing.T) {
		stats, err := store.PracticeStatsFor(ctx, "M-z")
		require.NoError(t, err)
		assert.Equal(t, 0, stats.TotalAttempts)
		assert.Zero(t, stats.SuccessRate())
	})

	t.Run("all stats grouped", func(t *testing.T) {
		all, err := store.AllPracticeStats(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("practice dates recorded", func(t *testing.T) {
		dates, err := store.PracticeDates(ctx, 30)
		require.NoError(t, err)
		assert.Len(t, dates, 1) // all logged today
	})
}

func TestOverallProgress(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.MarkChallengeCompleted(ctx, "c1", 5, 1))
	require.NoError(t, store.AddLearnedKeybind(ctx, "M-h", "select-pane -L", ""))
	require.NoError(t, store.AddLearnedKeybind(ctx, "M-l", "select-pane -R", ""))
	require.NoError(t, store.MarkKeybindIntegrated(ctx, "M-h"))
	require.NoError(t, store.LogPractice(ctx, "M-h", true))

	progress, err := store.OverallProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, progress.CompletedChallenges)
	assert.Equal(t, 2, progress.LearnedKeybinds)
	assert.Equal(t, 1, progress.IntegratedKeybinds)
	assert.Equal(t, 1, progress.TotalPracticeSessions)
}
