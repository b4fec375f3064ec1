package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmuxtutor/pkg/types"
)

func TestTrackerSummary(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	tracker := NewTracker(store)

	require.NoError(t, tracker.LogChallengeComplete(ctx, "c1", 8, 1))
	require.NoError(t, tracker.LogKeybindLearned(ctx, "M-h", "select-pane -L", "go left"))
	for i := 0; i < 3; i++ {
		require.NoError(t, tracker.LogPractice(ctx, "M-h", true))
	}
	require.NoError(t, tracker.LogPractice(ctx, "M-j", true))

	summary, err := tracker.Summary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.ChallengesCompleted)
	assert.Equal(t, 1, summary.KeybindsLearned)
	assert.Equal(t, 4, summary.TotalPractice)
	assert.Equal(t, 1, summary.CurrentStreak) // practiced today

	require.NotEmpty(t, summary.MostPracticed)
	assert.Equal(t, "M-h", summary.MostPracticed[0].Keybind)
}

func TestStreak(t *testing.T) {
	t.Run("no activity", func(t *testing.T) {
		store := openTestStore(t)
		tracker := NewTracker(store)

		streak, err := tracker.Streak(context.Background())
		require.NoError(t, err)
		assert.Zero(t, streak)
	})

	t.Run("stale activity resets", func(t *testing.T) {
		store := openTestStore(t)
		ctx := context.Background()
		require.NoError(t, store.LogPractice(ctx, "M-h", true))

		tracker := NewTracker(store)
		// Pretend it is a week from now
		tracker.now = func() time.Time { return time.Now().AddDate(0, 0, 7) }

		streak, err := tracker.Streak(ctx)
		require.NoError(t, err)
		assert.Zero(t, streak)
	})
}

func TestRecommendations(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	tracker := NewTracker(store)

	// Shaky keybind: 3 attempts, 1 success
	require.NoError(t, store.LogPractice(ctx, "M-x", true))
	require.NoError(t, store.LogPractice(ctx, "M-x", false))
	require.NoError(t, store.LogPractice(ctx, "M-x", false))

	// Solid keybind: all successes
	for i := 0; i < 4; i++ {
		require.NoError(t, store.LogPractice(ctx, "M-h", true))
	}

	require.NoError(t, store.MarkChallengeCompleted(ctx, "done", 5, 1))

	challenges := []types.Challenge{
		{ID: "done", Name: "Done already"},
		{ID: "todo", Name: "Still open", Difficulty: "beginner"},
	}

	recs, err := tracker.Recommendations(ctx, challenges)
	require.NoError(t, err)

	var practiceKeys, challengeIDs []string
	for _, r := range recs {
		switch r.Type {
		case "practice":
			practiceKeys = append(practiceKeys, r.Keybind)
		case "challenge":
			challengeIDs = append(challengeIDs, r.ChallengeID)
		}
	}

	assert.Contains(t, practiceKeys, "M-x")
	assert.NotContains(t, practiceKeys, "M-h")
	assert.Contains(t, challengeIDs, "todo")
	assert.NotContains(t, challengeIDs, "done")
}
