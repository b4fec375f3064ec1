package storage

import (
	"context"
	"fmt"
	"sort"
	"time"

	"tmuxtutor/pkg/types"
)

// Summary is the user-facing progress rollup.
type Summary struct {
	ChallengesCompleted int
	KeybindsLearned     int
	KeybindsIntegrated  int
	TotalPractice       int
	CurrentStreak       int
	RecentCompletions   []CompletedChallenge
	RecentKeybinds      []LearnedKeybind
	MostPracticed       []PracticeStats
}

// Recommendation is one suggested next step.
type Recommendation struct {
	Type        string // "practice" or "challenge"
	Keybind     string
	ChallengeID string
	Name        string
	Difficulty  string
	Reason      string
}

// Tracker analyzes stored progress.
type Tracker struct {
	store *Store
	now   func() time.Time
}

// NewTracker creates a tracker over the store.
func NewTracker(store *Store) *Tracker {
	return &Tracker{store: store, now: time.Now}
}

// Summary builds the progress rollup shown by the progress command.
func (t *Tracker) Summary(ctx context.Context) (*Summary, error) {
	progress, err := t.store.OverallProgress(ctx)
	if err != nil {
		return nil, err
	}
	completed, err := t.store.CompletedChallenges(ctx)
	if err != nil {
		return nil, err
	}
	keybinds, err := t.store.LearnedKeybinds(ctx, false)
	if err != nil {
		return nil, err
	}
	streak, err := t.Streak(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := t.store.AllPracticeStats(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalAttempts > stats[j].TotalAttempts
	})

	return &Summary{
		ChallengesCompleted: progress.CompletedChallenges,
		KeybindsLearned:     progress.LearnedKeybinds,
		KeybindsIntegrated:  progress.IntegratedKeybinds,
		TotalPractice:       progress.TotalPracticeSessions,
		CurrentStreak:       streak,
		RecentCompletions:   head(completed, 5),
		RecentKeybinds:      head(keybinds, 5),
		MostPracticed:       head(stats, 5),
	}, nil
}

// Streak counts consecutive days with practice activity ending today or
// yesterday. A gap of more than one day before the latest activity resets
// the streak to zero.
func (t *Tracker) Streak(ctx context.Context) (int, error) {
	dates, err := t.store.PracticeDates(ctx, 30)
	if err != nil {
		return 0, err
	}
	if len(dates) == 0 {
		return 0, nil
	}

	parsed := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		day, err := time.ParseInLocation("2006-01-02", d, time.UTC)
		if err != nil {
			continue
		}
		parsed = append(parsed, day)
	}
	if len(parsed) == 0 {
		return 0, nil
	}

	now := t.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if parsed[0].Before(today.AddDate(0, 0, -1)) {
		return 0, nil
	}

	streak := 1
	for i := 1; i < len(parsed); i++ {
		if parsed[i].Equal(parsed[i-1].AddDate(0, 0, -1)) {
			streak++
		} else {
			break
		}
	}
	return streak, nil
}

// Recommendations suggests what to work on next: shaky keybinds first, then
// unfinished challenges from the given pool, capped at 5 challenge entries.
func (t *Tracker) Recommendations(ctx context.Context, challenges []types.Challenge) ([]Recommendation, error) {
	var out []Recommendation

	stats, err := t.store.AllPracticeStats(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range stats {
		if s.SuccessRate() < 0.8 && s.TotalAttempts >= 3 {
			out = append(out, Recommendation{
				Type:    "practice",
				Keybind: s.Keybind,
				Reason:  fmt.Sprintf("Success rate is %.0f%% - more practice recommended", s.SuccessRate()*100),
			})
		}
	}

	completed, err := t.store.CompletedChallenges(ctx)
	if err != nil {
		return nil, err
	}
	done := make(map[string]bool, len(completed))
	for _, c := range completed {
		done[c.ChallengeID] = true
	}

	for _, ch := range challenges {
		if done[ch.ID] {
			continue
		}
		out = append(out, Recommendation{
			Type:        "challenge",
			ChallengeID: ch.ID,
			Name:        ch.Name,
			Difficulty:  ch.Difficulty,
			Reason:      "Challenge not yet completed",
		})
		if len(out) >= 5 {
			break
		}
	}

	return out, nil
}

// LogChallengeComplete records a finished challenge.
func (t *Tracker) LogChallengeComplete(ctx context.Context, challengeID string, timeTaken float64, attempts int) error {
	return t.store.MarkChallengeCompleted(ctx, challengeID, timeTaken, attempts)
}

// LogKeybindLearned records a newly learned keybind.
func (t *Tracker) LogKeybindLearned(ctx context.Context, keybind, command, description string) error {
	return t.store.AddLearnedKeybind(ctx, keybind, command, description)
}

// LogPractice records one practice attempt.
func (t *Tracker) LogPractice(ctx context.Context, keybind string, success bool) error {
	return t.store.LogPractice(ctx, keybind, success)
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
