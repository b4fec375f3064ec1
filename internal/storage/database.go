// Package storage persists learning progress in a local SQLite database.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver" // SQLite driver
	_ "github.com/ncruces/go-sqlite3/embed"  // Embed SQLite

	errs "tmuxtutor/internal/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS user_preferences (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS completed_challenges (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	challenge_id TEXT NOT NULL,
	completed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	time_taken REAL,
	attempts INTEGER DEFAULT 1,
	UNIQUE(challenge_id)
);

CREATE TABLE IF NOT EXISTS learned_keybinds (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	keybind TEXT NOT NULL,
	command TEXT NOT NULL,
	description TEXT,
	added_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	integrated BOOLEAN DEFAULT FALSE,
	UNIQUE(keybind)
);

CREATE TABLE IF NOT EXISTS practice_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	keybind TEXT NOT NULL,
	practiced_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	success BOOLEAN DEFAULT TRUE
);

CREATE INDEX IF NOT EXISTS idx_practice_keybind ON practice_history(keybind);
CREATE INDEX IF NOT EXISTS idx_practice_date ON practice_history(practiced_at);
`

// CompletedChallenge is one row of challenge completion history.
type CompletedChallenge struct {
	ChallengeID string
	CompletedAt time.Time
	TimeTaken   float64
	Attempts    int
}

// LearnedKeybind is one keybind the user has learned.
type LearnedKeybind struct {
	Keybind     string
	Command     string
	Description string
	AddedAt     time.Time
	Integrated  bool
}

// PracticeStats aggregates practice attempts for one keybind.
type PracticeStats struct {
	Keybind       string
	TotalAttempts int
	Successful    int
}

// SuccessRate is Successful/TotalAttempts, 0 when no attempts.
func (s PracticeStats) SuccessRate() float64 {
	if s.TotalAttempts == 0 {
		return 0
	}
	return float64(s.Successful) / float64(s.TotalAttempts)
}

// Progress is the overall learning progress snapshot.
type Progress struct {
	CompletedChallenges   int
	LearnedKeybinds       int
	IntegratedKeybinds    int
	TotalPracticeSessions int
}

// Store wraps the SQLite database. Safe for use by a single local user
// session; no cross-process locking beyond SQLite's own.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if necessary) the progress database at path.
// An empty path defaults to ~/.local/share/tmuxtutor/progress.db.
func Open(path string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, ".local", "share", "tmuxtutor", "progress.db")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errs.NewDatabaseError("failed to create database directory", err).WithOperation("open")
	}

	// _timefmt=sqlite lets CURRENT_TIMESTAMP columns scan into time.Time
	db, err := sql.Open("sqlite3", "file:"+path+"?_timefmt=sqlite")
	if err != nil {
		return nil, errs.NewDatabaseError("failed to open database", err).WithOperation("open")
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errs.NewDatabaseError("failed to connect to database", err).WithOperation("open")
	}

	// WAL keeps reads from blocking the writer
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, errs.NewDatabaseError(fmt.Sprintf("failed to apply %q", pragma), err).WithOperation("open")
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errs.NewDatabaseError("failed to create tables", err).WithOperation("open")
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// SetPreference stores a user preference, overwriting any previous value.
func (s *Store) SetPreference(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_preferences (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return errs.NewDatabaseError("failed to set preference", err).WithOperation("set_preference")
	}
	return nil
}

// Preference returns a preference value, or the default when unset.
func (s *Store) Preference(ctx context.Context, key, defaultValue string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM user_preferences WHERE key = ?", key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return defaultValue, nil
	}
	if err != nil {
		return "", errs.NewDatabaseError("failed to get preference", err).WithOperation("get_preference")
	}
	return value, nil
}

// MarkChallengeCompleted records a completion, keeping the best time across
// repeat completions.
func (s *Store) MarkChallengeCompleted(ctx context.Context, challengeID string, timeTaken float64, attempts int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO completed_challenges (challenge_id, time_taken, attempts)
		VALUES (?, ?, ?)
		ON CONFLICT(challenge_id) DO UPDATE SET
			time_taken = MIN(time_taken, excluded.time_taken),
			attempts = excluded.attempts`,
		challengeID, timeTaken, attempts,
	)
	if err != nil {
		return errs.NewDatabaseError("failed to mark challenge completed", err).WithOperation("mark_challenge_completed")
	}
	return nil
}

// IsChallengeCompleted reports whether the challenge was ever completed.
func (s *Store) IsChallengeCompleted(ctx context.Context, challengeID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM completed_challenges WHERE challenge_id = ?", challengeID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, errs.NewDatabaseError("failed to check challenge", err).WithOperation("is_challenge_completed")
	}
	return true, nil
}

// CompletedChallenges returns all completions, most recent first.
func (s *Store) CompletedChallenges(ctx context.Context) ([]CompletedChallenge, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT challenge_id, completed_at, time_taken, attempts
		FROM completed_challenges
		ORDER BY completed_at DESC`)
	if err != nil {
		return nil, errs.NewDatabaseError("failed to list completed challenges", err).WithOperation("get_completed_challenges")
	}
	defer rows.Close()

	var out []CompletedChallenge
	for rows.Next() {
		var c CompletedChallenge
		var timeTaken sql.NullFloat64
		if err := rows.Scan(&c.ChallengeID, &c.CompletedAt, &timeTaken, &c.Attempts); err != nil {
			return nil, errs.NewDatabaseError("failed to scan challenge row", err).WithOperation("get_completed_challenges")
		}
		c.TimeTaken = timeTaken.Float64
		out = append(out, c)
	}
	return out, rows.Err()
}

// AddLearnedKeybind records a keybind as learned, updating command and
// description on repeat.
func (s *Store) AddLearnedKeybind(ctx context.Context, keybind, command, description string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO learned_keybinds (keybind, command, description)
		VALUES (?, ?, ?)
		ON CONFLICT(keybind) DO UPDATE SET
			command = excluded.command,
			description = excluded.description`,
		keybind, command, description,
	)
	if err != nil {
		return errs.NewDatabaseError("failed to add learned keybind", err).WithOperation("add_learned_keybind")
	}
	return nil
}

// MarkKeybindIntegrated flags a keybind as merged into the user's config.
func (s *Store) MarkKeybindIntegrated(ctx context.Context, keybind string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE learned_keybinds SET integrated = TRUE WHERE keybind = ?", keybind,
	)
	if err != nil {
		return errs.NewDatabaseError("failed to mark keybind integrated", err).WithOperation("mark_keybind_integrated")
	}
	return nil
}

// LearnedKeybinds returns learned keybinds, most recently added first.
func (s *Store) LearnedKeybinds(ctx context.Context, integratedOnly bool) ([]LearnedKeybind, error) {
	query := "SELECT keybind, command, description, added_at, integrated FROM learned_keybinds"
	if integratedOnly {
		query += " WHERE integrated = TRUE"
	}
	query += " ORDER BY added_at DESC"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errs.NewDatabaseError("failed to list learned keybinds", err).WithOperation("get_learned_keybinds")
	}
	defer rows.Close()

	var out []LearnedKeybind
	for rows.Next() {
		var kb LearnedKeybind
		var description sql.NullString
		if err := rows.Scan(&kb.Keybind, &kb.Command, &description, &kb.AddedAt, &kb.Integrated); err != nil {
			return nil, errs.NewDatabaseError("failed to scan keybind row", err).WithOperation("get_learned_keybinds")
		}
		kb.Description = description.String
		out = append(out, kb)
	}
	return out, rows.Err()
}

// LogPractice appends one practice attempt.
func (s *Store) LogPractice(ctx context.Context, keybind string, success bool) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO practice_history (keybind, success) VALUES (?, ?)", keybind, success,
	)
	if err != nil {
		return errs.NewDatabaseError("failed to log practice", err).WithOperation("log_practice")
	}
	return nil
}

// PracticeStatsFor returns aggregated stats for one keybind.
func (s *Store) PracticeStatsFor(ctx context.Context, keybind string) (PracticeStats, error) {
	stats := PracticeStats{Keybind: keybind}
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN success THEN 1 ELSE 0 END), 0)
		FROM practice_history WHERE keybind = ?`, keybind,
	).Scan(&stats.TotalAttempts, &stats.Successful)
	if err != nil {
		return stats, errs.NewDatabaseError("failed to get practice stats", err).WithOperation("get_practice_stats")
	}
	return stats, nil
}

// AllPracticeStats returns per-keybind aggregates for every practiced key.
func (s *Store) AllPracticeStats(ctx context.Context) ([]PracticeStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT keybind, COUNT(*), COALESCE(SUM(CASE WHEN success THEN 1 ELSE 0 END), 0)
		FROM practice_history
		GROUP BY keybind`)
	if err != nil {
		return nil, errs.NewDatabaseError("failed to get practice stats", err).WithOperation("get_practice_stats")
	}
	defer rows.Close()

	var out []PracticeStats
	for rows.Next() {
		var stats PracticeStats
		if err := rows.Scan(&stats.Keybind, &stats.TotalAttempts, &stats.Successful); err != nil {
			return nil, errs.NewDatabaseError("failed to scan stats row", err).WithOperation("get_practice_stats")
		}
		out = append(out, stats)
	}
	return out, rows.Err()
}

// PracticeDates returns distinct practice days, newest first, capped at
// limit. Dates are formatted YYYY-MM-DD in local time.
func (s *Store) PracticeDates(ctx context.Context, limit int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT DATE(practiced_at) AS practice_date
		FROM practice_history
		ORDER BY practice_date DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, errs.NewDatabaseError("failed to get practice dates", err).WithOperation("get_practice_dates")
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, errs.NewDatabaseError("failed to scan date row", err).WithOperation("get_practice_dates")
		}
		out = append(out, date)
	}
	return out, rows.Err()
}

// OverallProgress returns the headline progress counters.
func (s *Store) OverallProgress(ctx context.Context) (Progress, error) {
	var p Progress

	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM completed_challenges",
	).Scan(&p.CompletedChallenges); err != nil {
		return p, errs.NewDatabaseError("failed to count challenges", err).WithOperation("get_overall_progress")
	}

	if err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN integrated THEN 1 ELSE 0 END), 0)
		FROM learned_keybinds`,
	).Scan(&p.LearnedKeybinds, &p.IntegratedKeybinds); err != nil {
		return p, errs.NewDatabaseError("failed to count keybinds", err).WithOperation("get_overall_progress")
	}

	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM practice_history",
	).Scan(&p.TotalPracticeSessions); err != nil {
		return p, errs.NewDatabaseError("failed to count practice sessions", err).WithOperation("get_overall_progress")
	}

	return p, nil
}
