package challenges

import (
	"context"
	"fmt"
	"time"

	errs "tmuxtutor/internal/errors"
	"tmuxtutor/internal/log"
	"tmuxtutor/internal/sandbox"
	"tmuxtutor/pkg/types"
)

// Result records the outcome of a challenge attempt.
type Result struct {
	Challenge types.Challenge
	Success   bool
	Message   string
	TimeTaken time.Duration
	Attempts  int
	Timestamp time.Time
}

// Filter narrows the challenge list. Zero values match everything.
type Filter struct {
	Difficulty string
	Type       types.ChallengeType
}

// Engine runs interactive challenges inside the sandbox.
type Engine struct {
	manager *sandbox.Manager
	bridge  *sandbox.Bridge

	current      *types.Challenge
	initialState sandbox.State
	notify       func(string)
}

// NewEngine creates an engine over a sandbox manager. A nil manager gets
// the default docker-backed one.
func NewEngine(manager *sandbox.Manager) *Engine {
	if manager == nil {
		manager = sandbox.NewManager("", "", "")
	}
	return &Engine{manager: manager}
}

// Challenges returns the builtin challenges matching the filter.
func (e *Engine) Challenges(f Filter) []types.Challenge {
	var out []types.Challenge
	for _, c := range builtin {
		if f.Difficulty != "" && c.Difficulty != f.Difficulty {
			continue
		}
		if f.Type != "" && c.Type != f.Type {
			continue
		}
		out = append(out, c)
	}
	return out
}

// ByID returns the builtin challenge with the given id, or false.
func (e *Engine) ByID(id string) (types.Challenge, bool) {
	for _, c := range builtin {
		if c.ID == id {
			return c, true
		}
	}
	return types.Challenge{}, false
}

// ForKeybind returns a challenge that teaches the given keybind, or false.
func (e *Engine) ForKeybind(keybind string) (types.Challenge, bool) {
	for _, c := range builtin {
		if c.Keybind == keybind {
			return c, true
		}
	}
	return types.Challenge{}, false
}

// OnProgress registers a callback for human-readable progress messages.
func (e *Engine) OnProgress(fn func(string)) {
	e.notify = fn
}

// StartChallenge prepares the sandbox for a challenge and captures the
// initial session state.
func (e *Engine) StartChallenge(ctx context.Context, challenge types.Challenge) error {
	e.current = &challenge

	if !e.manager.Running(ctx) {
		e.progress("Starting sandbox container...")
		if _, err := e.manager.Start(ctx, "", ""); err != nil {
			return err
		}
	}

	e.bridge = sandbox.NewBridge(e.manager)

	e.progress(fmt.Sprintf("Setting up: %s", challenge.Name))
	if err := e.bridge.SetupChallenge(ctx, challenge.Setup); err != nil {
		return err
	}

	state, err := e.bridge.CurrentState(ctx)
	if err != nil {
		return err
	}
	e.initialState = state

	e.progress(fmt.Sprintf("Objective: %s", challenge.Objective))
	if challenge.Hint != "" {
		e.progress(fmt.Sprintf("Hint: %s", challenge.Hint))
	}
	e.progress(fmt.Sprintf("Connect to sandbox: %s", e.manager.AttachCommand()))
	return nil
}

// CheckCompletion verifies the current challenge. Returns a result only on
// success; an unfinished challenge yields (nil, nil).
func (e *Engine) CheckCompletion(ctx context.Context) (*Result, error) {
	if e.current == nil || e.bridge == nil {
		return nil, errs.NewSandboxError("no challenge in progress", errs.SandboxUnavailable, nil)
	}

	ok, message, err := e.bridge.VerifyChallenge(ctx, e.current.Expectation, e.initialState)
	if err != nil {
		return nil, err
	}
	if !ok {
		log.Debugf("challenge %s not yet complete: %s", e.current.ID, message)
		return nil, nil
	}

	return &Result{
		Challenge: *e.current,
		Success:   true,
		Message:   message,
		Attempts:  1,
		Timestamp: time.Now(),
	}, nil
}

// RunLoop starts a challenge and polls for completion until it succeeds,
// times out, or the context is cancelled.
func (e *Engine) RunLoop(ctx context.Context, challenge types.Challenge, timeout, interval time.Duration) (Result, error) {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	if interval <= 0 {
		interval = time.Second
	}

	if err := e.StartChallenge(ctx, challenge); err != nil {
		return Result{}, err
	}
	defer e.EndChallenge()

	start := time.Now()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	attempts := 0
	for {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case <-ticker.C:
		}

		elapsed := time.Since(start)
		if elapsed > timeout {
			return Result{
				Challenge: challenge,
				Success:   false,
				Message:   "Time's up! Try again.",
				TimeTaken: elapsed,
				Attempts:  attempts,
				Timestamp: time.Now(),
			}, nil
		}

		result, err := e.CheckCompletion(ctx)
		if err != nil {
			return Result{}, err
		}
		if result != nil {
			result.TimeTaken = elapsed
			result.Attempts = attempts
			return *result, nil
		}
		attempts++
	}
}

// EndChallenge clears the in-progress challenge state.
func (e *Engine) EndChallenge() {
	e.current = nil
	e.bridge = nil
	e.initialState = sandbox.State{}
}

func (e *Engine) progress(msg string) {
	if e.notify != nil {
		e.notify(msg)
	}
}
