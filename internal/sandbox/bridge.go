package sandbox

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	errs "tmuxtutor/internal/errors"
	"tmuxtutor/pkg/types"
)

// State is a snapshot of the tmux session inside the sandbox.
type State struct {
	ActivePane   int
	ActiveWindow int
	PaneCount    int
	WindowCount  int
	Layout       string
}

// Bridge drives tmux inside the sandbox to set up challenge environments
// and verify their outcomes.
type Bridge struct {
	manager *Manager
}

// NewBridge creates a bridge over a sandbox manager.
func NewBridge(manager *Manager) *Bridge {
	return &Bridge{manager: manager}
}

// SetupChallenge rebuilds the sandbox tmux session to match a challenge's
// starting state.
func (b *Bridge) SetupChallenge(ctx context.Context, setup types.ChallengeSetup) error {
	if !b.manager.Running(ctx) {
		return errs.NewSandboxError("container not running", errs.SandboxUnavailable, nil)
	}

	session := b.manager.Session()

	// Collapse back to a single pane before building the layout
	if _, err := b.manager.Exec(ctx, "tmux", "kill-pane", "-a", "-t", session+":0"); err != nil {
		return err
	}

	panes := setup.Panes
	if panes < 1 {
		panes = 1
	}
	for i := 0; i < panes-1; i++ {
		if _, err := b.manager.Exec(ctx, "tmux", "split-window", "-t", session); err != nil {
			return err
		}
	}

	switch setup.Layout {
	case "tiled", "even-horizontal", "even-vertical", "main-horizontal", "main-vertical":
		if _, err := b.manager.Exec(ctx, "tmux", "select-layout", "-t", session, setup.Layout); err != nil {
			return err
		}
	}

	for i := 0; i < setup.Windows-1; i++ {
		if _, err := b.manager.Exec(ctx, "tmux", "new-window", "-t", session); err != nil {
			return err
		}
	}

	if setup.Content != "" {
		if err := b.manager.SendKeys(ctx, 0, fmt.Sprintf("echo %q", setup.Content), "Enter"); err != nil {
			return err
		}
	}

	if _, err := b.manager.Exec(ctx, "tmux", "select-window", "-t", fmt.Sprintf("%s:%d", session, setup.StartWindow)); err != nil {
		return err
	}
	if _, err := b.manager.Exec(ctx, "tmux", "select-pane", "-t", fmt.Sprintf("%s:%d", session, setup.StartPane)); err != nil {
		return err
	}
	return nil
}

// CurrentState captures the live tmux session state.
func (b *Bridge) CurrentState(ctx context.Context) (State, error) {
	session := b.manager.Session()
	state := State{PaneCount: 1, WindowCount: 1}

	activePane, err := b.manager.Exec(ctx, "tmux", "display-message", "-p", "#{pane_index}")
	if err != nil {
		return state, err
	}
	state.ActivePane = parseIntDefault(activePane, 0)

	activeWindow, err := b.manager.Exec(ctx, "tmux", "display-message", "-p", "#{window_index}")
	if err != nil {
		return state, err
	}
	state.ActiveWindow = parseIntDefault(activeWindow, 0)

	panes, err := b.manager.Exec(ctx, "tmux", "list-panes", "-t", session)
	if err != nil {
		return state, err
	}
	state.PaneCount = countLines(panes)

	windows, err := b.manager.Exec(ctx, "tmux", "list-windows", "-t", session)
	if err != nil {
		return state, err
	}
	state.WindowCount = countLines(windows)

	layout, err := b.manager.Exec(ctx, "tmux", "display-message", "-p", "#{window_layout}")
	if err != nil {
		return state, err
	}
	state.Layout = strings.TrimSpace(layout)

	return state, nil
}

// VerifyChallenge checks the live state against a challenge's expectation.
// The first configured criterion decides the outcome.
func (b *Bridge) VerifyChallenge(ctx context.Context, expected types.ChallengeExpectation, initial State) (bool, string, error) {
	current, err := b.CurrentState(ctx)
	if err != nil {
		return false, "", err
	}

	if expected.TargetPane != nil {
		if current.ActivePane == *expected.TargetPane {
			return true, "Correct! You navigated to the right pane.", nil
		}
		return false, fmt.Sprintf("Not quite - you're in pane %d, expected %d", current.ActivePane, *expected.TargetPane), nil
	}

	if expected.TargetWindow != nil {
		if current.ActiveWindow == *expected.TargetWindow {
			return true, "Correct! You switched to the right window.", nil
		}
		return false, fmt.Sprintf("Not quite - you're in window %d", current.ActiveWindow), nil
	}

	if expected.MinPanes != nil {
		if current.PaneCount >= *expected.MinPanes {
			return true, "Correct! You created a new pane.", nil
		}
		return false, fmt.Sprintf("You need at least %d panes, currently have %d", *expected.MinPanes, current.PaneCount), nil
	}

	if expected.MinWindows != nil {
		if current.WindowCount >= *expected.MinWindows {
			return true, "Correct! You created a new window.", nil
		}
		return false, fmt.Sprintf("You need at least %d windows, currently have %d", *expected.MinWindows, current.WindowCount), nil
	}

	if expected.CheckResize {
		if current.Layout != initial.Layout {
			return true, "Correct! You resized the pane.", nil
		}
		return false, "The pane layout hasn't changed yet.", nil
	}

	// No specific criteria configured
	return true, "Challenge completed!", nil
}

func parseIntDefault(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

func countLines(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	return len(strings.Split(s, "\n"))
}
