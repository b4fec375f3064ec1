package challenges

import (
	"context"
	"fmt"
	"strings"

	"tmuxtutor/internal/ai"
	"tmuxtutor/pkg/types"
)

// Generator produces challenges for arbitrary keybinds. With an AI client it
// asks the model; without one it falls back to command-family templates.
type Generator struct {
	client *ai.Client
}

// NewGenerator creates a generator. A nil client means template-only.
func NewGenerator(client *ai.Client) *Generator {
	return &Generator{client: client}
}

// ForKeybind generates a challenge teaching the given keybind.
func (g *Generator) ForKeybind(ctx context.Context, keybind, command, difficulty string) (types.GeneratedChallenge, error) {
	if difficulty == "" {
		difficulty = "beginner"
	}
	if g.client != nil {
		return g.client.GenerateChallenge(ctx, keybind, command, difficulty)
	}
	return g.fromTemplate(keybind, command), nil
}

func (g *Generator) fromTemplate(keybind, command string) types.GeneratedChallenge {
	switch {
	case strings.Contains(command, "select-pane"):
		return paneNavigationChallenge(keybind, command)
	case strings.Contains(command, "resize-pane"):
		return paneResizeChallenge(keybind, command)
	case strings.Contains(command, "split-window"):
		return splitChallenge(keybind, command)
	case strings.Contains(command, "select-window"):
		return windowNavigationChallenge(keybind)
	case strings.Contains(strings.ToLower(command), "copy"):
		return copyModeChallenge(keybind)
	default:
		return genericChallenge(keybind, command)
	}
}

func commandDirection(command, fallback string) string {
	switch {
	case strings.Contains(command, "-L"):
		return "left"
	case strings.Contains(command, "-D"):
		return "down"
	case strings.Contains(command, "-U"):
		return "up"
	case strings.Contains(command, "-R"):
		return "right"
	}
	return fallback
}

var navigationTargets = map[string]int{"left": 2, "right": 1, "up": 2, "down": 3}

func paneNavigationChallenge(keybind, command string) types.GeneratedChallenge {
	direction := commandDirection(command, "another pane")
	target, ok := navigationTargets[direction]
	if !ok {
		target = 1
	}

	return types.GeneratedChallenge{
		Objective: fmt.Sprintf("Navigate to the pane on the %s", direction),
		Setup: types.ChallengeSetup{
			Panes:      4,
			Layout:     "tiled",
			StartPane:  0,
			TargetPane: target,
		},
		ExpectedKeys:    []string{keybind},
		SuccessCriteria: fmt.Sprintf("Active pane is now on the %s", direction),
		Hint:            fmt.Sprintf("Press %s to move %s", keybind, direction),
	}
}

func paneResizeChallenge(keybind, command string) types.GeneratedChallenge {
	direction := commandDirection(command, "unknown")
	layout := "even-vertical"
	if direction == "left" || direction == "right" {
		layout = "even-horizontal"
	}

	return types.GeneratedChallenge{
		Objective: fmt.Sprintf("Resize the current pane %sward", direction),
		Setup: types.ChallengeSetup{
			Panes:     2,
			Layout:    layout,
			StartPane: 0,
		},
		ExpectedKeys:    []string{keybind},
		SuccessCriteria: fmt.Sprintf("Pane boundary moved %s", direction),
		Hint:            fmt.Sprintf("Press %s to resize %s. You may need to press multiple times.", keybind, direction),
	}
}

func splitChallenge(keybind, command string) types.GeneratedChallenge {
	direction := "vertically (top/bottom)"
	if strings.Contains(command, "-h") {
		direction = "horizontally (side by side)"
	}

	return types.GeneratedChallenge{
		Objective: fmt.Sprintf("Split the current pane %s", direction),
		Setup: types.ChallengeSetup{
			Panes:  1,
			Layout: "single",
		},
		ExpectedKeys:    []string{keybind},
		SuccessCriteria: fmt.Sprintf("Window now has 2 panes arranged %s", direction),
		Hint:            fmt.Sprintf("Press %s to create a new pane", keybind),
	}
}

func windowNavigationChallenge(keybind string) types.GeneratedChallenge {
	return types.GeneratedChallenge{
		Objective: "Switch to a different window",
		Setup: types.ChallengeSetup{
			Windows:     3,
			StartWindow: 1,
		},
		ExpectedKeys:    []string{keybind},
		SuccessCriteria: "Active window changed",
		Hint:            fmt.Sprintf("Press %s to switch windows", keybind),
	}
}

func copyModeChallenge(keybind string) types.GeneratedChallenge {
	return types.GeneratedChallenge{
		Objective: "Enter copy mode and select some text",
		Setup: types.ChallengeSetup{
			Panes:   1,
			Content: "Sample text to copy:\nLine 1\nLine 2\nLine 3",
		},
		ExpectedKeys:    []string{"prefix + [", keybind},
		SuccessCriteria: "Text was copied to tmux buffer",
		Hint:            "First enter copy mode with prefix + [, then use the keybind",
	}
}

func genericChallenge(keybind, command string) types.GeneratedChallenge {
	return types.GeneratedChallenge{
		Objective:       fmt.Sprintf("Execute the command: %s", command),
		Setup:           types.ChallengeSetup{Panes: 1},
		ExpectedKeys:    []string{keybind},
		SuccessCriteria: "Command executed successfully",
		Hint:            fmt.Sprintf("Press %s", keybind),
	}
}
