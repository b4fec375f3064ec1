package challenges

import "tmuxtutor/pkg/types"

func intp(n int) *int { return &n }

// builtin is the set of pre-built challenges shipped with the tutor.
var builtin = []types.Challenge{
	{
		ID:          "nav-pane-left",
		Name:        "Navigate Left",
		Description: "Practice moving to the pane on the left",
		Type:        types.ChallengeNavigation,
		Keybind:     "M-h",
		Command:     "select-pane -L",
		Objective:   "Move to the pane on the left",
		Setup:       types.ChallengeSetup{Panes: 4, Layout: "tiled", StartPane: 1},
		Expectation: types.ChallengeExpectation{TargetPane: intp(0)},
		Hint:        "Press Alt+h to move left",
		Difficulty:  "beginner",
	},
	{
		ID:          "nav-pane-right",
		Name:        "Navigate Right",
		Description: "Practice moving to the pane on the right",
		Type:        types.ChallengeNavigation,
		Keybind:     "M-l",
		Command:     "select-pane -R",
		Objective:   "Move to the pane on the right",
		Setup:       types.ChallengeSetup{Panes: 4, Layout: "tiled", StartPane: 0},
		Expectation: types.ChallengeExpectation{TargetPane: intp(1)},
		Hint:        "Press Alt+l to move right",
		Difficulty:  "beginner",
	},
	{
		ID:          "split-horizontal",
		Name:        "Split Horizontally",
		Description: "Create a side-by-side split",
		Type:        types.ChallengeSplit,
		Keybind:     "prefix + |",
		Command:     "split-window -h",
		Objective:   "Split the current pane horizontally (side by side)",
		Setup:       types.ChallengeSetup{Panes: 1},
		Expectation: types.ChallengeExpectation{MinPanes: intp(2)},
		Hint:        "Press your prefix key, then |",
		Difficulty:  "beginner",
	},
	{
		ID:          "split-vertical",
		Name:        "Split Vertically",
		Description: "Create a top-bottom split",
		Type:        types.ChallengeSplit,
		Keybind:     "prefix + -",
		Command:     "split-window -v",
		Objective:   "Split the current pane vertically (top and bottom)",
		Setup:       types.ChallengeSetup{Panes: 1},
		Expectation: types.ChallengeExpectation{MinPanes: intp(2)},
		Hint:        "Press your prefix key, then -",
		Difficulty:  "beginner",
	},
	{
		ID:          "resize-pane",
		Name:        "Resize Pane",
		Description: "Make one pane larger",
		Type:        types.ChallengeResize,
		Keybind:     "M-H",
		Command:     "resize-pane -L 5",
		Objective:   "Resize the current pane to the left",
		Setup:       types.ChallengeSetup{Panes: 2, Layout: "even-horizontal"},
		Expectation: types.ChallengeExpectation{CheckResize: true},
		Hint:        "Press Alt+Shift+h to resize left",
		Difficulty:  "intermediate",
	},
	{
		ID:          "window-switch",
		Name:        "Switch Window",
		Description: "Jump to another window",
		Type:        types.ChallengeWindow,
		Keybind:     "M-2",
		Command:     "select-window -t 2",
		Objective:   "Switch to window 2",
		Setup:       types.ChallengeSetup{Windows: 3, StartWindow: 1},
		Expectation: types.ChallengeExpectation{TargetWindow: intp(2)},
		Hint:        "Press Alt+2 to jump to window 2",
		Difficulty:  "beginner",
	},
}

// Builtin returns a copy of the pre-built challenge list.
func Builtin() []types.Challenge {
	out := make([]types.Challenge, len(builtin))
	copy(out, builtin)
	return out
}
