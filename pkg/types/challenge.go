package types

import "strings"

// ChallengeType groups challenges by the skill they exercise.
type ChallengeType string

const (
	ChallengeNavigation ChallengeType = "navigation"
	ChallengeResize     ChallengeType = "resize"
	ChallengeSplit      ChallengeType = "split"
	ChallengeCopy       ChallengeType = "copy"
	ChallengeSession    ChallengeType = "session"
	ChallengeWindow     ChallengeType = "window"
	ChallengeCustom     ChallengeType = "custom"
)

// ChallengeSetup describes the sandbox state to build before a challenge.
type ChallengeSetup struct {
	Panes       int    `json:"panes"`                 // number of panes to create
	Windows     int    `json:"windows"`               // number of windows to create
	Layout      string `json:"layout"`                // tmux layout name
	StartPane   int    `json:"start_pane"`            // pane selected at challenge start
	StartWindow int    `json:"start_window"`          // window selected at challenge start
	Content     string `json:"content,omitempty"`     // text echoed into the first pane
	TargetPane  int    `json:"target_pane,omitempty"` // used by generated challenges
}

// ChallengeExpectation describes the sandbox state that counts as success.
// Optional criteria are pointers; nil means the criterion is not checked.
type ChallengeExpectation struct {
	TargetPane   *int `json:"target_pane,omitempty"`
	TargetWindow *int `json:"target_window,omitempty"`
	MinPanes     *int `json:"min_panes,omitempty"`
	MinWindows   *int `json:"min_windows,omitempty"`
	CheckResize  bool `json:"check_resize,omitempty"`
	CheckCopy    bool `json:"check_copy,omitempty"`
}

// Challenge is one interactive learning exercise.
type Challenge struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Type        ChallengeType        `json:"type"`
	Keybind     string               `json:"keybind"` // keybind being practiced
	Command     string               `json:"command"` // tmux command it runs
	Objective   string               `json:"objective"`
	Setup       ChallengeSetup       `json:"setup"`
	Expectation ChallengeExpectation `json:"expectation"`
	Hint        string               `json:"hint,omitempty"`
	Difficulty  string               `json:"difficulty"`
	TimeLimit   int                  `json:"time_limit,omitempty"` // seconds, 0 = none
}

// GeneratedChallenge is the validation boundary for challenges produced by
// the LLM. Fields mirror the JSON the model is asked for; anything that does
// not validate ends up in Raw instead of being trusted as structured data.
type GeneratedChallenge struct {
	Objective       string         `json:"objective"`
	Setup           ChallengeSetup `json:"setup"`
	ExpectedKeys    []string       `json:"expected_keys"`
	SuccessCriteria string         `json:"success_criteria"`
	Hint            string         `json:"hint"`
	Raw             string         `json:"-"` // unparsed model output when JSON failed
}

// IsRaw reports whether the generated challenge fell back to raw output.
func (g GeneratedChallenge) IsRaw() bool { return g.Raw != "" }

// ToChallenge converts a generated challenge into a runnable Challenge,
// deriving expectations from the success criteria text the same way the
// criteria are phrased when generated.
func (g GeneratedChallenge) ToChallenge(keybind, command, difficulty string) Challenge {
	exp := ChallengeExpectation{}
	criteria := strings.ToLower(g.SuccessCriteria)

	if strings.Contains(criteria, "pane") && g.Setup.TargetPane != 0 {
		target := g.Setup.TargetPane
		exp.TargetPane = &target
	}
	if strings.Contains(criteria, "window") {
		target := g.Setup.StartWindow
		exp.TargetWindow = &target
	}
	if strings.Contains(criteria, "split") || strings.Contains(criteria, "panes") {
		min := g.Setup.Panes + 1
		if g.Setup.Panes == 0 {
			min = 2
		}
		exp.MinPanes = &min
	}
	if strings.Contains(criteria, "resize") {
		exp.CheckResize = true
	}

	return Challenge{
		ID:          "generated",
		Name:        g.Objective,
		Type:        ChallengeCustom,
		Keybind:     keybind,
		Command:     command,
		Objective:   g.Objective,
		Setup:       g.Setup,
		Expectation: exp,
		Hint:        g.Hint,
		Difficulty:  difficulty,
	}
}
