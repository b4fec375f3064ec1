// Package practice drives a user through a sequence of keybinds, matching
// live keyboard events against the expected key for each step.
package practice

import (
	"tmuxtutor/internal/keys"
	"tmuxtutor/internal/log"
)

// Step is a single keybind to practice.
type Step struct {
	Keybind     string `json:"key"`
	Description string `json:"description"`
}

// Events are callbacks invoked as the sequence advances. Nil callbacks are
// skipped.
type Events struct {
	// Show is called when a step becomes current, with the display text
	// for its keybind and the 1-based position.
	Show func(display, description string, current, total int)
	// Correct is called when the expected key was pressed.
	Correct func()
	// Wrong is called when a non-matching key was pressed.
	Wrong func()
	// Escaped is called when the user aborts with escape.
	Escaped func()
	// Done is called once all steps are completed.
	Done func()
}

// Sequence walks through practice steps one key press at a time.
type Sequence struct {
	steps  []Step
	events Events

	index     int
	expected  keys.Match
	completed bool
	escaped   bool
}

// NewSequence creates a sequence over the given steps.
func NewSequence(steps []Step, events Events) *Sequence {
	return &Sequence{steps: steps, events: events}
}

// Start begins the practice run. An empty sequence completes immediately.
func (s *Sequence) Start() {
	if len(s.steps) == 0 {
		s.completed = true
		s.fire(s.events.Done)
		return
	}
	s.showCurrent()
}

// HandleKey feeds one keyboard event into the sequence. The key name is
// lowercase ("h", "space", "left"); modifiers hold any of alt/ctrl/shift.
func (s *Sequence) HandleKey(modifiers keys.ModSet, key string) {
	if s.completed || s.escaped {
		return
	}

	if key == "escape" {
		s.escaped = true
		s.fire(s.events.Escaped)
		return
	}

	if s.expected.Matches(modifiers, key) {
		s.advance()
		return
	}

	log.Debugf("wrong key: got %q, expected %q", key, s.expected.Key)
	s.fire(s.events.Wrong)
}

// Completed reports whether every step was finished.
func (s *Sequence) Completed() bool { return s.completed }

// Escaped reports whether the user aborted.
func (s *Sequence) Escaped() bool { return s.escaped }

// Current returns the step being practiced. Only valid while the sequence
// is in progress.
func (s *Sequence) Current() Step {
	if s.index >= len(s.steps) {
		return Step{}
	}
	return s.steps[s.index]
}

func (s *Sequence) showCurrent() {
	step := s.steps[s.index]
	s.expected = keys.ExpectedKey(step.Keybind)
	if s.events.Show != nil {
		s.events.Show(keys.Display(step.Keybind), step.Description, s.index+1, len(s.steps))
	}
}

func (s *Sequence) advance() {
	s.fire(s.events.Correct)
	s.index++
	if s.index >= len(s.steps) {
		s.completed = true
		s.fire(s.events.Done)
		return
	}
	s.showCurrent()
}

func (s *Sequence) fire(fn func()) {
	if fn != nil {
		fn()
	}
}
