//go:build nogui
// +build nogui

package overlay

import (
	"fmt"

	"tmuxtutor/internal/practice"
)

// Overlay is a stub for builds with the GUI disabled.
type Overlay struct{}

// New returns the stub overlay.
func New() *Overlay {
	return &Overlay{}
}

// Run prints the steps instead of opening a window and reports failure.
func (o *Overlay) Run(steps []practice.Step) bool {
	fmt.Println("Overlay is disabled in this build. Keybinds to practice:")
	for _, step := range steps {
		fmt.Printf("  %s  %s\n", step.Keybind, step.Description)
	}
	return false
}

// Available reports whether the overlay can be shown in this build.
func Available() bool {
	return false
}
