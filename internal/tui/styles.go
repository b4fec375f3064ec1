package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Main application frame
	App = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Padding(0, 1)

	// Title bar
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#4F4FB7")).
			Padding(0, 1)

	// Section headings inside a view
	HeadingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#81A1C1"))

	// Status line at the bottom
	StatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#959595"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00"))

	// Keybind notation rendering
	KeybindStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF"))

	// Muted detail text
	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCCCCC"))
)
