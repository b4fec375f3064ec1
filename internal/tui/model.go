// Package tui is the interactive terminal frontend showing the inferred
// keybinding style, suggestions, and learning progress.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"tmuxtutor/internal/ai"
	"tmuxtutor/internal/keys"
	"tmuxtutor/internal/storage"
	"tmuxtutor/internal/tmux"
	"tmuxtutor/pkg/types"
)

type view int

const (
	viewHome view = iota
	viewSuggestions
	viewProgress
)

// tipItem adapts a Tip to the bubbles list delegate.
type tipItem struct {
	tip types.Tip
}

func (i tipItem) Title() string {
	return KeybindStyle.Render(i.tip.Keybind) + "  " + i.tip.Name
}

func (i tipItem) Description() string { return i.tip.Description }

func (i tipItem) FilterValue() string {
	return i.tip.Name + " " + i.tip.Keybind + " " + i.tip.Category
}

// summaryMsg delivers the async progress summary.
type summaryMsg struct {
	summary *storage.Summary
	err     error
}

type Model struct {
	cfg       *tmux.Config
	suggester *ai.Suggester
	tracker   *storage.Tracker

	view       view
	list       list.Model
	summary    *storage.Summary
	summaryErr error
	statusMsg  string

	width  int
	height int
}

// New builds the TUI model. The tracker may be nil when no database is
// available; the progress view then shows a notice instead.
func New(cfg *tmux.Config, suggester *ai.Suggester, tracker *storage.Tracker) *Model {
	items := []list.Item{}
	if suggester != nil {
		for _, tip := range suggester.Suggestions(cfg, "", 20) {
			items = append(items, tipItem{tip: tip})
		}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Suggested keybindings"
	l.SetShowStatusBar(false)

	return &Model{
		cfg:       cfg,
		suggester: suggester,
		tracker:   tracker,
		list:      l,
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return m.loadSummary
}

func (m *Model) loadSummary() tea.Msg {
	if m.tracker == nil {
		return summaryMsg{}
	}
	summary, err := m.tracker.Summary(context.Background())
	return summaryMsg{summary: summary, err: err}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case summaryMsg:
		m.summary = msg.summary
		m.summaryErr = msg.err
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The suggestions list owns most keys while filtering
	if m.view == viewSuggestions && m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "h":
		if m.view != viewHome {
			m.view = viewHome
			return m, nil
		}
		return m, tea.Quit
	case "s":
		m.view = viewSuggestions
		return m, nil
	case "p":
		m.view = viewProgress
		return m, m.loadSummary
	}

	if m.view == viewSuggestions {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model
func (m *Model) View() string {
	var body string
	switch m.view {
	case viewSuggestions:
		body = m.list.View()
	case viewProgress:
		body = m.progressView()
	default:
		body = m.homeView()
	}

	title := TitleStyle.Render("tmuxtutor")
	status := StatusStyle.Render("s: suggestions  p: progress  h/esc: home  q: quit")
	return App.Render(title + "\n\n" + body + "\n\n" + status)
}

func (m *Model) homeView() string {
	var b strings.Builder

	b.WriteString(HeadingStyle.Render("Your tmux style"))
	b.WriteString("\n\n")

	if m.cfg == nil || len(m.cfg.Keybindings) == 0 {
		b.WriteString(MutedStyle.Render("No custom keybindings found. Press s to explore suggestions."))
		return b.String()
	}

	style := m.cfg.Style
	fmt.Fprintf(&b, "  Prefix:  %s\n", KeybindStyle.Render(keys.Display(style.PrefixKey)))
	fmt.Fprintf(&b, "  Bindings: %d (%d navigation)\n",
		len(m.cfg.Keybindings), len(m.cfg.NavigationBindings()))

	var traits []string
	if style.UsesVimKeys {
		traits = append(traits, "vim-style navigation")
	}
	if style.PrefersMeta {
		traits = append(traits, "meta shortcuts")
	}
	if style.PrefersCtrl {
		traits = append(traits, "ctrl shortcuts")
	}
	if style.NavigationPattern != "" {
		traits = append(traits, "pattern: "+style.NavigationPattern)
	}
	if len(traits) > 0 {
		fmt.Fprintf(&b, "  Traits:  %s\n", MutedStyle.Render(strings.Join(traits, ", ")))
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(StatusStyle.Render(m.statusMsg))
	}
	return b.String()
}

func (m *Model) progressView() string {
	var b strings.Builder
	b.WriteString(HeadingStyle.Render("Learning progress"))
	b.WriteString("\n\n")

	if m.summaryErr != nil {
		b.WriteString(ErrorStyle.Render("Could not load progress: " + m.summaryErr.Error()))
		return b.String()
	}
	if m.summary == nil {
		b.WriteString(MutedStyle.Render("No progress recorded yet."))
		return b.String()
	}

	s := m.summary
	fmt.Fprintf(&b, "  Challenges completed: %d\n", s.ChallengesCompleted)
	fmt.Fprintf(&b, "  Keybinds learned:     %d (%d integrated)\n", s.KeybindsLearned, s.KeybindsIntegrated)
	fmt.Fprintf(&b, "  Practice sessions:    %d\n", s.TotalPractice)
	if s.CurrentStreak > 0 {
		fmt.Fprintf(&b, "  Streak:               %s\n", SuccessStyle.Render(fmt.Sprintf("%d days", s.CurrentStreak)))
	}
	if len(s.MostPracticed) > 0 {
		var binds []string
		for _, st := range s.MostPracticed {
			binds = append(binds, st.Keybind)
		}
		fmt.Fprintf(&b, "  Most practiced:       %s\n", KeybindStyle.Render(strings.Join(binds, " ")))
	}
	return b.String()
}

// SetStatus sets the home view status line.
func (m *Model) SetStatus(msg string) {
	m.statusMsg = msg
}

// Run starts the TUI event loop.
func Run(cfg *tmux.Config, suggester *ai.Suggester, tracker *storage.Tracker) error {
	p := tea.NewProgram(New(cfg, suggester, tracker), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
