package ai

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"tmuxtutor/internal/discovery"
	"tmuxtutor/internal/tmux"
	"tmuxtutor/pkg/types"
)

// Suggester proposes keybindings from the curated database, shaped by the
// user's parsed config. An optional Client adds AI-powered suggestions.
type Suggester struct {
	client *Client
}

// NewSuggester creates a suggester. The client may be nil; rule-based
// suggestions work without it.
func NewSuggester(client *Client) *Suggester {
	return &Suggester{client: client}
}

// complementary finds tips that extend patterns the user already follows.
func (s *Suggester) complementary(cfg *tmux.Config) []types.Tip {
	var suggestions []types.Tip
	style := cfg.Style

	// M-hjkl navigators get M-HJKL resize to match
	if style.NavigationPattern == "M-hjkl" && !cfg.HasBinding("M-H", types.ModeRoot) {
		for _, tip := range discovery.Tips(discovery.Filter{Category: "resize", NoPrefixOnly: true}) {
			if strings.Contains(tip.Keybind, "M-H") {
				suggestions = append(suggestions, tip)
			}
		}
	}

	// Vim users without vim copy mode get it suggested
	if style.UsesVimKeys && !hasCommand(cfg, "copy-mode-vi") {
		suggestions = append(suggestions, discovery.Tips(discovery.Filter{Category: "copy", VimOnly: true})...)
	}

	// No quick window switching yet
	hasWindowSwitch := false
	for _, kb := range cfg.BindingsForMode(types.ModeRoot) {
		if strings.Contains(kb.Command, "select-window") {
			hasWindowSwitch = true
			break
		}
	}
	if !hasWindowSwitch {
		for _, tip := range discovery.Tips(discovery.Filter{Category: "navigation"}) {
			if strings.Contains(tip.Keybind, "M-1") {
				suggestions = append(suggestions, tip)
			}
		}
	}

	return suggestions
}

// essentials are bindings almost every config benefits from, paired with
// the command substring that indicates the user already has one.
var essentials = []struct {
	tipID      string
	cmdPattern string
}{
	{"reload-config", "source-file"},
	{"pane-zoom", "resize-pane -Z"},
	{"session-picker", "choose-tree"},
}

func (s *Suggester) missingEssentials(cfg *tmux.Config) []types.Tip {
	var suggestions []types.Tip
	for _, e := range essentials {
		if hasCommand(cfg, e.cmdPattern) {
			continue
		}
		if tip, ok := discovery.TipByID(e.tipID); ok {
			suggestions = append(suggestions, tip)
		}
	}
	return suggestions
}

func hasCommand(cfg *tmux.Config, pattern string) bool {
	for _, kb := range cfg.Keybindings {
		if strings.Contains(strings.ToLower(kb.Command), strings.ToLower(pattern)) {
			return true
		}
	}
	return false
}

// Suggestions returns rule-based tip suggestions for a config, deduplicated
// in priority order and capped at limit.
func (s *Suggester) Suggestions(cfg *tmux.Config, category string, limit int) []types.Tip {
	var all []types.Tip
	all = append(all, s.complementary(cfg)...)
	all = append(all, s.missingEssentials(cfg)...)
	if category != "" {
		all = append(all, discovery.Tips(discovery.Filter{Category: category})...)
	}

	seen := make(map[string]bool)
	var unique []types.Tip
	for _, tip := range all {
		if seen[tip.ID] {
			continue
		}
		seen[tip.ID] = true
		unique = append(unique, tip)
	}

	if limit > 0 && len(unique) > limit {
		unique = unique[:limit]
	}
	return unique
}

// AISuggestions asks the model for suggestions shaped to the user's style.
func (s *Suggester) AISuggestions(ctx context.Context, cfg *tmux.Config, category string) (types.SuggestionResult, error) {
	if s.client == nil {
		return types.SuggestionResult{}, fmt.Errorf("AI client required for AI suggestions")
	}

	existing := make([]string, 0, len(cfg.Keybindings))
	for _, kb := range cfg.Keybindings {
		existing = append(existing, kb.KeyCombo())
	}

	return s.client.SuggestKeybinds(ctx, cfg.Style, existing, category)
}

// Rank sorts tips by relevance to the user's style, most relevant first.
// The sort is stable so equal scores keep their suggestion order.
func (s *Suggester) Rank(tips []types.Tip, cfg *tmux.Config) []types.Tip {
	score := func(tip types.Tip) int {
		v := 0
		if cfg.Style.UsesVimKeys && tip.VimStyle {
			v += 10
		}
		if cfg.Style.PrefersMeta && !tip.RequiresPrefix {
			v += 5
		}
		if len(cfg.Keybindings) < 20 && tip.Difficulty == "beginner" {
			v += 3
		}
		if len(cfg.Keybindings) < 10 && tip.Difficulty == "advanced" {
			v -= 5
		}
		return v
	}

	ranked := make([]types.Tip, len(tips))
	copy(ranked, tips)
	sort.SliceStable(ranked, func(i, j int) bool {
		return score(ranked[i]) > score(ranked[j])
	})
	return ranked
}
