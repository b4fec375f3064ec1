package ai

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"

	"tmuxtutor/internal/discovery"
	"tmuxtutor/internal/log"
	"tmuxtutor/internal/tmux"
	"tmuxtutor/pkg/types"
)

const smartSystem = `You are a tmux expert helping users discover new keybindings.

Your job is to:
1. Analyze the user's current tmux config to understand their style
2. Look at popular keybindings from GitHub configs
3. Suggest NEW keybindings that:
   - Match the user's style (if they use vim keys, suggest vim-style bindings)
   - Don't conflict with their existing bindings
   - Are genuinely useful
   - Are grouped logically (e.g., all resize bindings together)

IMPORTANT CONSTRAINTS:
- NEVER suggest C-c, C-d, C-z, C-s, C-q - these conflict with terminal control signals
- NEVER suggest C-l (clears screen) or C-a (often used as tmux prefix or readline)
- Prefer Alt/Meta bindings (M-x) for no-prefix shortcuts as they rarely conflict
- If suggesting prefix bindings, use memorable letters that aren't already common defaults

IMPORTANT: Group related keybindings together. For example:
- If suggesting resize bindings, include all 4 directions (up/down/left/right)
- If suggesting navigation, include related navigation bindings
- Each group should be something the user can practice together in one session

Respond in JSON format with this structure:
{
  "groups": [
    {
      "name": "Group Name",
      "description": "What this group of keybinds does",
      "keybinds": [
        {"keybind": "M-H", "command": "resize-pane -L 5", "description": "Resize pane left"},
        {"keybind": "M-J", "command": "resize-pane -D 5", "description": "Resize pane down"}
      ],
      "reasoning": "Why these bindings work well together and match user's style"
    }
  ]
}

Return 2-4 groups of suggestions.`

// SmartSuggester combines the user's config with keybindings scraped from
// popular GitHub dotfiles and asks the model for grouped suggestions.
type SmartSuggester struct {
	client   *Client
	scraper  *discovery.Scraper
	confPath string
}

// NewSmartSuggester creates a smart suggester over the given tmux config
// path. An empty path defaults to ~/.tmux.conf.
func NewSmartSuggester(client *Client, scraper *discovery.Scraper, confPath string) *SmartSuggester {
	if confPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			confPath = home + "/.tmux.conf"
		}
	}
	return &SmartSuggester{client: client, scraper: scraper, confPath: confPath}
}

func (s *SmartSuggester) readUserConfig() string {
	data, err := os.ReadFile(s.confPath)
	if err != nil {
		return ""
	}
	return string(data)
}

// formatScrapedKeybinds renders scraped bindings for the prompt, grouped by
// repo and capped at 15 per repo.
func formatScrapedKeybinds(keybinds []discovery.ScrapedKeybind) string {
	if len(keybinds) == 0 {
		return "No GitHub configs available."
	}

	byRepo := make(map[string][]discovery.ScrapedKeybind)
	var repoOrder []string
	for _, kb := range keybinds {
		if _, ok := byRepo[kb.SourceRepo]; !ok {
			repoOrder = append(repoOrder, kb.SourceRepo)
		}
		if len(byRepo[kb.SourceRepo]) < 15 {
			byRepo[kb.SourceRepo] = append(byRepo[kb.SourceRepo], kb)
		}
	}

	var sb strings.Builder
	for _, repo := range repoOrder {
		fmt.Fprintf(&sb, "\n## From %s:\n", repo)
		for _, kb := range byRepo[repo] {
			sb.WriteString("  " + kb.RawLine)
			if kb.Context != "" {
				fmt.Fprintf(&sb, " (%s)", kb.Context)
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// SmartSuggestions returns AI suggestions grouped by related functionality.
// GitHub scraping failures degrade to config-only prompting.
func (s *SmartSuggester) SmartSuggestions(ctx context.Context, category string) ([]types.KeybindGroup, error) {
	userConfig := s.readUserConfig()
	if userConfig == "" {
		userConfig = "No existing tmux.conf found - user is starting fresh"
	}

	var scraped []discovery.ScrapedKeybind
	if s.scraper != nil {
		var err error
		scraped, err = s.scraper.Scrape(ctx)
		if err != nil {
			log.Debugf("github scrape failed: %v", err)
		}
	}

	var categoryFocus string
	if category != "" {
		categoryFocus = fmt.Sprintf("\nFocus specifically on %s keybindings.", category)
	}

	prompt := fmt.Sprintf(
		"Here is the user's current tmux configuration:\n\n```\n%s\n```\n\nHere are popular keybindings from well-known GitHub tmux configs:\n\n%s\n%s\n\nBased on the user's style and these popular configs, suggest grouped keybindings.\nRemember to return valid JSON.",
		userConfig, formatScrapedKeybinds(scraped), categoryFocus,
	)

	response, err := s.client.Complete(ctx, prompt, smartSystem)
	if err != nil {
		return nil, err
	}

	return parseKeybindGroups(response), nil
}

// parseKeybindGroups validates the grouped-suggestion JSON; an unparsable
// response becomes a single group carrying the raw text as reasoning.
func parseKeybindGroups(response string) []types.KeybindGroup {
	payload := extractJSON(response)
	parsed := gjson.Parse(payload)

	if !gjson.Valid(payload) || !parsed.Get("groups").Exists() {
		return []types.KeybindGroup{{
			Name:        "AI Suggestions",
			Description: "Suggestions from the model",
			Reasoning:   response,
		}}
	}

	var groups []types.KeybindGroup
	for _, g := range parsed.Get("groups").Array() {
		group := types.KeybindGroup{
			Name:        g.Get("name").String(),
			Description: g.Get("description").String(),
			Reasoning:   g.Get("reasoning").String(),
		}
		if group.Name == "" {
			group.Name = "Suggestions"
		}
		for _, kb := range g.Get("keybinds").Array() {
			group.Keybinds = append(group.Keybinds, types.Suggestion{
				Keybind:     kb.Get("keybind").String(),
				Command:     kb.Get("command").String(),
				Description: kb.Get("description").String(),
			})
		}
		groups = append(groups, group)
	}
	return groups
}

// GenerateConfigAddition renders a keybind group as tmux config lines ready
// to append. M- and C- bindings become root bindings.
func GenerateConfigAddition(group types.KeybindGroup) string {
	lines := []string{"\n# " + group.Name}
	if group.Description != "" {
		lines = append(lines, "# "+group.Description)
	}

	for _, kb := range group.Keybinds {
		if kb.Keybind == "" || kb.Command == "" {
			continue
		}
		if kb.Description != "" {
			lines = append(lines, "# "+kb.Description)
		}
		if strings.HasPrefix(kb.Keybind, "M-") || strings.HasPrefix(kb.Keybind, "C-") {
			lines = append(lines, fmt.Sprintf("bind -n %s %s", kb.Keybind, kb.Command))
		} else {
			lines = append(lines, fmt.Sprintf("bind %s %s", kb.Keybind, kb.Command))
		}
	}

	return strings.Join(lines, "\n")
}

// AddGroupToConfig appends a keybind group to the user's tmux.conf,
// backing up first when requested.
func (s *SmartSuggester) AddGroupToConfig(group types.KeybindGroup, backup bool) (bool, string, error) {
	merger := tmux.NewMerger(s.confPath)

	if backup {
		if _, err := merger.BackupConfig(); err != nil {
			// No existing config to back up is fine
			log.Debugf("backup skipped: %v", err)
		}
	}

	addition := GenerateConfigAddition(group)

	existing := ""
	if data, err := os.ReadFile(s.confPath); err == nil {
		existing = string(data)
	}

	if err := os.WriteFile(s.confPath, []byte(existing+addition+"\n"), 0644); err != nil {
		return false, "", fmt.Errorf("error adding to config: %w", err)
	}

	return true, fmt.Sprintf("Added %d keybindings to %s", len(group.Keybinds), s.confPath), nil
}
