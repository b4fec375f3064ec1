// Package discovery surfaces keybinding ideas from a built-in curated tip
// database and from popular tmux dotfile repositories on GitHub.
package discovery

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/gobwas/glob"

	"tmuxtutor/pkg/types"
)

// curatedTips is the built-in tip database, immutable after process start.
var curatedTips = []types.Tip{
	{
		ID:          "nav-pane-hjkl",
		Category:    "navigation",
		Name:        "Vim-style Pane Navigation",
		Description: "Navigate between panes using h/j/k/l keys (left/down/up/right)",
		Keybind:     "prefix + h/j/k/l",
		Command:     "bind h select-pane -L; bind j select-pane -D; bind k select-pane -U; bind l select-pane -R",
		Difficulty:  "beginner",
		Tags:        []string{"vim", "navigation", "panes"},
		VimStyle:    true,
		RequiresPrefix: true,
	},
	{
		ID:          "nav-pane-meta-hjkl",
		Category:    "navigation",
		Name:        "Alt+hjkl Pane Navigation (No Prefix)",
		Description: "Navigate panes instantly with Alt+h/j/k/l - no prefix needed",
		Keybind:     "M-h/j/k/l",
		Command:     "bind -n M-h select-pane -L; bind -n M-j select-pane -D; bind -n M-k select-pane -U; bind -n M-l select-pane -R",
		Difficulty:  "beginner",
		Tags:        []string{"vim", "navigation", "panes", "no-prefix"},
		VimStyle:    true,
	},
	{
		ID:          "nav-window-number",
		Category:    "navigation",
		Name:        "Quick Window Switch with Alt+Number",
		Description: "Jump to windows 1-9 instantly with Alt+1 through Alt+9",
		Keybind:     "M-1..9",
		Command:     "bind -n M-1 select-window -t 1; bind -n M-2 select-window -t 2; ...",
		Difficulty:  "beginner",
		Tags:        []string{"navigation", "windows", "no-prefix"},
	},
	{
		ID:          "nav-last-window",
		Category:    "navigation",
		Name:        "Toggle Last Window",
		Description: "Quickly switch between your two most recent windows",
		Keybind:     "prefix + Tab",
		Command:     "bind Tab last-window",
		Difficulty:  "beginner",
		Tags:        []string{"navigation", "windows"},
		RequiresPrefix: true,
	},
	{
		ID:          "resize-hjkl",
		Category:    "resize",
		Name:        "Vim-style Pane Resize",
		Description: "Resize panes with H/J/K/L (capital letters)",
		Keybind:     "prefix + H/J/K/L",
		Command:     "bind H resize-pane -L 5; bind J resize-pane -D 5; bind K resize-pane -U 5; bind L resize-pane -R 5",
		Difficulty:  "intermediate",
		Tags:        []string{"vim", "resize", "panes"},
		RelatedTo:   []string{"nav-pane-hjkl"},
		VimStyle:    true,
		RequiresPrefix: true,
	},
	{
		ID:          "resize-meta-hjkl",
		Category:    "resize",
		Name:        "Alt+Shift+hjkl Pane Resize (No Prefix)",
		Description: "Resize panes instantly with Alt+Shift+h/j/k/l",
		Keybind:     "M-H/J/K/L",
		Command:     "bind -n M-H resize-pane -L 5; bind -n M-J resize-pane -D 5; bind -n M-K resize-pane -U 5; bind -n M-L resize-pane -R 5",
		Difficulty:  "intermediate",
		Tags:        []string{"vim", "resize", "panes", "no-prefix"},
		RelatedTo:   []string{"nav-pane-meta-hjkl"},
		VimStyle:    true,
	},
	{
		ID:          "split-visual",
		Category:    "panes",
		Name:        "Visual Split Keys",
		Description: "Use | for horizontal split and - for vertical (visual mnemonics)",
		Keybind:     "prefix + | and prefix + -",
		Command:     "bind | split-window -h -c '#{pane_current_path}'; bind - split-window -v -c '#{pane_current_path}'",
		Difficulty:  "beginner",
		Tags:        []string{"panes", "splits"},
		RequiresPrefix: true,
	},
	{
		ID:          "split-current-path",
		Category:    "panes",
		Name:        "Split in Current Directory",
		Description: "New splits open in the same directory as current pane",
		Keybind:     `prefix + " and prefix + %`,
		Command:     `bind '"' split-window -v -c '#{pane_current_path}'; bind % split-window -h -c '#{pane_current_path}'`,
		Difficulty:  "beginner",
		Tags:        []string{"panes", "splits", "paths"},
		RequiresPrefix: true,
	},
	{
		ID:          "copy-vim-mode",
		Category:    "copy",
		Name:        "Vim Copy Mode",
		Description: "Use vi-style keys in copy mode (v to select, y to yank)",
		Keybind:     "v/y in copy mode",
		Command:     "setw -g mode-keys vi; bind -T copy-mode-vi v send -X begin-selection; bind -T copy-mode-vi y send -X copy-selection-and-cancel",
		Difficulty:  "intermediate",
		Tags:        []string{"vim", "copy", "clipboard"},
		VimStyle:    true,
		RequiresPrefix: true,
	},
	{
		ID:          "copy-mouse",
		Category:    "copy",
		Name:        "Mouse Copy Support",
		Description: "Select text with mouse and copy to clipboard",
		Keybind:     "Mouse drag",
		Command:     "set -g mouse on; bind -T copy-mode-vi MouseDragEnd1Pane send -X copy-pipe-and-cancel 'xclip -selection clipboard'",
		Difficulty:  "beginner",
		Tags:        []string{"mouse", "copy", "clipboard"},
		RequiresPrefix: true,
	},
	{
		ID:          "session-picker",
		Category:    "session",
		Name:        "Interactive Session Picker",
		Description: "Visual tree view to switch between sessions and windows",
		Keybind:     "prefix + s",
		Command:     "bind s choose-tree -s",
		Difficulty:  "beginner",
		Tags:        []string{"sessions", "navigation"},
		RequiresPrefix: true,
	},
	{
		ID:          "session-new",
		Category:    "session",
		Name:        "Quick New Session",
		Description: "Create a new session with a name prompt",
		Keybind:     "prefix + S",
		Command:     "bind S command-prompt -p 'New session:' 'new-session -s %%'",
		Difficulty:  "beginner",
		Tags:        []string{"sessions"},
		RequiresPrefix: true,
	},
	{
		ID:          "reload-config",
		Category:    "productivity",
		Name:        "Reload Config",
		Description: "Reload tmux.conf without restarting",
		Keybind:     "prefix + r",
		Command:     `bind r source-file ~/.tmux.conf \; display 'Config reloaded!'`,
		Difficulty:  "beginner",
		Tags:        []string{"config", "productivity"},
		RequiresPrefix: true,
	},
	{
		ID:          "pane-zoom",
		Category:    "productivity",
		Name:        "Zoom Pane Toggle",
		Description: "Temporarily maximize a pane, press again to restore",
		Keybind:     "prefix + z",
		Command:     "bind z resize-pane -Z",
		Difficulty:  "beginner",
		Tags:        []string{"panes", "productivity"},
		RequiresPrefix: true,
	},
	{
		ID:          "pane-sync",
		Category:    "productivity",
		Name:        "Synchronize Panes",
		Description: "Type in all panes simultaneously (great for multi-server)",
		Keybind:     "prefix + e",
		Command:     "bind e setw synchronize-panes",
		Difficulty:  "advanced",
		Tags:        []string{"panes", "productivity", "advanced"},
		RequiresPrefix: true,
	},
	{
		ID:          "kill-pane-confirm",
		Category:    "productivity",
		Name:        "Kill Pane with Confirmation",
		Description: "Close current pane with a confirmation prompt",
		Keybind:     "prefix + x",
		Command:     "bind x confirm-before -p 'Kill pane? (y/n)' kill-pane",
		Difficulty:  "beginner",
		Tags:        []string{"panes", "safety"},
		RequiresPrefix: true,
	},
	{
		ID:          "status-position",
		Category:    "appearance",
		Name:        "Status Bar Position",
		Description: "Move status bar to top or bottom",
		Keybind:     "N/A (option)",
		Command:     "set -g status-position top",
		Difficulty:  "beginner",
		Tags:        []string{"appearance", "status"},
		RequiresPrefix: true,
	},
	{
		ID:          "mouse-enable",
		Category:    "mouse",
		Name:        "Enable Mouse Support",
		Description: "Click to select panes, resize with drag, scroll history",
		Keybind:     "Mouse",
		Command:     "set -g mouse on",
		Difficulty:  "beginner",
		Tags:        []string{"mouse", "navigation"},
		RequiresPrefix: true,
	},
}

// Filter narrows the tip list. Zero values mean no filtering on that axis.
type Filter struct {
	Category     string
	Difficulty   string
	VimOnly      bool
	NoPrefixOnly bool
	TagGlob      string // glob pattern matched against each tag
}

// Tips returns the curated tips matching the filter, in database order.
func Tips(f Filter) []types.Tip {
	var tagMatcher glob.Glob
	if f.TagGlob != "" {
		var err error
		tagMatcher, err = glob.Compile(f.TagGlob)
		if err != nil {
			return nil
		}
	}

	var out []types.Tip
	for _, tip := range curatedTips {
		if f.Category != "" && tip.Category != f.Category {
			continue
		}
		if f.Difficulty != "" && tip.Difficulty != f.Difficulty {
			continue
		}
		if f.VimOnly && !tip.VimStyle {
			continue
		}
		if f.NoPrefixOnly && tip.RequiresPrefix {
			continue
		}
		if tagMatcher != nil && !matchesAnyTag(tagMatcher, tip.Tags) {
			continue
		}
		out = append(out, tip)
	}
	return out
}

func matchesAnyTag(matcher glob.Glob, tags []string) bool {
	for _, tag := range tags {
		if matcher.Match(tag) {
			return true
		}
	}
	return false
}

// TipByID returns the tip with the given ID, or false.
func TipByID(id string) (types.Tip, bool) {
	for _, tip := range curatedTips {
		if tip.ID == id {
			return tip, true
		}
	}
	return types.Tip{}, false
}

// RelatedTips resolves a tip's related IDs; unknown IDs are skipped.
func RelatedTips(tip types.Tip) []types.Tip {
	var out []types.Tip
	for _, id := range tip.RelatedTo {
		if related, ok := TipByID(id); ok {
			out = append(out, related)
		}
	}
	return out
}

// Categories returns all distinct tip categories, sorted.
func Categories() []string {
	seen := make(map[string]bool)
	for _, tip := range curatedTips {
		seen[tip.Category] = true
	}

	out := make([]string, 0, len(seen))
	for category := range seen {
		out = append(out, category)
	}
	sort.Strings(out)
	return out
}

// SaveTips writes the full tip database to a JSON file.
func SaveTips(path string) error {
	data, err := json.MarshalIndent(curatedTips, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadTips reads tips from a JSON file previously written by SaveTips.
func LoadTips(path string) ([]types.Tip, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var tips []types.Tip
	if err := json.Unmarshal(data, &tips); err != nil {
		return nil, err
	}
	return tips, nil
}
