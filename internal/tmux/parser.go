// Package tmux parses tmux configuration files into a structured model,
// infers the user's keybinding style, and performs safe textual merges of
// new bindings into an existing configuration.
package tmux

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"tmuxtutor/internal/log"
	"tmuxtutor/pkg/types"
)

var (
	bindRe      = regexp.MustCompile(`^(?:bind-key|bind)\s+(.+)$`)
	rootFlagRe  = regexp.MustCompile(`^-n\s+`)
	tableFlagRe = regexp.MustCompile(`^-T\s+(\S+)\s+`)
	modPrefixRe = regexp.MustCompile(`^([CMS])-(.+)$`)
	setRe       = regexp.MustCompile(`^(?:set-option|set|setw|set-window-option)\s+(?:-g\s+)?(\S+)\s+(.+)$`)
)

// parseKeyModifiers splits a key token like "C-M-a" into its base key and
// modifier list. A token with no prefix normalizes to [ModNone].
func parseKeyModifiers(keyStr string) (string, []types.Modifier) {
	var modifiers []types.Modifier
	key := keyStr

	for {
		m := modPrefixRe.FindStringSubmatch(key)
		if m == nil {
			break
		}
		key = m[2]
		switch m[1] {
		case "C":
			modifiers = append(modifiers, types.ModCtrl)
		case "M":
			modifiers = append(modifiers, types.ModMeta)
		case "S":
			modifiers = append(modifiers, types.ModShift)
		}
	}

	if len(modifiers) == 0 {
		modifiers = []types.Modifier{types.ModNone}
	}
	return key, modifiers
}

// ParseBindLine parses a single bind/bind-key line. It returns nil for
// comments, blank lines, non-binding lines, and bindings missing a command;
// malformed input is skipped, never reported.
func ParseBindLine(line string) *types.Keybinding {
	line = strings.TrimSpace(line)

	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	m := bindRe.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	remaining := m[1]

	mode := types.ModePrefix

	// -n puts the binding in the root table (no prefix needed)
	if rootFlagRe.MatchString(remaining) {
		mode = types.ModeRoot
		remaining = rootFlagRe.ReplaceAllString(remaining, "")
	}

	// -T names a key table explicitly and wins over -n
	if tm := tableFlagRe.FindStringSubmatch(remaining); tm != nil {
		switch tm[1] {
		case "copy-mode":
			mode = types.ModeCopy
		case "copy-mode-vi":
			mode = types.ModeCopyVi
		case "root":
			mode = types.ModeRoot
		}
		remaining = tableFlagRe.ReplaceAllString(remaining, "")
	}

	// Remaining text is: key command...
	var keyStr, command string
	if strings.HasPrefix(remaining, `"`) || strings.HasPrefix(remaining, "'") {
		quote := remaining[0]
		end := strings.IndexByte(remaining[1:], quote)
		if end == -1 {
			return nil
		}
		keyStr = remaining[1 : end+1]
		command = strings.TrimSpace(remaining[end+2:])
	} else {
		ws := strings.IndexAny(remaining, " \t")
		if ws == -1 {
			return nil
		}
		keyStr = remaining[:ws]
		command = strings.TrimSpace(remaining[ws:])
	}
	if command == "" {
		return nil
	}

	key, modifiers := parseKeyModifiers(keyStr)

	return &types.Keybinding{
		Key:       key,
		Modifiers: modifiers,
		Command:   command,
		Mode:      mode,
		RawLine:   line,
	}
}

// ParseSetOption parses a set-option/set/setw/set-window-option line.
// It returns the option name and value with one layer of surrounding
// quotes stripped, or ok=false for anything else.
func ParseSetOption(line string) (name, value string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}

	m := setRe.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], strings.Trim(m[2], `'"`), true
}

// Parse parses raw configuration text into bindings and options. Option
// re-declarations overwrite earlier values, matching tmux's own reload
// semantics. A comment line directly above a binding becomes its
// description.
func Parse(content string) ([]types.Keybinding, map[string]string) {
	var keybindings []types.Keybinding
	options := make(map[string]string)

	var lastComment string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "#") {
			lastComment = strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
			continue
		}

		if kb := ParseBindLine(line); kb != nil {
			kb.Description = lastComment
			keybindings = append(keybindings, *kb)
			lastComment = ""
			continue
		}
		lastComment = ""

		if name, value, ok := ParseSetOption(line); ok {
			options[name] = value
		}
	}

	return keybindings, options
}

// ParseFile parses a tmux configuration file. An empty path defaults to
// ~/.tmux.conf. A missing or unreadable file yields an empty model rather
// than an error; config files are optional and user-edited.
func ParseFile(path string) *Config {
	if path == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, ".tmux.conf")
		}
	}

	var keybindings []types.Keybinding
	options := make(map[string]string)

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Debugf("could not read %s: %v", path, err)
		}
	} else {
		keybindings, options = Parse(string(data))
	}

	return &Config{
		Path:        path,
		Keybindings: keybindings,
		RawOptions:  options,
		Style:       DetectStyle(keybindings, options),
	}
}

// GenerateDefaultConfig returns a sensible starter tmux configuration.
func GenerateDefaultConfig() string {
	return `# tmuxtutor generated config
# Sensible defaults for a good tmux experience

# Use Ctrl-a as prefix (easier than Ctrl-b)
set-option -g prefix C-a
unbind C-b
bind C-a send-prefix

# Start window numbering at 1
set -g base-index 1
setw -g pane-base-index 1

# Enable mouse support
set -g mouse on

# Vim-style pane navigation
bind h select-pane -L
bind j select-pane -D
bind k select-pane -U
bind l select-pane -R

# Easier splits (and open in current path)
bind | split-window -h -c "#{pane_current_path}"
bind - split-window -v -c "#{pane_current_path}"

# Reload config
bind r source-file ~/.tmux.conf \; display "Config reloaded!"

# Better colors
set -g default-terminal "screen-256color"

# Faster escape time
set -sg escape-time 10

# Increase history
set -g history-limit 10000
`
}
