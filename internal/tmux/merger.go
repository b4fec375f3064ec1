package tmux

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/gobwas/glob"

	errs "tmuxtutor/internal/errors"
	"tmuxtutor/internal/log"
	"tmuxtutor/pkg/types"
)

// blankRunRe collapses runs of blank lines left behind by removals.
var blankRunRe = regexp.MustCompile(`\n{3,}`)

// backupGlob matches backup file names produced by BackupConfig.
var backupGlob = glob.MustCompile("tmux.conf.*.bak")

// BindingSpec describes one binding to merge into the config.
type BindingSpec struct {
	Keybind     string
	Command     string
	Description string
	Mode        types.BindingMode
	Category    string // optional placement hint, e.g. "navigation"
}

// AddOutcome is the per-binding result of AddMultiple.
type AddOutcome struct {
	Keybind string
	OK      bool
	Message string
}

// Merger mutates a tmux configuration file's text to add or remove
// bindings. The read-modify-write cycle is not protected against concurrent
// external writers; callers needing that must serialize access themselves.
type Merger struct {
	ConfigPath string
	BackupDir  string
}

// NewMerger creates a merger for the given config path. An empty path
// defaults to ~/.tmux.conf; backups go to ~/.local/share/tmuxtutor/backups.
func NewMerger(configPath string) *Merger {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	if configPath == "" {
		configPath = filepath.Join(home, ".tmux.conf")
	}
	return &Merger{
		ConfigPath: configPath,
		BackupDir:  filepath.Join(home, ".local", "share", "tmuxtutor", "backups"),
	}
}

// BackupConfig copies the current config into a timestamped backup file and
// returns its path. Fails with a not-found error when no config exists yet.
func (m *Merger) BackupConfig() (string, error) {
	if _, err := os.Stat(m.ConfigPath); err != nil {
		return "", errs.NewFileError("config not found", m.ConfigPath, errs.FileNotFound, nil)
	}

	if err := os.MkdirAll(m.BackupDir, 0755); err != nil {
		return "", errs.Wrap(err, "could not create backup directory")
	}

	timestamp := time.Now().Format("20060102_150405")
	backupPath := filepath.Join(m.BackupDir, fmt.Sprintf("tmux.conf.%s.bak", timestamp))

	if err := copyFile(m.ConfigPath, backupPath); err != nil {
		return "", errs.Wrap(err, "backup failed")
	}

	log.LogWithFields(log.F("backup", backupPath)).Debug("configuration backed up")
	return backupPath, nil
}

// RestoreBackup copies a backup file back over the config.
func (m *Merger) RestoreBackup(backupPath string) error {
	if _, err := os.Stat(backupPath); err != nil {
		return errs.NewFileError("backup not found", backupPath, errs.FileNotFound, nil)
	}
	return copyFile(backupPath, m.ConfigPath)
}

// ListBackups returns all backup file paths, newest first.
func (m *Merger) ListBackups() ([]string, error) {
	entries, err := os.ReadDir(m.BackupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var backups []string
	for _, entry := range entries {
		if !entry.IsDir() && backupGlob.Match(entry.Name()) {
			backups = append(backups, filepath.Join(m.BackupDir, entry.Name()))
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(backups)))
	return backups, nil
}

// FormatBinding renders a binding as config text: an optional comment line
// followed by the bind line whose flag shape mirrors the mode.
func (m *Merger) FormatBinding(keybind, command, description string, mode types.BindingMode) string {
	var lines []string

	if description != "" {
		lines = append(lines, "# "+description)
	}

	switch mode {
	case types.ModeRoot:
		lines = append(lines, fmt.Sprintf("bind -n %s %s", keybind, command))
	case types.ModeCopyVi:
		lines = append(lines, fmt.Sprintf("bind -T copy-mode-vi %s %s", keybind, command))
	case types.ModeCopy:
		lines = append(lines, fmt.Sprintf("bind -T copy-mode %s %s", keybind, command))
	default:
		lines = append(lines, fmt.Sprintf("bind %s %s", keybind, command))
	}

	return strings.Join(lines, "\n")
}

// findSection locates the line index where a category's comment section
// starts, or -1. More specific patterns are tried first so a "navigation
// keybindings" header beats a bare mention of the word.
func (m *Merger) findSection(content, category string) int {
	patterns := []string{
		`(?i)#.*` + regexp.QuoteMeta(category) + `.*keybind`,
		`(?i)#.*` + regexp.QuoteMeta(category) + `.*bind`,
		`(?i)#.*` + regexp.QuoteMeta(category),
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		for _, pattern := range patterns {
			if regexp.MustCompile(pattern).MatchString(line) {
				return i
			}
		}
	}
	return -1
}

// duplicatePattern builds the mode-scoped regex used for both duplicate
// detection and removal. When wholeLine is true the pattern spans the full
// line so it can be deleted.
func duplicatePattern(keybind string, mode types.BindingMode, wholeLine bool) *regexp.Regexp {
	escaped := regexp.QuoteMeta(keybind)

	var body string
	switch mode {
	case types.ModeRoot:
		body = `bind(?:-key)?\s+-n\s+` + escaped + `\s+`
	case types.ModeCopy, types.ModeCopyVi:
		body = `bind(?:-key)?\s+-T\s+` + string(mode) + `\s+` + escaped + `\s+`
	default:
		body = `bind(?:-key)?\s+` + escaped + `\s+`
	}

	if wholeLine {
		return regexp.MustCompile(`(?m)^.*` + body + `.*$`)
	}
	return regexp.MustCompile(`(?m)^\s*` + body)
}

// bindingExists reports whether a binding for the key already exists in the
// given key table.
func (m *Merger) bindingExists(content, keybind string, mode types.BindingMode) bool {
	return duplicatePattern(keybind, mode, false).MatchString(content)
}

// AddKeybinding merges one binding into the config file. Expected
// conditions (duplicate binding) come back as ok=false with a message;
// errors are reserved for I/O failures.
func (m *Merger) AddKeybinding(spec BindingSpec, createBackup bool) (bool, string, error) {
	// Create config if it doesn't exist
	if _, err := os.Stat(m.ConfigPath); os.IsNotExist(err) {
		if err := os.WriteFile(m.ConfigPath, []byte("# tmux configuration\n\n"), 0644); err != nil {
			return false, "", errs.Wrap(err, "could not create config")
		}
	}

	var backupPath string
	if createBackup {
		var err error
		backupPath, err = m.BackupConfig()
		if err != nil {
			return false, "", err
		}
	}

	data, err := os.ReadFile(m.ConfigPath)
	if err != nil {
		return false, "", errs.Wrap(err, "could not read config")
	}
	content := string(data)

	if m.bindingExists(content, spec.Keybind, spec.Mode) {
		return false, fmt.Sprintf("Binding for %s already exists", spec.Keybind), nil
	}

	newBinding := m.FormatBinding(spec.Keybind, spec.Command, spec.Description, spec.Mode)

	lines := strings.Split(content, "\n")
	insertAt := len(lines)

	if spec.Category != "" {
		if section := m.findSection(content, spec.Category); section >= 0 {
			// Insert before the next different section header, or at EOF
			for i := section + 1; i < len(lines); i++ {
				if strings.HasPrefix(lines[i], "# ") && !strings.HasPrefix(lines[i], "# "+spec.Category[:1]) {
					insertAt = i
					break
				}
			}
		} else {
			newBinding = "\n# " + titleCase(spec.Category) + " keybindings\n" + newBinding
		}
	}

	lines = append(lines[:insertAt], append([]string{newBinding}, lines[insertAt:]...)...)

	if err := os.WriteFile(m.ConfigPath, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return false, "", errs.Wrap(err, "could not write config")
	}

	msg := fmt.Sprintf("Added binding: %s -> %s", spec.Keybind, spec.Command)
	if createBackup {
		msg += fmt.Sprintf(" (backup: %s)", filepath.Base(backupPath))
	}
	return true, msg, nil
}

// RemoveKeybinding deletes all lines binding the key in the given key table
// and collapses the blank lines left behind.
func (m *Merger) RemoveKeybinding(keybind string, mode types.BindingMode, createBackup bool) (bool, string, error) {
	if _, err := os.Stat(m.ConfigPath); os.IsNotExist(err) {
		return false, "Config file not found", nil
	}

	if createBackup {
		if _, err := m.BackupConfig(); err != nil {
			return false, "", err
		}
	}

	data, err := os.ReadFile(m.ConfigPath)
	if err != nil {
		return false, "", errs.Wrap(err, "could not read config")
	}
	content := string(data)

	pattern := duplicatePattern(keybind, mode, true)
	matches := pattern.FindAllString(content, -1)
	if len(matches) == 0 {
		return false, fmt.Sprintf("Binding for %s not found", keybind), nil
	}

	newContent := pattern.ReplaceAllString(content, "")
	newContent = blankRunRe.ReplaceAllString(newContent, "\n\n")

	if err := os.WriteFile(m.ConfigPath, []byte(newContent), 0644); err != nil {
		return false, "", errs.Wrap(err, "could not write config")
	}

	return true, fmt.Sprintf("Removed binding for %s", keybind), nil
}

// AddMultiple adds several bindings with a single upfront backup. Partial
// success is possible and reported per item.
func (m *Merger) AddMultiple(specs []BindingSpec, createBackup bool) ([]AddOutcome, error) {
	if createBackup {
		if _, err := os.Stat(m.ConfigPath); err == nil {
			if _, err := m.BackupConfig(); err != nil {
				return nil, err
			}
		}
	}

	outcomes := make([]AddOutcome, 0, len(specs))
	for _, spec := range specs {
		ok, msg, err := m.AddKeybinding(spec, false)
		if err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, AddOutcome{Keybind: spec.Keybind, OK: ok, Message: msg})
	}
	return outcomes, nil
}

// copyFile copies src to dst byte for byte.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

// titleCase capitalizes the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
