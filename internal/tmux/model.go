package tmux

import "tmuxtutor/pkg/types"

// Config is a parsed tmux configuration. It is built fresh on every parse;
// re-parsing replaces the whole model rather than updating it in place.
type Config struct {
	Path        string            // source file path
	Keybindings []types.Keybinding // source line order
	RawOptions  map[string]string // option name -> value, last write wins
	Style       types.UserStyle   // inferred once at parse time
}

// BindingsForMode returns all keybindings in the given key table,
// preserving source order.
func (c *Config) BindingsForMode(mode types.BindingMode) []types.Keybinding {
	var out []types.Keybinding
	for _, kb := range c.Keybindings {
		if kb.Mode == mode {
			out = append(out, kb)
		}
	}
	return out
}

// NavigationBindings returns all navigation-related keybindings.
func (c *Config) NavigationBindings() []types.Keybinding {
	var out []types.Keybinding
	for _, kb := range c.Keybindings {
		if kb.IsNavigation() {
			out = append(out, kb)
		}
	}
	return out
}

// HasBinding reports whether the key combination is already bound in the
// given key table. The same combo may coexist across tables; tmux's binding
// tables are mode-scoped.
func (c *Config) HasBinding(keyCombo string, mode types.BindingMode) bool {
	for _, kb := range c.Keybindings {
		if kb.KeyCombo() == keyCombo && kb.Mode == mode {
			return true
		}
	}
	return false
}
