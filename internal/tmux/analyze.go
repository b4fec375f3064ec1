package tmux

import "tmuxtutor/pkg/types"

var (
	vimKeys   = map[string]bool{"h": true, "j": true, "k": true, "l": true}
	arrowKeys = map[string]bool{"Left": true, "Right": true, "Up": true, "Down": true}
)

// DetectStyle infers the user's keybinding style from parsed bindings and
// options. Deterministic: the same inputs always produce the same style.
//
// The thresholds are tuned heuristics, preserved exactly: prefers-meta is an
// OR of modifier counts and root-binding share (users who favor no-prefix
// bindings count as Meta-leaning even without heavy Meta use), and the
// "M-hjkl" pattern is checked before "hjkl (root)" when both would qualify.
func DetectStyle(keybindings []types.Keybinding, options map[string]string) types.UserStyle {
	style := types.UserStyle{PrefixKey: "C-b"}

	if prefix, ok := options["prefix"]; ok {
		style.PrefixKey = prefix
	}

	var navBindings []types.Keybinding
	for _, kb := range keybindings {
		if kb.IsNavigation() {
			navBindings = append(navBindings, kb)
		}
	}

	for _, kb := range navBindings {
		if vimKeys[kb.Key] {
			style.UsesVimKeys = true
		}
		if arrowKeys[kb.Key] {
			style.UsesArrowKeys = true
		}
	}

	var metaCount, ctrlCount, rootCount int
	for _, kb := range keybindings {
		if kb.HasModifier(types.ModMeta) {
			metaCount++
		}
		if kb.HasModifier(types.ModCtrl) {
			ctrlCount++
		}
		if kb.Mode == types.ModeRoot {
			rootCount++
		}
	}

	style.PrefersMeta = metaCount > ctrlCount || rootCount > len(keybindings)/3
	style.PrefersCtrl = ctrlCount > metaCount

	if style.UsesVimKeys {
		var metaVim, rootVim int
		for _, kb := range navBindings {
			if !vimKeys[kb.Key] {
				continue
			}
			if kb.HasModifier(types.ModMeta) {
				metaVim++
			}
			if kb.Mode == types.ModeRoot {
				rootVim++
			}
		}
		if metaVim >= 3 {
			style.NavigationPattern = "M-hjkl"
		} else if rootVim >= 3 {
			style.NavigationPattern = "hjkl (root)"
		}
	}

	return style
}
