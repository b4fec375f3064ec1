package types

// UserStyle captures the preferences inferred from a parsed configuration.
// It is derived data: recomputed on every parse, never edited on its own.
type UserStyle struct {
	PrefixKey         string // prefix key notation, "C-b" unless overridden
	UsesVimKeys       bool   // any navigation binding on h/j/k/l
	UsesArrowKeys     bool   // any navigation binding on Left/Right/Up/Down
	PrefersMeta       bool   // leans on Meta/Alt or no-prefix bindings
	PrefersCtrl       bool   // leans on Ctrl bindings
	NavigationPattern string // "M-hjkl", "hjkl (root)", or empty
}
