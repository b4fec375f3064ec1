package types

// Suggestion is one keybinding proposed by the AI layer.
type Suggestion struct {
	Keybind     string `json:"keybind"`
	Command     string `json:"command"`
	Description string `json:"description"`
	Reasoning   string `json:"reasoning,omitempty"`
}

// SuggestionResult is the validation boundary for LLM suggestion output.
// Either Suggestions holds validated entries, or Raw carries the unparsed
// response so callers can still show something.
type SuggestionResult struct {
	Suggestions []Suggestion
	Raw         string
}

// IsRaw reports whether the result fell back to unparsed output.
func (r SuggestionResult) IsRaw() bool { return r.Raw != "" }

// KeybindGroup is a set of related suggestions meant to be adopted and
// practiced together (e.g. all four resize directions).
type KeybindGroup struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Keybinds    []Suggestion `json:"keybinds"`
	Reasoning   string       `json:"reasoning"`
}

// ConfigAnalysis is the structured form of an AI config review.
type ConfigAnalysis struct {
	StyleSummary    string   `json:"style_summary"`
	NotableBindings []string `json:"notable_bindings"`
	Patterns        []string `json:"patterns"`
	Suggestions     []string `json:"suggestions"`
	Raw             string   `json:"-"` // unparsed response when JSON failed
}

// IsRaw reports whether the analysis fell back to unparsed output.
func (a ConfigAnalysis) IsRaw() bool { return a.Raw != "" }
