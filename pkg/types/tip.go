package types

// Tip is a curated tmux tip or keybinding recommendation.
type Tip struct {
	ID             string   `json:"id"`
	Category       string   `json:"category"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Keybind        string   `json:"keybind"`
	Command        string   `json:"command"`
	Difficulty     string   `json:"difficulty"` // beginner, intermediate, advanced
	Tags           []string `json:"tags,omitempty"`
	RelatedTo      []string `json:"related_to,omitempty"` // related tip IDs
	VimStyle       bool     `json:"vim_style,omitempty"`
	RequiresPrefix bool     `json:"requires_prefix"`
}
