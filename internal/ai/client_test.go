package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	t.Run("fenced json block", func(t *testing.T) {
		response := "Here you go:\n```json\n{\"a\": 1}\n```\nEnjoy."
		assert.Equal(t, `{"a": 1}`, extractJSON(response))
	})

	t.Run("fence without language tag", func(t *testing.T) {
		response := "```\n[1, 2]\n```"
		assert.Equal(t, "[1, 2]", extractJSON(response))
	})

	t.Run("bare json passes through trimmed", func(t *testing.T) {
		assert.Equal(t, `{"a": 1}`, extractJSON("  {\"a\": 1}\n"))
	})
}

func TestParseSuggestions(t *testing.T) {
	t.Run("valid list", func(t *testing.T) {
		response := "```json\n[" +
			`{"keybind": "M-z", "command": "resize-pane -Z", "description": "Zoom", "reasoning": "matches meta style"},` +
			`{"keybind": "", "command": "kill-pane", "description": "dropped, no keybind"}` +
			"]\n```"

		result := parseSuggestions(response)
		assert.False(t, result.IsRaw())
		require.Len(t, result.Suggestions, 1)
		assert.Equal(t, "M-z", result.Suggestions[0].Keybind)
		assert.Equal(t, "resize-pane -Z", result.Suggestions[0].Command)
	})

	t.Run("prose falls back to raw", func(t *testing.T) {
		result := parseSuggestions("I'd suggest trying M-z for zooming!")
		assert.True(t, result.IsRaw())
		assert.Empty(t, result.Suggestions)
	})

	t.Run("valid json with no usable entries is raw", func(t *testing.T) {
		result := parseSuggestions(`[{"description": "nothing bound"}]`)
		assert.True(t, result.IsRaw())
	})
}

func TestParseGeneratedChallenge(t *testing.T) {
	t.Run("valid challenge", func(t *testing.T) {
		response := "```json\n" + `{
  "objective": "Navigate to the left pane",
  "setup": {"panes": 4, "layout": "tiled", "start_pane": 0, "target_pane": 2},
  "expected_keys": ["M-h"],
  "success_criteria": "Active pane is now on the left",
  "hint": "Press M-h to move left"
}` + "\n```"

		generated := parseGeneratedChallenge(response)
		require.False(t, generated.IsRaw())
		assert.Equal(t, "Navigate to the left pane", generated.Objective)
		assert.Equal(t, 4, generated.Setup.Panes)
		assert.Equal(t, []string{"M-h"}, generated.ExpectedKeys)
	})

	t.Run("missing objective is raw", func(t *testing.T) {
		generated := parseGeneratedChallenge(`{"hint": "try harder"}`)
		assert.True(t, generated.IsRaw())
	})

	t.Run("broken json is raw", func(t *testing.T) {
		generated := parseGeneratedChallenge("{not json")
		assert.True(t, generated.IsRaw())
		assert.Equal(t, "{not json", generated.Raw)
	})
}

func TestParseKeybindGroups(t *testing.T) {
	t.Run("grouped response", func(t *testing.T) {
		response := "```json\n" + `{
  "groups": [
    {
      "name": "Pane Resize Controls",
      "description": "Resize in all four directions",
      "keybinds": [
        {"keybind": "M-H", "command": "resize-pane -L 5", "description": "Resize left"},
        {"keybind": "M-L", "command": "resize-pane -R 5", "description": "Resize right"}
      ],
      "reasoning": "Completes the user's M-hjkl navigation set"
    }
  ]
}` + "\n```"

		groups := parseKeybindGroups(response)
		require.Len(t, groups, 1)
		assert.Equal(t, "Pane Resize Controls", groups[0].Name)
		require.Len(t, groups[0].Keybinds, 2)
		assert.Equal(t, "M-H", groups[0].Keybinds[0].Keybind)
	})

	t.Run("prose becomes a single raw group", func(t *testing.T) {
		groups := parseKeybindGroups("You should try resizing with M-H!")
		require.Len(t, groups, 1)
		assert.Equal(t, "AI Suggestions", groups[0].Name)
		assert.Empty(t, groups[0].Keybinds)
		assert.Contains(t, groups[0].Reasoning, "M-H")
	})

	t.Run("unnamed group gets a default name", func(t *testing.T) {
		groups := parseKeybindGroups(`{"groups": [{"keybinds": []}]}`)
		require.Len(t, groups, 1)
		assert.Equal(t, "Suggestions", groups[0].Name)
	})
}

func TestNewClient(t *testing.T) {
	t.Run("no key anywhere errors", func(t *testing.T) {
		t.Setenv("ANTHROPIC_API_KEY", "")
		_, err := NewClient("", "", 0)
		assert.Error(t, err)
	})

	t.Run("env var key accepted", func(t *testing.T) {
		t.Setenv("ANTHROPIC_API_KEY", "test-key")
		c, err := NewClient("", "", 0)
		require.NoError(t, err)
		assert.Equal(t, "claude-sonnet-4-20250514", c.model)
		assert.Equal(t, int64(1024), c.maxTokens)
	})
}
