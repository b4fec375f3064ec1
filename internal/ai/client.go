// Package ai wraps the Anthropic API for config analysis, keybinding
// suggestions, and challenge generation. Model output is treated as
// untrusted: every response passes through a validation boundary that falls
// back to raw text when the JSON does not parse.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/tidwall/gjson"

	"tmuxtutor/pkg/types"
)

// jsonBlockRe pulls a JSON payload out of a markdown code fence.
var jsonBlockRe = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)\\s*```")

// Client wraps Anthropic API interactions.
type Client struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// NewClient creates a client. An empty apiKey falls back to the
// ANTHROPIC_API_KEY environment variable.
func NewClient(apiKey, model string, maxTokens int) (*Client, error) {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic API key required: set ANTHROPIC_API_KEY or pass api_key")
	}
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	return &Client{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		maxTokens: int64(maxTokens),
	}, nil
}

// Complete sends one user prompt with an optional system prompt and returns
// the text of the response.
func (c *Client) Complete(ctx context.Context, prompt, system string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic request failed: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		sb.WriteString(block.Text)
	}
	return sb.String(), nil
}

// extractJSON strips a surrounding markdown code fence if present.
func extractJSON(response string) string {
	if m := jsonBlockRe.FindStringSubmatch(response); m != nil {
		return m[1]
	}
	return strings.TrimSpace(response)
}

const analyzeSystem = `You are a tmux expert. Analyze the given tmux configuration and provide:
1. A summary of the user's style (vim vs arrow keys, prefix choice, etc.)
2. Notable keybindings they have
3. Common patterns they follow
4. Gaps or missing essential keybindings

Respond in JSON format with keys: style_summary, notable_bindings, patterns, suggestions`

// AnalyzeConfig asks the model to review raw config text. A response that is
// not valid JSON comes back with Raw set instead of failing.
func (c *Client) AnalyzeConfig(ctx context.Context, configContent string) (types.ConfigAnalysis, error) {
	prompt := fmt.Sprintf("Analyze this tmux configuration:\n\n```\n%s\n```\n\nProvide your analysis in JSON format.", configContent)

	response, err := c.Complete(ctx, prompt, analyzeSystem)
	if err != nil {
		return types.ConfigAnalysis{}, err
	}

	payload := extractJSON(response)
	if !gjson.Valid(payload) {
		return types.ConfigAnalysis{Raw: response}, nil
	}

	parsed := gjson.Parse(payload)
	analysis := types.ConfigAnalysis{
		StyleSummary: parsed.Get("style_summary").String(),
	}
	for _, v := range parsed.Get("notable_bindings").Array() {
		analysis.NotableBindings = append(analysis.NotableBindings, v.String())
	}
	for _, v := range parsed.Get("patterns").Array() {
		analysis.Patterns = append(analysis.Patterns, v.String())
	}
	for _, v := range parsed.Get("suggestions").Array() {
		analysis.Suggestions = append(analysis.Suggestions, v.String())
	}

	if analysis.StyleSummary == "" && len(analysis.NotableBindings) == 0 {
		analysis.Raw = response
	}
	return analysis, nil
}

const suggestSystem = `You are a tmux expert helping users discover new keybindings.
Given the user's style and existing bindings, suggest complementary keybindings that:
1. Match their style (vim keys, arrow keys, modifier preferences)
2. Don't conflict with existing bindings
3. Are genuinely useful for productivity
4. Have clear mnemonics or patterns

Respond in JSON format as a list of objects with: keybind, command, description, reasoning`

// SuggestKeybinds asks the model for suggestions shaped to the user's style.
func (c *Client) SuggestKeybinds(ctx context.Context, style types.UserStyle, existing []string, category string) (types.SuggestionResult, error) {
	styleJSON, err := json.Marshal(style)
	if err != nil {
		return types.SuggestionResult{}, err
	}

	var categoryFocus string
	if category != "" {
		categoryFocus = fmt.Sprintf("\nFocus on %s keybindings.", category)
	}

	prompt := fmt.Sprintf(
		"User's style: %s\n\nExisting bindings: %s\n%s\n\nSuggest 5 new keybindings that would complement their setup. Respond in JSON format.",
		styleJSON, strings.Join(existing, ", "), categoryFocus,
	)

	response, err := c.Complete(ctx, prompt, suggestSystem)
	if err != nil {
		return types.SuggestionResult{}, err
	}

	return parseSuggestions(response), nil
}

// parseSuggestions validates suggestion JSON, falling back to the raw
// response text.
func parseSuggestions(response string) types.SuggestionResult {
	payload := extractJSON(response)
	if !gjson.Valid(payload) {
		return types.SuggestionResult{Raw: response}
	}

	var suggestions []types.Suggestion
	for _, item := range gjson.Parse(payload).Array() {
		s := types.Suggestion{
			Keybind:     item.Get("keybind").String(),
			Command:     item.Get("command").String(),
			Description: item.Get("description").String(),
			Reasoning:   item.Get("reasoning").String(),
		}
		if s.Keybind == "" || s.Command == "" {
			continue
		}
		suggestions = append(suggestions, s)
	}

	if len(suggestions) == 0 {
		return types.SuggestionResult{Raw: response}
	}
	return types.SuggestionResult{Suggestions: suggestions}
}

const challengeSystem = `You are creating interactive tmux learning challenges.
Create a mini-challenge that helps users practice and remember a keybinding.

The challenge should have:
1. A clear objective
2. A starting state (how many panes, what's in them)
3. Expected actions the user should take
4. Success criteria
5. A hint if they get stuck

Respond in JSON with: objective, setup, expected_keys, success_criteria, hint`

// GenerateChallenge asks the model for a practice challenge for one keybind.
func (c *Client) GenerateChallenge(ctx context.Context, keybind, command, difficulty string) (types.GeneratedChallenge, error) {
	prompt := fmt.Sprintf(
		"Create a %s challenge for learning:\nKeybind: %s\nCommand: %s\n\nThe challenge should help them understand what this keybind does and practice using it.\nRespond in JSON format.",
		difficulty, keybind, command,
	)

	response, err := c.Complete(ctx, prompt, challengeSystem)
	if err != nil {
		return types.GeneratedChallenge{}, err
	}

	return parseGeneratedChallenge(response), nil
}

func parseGeneratedChallenge(response string) types.GeneratedChallenge {
	payload := extractJSON(response)

	var generated types.GeneratedChallenge
	if err := json.Unmarshal([]byte(payload), &generated); err != nil || generated.Objective == "" {
		return types.GeneratedChallenge{Raw: response}
	}
	return generated
}
