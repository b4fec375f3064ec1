package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"tmuxtutor/internal/keys"
	"tmuxtutor/pkg/types"
)

// NewAnalyzeCmd creates the analyze command
func NewAnalyzeCmd() *cobra.Command {
	var detailed bool
	var withAI bool

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze your tmux configuration",
		Long:  `Parse your tmux.conf and report the keybinding style it reflects.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			model := loadTmuxConfig()
			style := model.Style

			fmt.Printf("== Analysis for %s ==\n\n", model.Path)
			fmt.Printf("Prefix:   %s (%s)\n", style.PrefixKey, keys.Display(style.PrefixKey))
			fmt.Printf("Bindings: %d\n", len(model.Keybindings))

			var traits []string
			if style.UsesVimKeys {
				traits = append(traits, "vim-style navigation")
			}
			if style.UsesArrowKeys {
				traits = append(traits, "arrow-key navigation")
			}
			if style.PrefersMeta {
				traits = append(traits, "prefers Meta/no-prefix bindings")
			}
			if style.PrefersCtrl {
				traits = append(traits, "prefers Ctrl bindings")
			}
			if style.NavigationPattern != "" {
				traits = append(traits, fmt.Sprintf("navigation pattern %q", style.NavigationPattern))
			}
			if len(traits) == 0 {
				fmt.Println("Style:    defaults, nothing customized yet")
			} else {
				fmt.Println("Style:")
				for _, trait := range traits {
					fmt.Printf("  - %s\n", trait)
				}
			}

			if detailed {
				printBindings(model.Keybindings)
			}

			if withAI {
				return printAIAnalysis(cmd, model.Path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&detailed, "detailed", "v", false, "list every parsed binding")
	cmd.Flags().BoolVar(&withAI, "ai", false, "include an AI review of the config")

	return cmd
}

func printBindings(bindings []types.Keybinding) {
	byMode := make(map[types.BindingMode][]types.Keybinding)
	for _, kb := range bindings {
		byMode[kb.Mode] = append(byMode[kb.Mode], kb)
	}

	modes := make([]string, 0, len(byMode))
	for mode := range byMode {
		modes = append(modes, string(mode))
	}
	sort.Strings(modes)

	for _, mode := range modes {
		fmt.Printf("\n== %s bindings ==\n", mode)
		for _, kb := range byMode[types.BindingMode(mode)] {
			fmt.Printf("  %-12s %s\n", kb.KeyCombo(), kb.Command)
		}
	}
}

func printAIAnalysis(cmd *cobra.Command, confPath string) error {
	client := newAIClient()
	if client == nil {
		return fmt.Errorf("AI analysis requires ANTHROPIC_API_KEY")
	}

	content, err := os.ReadFile(confPath)
	if err != nil {
		return fmt.Errorf("could not read %s: %w", confPath, err)
	}

	analysis, err := client.AnalyzeConfig(cmd.Context(), string(content))
	if err != nil {
		return err
	}

	fmt.Println("\n== AI review ==")
	if analysis.IsRaw() {
		fmt.Println(analysis.Raw)
		return nil
	}
	if analysis.StyleSummary != "" {
		fmt.Printf("Summary: %s\n", analysis.StyleSummary)
	}
	for _, b := range analysis.NotableBindings {
		fmt.Printf("  * %s\n", b)
	}
	for _, p := range analysis.Patterns {
		fmt.Printf("  ~ %s\n", p)
	}
	for _, s := range analysis.Suggestions {
		fmt.Printf("  > %s\n", s)
	}
	return nil
}
