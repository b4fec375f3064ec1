package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tmuxtutor/internal/ai"
	"tmuxtutor/internal/discovery"
	"tmuxtutor/internal/keys"
)

// NewSuggestCmd creates the suggest command
func NewSuggestCmd() *cobra.Command {
	var (
		category string
		limit    int
		withAI   bool
		smart    bool
		apply    int
	)

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest keybindings that fit your style",
		Long: `Suggest new keybindings based on your configuration. By default the
suggestions come from curated tips matched against your style; --ai asks the
model directly, and --smart also mines popular public configs first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			model := loadTmuxConfig()
			client := newAIClient()

			if smart {
				return runSmartSuggest(cmd, client, category, apply)
			}

			suggester := ai.NewSuggester(client)

			if withAI {
				result, err := suggester.AISuggestions(cmd.Context(), model, category)
				if err != nil {
					return err
				}
				if result.IsRaw() {
					fmt.Println(result.Raw)
					return nil
				}
				for _, s := range result.Suggestions {
					fmt.Printf("%-10s %s\n", s.Keybind, s.Command)
					if s.Description != "" {
						fmt.Printf("           %s\n", s.Description)
					}
				}
				return nil
			}

			tips := suggester.Suggestions(model, category, limit)
			if len(tips) == 0 {
				fmt.Println("No suggestions right now. Your config already covers the essentials.")
				return nil
			}

			fmt.Printf("Suggestions for your style (%d):\n\n", len(tips))
			for _, tip := range tips {
				fmt.Printf("  %-10s %s\n", tip.Keybind, tip.Name)
				fmt.Printf("  %-10s %s\n", "", tip.Description)
				fmt.Printf("  %-10s press: %s\n\n", "", keys.Display(tip.Keybind))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "limit to a category (navigation, resize, ...)")
	cmd.Flags().IntVarP(&limit, "limit", "l", 5, "maximum number of suggestions")
	cmd.Flags().BoolVar(&withAI, "ai", false, "generate suggestions with the AI model")
	cmd.Flags().BoolVar(&smart, "smart", false, "mine popular configs and ask the AI for grouped suggestions")
	cmd.Flags().IntVar(&apply, "apply", 0, "with --smart, add the Nth group to your tmux.conf (1-based)")

	return cmd
}

func runSmartSuggest(cmd *cobra.Command, client *ai.Client, category string, apply int) error {
	if client == nil {
		return fmt.Errorf("smart suggestions require ANTHROPIC_API_KEY")
	}

	scraper := discovery.NewScraper(time.Duration(cfg.Discovery.GithubTimeout) * time.Second)
	smart := ai.NewSmartSuggester(client, scraper, cfg.TmuxConf)

	groups, err := smart.SmartSuggestions(cmd.Context(), category)
	if err != nil {
		return err
	}

	for i, group := range groups {
		fmt.Printf("== %d. %s ==\n", i+1, group.Name)
		if group.Description != "" {
			fmt.Println(group.Description)
		}
		for _, kb := range group.Keybinds {
			fmt.Printf("  %-10s %s\n", kb.Keybind, kb.Command)
		}
		if group.Reasoning != "" {
			fmt.Printf("Why: %s\n", group.Reasoning)
		}
		fmt.Println()
	}

	if apply > 0 {
		if apply > len(groups) {
			return fmt.Errorf("group %d does not exist, got %d groups", apply, len(groups))
		}
		_, msg, err := smart.AddGroupToConfig(groups[apply-1], true)
		if err != nil {
			return err
		}
		fmt.Println(msg)
		fmt.Println("Reload tmux with: tmux source-file " + cfg.TmuxConf)
	}
	return nil
}
