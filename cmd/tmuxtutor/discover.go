package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tmuxtutor/internal/discovery"
)

// NewDiscoverCmd creates the discover command
func NewDiscoverCmd() *cobra.Command {
	var (
		category     string
		difficulty   string
		vimOnly      bool
		noPrefixOnly bool
		tagGlob      string
		exportPath   string
	)

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Browse curated tmux tips",
		Long:  `Browse the curated tip library, optionally filtered by category, difficulty, or tag.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if exportPath != "" {
				if err := discovery.SaveTips(exportPath); err != nil {
					return err
				}
				fmt.Printf("Exported tip library to %s\n", exportPath)
				return nil
			}

			tips := discovery.Tips(discovery.Filter{
				Category:     category,
				Difficulty:   difficulty,
				VimOnly:      vimOnly,
				NoPrefixOnly: noPrefixOnly,
				TagGlob:      tagGlob,
			})

			if len(tips) == 0 {
				fmt.Println("No tips match those filters.")
				return nil
			}

			for _, tip := range tips {
				fmt.Printf("%-24s [%s/%s]\n", tip.ID, tip.Category, tip.Difficulty)
				fmt.Printf("  %s\n", tip.Name)
				fmt.Printf("  %-10s %s\n\n", tip.Keybind, tip.Command)
			}
			fmt.Printf("%d tips. Categories: %v\n", len(tips), discovery.Categories())
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "filter by category")
	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", "", "filter by difficulty")
	cmd.Flags().BoolVar(&vimOnly, "vim", false, "only vim-style tips")
	cmd.Flags().BoolVar(&noPrefixOnly, "no-prefix", false, "only tips that work without the prefix key")
	cmd.Flags().StringVar(&tagGlob, "tag", "", "filter by tag glob, e.g. 'clip*'")
	cmd.Flags().StringVar(&exportPath, "export", "", "write the tip library to a JSON file and exit")

	cmd.AddCommand(newDiscoverGithubCmd())
	return cmd
}

func newDiscoverGithubCmd() *cobra.Command {
	var (
		repos    []string
		search   string
		minStars int
	)

	cmd := &cobra.Command{
		Use:   "github",
		Short: "Scrape keybindings from popular tmux configs on GitHub",
		RunE: func(cmd *cobra.Command, args []string) error {
			timeout := time.Duration(cfg.Discovery.GithubTimeout) * time.Second
			scraper := discovery.NewScraper(timeout, repos...)

			if search != "" {
				found, err := scraper.SearchRepos(cmd.Context(), search, minStars, 10)
				if err != nil {
					return err
				}
				for _, repo := range found {
					fmt.Printf("%-40s %6d stars\n", repo.FullName, repo.Stars)
					if repo.Description != "" {
						fmt.Printf("  %s\n", repo.Description)
					}
				}
				return nil
			}

			fmt.Println("Fetching popular tmux configs...")
			scraped, err := scraper.Scrape(cmd.Context())
			if err != nil {
				return err
			}
			if len(scraped) == 0 {
				fmt.Println("No keybindings found. Check your network connection.")
				return nil
			}

			current := ""
			for _, kb := range scraped {
				if kb.SourceRepo != current {
					current = kb.SourceRepo
					fmt.Printf("\n== %s ==\n", current)
				}
				fmt.Printf("  %-14s %s\n", kb.Keybind, kb.Command)
				if kb.Context != "" {
					fmt.Printf("  %-14s (%s)\n", "", kb.Context)
				}
			}
			fmt.Printf("\n%d keybindings from %d repos\n", len(scraped), countRepos(scraped))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&repos, "repo", nil, "override the repo list (owner/name)")
	cmd.Flags().StringVar(&search, "search", "", "search GitHub for tmux config repos instead of scraping")
	cmd.Flags().IntVar(&minStars, "min-stars", 100, "minimum stars for --search results")
	return cmd
}

func countRepos(scraped []discovery.ScrapedKeybind) int {
	seen := make(map[string]bool)
	for _, kb := range scraped {
		seen[kb.SourceRepo] = true
	}
	return len(seen)
}
