package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tmuxtutor/internal/challenges"
	"tmuxtutor/internal/storage"
)

// NewProgressCmd creates the progress command
func NewProgressCmd() *cobra.Command {
	var recommend bool

	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show your learning progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			tracker := storage.NewTracker(store)
			summary, err := tracker.Summary(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Println("== Learning progress ==")
			fmt.Printf("Challenges completed: %d\n", summary.ChallengesCompleted)
			fmt.Printf("Keybinds learned:     %d (%d integrated into your config)\n",
				summary.KeybindsLearned, summary.KeybindsIntegrated)
			fmt.Printf("Practice sessions:    %d\n", summary.TotalPractice)
			if summary.CurrentStreak > 0 {
				fmt.Printf("Current streak:       %d days\n", summary.CurrentStreak)
			}

			if len(summary.MostPracticed) > 0 {
				fmt.Println("\nMost practiced:")
				for _, stats := range summary.MostPracticed {
					fmt.Printf("  %-10s %d attempts, %.0f%% success\n",
						stats.Keybind, stats.TotalAttempts, stats.SuccessRate()*100)
				}
			}

			if len(summary.RecentKeybinds) > 0 {
				fmt.Println("\nRecently learned:")
				for _, kb := range summary.RecentKeybinds {
					fmt.Printf("  %-10s %s\n", kb.Keybind, kb.Command)
				}
			}

			if recommend {
				recs, err := tracker.Recommendations(cmd.Context(), challenges.Builtin())
				if err != nil {
					return err
				}
				if len(recs) > 0 {
					fmt.Println("\nNext steps:")
					for _, rec := range recs {
						fmt.Printf("  [%s] %s - %s\n", rec.Type, rec.Name, rec.Reason)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&recommend, "recommend", "r", false, "include recommended next steps")

	return cmd
}
