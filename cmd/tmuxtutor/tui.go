package main

import (
	"github.com/spf13/cobra"

	"tmuxtutor/internal/ai"
	"tmuxtutor/internal/log"
	"tmuxtutor/internal/storage"
	"tmuxtutor/internal/tui"
)

// NewTuiCmd creates the tui command
func NewTuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive terminal interface",
		RunE: func(cmd *cobra.Command, args []string) error {
			model := loadTmuxConfig()
			suggester := ai.NewSuggester(newAIClient())

			var tracker *storage.Tracker
			store, err := openStore()
			if err != nil {
				log.Debugf("progress view disabled: %v", err)
			} else {
				defer store.Close()
				tracker = storage.NewTracker(store)
			}

			return tui.Run(model, suggester, tracker)
		},
	}
}
