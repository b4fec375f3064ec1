package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"tmuxtutor/internal/log"
	"tmuxtutor/internal/overlay"
	"tmuxtutor/internal/practice"
)

// NewPracticeCmd creates the practice command
func NewPracticeCmd() *cobra.Command {
	var (
		keybind     string
		sequenceArg string
	)

	cmd := &cobra.Command{
		Use:   "practice",
		Short: "Practice keybindings with a fullscreen overlay",
		Long: `Open a fullscreen overlay that shows each keybind and waits for you to
press it. Escape exits early. Progress is recorded per keybind.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, err := practiceSteps(keybind, sequenceArg)
			if err != nil {
				return err
			}
			if len(steps) == 0 {
				return fmt.Errorf("provide --keybind or --sequence")
			}

			completed := overlay.New().Run(steps)

			logPractice(steps, completed)

			if completed {
				fmt.Println("All keybinds completed!")
				return nil
			}
			fmt.Println("Practice ended early.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&keybind, "keybind", "k", "", "single keybind to practice, e.g. M-H")
	cmd.Flags().StringVarP(&sequenceArg, "sequence", "s", "", `JSON array of steps: [{"key":"M-H","description":"Resize left"}]`)

	return cmd
}

func practiceSteps(keybind, sequenceArg string) ([]practice.Step, error) {
	if sequenceArg != "" {
		var steps []practice.Step
		if err := json.Unmarshal([]byte(sequenceArg), &steps); err != nil {
			return nil, fmt.Errorf("invalid sequence JSON: %w", err)
		}
		var out []practice.Step
		for _, s := range steps {
			if s.Keybind != "" {
				out = append(out, s)
			}
		}
		return out, nil
	}
	if keybind != "" {
		return []practice.Step{{Keybind: keybind}}, nil
	}
	return nil, nil
}

// logPractice records the session outcome, best effort. A missing database
// never fails the practice run.
func logPractice(steps []practice.Step, completed bool) {
	store, err := openStore()
	if err != nil {
		log.Debugf("progress not recorded: %v", err)
		return
	}
	defer store.Close()

	ctx := context.Background()
	for _, step := range steps {
		if err := store.LogPractice(ctx, step.Keybind, completed); err != nil {
			log.Debugf("failed to log practice for %s: %v", step.Keybind, err)
		}
	}
}
