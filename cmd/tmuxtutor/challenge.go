package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tmuxtutor/internal/challenges"
	"tmuxtutor/internal/log"
	"tmuxtutor/pkg/types"
)

// NewChallengeCmd creates the challenge command group
func NewChallengeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "challenge",
		Short: "Run interactive challenges in the sandbox",
	}

	cmd.AddCommand(newChallengeListCmd())
	cmd.AddCommand(newChallengeRunCmd())
	return cmd
}

func newChallengeListCmd() *cobra.Command {
	var (
		difficulty    string
		challengeType string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available challenges",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := challenges.NewEngine(newSandboxManager())
			list := engine.Challenges(challenges.Filter{
				Difficulty: difficulty,
				Type:       types.ChallengeType(challengeType),
			})

			if len(list) == 0 {
				fmt.Println("No challenges match those filters.")
				return nil
			}

			for _, c := range list {
				fmt.Printf("%-18s [%s/%s] %s\n", c.ID, c.Type, c.Difficulty, c.Name)
				fmt.Printf("%-18s %s (%s)\n\n", "", c.Objective, c.Keybind)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", "", "filter by difficulty")
	cmd.Flags().StringVarP(&challengeType, "type", "t", "", "filter by type (navigation, split, ...)")

	return cmd
}

func newChallengeRunCmd() *cobra.Command {
	var (
		timeoutSecs  int
		intervalSecs int
		forKeybind   string
	)

	cmd := &cobra.Command{
		Use:   "run [challenge-id]",
		Short: "Run a challenge and poll the sandbox until you complete it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := challenges.NewEngine(newSandboxManager())

			var challenge types.Challenge
			switch {
			case len(args) == 1:
				c, ok := engine.ByID(args[0])
				if !ok {
					return fmt.Errorf("unknown challenge %q, run 'tmuxtutor challenge list'", args[0])
				}
				challenge = c
			case forKeybind != "":
				c, ok := engine.ForKeybind(forKeybind)
				if !ok {
					generated, err := generateChallenge(cmd.Context(), forKeybind)
					if err != nil {
						return err
					}
					c = generated
				}
				challenge = c
			default:
				return fmt.Errorf("provide a challenge id or --keybind")
			}

			engine.OnProgress(func(msg string) { fmt.Println(msg) })

			result, err := engine.RunLoop(cmd.Context(), challenge,
				time.Duration(timeoutSecs)*time.Second,
				time.Duration(intervalSecs)*time.Second)
			if err != nil {
				return err
			}

			fmt.Println()
			fmt.Println(result.Message)
			if result.Success {
				fmt.Printf("Completed in %s\n", result.TimeTaken.Round(time.Second))
				recordChallenge(result)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&timeoutSecs, "timeout", 300, "seconds before the challenge fails")
	cmd.Flags().IntVar(&intervalSecs, "interval", 1, "seconds between completion checks")
	cmd.Flags().StringVarP(&forKeybind, "keybind", "k", "", "pick the challenge that teaches this keybind")

	return cmd
}

// generateChallenge builds a challenge for a keybind with no builtin. The
// command comes from the user's config; the challenge from the AI model when
// a key is configured, otherwise from command-family templates.
func generateChallenge(ctx context.Context, keybind string) (types.Challenge, error) {
	command := ""
	for _, kb := range loadTmuxConfig().Keybindings {
		if kb.KeyCombo() == keybind {
			command = kb.Command
			break
		}
	}
	if command == "" {
		return types.Challenge{}, fmt.Errorf("%q is not bound in your config and has no builtin challenge", keybind)
	}

	generated, err := challenges.NewGenerator(newAIClient()).ForKeybind(ctx, keybind, command, "")
	if err != nil {
		return types.Challenge{}, err
	}
	if generated.IsRaw() {
		return types.Challenge{}, fmt.Errorf("could not generate a challenge for %q", keybind)
	}
	return generated.ToChallenge(keybind, command, "beginner"), nil
}

// recordChallenge persists a successful run, best effort.
func recordChallenge(result challenges.Result) {
	store, err := openStore()
	if err != nil {
		log.Debugf("challenge result not recorded: %v", err)
		return
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.MarkChallengeCompleted(ctx, result.Challenge.ID, result.TimeTaken.Seconds(), result.Attempts); err != nil {
		log.Debugf("failed to record challenge: %v", err)
		return
	}
	if err := store.AddLearnedKeybind(ctx, result.Challenge.Keybind, result.Challenge.Command, result.Challenge.Description); err != nil {
		log.Debugf("failed to record learned keybind: %v", err)
	}
}
