package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tmuxtutor/internal/ai"
	"tmuxtutor/internal/config"
	"tmuxtutor/internal/log"
	"tmuxtutor/internal/sandbox"
	"tmuxtutor/internal/storage"
	"tmuxtutor/internal/tmux"
)

var (
	cfgFile string
	debug   bool
	cfg     *config.Config
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "tmuxtutor",
		Short:   "Learn tmux keybindings that fit your style",
		Version: version,
		Long: `tmuxtutor reads your tmux configuration, figures out how you like to
work, and helps you learn new keybindings through suggestions, practice
overlays, and sandbox challenges.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetDebug(debug)

			var err error
			if cfgFile != "" {
				cfg, err = config.LoadFile(cfgFile)
			} else {
				cfg, err = config.Load()
			}
			if err != nil {
				fmt.Printf("Warning: %v\n", err)
				fmt.Println("Using default settings. Run 'tmuxtutor setup' to configure.")
				cfg = config.Default()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/tmuxtutor/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(NewAnalyzeCmd())
	rootCmd.AddCommand(NewSuggestCmd())
	rootCmd.AddCommand(NewDiscoverCmd())
	rootCmd.AddCommand(NewBindCmd())
	rootCmd.AddCommand(NewPracticeCmd())
	rootCmd.AddCommand(NewSandboxCmd())
	rootCmd.AddCommand(NewChallengeCmd())
	rootCmd.AddCommand(NewProgressCmd())
	rootCmd.AddCommand(NewWatchCmd())
	rootCmd.AddCommand(NewSetupCmd())
	rootCmd.AddCommand(NewTuiCmd())

	return rootCmd
}

func loadTmuxConfig() *tmux.Config {
	return tmux.ParseFile(cfg.TmuxConf)
}

func openStore() (*storage.Store, error) {
	return storage.Open(cfg.DatabasePath)
}

func newSandboxManager() *sandbox.Manager {
	return sandbox.NewManager(cfg.Sandbox.Image, cfg.Sandbox.ContainerName, cfg.Sandbox.AttachSession)
}

// newAIClient builds the anthropic-backed client, or nil when no API key is
// configured.
func newAIClient() *ai.Client {
	client, err := ai.NewClient(os.Getenv("ANTHROPIC_API_KEY"), cfg.AI.Model, cfg.AI.MaxTokens)
	if err != nil {
		log.Debugf("AI client unavailable: %v", err)
		return nil
	}
	return client
}
