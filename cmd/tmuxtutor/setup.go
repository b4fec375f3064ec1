package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"tmuxtutor/internal/config"
	"tmuxtutor/internal/tmux"
)

// NewSetupCmd creates the setup command
func NewSetupCmd() *cobra.Command {
	var (
		force        bool
		starter      bool
		buildSandbox string
	)

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Create the tmuxtutor configuration",
		Long: `Write the default tmuxtutor configuration to ~/.config/tmuxtutor. With
--starter-config a canonical tmux.conf is generated when none exists, and
--build-sandbox builds the practice container image.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := os.UserHomeDir()
			if err != nil {
				return err
			}

			configPath := cfgFile
			if configPath == "" {
				configPath = filepath.Join(home, ".config", "tmuxtutor", "config.yaml")
			}

			if _, err := os.Stat(configPath); err == nil && !force {
				fmt.Printf("Config already exists at %s (use --force to overwrite).\n", configPath)
			} else {
				if err := config.Save(config.Default(), configPath); err != nil {
					return err
				}
				fmt.Printf("Wrote %s\n", configPath)
			}

			if starter {
				if err := writeStarterConfig(cfg.TmuxConf); err != nil {
					return err
				}
			}

			if buildSandbox != "" {
				manager := newSandboxManager()
				fmt.Printf("Building sandbox image %s...\n", cfg.Sandbox.Image)
				if err := manager.BuildImage(cmd.Context(), buildSandbox); err != nil {
					return err
				}
				fmt.Println("Sandbox image built.")
			}

			fmt.Println("\nSetup complete. Try 'tmuxtutor analyze' next.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config")
	cmd.Flags().BoolVar(&starter, "starter-config", false, "generate a starter tmux.conf if none exists")
	cmd.Flags().StringVar(&buildSandbox, "build-sandbox", "", "build the sandbox image from this Dockerfile directory")

	return cmd
}

func writeStarterConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		fmt.Printf("%s already exists, leaving it alone.\n", path)
		return nil
	}
	if err := os.WriteFile(path, []byte(tmux.GenerateDefaultConfig()), 0644); err != nil {
		return err
	}
	fmt.Printf("Wrote starter config to %s\n", path)
	return nil
}
