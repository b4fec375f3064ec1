package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewSandboxCmd creates the sandbox command group
func NewSandboxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sandbox",
		Short: "Manage the disposable tmux practice container",
	}

	cmd.AddCommand(newSandboxStartCmd())
	cmd.AddCommand(newSandboxStopCmd())
	cmd.AddCommand(newSandboxStatusCmd())
	cmd.AddCommand(newSandboxBuildCmd())
	return cmd
}

func newSandboxStartCmd() *cobra.Command {
	var (
		withConfig   bool
		testBindings string
	)

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the practice sandbox",
		RunE: func(cmd *cobra.Command, args []string) error {
			manager := newSandboxManager()

			userConfig := ""
			if withConfig {
				data, err := os.ReadFile(cfg.TmuxConf)
				if err != nil {
					return fmt.Errorf("could not read %s: %w", cfg.TmuxConf, err)
				}
				userConfig = string(data)
			}

			id, err := manager.Start(cmd.Context(), userConfig, testBindings)
			if err != nil {
				return err
			}

			fmt.Printf("Sandbox started (%.12s)\n", id)
			fmt.Println("Attach with:", manager.AttachCommand())
			return nil
		},
	}

	cmd.Flags().BoolVar(&withConfig, "with-config", false, "mount your tmux.conf into the sandbox")
	cmd.Flags().StringVar(&testBindings, "bindings", "", "extra bind lines to source inside the sandbox")

	return cmd
}

func newSandboxStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the practice sandbox",
		RunE: func(cmd *cobra.Command, args []string) error {
			manager := newSandboxManager()
			if err := manager.Stop(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Sandbox stopped.")
			return nil
		},
	}
}

func newSandboxStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show sandbox container status",
		RunE: func(cmd *cobra.Command, args []string) error {
			manager := newSandboxManager()

			if !manager.Available(cmd.Context()) {
				fmt.Println("Docker daemon not reachable.")
				return nil
			}

			status := manager.GetStatus(cmd.Context())
			fmt.Printf("Image:     %s\n", status.Image)
			fmt.Printf("State:     %s\n", status.State)
			if status.ID != "" {
				fmt.Printf("Container: %s\n", status.ID)
			}
			if status.Running {
				fmt.Println("Attach with:", manager.AttachCommand())
			}
			return nil
		},
	}
}

func newSandboxBuildCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the sandbox image from a Dockerfile directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			manager := newSandboxManager()
			fmt.Printf("Building %s from %s...\n", cfg.Sandbox.Image, dir)
			if err := manager.BuildImage(cmd.Context(), dir); err != nil {
				return err
			}
			fmt.Println("Image built.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "directory containing the Dockerfile")
	return cmd
}
