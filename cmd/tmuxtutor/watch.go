package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tmuxtutor/internal/tmux"
	"tmuxtutor/internal/watch"
)

// NewWatchCmd creates the watch command
func NewWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch your tmux.conf and re-analyze on every change",
		RunE: func(cmd *cobra.Command, args []string) error {
			watcher, err := watch.New(cfg.TmuxConf, func(model *tmux.Config) {
				fmt.Printf("\n%s changed: %d bindings", model.Path, len(model.Keybindings))
				if model.Style.NavigationPattern != "" {
					fmt.Printf(", navigation %s", model.Style.NavigationPattern)
				}
				fmt.Println()
			})
			if err != nil {
				return err
			}

			if err := watcher.Start(); err != nil {
				return err
			}
			defer watcher.Stop()

			fmt.Printf("Watching %s. Press Ctrl+C to stop.\n", cfg.TmuxConf)

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			select {
			case <-sig:
			case <-cmd.Context().Done():
			}
			return nil
		},
	}
	return cmd
}
