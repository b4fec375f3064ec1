package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"tmuxtutor/internal/tmux"
	"tmuxtutor/pkg/types"
)

// NewBindCmd creates the bind command group
func NewBindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bind",
		Short: "Add or remove keybindings in your tmux.conf",
	}

	cmd.AddCommand(newBindAddCmd())
	cmd.AddCommand(newBindRemoveCmd())
	cmd.AddCommand(newBindBackupsCmd())
	cmd.AddCommand(newBindRestoreCmd())
	return cmd
}

func newMerger() *tmux.Merger {
	m := tmux.NewMerger(cfg.TmuxConf)
	if cfg.BackupDir != "" {
		m.BackupDir = cfg.BackupDir
	}
	return m
}

func newBindAddCmd() *cobra.Command {
	var (
		description string
		mode        string
		category    string
		noBackup    bool
	)

	cmd := &cobra.Command{
		Use:   "add <keybind> <command>",
		Short: "Add a keybinding to your tmux.conf",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			merger := newMerger()
			ok, msg, err := merger.AddKeybinding(tmux.BindingSpec{
				Keybind:     args[0],
				Command:     args[1],
				Description: description,
				Mode:        types.BindingMode(mode),
				Category:    category,
			}, !noBackup)
			if err != nil {
				return err
			}
			fmt.Println(msg)
			if ok {
				fmt.Println("Reload tmux with: tmux source-file " + merger.ConfigPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "comment placed above the binding")
	cmd.Flags().StringVarP(&mode, "mode", "m", "root", "binding mode: root, prefix, copy-mode, copy-mode-vi")
	cmd.Flags().StringVarP(&category, "category", "c", "", "config section to place the binding in")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "skip the automatic backup")

	return cmd
}

func newBindRemoveCmd() *cobra.Command {
	var (
		mode     string
		noBackup bool
	)

	cmd := &cobra.Command{
		Use:   "remove <keybind>",
		Short: "Remove a keybinding from your tmux.conf",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			merger := newMerger()
			_, msg, err := merger.RemoveKeybinding(args[0], types.BindingMode(mode), !noBackup)
			if err != nil {
				return err
			}
			fmt.Println(msg)
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "root", "binding mode the keybind lives in")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "skip the automatic backup")

	return cmd
}

func newBindBackupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backups",
		Short: "List config backups, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			merger := newMerger()
			backups, err := merger.ListBackups()
			if err != nil {
				return err
			}
			if len(backups) == 0 {
				fmt.Println("No backups yet.")
				return nil
			}
			for _, b := range backups {
				fmt.Println(filepath.Base(b))
			}
			return nil
		},
	}
}

func newBindRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore [backup]",
		Short: "Restore your tmux.conf from a backup (latest by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			merger := newMerger()

			var target string
			if len(args) == 1 {
				target = filepath.Join(merger.BackupDir, filepath.Base(args[0]))
			} else {
				backups, err := merger.ListBackups()
				if err != nil {
					return err
				}
				if len(backups) == 0 {
					return fmt.Errorf("no backups to restore")
				}
				target = backups[0]
			}

			if err := merger.RestoreBackup(target); err != nil {
				return err
			}
			fmt.Printf("Restored %s from %s\n", merger.ConfigPath, filepath.Base(target))
			return nil
		},
	}
}
