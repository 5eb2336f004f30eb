package command

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/pixil98/go-peake/internal/client"
	"github.com/spf13/cobra"
)

func newPruneCommand(root *rootOptions) *cobra.Command {
	var days int
	var yes bool

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete characters that have not logged in recently",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 1 {
				return fmt.Errorf("--days must be at least 1")
			}
			if !yes {
				ok, err := client.PromptYN(bufio.NewReader(cmd.InOrStdin()), cmd.OutOrStdout(),
					fmt.Sprintf("Delete players inactive for more than %d days? (y/n) ", days))
				if err != nil {
					return err
				}
				if !ok {
					_, err := fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return err
				}
			}

			dir, err := root.directory()
			if err != nil {
				return err
			}
			removed, err := dir.PruneInactive(days)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(removed) == 0 {
				_, err = fmt.Fprintln(out, "No inactive players.")
				return err
			}
			_, err = fmt.Fprintf(out, "Removed %d players: %s\n", len(removed), strings.Join(removed, ", "))
			return err
		},
	}
	cmd.Flags().IntVar(&days, "days", 90, "inactivity threshold in days")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	return cmd
}

func newDeleteCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <username>",
		Short: "Delete one character",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := root.directory()
			if err != nil {
				return err
			}
			ok, err := dir.Delete(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no player named %q", args[0])
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s.\n", args[0])
			return err
		},
	}
}

func newBackupCommand(root *rootOptions, defaultDir string) *cobra.Command {
	var backupDir string

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Copy the player file to a timestamped backup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := root.directory()
			if err != nil {
				return err
			}
			path, err := dir.Backup(backupDir)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s\n", path)
			return err
		},
	}
	cmd.Flags().StringVar(&backupDir, "dir", defaultDir, "directory for backups")

	return cmd
}
