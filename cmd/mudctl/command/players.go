package command

import (
	"fmt"
	"io"

	"github.com/pixil98/go-peake/internal/game"
	"github.com/spf13/cobra"
)

func newPlayersCommand(root *rootOptions) *cobra.Command {
	var minLevel, maxLevel int

	cmd := &cobra.Command{
		Use:   "players",
		Short: "List stored characters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if minLevel > 0 && maxLevel > 0 && minLevel > maxLevel {
				return fmt.Errorf("--min-level %d is above --max-level %d", minLevel, maxLevel)
			}
			dir, err := root.directory()
			if err != nil {
				return err
			}
			return printRecords(cmd.OutOrStdout(), dir.ByLevel(minLevel, maxLevel))
		},
	}
	cmd.Flags().IntVar(&minLevel, "min-level", 0, "lowest level to include")
	cmd.Flags().IntVar(&maxLevel, "max-level", 0, "highest level to include")

	return cmd
}

func newTopCommand(root *rootOptions) *cobra.Command {
	var limit int
	var by string

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Show the highest ranked characters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := root.directory()
			if err != nil {
				return err
			}
			records, err := dir.Top(limit, game.SortKey(by))
			if err != nil {
				return err
			}
			return printRecords(cmd.OutOrStdout(), records)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "number of characters to show")
	cmd.Flags().StringVar(&by, "by", string(game.SortByLevel), "sort key: level, experience or created_at")

	return cmd
}

func printRecords(w io.Writer, records []*game.Record) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No players found.")
		return err
	}
	for _, r := range records {
		if _, err := fmt.Fprintln(w, r.Summary()); err != nil {
			return err
		}
	}
	return nil
}
