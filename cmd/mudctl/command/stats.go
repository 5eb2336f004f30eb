package command

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/pixil98/go-peake/internal/game"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newStatsCommand(root *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarise stored characters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := root.directory()
			if err != nil {
				return err
			}

			stats := dir.Stats()
			out := cmd.OutOrStdout()
			switch format {
			case "text":
				return printStats(out, stats)
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(stats)
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(stats); err != nil {
					return err
				}
				return enc.Close()
			default:
				return fmt.Errorf("unknown format %q", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "o", "text", "output format: text, json or yaml")

	return cmd
}

func printStats(w io.Writer, stats game.DirectoryStats) error {
	_, err := fmt.Fprintf(w, "Total players: %d\nAverage level: %.1f\n", stats.Total, stats.AverageLevel)
	if err != nil {
		return err
	}

	sections := []struct {
		title  string
		counts map[string]int
	}{
		{"Races", stats.Races},
		{"Classes", stats.Classes},
		{"Levels", stats.LevelDistribution},
	}
	for _, s := range sections {
		if len(s.counts) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "\n%s:\n", s.title); err != nil {
			return err
		}
		keys := make([]string, 0, len(s.counts))
		for k := range s.counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if _, err := fmt.Fprintf(w, "  %-10s %d\n", k, s.counts[k]); err != nil {
				return err
			}
		}
	}
	return nil
}
