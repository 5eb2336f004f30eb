package command

import (
	"fmt"

	"github.com/pixil98/go-peake/internal/game"
	"github.com/pixil98/go-peake/internal/storage"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	playersPath string
}

// NewRootCommand builds the mudctl command tree. Flag defaults come from
// PEAKE_* environment variables when set.
func NewRootCommand() (*cobra.Command, error) {
	defaults, err := loadEnvDefaults()
	if err != nil {
		return nil, err
	}
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "mudctl",
		Short:        "Administer a Peake server",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.playersPath, "players", defaults.PlayersPath, "path to the player file")

	cmd.AddCommand(
		newStatsCommand(opts),
		newPlayersCommand(opts),
		newTopCommand(opts),
		newPruneCommand(opts),
		newDeleteCommand(opts),
		newBackupCommand(opts, defaults.BackupDir),
		newClientCommand(defaults.Addr),
	)

	return cmd, nil
}

// directory opens the player file named by --players.
func (o *rootOptions) directory() (*game.PlayerDirectory, error) {
	store, err := storage.NewFileStore[*game.Record](o.playersPath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", o.playersPath, err)
	}
	return game.NewPlayerDirectory(store), nil
}
