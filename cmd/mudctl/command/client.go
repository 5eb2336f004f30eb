package command

import (
	"github.com/pixil98/go-peake/internal/client"
	"github.com/spf13/cobra"
)

func newClientCommand(defaultAddr string) *cobra.Command {
	var addr string
	var plain bool

	cmd := &cobra.Command{
		Use:   "client",
		Short: "Connect to a server's tcp listener",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			conn, err := client.Dial(ctx, addr)
			if err != nil {
				return err
			}
			defer conn.Close()

			if plain {
				return client.RunLine(ctx, conn, cmd.InOrStdin(), cmd.OutOrStdout())
			}
			return client.NewTUI(conn, nil).Run()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "server address")
	cmd.Flags().BoolVar(&plain, "plain", false, "use plain line mode instead of the terminal ui")

	return cmd
}
