package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shipdeck/shipdeck-cli/internal/errors"
)

func newSyncCommand() *cobra.Command {
	var syncAll bool

	cmd := &cobra.Command{
		Use:   "sync [connection-id]",
		Short: "Pull fresh orders from a marketplace connection",
		Long: `Trigger an order sync for a marketplace connection.

Without arguments, lists the configured connections. With a connection
id (or --all), asks the backend to pull fresh orders from the channel.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}

			if len(args) == 0 && !syncAll {
				conns, err := client.ListConnections(cmd.Context())
				if err != nil {
					return fmt.Errorf("%s", errors.FormatUserError(err))
				}
				if len(conns) == 0 {
					fmt.Println("No marketplace connections configured.")
					return nil
				}
				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tCHANNEL\tSTATUS\tLAST SYNC")
				for _, c := range conns {
					lastSync := "-"
					if !c.LastSyncAt.IsZero() {
						lastSync = c.LastSyncAt.Format("2006-01-02 15:04")
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Channel, c.Status, lastSync)
				}
				return w.Flush()
			}

			var targets []string
			if syncAll {
				conns, err := client.ListConnections(cmd.Context())
				if err != nil {
					return fmt.Errorf("%s", errors.FormatUserError(err))
				}
				for _, c := range conns {
					targets = append(targets, c.ID)
				}
			} else {
				targets = args
			}

			for _, id := range targets {
				result, err := client.SyncOrders(cmd.Context(), id)
				if err != nil {
					fmt.Println(failStyle.Render(fmt.Sprintf("✗ %s: %s", id, errors.FormatUserError(err))))
					continue
				}
				msg := fmt.Sprintf("✓ %s: pulled %d orders", id, result.OrdersPulled)
				if result.OrdersFailed > 0 {
					msg += fmt.Sprintf(" (%d failed)", result.OrdersFailed)
				}
				fmt.Println(successStyle.Render(msg))
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&syncAll, "all", "a", false, "sync every configured connection")

	return cmd
}
