// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/shipdeck/shipdeck-cli/internal/api"
	"github.com/shipdeck/shipdeck-cli/internal/bulk"
	"github.com/shipdeck/shipdeck-cli/internal/dispatch"
	"github.com/shipdeck/shipdeck-cli/internal/errors"
	"github.com/shipdeck/shipdeck-cli/internal/models"
	"github.com/shipdeck/shipdeck-cli/internal/workflow"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	boldStyle    = lipgloss.NewStyle().Bold(true)
)

func newAPIClient() (*api.Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.NoAPIKeyError()
	}
	return api.NewClient(cfg.APIKey, cfg.APIURL, cfg.Debug), nil
}

func newOrdersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List, ship and act on marketplace orders",
	}

	cmd.AddCommand(newOrdersListCommand())
	cmd.AddCommand(newOrdersShipCommand())
	cmd.AddCommand(newOrdersBulkCommand())

	return cmd
}

func newOrdersListCommand() *cobra.Command {
	var (
		statusFilter string
		limit        int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}

			orders, err := client.ListOrders(cmd.Context(), limit, 0)
			if err != nil {
				return fmt.Errorf("%s", errors.FormatUserError(err))
			}

			if statusFilter != "" {
				want := models.OrderStatus(strings.ToUpper(statusFilter))
				filtered := orders[:0]
				for _, o := range orders {
					if o.Status == want {
						filtered = append(filtered, o)
					}
				}
				orders = filtered
			}

			if len(orders) == 0 {
				fmt.Println("No orders found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tORDER\tCHANNEL\tSTATUS\tCUSTOMER\tAMOUNT\tAWB")
			for _, o := range orders {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.2f\t%s\n",
					o.ID, o.OrderNumber, o.Channel, o.Status, o.CustomerName, o.Amount, o.AWB)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&statusFilter, "status", "s", "", "filter by status (e.g. PENDING, NDR)")
	cmd.Flags().IntVarP(&limit, "limit", "l", 50, "maximum orders to fetch")

	return cmd
}

func newOrdersShipCommand() *cobra.Command {
	var (
		carrierID string
		yes       bool
	)

	cmd := &cobra.Command{
		Use:   "ship [order-id]",
		Short: "Fetch courier rates and book a shipment for an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			orderID := args[0]

			quotes, err := client.GetRates(cmd.Context(), orderID)
			if err != nil {
				return fmt.Errorf("%s", errors.FormatUserError(err))
			}
			if len(quotes) == 0 {
				return fmt.Errorf("no courier rates available for order %s", orderID)
			}

			chosen, err := pickQuote(quotes, carrierID)
			if err != nil {
				return err
			}

			fmt.Printf("Selected courier: %s (%s) at %.2f\n", chosen.CarrierName, chosen.ServiceType, chosen.Amount)
			if !yes && !confirm(fmt.Sprintf("Book shipment for %s?", orderID)) {
				fmt.Println("Cancelled.")
				return nil
			}

			result, err := client.ShipOrder(cmd.Context(), orderID, &models.ShipRequest{
				CarrierID:   chosen.CarrierID,
				ServiceType: chosen.ServiceType,
			})
			if err != nil {
				return fmt.Errorf("%s", errors.FormatUserError(err))
			}

			fmt.Println(successStyle.Render("✓ Shipment booked"))
			fmt.Printf("  AWB: %s\n", result.AWB)
			fmt.Printf("  Carrier: %s\n", result.Carrier)
			if result.LabelURL != "" {
				fmt.Printf("  Label: %s\n", result.LabelURL)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&carrierID, "courier", "c", "", "carrier id to book (default: cheapest)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")

	return cmd
}

// pickQuote selects a quote by carrier id, or the cheapest when none given
func pickQuote(quotes []models.RateQuote, carrierID string) (*models.RateQuote, error) {
	if carrierID != "" {
		for i := range quotes {
			if quotes[i].CarrierID == carrierID {
				return &quotes[i], nil
			}
		}
		return nil, fmt.Errorf("carrier %q not among the %d available quotes", carrierID, len(quotes))
	}

	best := &quotes[0]
	for i := range quotes {
		if quotes[i].Amount < best.Amount {
			best = &quotes[i]
		}
	}
	return best, nil
}

func newOrdersBulkCommand() *cobra.Command {
	var (
		bulkFiles    []string
		bulkParallel int
		bulkDryRun   bool
		bulkYes      bool
	)

	cmd := &cobra.Command{
		Use:   "bulk [action] [order-ids...]",
		Short: "Apply one action to many orders in parallel",
		Long: `Apply one action to many orders in parallel.

Order ids may be passed as arguments or loaded from batch files
(JSON, YAML, JSONL or markdown with front matter).

Examples:
  # Cancel two orders
  shipdeck orders bulk cancel ORD-1001 ORD-1002

  # Load the batch from a file
  shipdeck orders bulk cancel --file eod-cancels.yaml

  # Reattempt every order in a markdown sweep file
  shipdeck orders bulk reattempt --file ndr-sweep.md --parallel 10`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actionKey := args[0]
			ids := args[1:]

			descriptor, ok := workflow.OrderActionByKey(actionKey)
			if !ok {
				return fmt.Errorf("unknown order action %q", actionKey)
			}

			if len(bulkFiles) > 0 {
				var paths []string
				for _, pattern := range bulkFiles {
					matches, err := filepath.Glob(pattern)
					if err != nil {
						return fmt.Errorf("invalid glob pattern %s: %w", pattern, err)
					}
					if len(matches) == 0 {
						paths = append(paths, pattern)
					} else {
						paths = append(paths, matches...)
					}
				}
				batch, err := bulk.LoadBatchConfig(paths)
				if err != nil {
					return fmt.Errorf("%s", errors.FormatUserError(err))
				}
				if batch.Action != actionKey {
					return fmt.Errorf("batch file action %q does not match %q", batch.Action, actionKey)
				}
				ids = append(ids, batch.IDs...)
			}

			if len(ids) == 0 {
				return fmt.Errorf("no order ids given: pass them as arguments or via --file")
			}

			if bulkDryRun {
				fmt.Println(successStyle.Render("✓ Batch valid"))
				fmt.Printf("Action: %s\n", descriptor.Label)
				fmt.Printf("Total orders: %d\n", len(ids))
				return nil
			}

			if descriptor.RequiresConfirmation && !bulkYes {
				if !confirm(fmt.Sprintf("%s %d orders?", descriptor.Label, len(ids))) {
					fmt.Println("Cancelled.")
					return nil
				}
			}

			client, err := newAPIClient()
			if err != nil {
				return err
			}

			fmt.Println(boldStyle.Render(fmt.Sprintf("Dispatching %q to %d orders...", actionKey, len(ids))))

			result, err := dispatch.Dispatch(cmd.Context(), ids, bulkParallel,
				func(ctx context.Context, id string) error {
					return client.OrderAction(ctx, id, actionKey)
				})
			if err != nil {
				return fmt.Errorf("%s", errors.FormatUserError(err))
			}

			printBulkResult(result)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&bulkFiles, "file", "f", nil, "batch file(s) with order ids")
	cmd.Flags().IntVarP(&bulkParallel, "parallel", "p", dispatch.DefaultParallel, "max concurrent requests")
	cmd.Flags().BoolVar(&bulkDryRun, "dry-run", false, "validate without submitting")
	cmd.Flags().BoolVarP(&bulkYes, "yes", "y", false, "skip confirmation prompt")

	return cmd
}

// printBulkResult renders a batch outcome: full success, partial, or total failure
func printBulkResult(result *dispatch.BulkResult) {
	switch {
	case result.Failed == 0:
		fmt.Println(successStyle.Render(fmt.Sprintf("\n✓ All %d orders processed", result.Succeeded)))
	case result.Succeeded == 0:
		fmt.Println(failStyle.Render(fmt.Sprintf("\n✗ All %d orders failed", result.Failed)))
	default:
		fmt.Println(warnStyle.Render(fmt.Sprintf("\n⚠ Partial success: %d succeeded, %d failed",
			result.Succeeded, result.Failed)))
	}

	if len(result.Failures) > 0 {
		fmt.Println("\nFailed records:")
		for _, f := range result.Failures {
			fmt.Printf("  ✗ %s: %s\n", f.RecordID, f.Reason)
		}
	}

	fmt.Printf("\nBatch: %s\n", result.BatchID)
}

func confirm(prompt string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s (y/N): ", prompt)
	response, _ := reader.ReadString('\n')
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
