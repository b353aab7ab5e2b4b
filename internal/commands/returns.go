// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shipdeck/shipdeck-cli/internal/dispatch"
	"github.com/shipdeck/shipdeck-cli/internal/errors"
	"github.com/shipdeck/shipdeck-cli/internal/models"
	"github.com/shipdeck/shipdeck-cli/internal/workflow"
)

func newReturnsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "returns",
		Short: "List returns and move them through the receive/QC/refund flow",
	}

	cmd.AddCommand(newReturnsListCommand())
	cmd.AddCommand(newReturnsProcessCommand())

	return cmd
}

func newReturnsListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List returns with the next action for each",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}

			returns, err := client.ListReturns(cmd.Context(), limit, 0)
			if err != nil {
				return fmt.Errorf("%s", errors.FormatUserError(err))
			}

			if len(returns) == 0 {
				fmt.Println("No returns found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tORDER\tSKU\tSTATUS\tNEXT ACTION")
			for _, r := range returns {
				next := "-"
				if action, ok := workflow.ResolveReturnAction(r.Status); ok {
					next = action.Label
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					r.ID, r.OrderNumber, r.SKUCode, r.Status, next)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 50, "maximum returns to fetch")

	return cmd
}

func newReturnsProcessCommand() *cobra.Command {
	var (
		processAll bool
		parallel   int
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "process [return-ids...]",
		Short: "Advance returns by their status-determined next step",
		Long: `Advance returns by their status-determined next step.

Each return moves one step: in-transit returns are received, received
returns go to QC, QC-passed returns get their refund processed, and
refunded returns are completed. Returns in a terminal state are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !processAll {
				return fmt.Errorf("no return ids given: pass them as arguments or use --all")
			}

			client, err := newAPIClient()
			if err != nil {
				return err
			}

			returns, err := client.ListReturns(cmd.Context(), 0, 0)
			if err != nil {
				return fmt.Errorf("%s", errors.FormatUserError(err))
			}

			byID := make(map[string]models.ReturnOrder, len(returns))
			for _, r := range returns {
				byID[r.ID] = r
			}

			ids := args
			if processAll {
				ids = ids[:0]
				for _, r := range returns {
					ids = append(ids, r.ID)
				}
			}

			// Resolve each return's next step up front; records with no
			// valid action are reported, not sent.
			actions := make(map[string]workflow.ReturnAction, len(ids))
			needsConfirm := false
			var actionable []string
			var skipped []string
			for _, id := range ids {
				r, known := byID[id]
				if !known {
					skipped = append(skipped, id)
					continue
				}
				action, ok := workflow.ResolveReturnAction(r.Status)
				if !ok {
					skipped = append(skipped, id)
					continue
				}
				actions[id] = action
				actionable = append(actionable, id)
				if action.RequiresConfirmation {
					needsConfirm = true
				}
			}

			if len(skipped) > 0 {
				fmt.Printf("Skipping %d returns with no valid next step: %v\n", len(skipped), skipped)
			}
			if len(actionable) == 0 {
				fmt.Println("Nothing to process.")
				return nil
			}

			if needsConfirm && !yes {
				if !confirm(fmt.Sprintf("Process %d returns (includes refunds)?", len(actionable))) {
					fmt.Println("Cancelled.")
					return nil
				}
			}

			fmt.Println(boldStyle.Render(fmt.Sprintf("Processing %d returns...", len(actionable))))

			result, err := dispatch.Dispatch(cmd.Context(), actionable, parallel,
				func(ctx context.Context, id string) error {
					return client.ReturnAction(ctx, id, actions[id].Key)
				})
			if err != nil {
				return fmt.Errorf("%s", errors.FormatUserError(err))
			}

			printBulkResult(result)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&processAll, "all", "a", false, "process every actionable return")
	cmd.Flags().IntVarP(&parallel, "parallel", "p", dispatch.DefaultParallel, "max concurrent requests")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")

	return cmd
}
