// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shipdeck/shipdeck-cli/internal/api/dto"
	"github.com/shipdeck/shipdeck-cli/internal/errors"
	"github.com/shipdeck/shipdeck-cli/internal/importer"
)

func newMappingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mappings",
		Short: "Manage SKU-to-marketplace listing mappings",
	}

	cmd.AddCommand(newMappingsListCommand())
	cmd.AddCommand(newMappingsImportCommand())
	cmd.AddCommand(newMappingsTemplateCommand())

	return cmd
}

func newMappingsListCommand() *cobra.Command {
	var connectionID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List SKU mappings",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}

			mappings, err := client.ListMappings(cmd.Context(), connectionID)
			if err != nil {
				return fmt.Errorf("%s", errors.FormatUserError(err))
			}

			if len(mappings) == 0 {
				fmt.Println("No mappings found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SKU\tMARKETPLACE SKU\tPRICE\tCONNECTION")
			for _, m := range mappings {
				fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\n",
					m.SKUCode, m.MarketplaceSKU, m.Price, m.ConnectionID)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&connectionID, "connection", "c", "", "filter by marketplace connection")

	return cmd
}

func newMappingsImportCommand() *cobra.Command {
	var (
		connectionID string
		dryRun       bool
	)

	cmd := &cobra.Command{
		Use:   "import [file.csv]",
		Short: "Validate a mapping CSV and upload it to a connection",
		Long: `Validate a mapping CSV and upload it to a connection.

The file must carry sku_code and marketplace_sku columns (common aliases
like "sku" and "asin" are accepted). Rows with an empty required field
are skipped and reported, not treated as errors.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if connectionID == "" {
				return fmt.Errorf("--connection is required")
			}

			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			parsed, err := importer.Parse(string(content), importer.MappingColumns)
			if err != nil {
				return fmt.Errorf("%s", errors.FormatUserError(err))
			}

			fmt.Printf("Parsed %d rows", len(parsed.Rows))
			if len(parsed.SkippedLines) > 0 {
				fmt.Printf(" (skipped lines with empty required fields: %v)", parsed.SkippedLines)
			}
			fmt.Println()

			req := &dto.BulkMappingRequest{
				ConnectionID: connectionID,
				DryRun:       dryRun,
				Mappings:     make([]dto.MappingItem, 0, len(parsed.Rows)),
			}
			for _, row := range parsed.Rows {
				item := dto.MappingItem{
					SKUCode:        row.Fields["sku_code"],
					MarketplaceSKU: row.Fields["marketplace_sku"],
					SourceRow:      row.RowNumber,
				}
				if price := row.Fields["price"]; price != "" {
					if v, perr := strconv.ParseFloat(price, 64); perr == nil {
						item.Price = v
					}
				}
				req.Mappings = append(req.Mappings, item)
			}

			client, err := newAPIClient()
			if err != nil {
				return err
			}

			resp, err := client.BulkUploadMappings(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("%s", errors.FormatUserError(err))
			}

			if dryRun {
				fmt.Println(successStyle.Render("✓ Dry run complete"))
			}
			switch {
			case resp.ErrorCount == 0:
				fmt.Println(successStyle.Render(fmt.Sprintf("✓ %d mappings accepted", resp.SuccessCount)))
			case resp.SuccessCount == 0:
				fmt.Println(failStyle.Render(fmt.Sprintf("✗ All %d rows rejected", resp.ErrorCount)))
			default:
				fmt.Println(warnStyle.Render(fmt.Sprintf("⚠ %d accepted, %d rejected",
					resp.SuccessCount, resp.ErrorCount)))
			}

			if len(resp.Errors) > 0 {
				fmt.Println("\nRejected rows:")
				for _, rowErr := range resp.Errors {
					fmt.Printf("  ✗ row %d: %s\n", rowErr.Row, rowErr.Error)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&connectionID, "connection", "c", "", "marketplace connection to import into")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate on the server without writing")

	return cmd
}

func newMappingsTemplateCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write the mapping CSV template",
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = importer.TemplateFileName
			}
			if err := os.WriteFile(output, []byte(importer.MappingTemplate), 0644); err != nil {
				return fmt.Errorf("failed to write template: %w", err)
			}
			fmt.Printf("Template written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default "+importer.TemplateFileName+")")

	return cmd
}
