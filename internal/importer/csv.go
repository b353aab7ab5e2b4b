// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package importer validates and parses delimited mapping uploads before
// anything touches the network. Row numbers are 1-based positions in the
// original file, header included, so errors can point at exact source lines.
package importer

import (
	"fmt"
	"strings"

	"github.com/shipdeck/shipdeck-cli/internal/errors"
)

// Delimiter for mapping uploads. The console only accepts comma files;
// the template it hands out is comma-separated too.
const Delimiter = ","

// Column names one logical column and the header spellings that resolve
// to it. Matching is case-insensitive after trimming.
type Column struct {
	Name     string
	Aliases  []string
	Required bool
}

// MappingColumns are the columns of a SKU mapping upload.
var MappingColumns = []Column{
	{Name: "sku_code", Aliases: []string{"sku_code", "skucode", "sku"}, Required: true},
	{Name: "marketplace_sku", Aliases: []string{"marketplace_sku", "marketplacesku", "listing_sku", "asin"}, Required: true},
	{Name: "price", Aliases: []string{"price", "selling_price", "mrp"}},
}

// RowStatus tracks a parsed row through its remote create/update call.
type RowStatus string

const (
	RowPending RowStatus = "pending"
	RowSuccess RowStatus = "success"
	RowError   RowStatus = "error"
)

// ParsedRow is one well-formed data row. Status and ErrorMessage are
// filled in after the upload response is merged back per row.
type ParsedRow struct {
	RowNumber    int
	Fields       map[string]string
	Status       RowStatus
	ErrorMessage string
}

// ParseResult is the outcome of a successful parse. SkippedLines records
// the source lines dropped by the lenient empty-required-field policy;
// they are not row errors by design.
type ParseResult struct {
	Rows         []ParsedRow
	SkippedLines []int
	DataLines    int
}

// Parse splits rawText into typed rows against the given columns. A
// required column that resolves to no header cell (under any alias) fails
// the whole parse with one error naming every missing column; no partial
// parsing is attempted. Data rows with an empty required field are
// silently skipped, not reported as errors.
func Parse(rawText string, columns []Column) (*ParseResult, error) {
	lines := strings.Split(strings.ReplaceAll(rawText, "\r\n", "\n"), "\n")

	headerLine := -1
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			headerLine = i
			break
		}
	}
	if headerLine == -1 {
		return nil, &errors.ValidationError{
			Field:   "file",
			Message: "the file is empty",
		}
	}

	header := strings.Split(lines[headerLine], Delimiter)
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}

	indexes, missing := resolveColumns(header, columns)
	if len(missing) > 0 {
		return nil, &errors.ValidationError{
			Field:   "columns",
			Message: fmt.Sprintf("missing required column(s): %s", strings.Join(missing, ", ")),
		}
	}

	result := &ParseResult{}
	for i := headerLine + 1; i < len(lines); i++ {
		lineNumber := i + 1
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		result.DataLines++

		cells := strings.Split(lines[i], Delimiter)
		fields := make(map[string]string, len(columns))
		complete := true
		for _, col := range columns {
			idx, ok := indexes[col.Name]
			if !ok {
				continue
			}
			value := ""
			if idx < len(cells) {
				value = strings.TrimSpace(cells[idx])
			}
			if value == "" && col.Required {
				complete = false
				break
			}
			fields[col.Name] = value
		}

		if !complete {
			result.SkippedLines = append(result.SkippedLines, lineNumber)
			continue
		}

		result.Rows = append(result.Rows, ParsedRow{
			RowNumber: lineNumber,
			Fields:    fields,
			Status:    RowPending,
		})
	}

	return result, nil
}

// resolveColumns maps each column to a header index by trying its aliases
// in order. Optional columns that resolve nowhere are simply absent.
func resolveColumns(header []string, columns []Column) (map[string]int, []string) {
	indexes := make(map[string]int, len(columns))
	var missing []string

	for _, col := range columns {
		found := false
		for _, alias := range col.Aliases {
			for i, cell := range header {
				if cell == alias {
					indexes[col.Name] = i
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		if !found && col.Required {
			missing = append(missing, col.Name)
		}
	}

	return indexes, missing
}

// MergeRowOutcomes applies a batch upload response back onto the parsed
// rows. Rows not named in rowErrors are marked successful.
func MergeRowOutcomes(rows []ParsedRow, rowErrors map[int]string) {
	for i := range rows {
		if msg, ok := rowErrors[rows[i].RowNumber]; ok {
			rows[i].Status = RowError
			rows[i].ErrorMessage = msg
			continue
		}
		rows[i].Status = RowSuccess
		rows[i].ErrorMessage = ""
	}
}
