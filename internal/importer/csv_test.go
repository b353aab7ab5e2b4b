// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package importer

import (
	"testing"

	"github.com/shipdeck/shipdeck-cli/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_WellFormedFile(t *testing.T) {
	raw := "sku_code,marketplace_sku,price\nSKU1,B001,499\nSKU2,B002,299\n"

	result, err := Parse(raw, MappingColumns)
	require.NoError(t, err)
	require.Len(t, result.Rows, 2)
	assert.Equal(t, 2, result.DataLines)
	assert.Empty(t, result.SkippedLines)

	assert.Equal(t, 2, result.Rows[0].RowNumber, "rows are numbered including the header line")
	assert.Equal(t, "SKU1", result.Rows[0].Fields["sku_code"])
	assert.Equal(t, "B001", result.Rows[0].Fields["marketplace_sku"])
	assert.Equal(t, "499", result.Rows[0].Fields["price"])
	assert.Equal(t, RowPending, result.Rows[0].Status)
}

func TestParse_HeaderAliases(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"canonical names", "sku_code,marketplace_sku"},
		{"compact aliases", "skucode,marketplacesku"},
		{"short sku and asin", "sku,asin"},
		{"mixed case with spaces", " SKU , Listing_SKU "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Parse(tt.header+"\nSKU1,B001\n", MappingColumns)
			require.NoError(t, err)
			require.Len(t, result.Rows, 1)
			assert.Equal(t, "SKU1", result.Rows[0].Fields["sku_code"])
			assert.Equal(t, "B001", result.Rows[0].Fields["marketplace_sku"])
		})
	}
}

func TestParse_MissingRequiredColumnFailsFast(t *testing.T) {
	raw := "sku_code,price\nSKU1,499\nSKU2,299\n"

	result, err := Parse(raw, MappingColumns)
	assert.Nil(t, result, "no partial parsing on a missing column")
	require.Error(t, err)

	var validationErr *errors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Message, "marketplace_sku")
}

func TestParse_AllColumnsMissingNamedTogether(t *testing.T) {
	_, err := Parse("foo,bar\nx,y\n", MappingColumns)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sku_code")
	assert.Contains(t, err.Error(), "marketplace_sku")
}

// Rows with an empty required field are silently skipped, never reported
// as row errors. The parsed row count equals the number of data lines
// where every required field is non-empty.
func TestParse_LenientSkipOnEmptyRequiredField(t *testing.T) {
	raw := "sku_code,marketplace_sku\nSKU1,B001\n,B002\nSKU3,"

	result, err := Parse(raw, MappingColumns)
	require.NoError(t, err)

	require.Len(t, result.Rows, 1)
	assert.Equal(t, "SKU1", result.Rows[0].Fields["sku_code"])
	assert.Equal(t, "B001", result.Rows[0].Fields["marketplace_sku"])

	assert.Equal(t, 3, result.DataLines)
	assert.Equal(t, []int{3, 4}, result.SkippedLines)
	assert.Less(t, len(result.Rows), result.DataLines)
}

func TestParse_OptionalColumnMayBeEmpty(t *testing.T) {
	raw := "sku_code,marketplace_sku,price\nSKU1,B001,\n"

	result, err := Parse(raw, MappingColumns)
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "", result.Rows[0].Fields["price"])
}

func TestParse_LeadingBlankLinesBeforeHeader(t *testing.T) {
	raw := "\n\nsku_code,marketplace_sku\nSKU1,B001\n"

	result, err := Parse(raw, MappingColumns)
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	// Header sits on line 3, so the first data row is line 4
	assert.Equal(t, 4, result.Rows[0].RowNumber)
}

func TestParse_CRLFInput(t *testing.T) {
	raw := "sku_code,marketplace_sku\r\nSKU1,B001\r\n"

	result, err := Parse(raw, MappingColumns)
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "B001", result.Rows[0].Fields["marketplace_sku"])
}

func TestParse_EmptyFile(t *testing.T) {
	_, err := Parse("   \n \n", MappingColumns)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestParse_ShortRowTreatedAsMissingField(t *testing.T) {
	// Second data row has no marketplace_sku cell at all
	raw := "sku_code,marketplace_sku\nSKU1,B001\nSKU2\n"

	result, err := Parse(raw, MappingColumns)
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, []int{3}, result.SkippedLines)
}

func TestMergeRowOutcomes(t *testing.T) {
	rows := []ParsedRow{
		{RowNumber: 2, Status: RowPending},
		{RowNumber: 3, Status: RowPending},
		{RowNumber: 5, Status: RowPending},
	}

	MergeRowOutcomes(rows, map[int]string{3: "duplicate marketplace SKU"})

	assert.Equal(t, RowSuccess, rows[0].Status)
	assert.Equal(t, RowError, rows[1].Status)
	assert.Equal(t, "duplicate marketplace SKU", rows[1].ErrorMessage)
	assert.Equal(t, RowSuccess, rows[2].Status)
}

func TestMappingTemplate_ParsesCleanly(t *testing.T) {
	result, err := Parse(MappingTemplate, MappingColumns)
	require.NoError(t, err)
	assert.Len(t, result.Rows, 2)
	assert.Empty(t, result.SkippedLines)
}
