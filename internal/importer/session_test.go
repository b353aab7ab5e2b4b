package importer

import (
	"testing"

	"github.com/shipdeck/shipdeck-cli/internal/dispatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodFile = "sku_code,marketplace_sku\nSKU1,B001\nSKU2,B002\n"

func TestSession_Flow(t *testing.T) {
	s := NewSession()
	assert.Equal(t, StateSelect, s.State())

	require.NoError(t, s.SelectFile("mappings.csv", goodFile))
	assert.Equal(t, StatePreview, s.State())
	assert.Equal(t, "mappings.csv", s.FileName())
	assert.Len(t, s.Parsed().Rows, 2)

	// Parsing success alone does not authorize dispatch
	assert.False(t, s.CanSubmit())
	s.SetConnection("conn-amz-1")
	assert.True(t, s.CanSubmit())

	outcome := &dispatch.BulkResult{TotalAttempted: 2, Succeeded: 1, Failed: 1}
	require.NoError(t, s.CompleteSubmit(outcome, map[int]string{3: "duplicate"}))
	assert.Equal(t, StateResult, s.State())
	assert.Equal(t, outcome, s.Outcome())
	assert.Equal(t, RowError, s.Parsed().Rows[1].Status)
}

func TestSession_ParseFailureStaysOnSelect(t *testing.T) {
	s := NewSession()

	err := s.SelectFile("bad.csv", "foo,bar\nx,y\n")
	require.Error(t, err)
	assert.Equal(t, StateSelect, s.State())
	assert.Empty(t, s.FileName())
	assert.Nil(t, s.Parsed())
}

func TestSession_AllRowsSkippedIsAnError(t *testing.T) {
	s := NewSession()

	err := s.SelectFile("empty.csv", "sku_code,marketplace_sku\n,B001\nSKU2,\n")
	require.Error(t, err)
	assert.Equal(t, StateSelect, s.State())
}

func TestSession_ForwardOnly(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.SelectFile("a.csv", goodFile))

	// A second select without reset is refused
	assert.Error(t, s.SelectFile("b.csv", goodFile))

	// Submitting from select is refused
	s2 := NewSession()
	assert.Error(t, s2.CompleteSubmit(&dispatch.BulkResult{}, nil))
}

func TestSession_ResetForNewFileClearsEverything(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.SelectFile("a.csv", goodFile))
	s.SetConnection("conn-1")
	require.NoError(t, s.CompleteSubmit(&dispatch.BulkResult{TotalAttempted: 2, Succeeded: 2}, nil))

	s.ResetForNewFile()

	assert.Equal(t, StateSelect, s.State())
	assert.Empty(t, s.FileName())
	assert.Nil(t, s.Parsed())
	assert.Empty(t, s.ConnectionID())
	assert.Nil(t, s.Outcome())

	// A fresh file re-parses from scratch
	require.NoError(t, s.SelectFile("b.csv", goodFile))
	assert.Equal(t, StatePreview, s.State())
}

func TestSessionState_String(t *testing.T) {
	assert.Equal(t, "select", StateSelect.String())
	assert.Equal(t, "preview", StatePreview.String())
	assert.Equal(t, "result", StateResult.String())
}
