// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dispatch fans one action out over a selection of records and
// aggregates per-record outcomes. A failing record never aborts its
// siblings; partial failure is a first-class result, not an exception.
package dispatch

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shipdeck/shipdeck-cli/internal/api/dto"
	"github.com/shipdeck/shipdeck-cli/internal/errors"
	"golang.org/x/sync/errgroup"
)

// DefaultParallel bounds concurrent per-record calls.
const DefaultParallel = 5

// Failure records one record's outcome with the backend's reason verbatim.
type Failure struct {
	RecordID string `json:"recordId"`
	Reason   string `json:"reason"`
}

// BulkResult summarizes one dispatch. It is immutable once returned and
// always satisfies Succeeded+Failed == TotalAttempted.
type BulkResult struct {
	BatchID        string    `json:"batchId"`
	TotalAttempted int       `json:"totalAttempted"`
	Succeeded      int       `json:"succeeded"`
	Failed         int       `json:"failed"`
	Failures       []Failure `json:"failures,omitempty"`
}

// ItemFunc performs the action for one record.
type ItemFunc func(ctx context.Context, recordID string) error

// Dispatch issues fn once per id with bounded parallelism and reports the
// aggregate. Outcomes are recorded by input position, so the result is
// deterministic regardless of completion order. An empty id list is a
// precondition violation caught before any request goes out.
func Dispatch(ctx context.Context, ids []string, parallel int, fn ItemFunc) (*BulkResult, error) {
	if len(ids) == 0 {
		return nil, &errors.ValidationError{
			Field:   "selection",
			Message: "select at least one record before running a bulk action",
		}
	}
	if parallel <= 0 {
		parallel = DefaultParallel
	}

	outcomes := make([]error, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, id := range ids {
		g.Go(func() error {
			outcomes[i] = callItem(gctx, id, fn)
			// Item errors become data; returning them would cancel siblings.
			return nil
		})
	}
	_ = g.Wait()

	result := &BulkResult{
		BatchID:        uuid.NewString(),
		TotalAttempted: len(ids),
	}
	for i, err := range outcomes {
		if err == nil {
			result.Succeeded++
			continue
		}
		result.Failed++
		result.Failures = append(result.Failures, Failure{
			RecordID: ids[i],
			Reason:   errors.FormatUserError(err),
		})
	}
	return result, nil
}

// callItem isolates one record's call, converting a panic inside fn into a
// per-record failure so the rest of the batch still runs.
func callItem(ctx context.Context, id string, fn ItemFunc) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error processing %s: %v", id, r)
		}
	}()
	return fn(ctx, id)
}

// FromBatchResponse maps a true server-side batch outcome into the same
// BulkResult shape the per-item loop produces, so callers cannot tell
// which strategy was used. recordID translates the backend's 1-based row
// number into the caller's record identifier.
func FromBatchResponse(resp *dto.BulkMappingResponse, recordID func(row int) string) *BulkResult {
	result := &BulkResult{
		BatchID:        uuid.NewString(),
		TotalAttempted: resp.TotalRows,
		Succeeded:      resp.SuccessCount,
		Failed:         resp.ErrorCount,
	}
	for _, rowErr := range resp.Errors {
		id := fmt.Sprintf("row %d", rowErr.Row)
		if recordID != nil {
			id = recordID(rowErr.Row)
		}
		result.Failures = append(result.Failures, Failure{
			RecordID: id,
			Reason:   rowErr.Error,
		})
	}
	return result
}

// Summary renders the one-line aggregate used by command output.
func (r *BulkResult) Summary() string {
	return fmt.Sprintf("%d succeeded, %d failed of %d attempted",
		r.Succeeded, r.Failed, r.TotalAttempted)
}
