// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package importer

import (
	"github.com/shipdeck/shipdeck-cli/internal/dispatch"
	"github.com/shipdeck/shipdeck-cli/internal/errors"
)

// SessionState is the import screen's position: select -> preview -> result,
// forward only. The only way back is ResetForNewFile.
type SessionState int

const (
	StateSelect SessionState = iota
	StatePreview
	StateResult
)

func (s SessionState) String() string {
	switch s {
	case StateSelect:
		return "select"
	case StatePreview:
		return "preview"
	case StateResult:
		return "result"
	default:
		return "unknown"
	}
}

// Session owns one import flow. Every transition clears the state owned by
// the prior step; selecting a new file always re-parses from scratch.
type Session struct {
	state        SessionState
	fileName     string
	parsed       *ParseResult
	connectionID string
	outcome      *dispatch.BulkResult
}

func NewSession() *Session {
	return &Session{state: StateSelect}
}

func (s *Session) State() SessionState {
	return s.state
}

func (s *Session) FileName() string {
	return s.fileName
}

func (s *Session) Parsed() *ParseResult {
	return s.parsed
}

func (s *Session) ConnectionID() string {
	return s.connectionID
}

func (s *Session) Outcome() *dispatch.BulkResult {
	return s.outcome
}

// SelectFile parses rawText and, on success, moves to preview. A parse
// failure keeps the session on select with nothing retained. Allowed only
// on the select step; later steps must reset first.
func (s *Session) SelectFile(fileName, rawText string) error {
	if s.state != StateSelect {
		return &errors.ValidationError{
			Message: "a file is already loaded; use 'upload another file' to start over",
		}
	}

	parsed, err := Parse(rawText, MappingColumns)
	if err != nil {
		s.fileName = ""
		s.parsed = nil
		return err
	}
	if len(parsed.Rows) == 0 {
		s.fileName = ""
		s.parsed = nil
		return &errors.ValidationError{
			Field:   "file",
			Message: "no importable rows found; every data line is missing a required field",
		}
	}

	s.fileName = fileName
	s.parsed = parsed
	s.state = StatePreview
	return nil
}

// SetConnection picks the marketplace connection the rows will be created
// on. Parsing success alone never authorizes dispatch.
func (s *Session) SetConnection(connectionID string) {
	s.connectionID = connectionID
}

// CanSubmit gates the upload: a previewed parse plus a chosen connection.
func (s *Session) CanSubmit() bool {
	return s.state == StatePreview && s.parsed != nil &&
		len(s.parsed.Rows) > 0 && s.connectionID != ""
}

// CompleteSubmit records the upload outcome and moves to result, merging
// per-row errors back onto the previewed rows.
func (s *Session) CompleteSubmit(outcome *dispatch.BulkResult, rowErrors map[int]string) error {
	if s.state != StatePreview {
		return &errors.ValidationError{
			Message: "nothing to submit; load and preview a file first",
		}
	}
	MergeRowOutcomes(s.parsed.Rows, rowErrors)
	s.outcome = outcome
	s.state = StateResult
	return nil
}

// ResetForNewFile returns to select with all prior state cleared. The
// chosen connection is deliberately dropped too; a new file may target a
// different marketplace.
func (s *Session) ResetForNewFile() {
	s.state = StateSelect
	s.fileName = ""
	s.parsed = nil
	s.connectionID = ""
	s.outcome = nil
}
