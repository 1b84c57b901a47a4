package parser

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrMissingRecordID marks the one fatal parse condition: a source record
// without its own identity key. Importers abort the whole file on it; every
// other parse failure is recoverable per record.
var ErrMissingRecordID = errors.New("record is missing its required id field")

// ParseError carries positional context for a recoverable per-record failure.
type ParseError struct {
	RecordID string
	Column   string
	Message  string
	cause    error
}

func (e *ParseError) Error() string {
	msg := e.Message
	if e.cause != nil {
		msg = e.cause.Error()
	}
	if e.Column != "" {
		return fmt.Sprintf("record %q column %q: %s", e.RecordID, e.Column, msg)
	}
	return fmt.Sprintf("record %q: %s", e.RecordID, msg)
}

func (e *ParseError) Unwrap() error {
	return e.cause
}

// NewParseError wraps a failure with the record and column it occurred in.
func NewParseError(recordID, column string, cause error) *ParseError {
	return &ParseError{RecordID: recordID, Column: column, cause: cause}
}
