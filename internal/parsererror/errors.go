// Package parsererror defines the typed errors raised at the pipeline's
// boundaries. Soft field-misses inside extractor cascades are not errors;
// only faults that callers need to distinguish get a type here.
package parsererror

import "fmt"

// ExtractionError reports that a mandatory field could not be extracted from
// an email, which makes the whole record unusable.
type ExtractionError struct {
	EmailID string
	Field   string
	Reason  string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for email %s, field %s: %s", e.EmailID, e.Field, e.Reason)
}

// ParseError reports a malformed value encountered while parsing a field.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s=%q: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MailboxError wraps a failure talking to the IMAP server.
type MailboxError struct {
	Op  string
	Err error
}

func (e *MailboxError) Error() string {
	return fmt.Sprintf("mailbox %s: %v", e.Op, e.Err)
}

func (e *MailboxError) Unwrap() error {
	return e.Err
}

// AppendError wraps a failure appending rows to the spreadsheet.
type AppendError struct {
	SpreadsheetID string
	Err           error
}

func (e *AppendError) Error() string {
	return fmt.Sprintf("append to spreadsheet %s failed: %v", e.SpreadsheetID, e.Err)
}

func (e *AppendError) Unwrap() error {
	return e.Err
}
