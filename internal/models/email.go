// Package models provides the data structures used throughout the application.
package models

// RawEmail is a bank notification email as delivered by the mailbox client.
// It is immutable once received; the parsing pipeline never writes to it.
type RawEmail struct {
	ID       string `yaml:"id" json:"id"`
	ThreadID string `yaml:"thread_id" json:"thread_id"`
	Subject  string `yaml:"subject" json:"subject"`
	Sender   string `yaml:"sender" json:"sender"`
	Date     string `yaml:"date" json:"date"` // RFC 2822 transport date header
	BodyText string `yaml:"body_text" json:"body_text"`
	BodyHTML string `yaml:"body_html" json:"body_html"`
}

// EmailBatch is the on-disk form of a fetched set of emails, so that fetching
// and processing can run as separate commands.
type EmailBatch struct {
	Emails []RawEmail `yaml:"emails"`
}

// FieldResult carries a single extracted field value together with a
// confidence score in [0,1]. Confidence reflects how structurally certain the
// matching pattern was, not a probability.
type FieldResult[T any] struct {
	Value      T
	Confidence float64
}

// NewFieldResult builds a FieldResult from a value and confidence.
func NewFieldResult[T any](value T, confidence float64) FieldResult[T] {
	return FieldResult[T]{Value: value, Confidence: confidence}
}
