package mailbox

import "jsolano/mail-ledger/internal/models"

var (
	_ Fetcher = (*Mock)(nil)
	_ Marker  = (*Mock)(nil)
	_ Fetcher = (*IMAPClient)(nil)
	_ Marker  = (*IMAPClient)(nil)
)

// Mock is an in-memory Fetcher and Marker for tests.
type Mock struct {
	Emails   []models.RawEmail
	FetchErr error
	MarkErr  error
	Marked   []string
}

// Fetch returns the canned emails.
func (m *Mock) Fetch() ([]models.RawEmail, error) {
	if m.FetchErr != nil {
		return nil, m.FetchErr
	}
	return m.Emails, nil
}

// MarkRead records the IDs it was asked to mark.
func (m *Mock) MarkRead(ids []string) error {
	if m.MarkErr != nil {
		return m.MarkErr
	}
	m.Marked = append(m.Marked, ids...)
	return nil
}
