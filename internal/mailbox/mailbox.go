// Package mailbox fetches bank notification emails over IMAP and marks them
// as read once they have been recorded. The rest of the pipeline only sees
// the Fetcher and Marker interfaces, so tests and offline runs can swap in a
// mock without an IMAP server.
package mailbox

import "jsolano/mail-ledger/internal/models"

// Fetcher retrieves unread notification emails from a mailbox.
type Fetcher interface {
	// Fetch returns the unread emails matching the configured sender
	// filter, oldest first, without changing their read state.
	Fetch() ([]models.RawEmail, error)
}

// Marker flags emails as read so later runs skip them.
type Marker interface {
	// MarkRead marks the emails with the given IDs as read. IDs the
	// mailbox no longer knows are ignored.
	MarkRead(ids []string) error
}

// Options configures a mailbox connection.
type Options struct {
	Server    string
	Port      int
	Username  string
	Password  string
	Folder    string
	Sender    string // optional FROM filter, substring of the sender address
	MaxEmails int    // cap on emails fetched per run, 0 means no cap
}
