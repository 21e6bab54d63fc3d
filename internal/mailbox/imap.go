package mailbox

import (
	"fmt"
	"io"
	"net/textproto"
	"strconv"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-message/mail"

	"jsolano/mail-ledger/internal/logging"
	"jsolano/mail-ledger/internal/models"
	"jsolano/mail-ledger/internal/parsererror"
)

// IMAPClient talks to one IMAP mailbox. It implements Fetcher and Marker.
// Email IDs are the server's UIDs rendered as decimal strings, so a MarkRead
// call can target exactly the messages an earlier Fetch returned even if the
// mailbox changed in between.
type IMAPClient struct {
	conn   *client.Client
	opts   Options
	logger logging.Logger
}

// Connect dials the server over TLS, authenticates and selects the folder.
// The caller owns the connection and must Close it.
func Connect(opts Options, logger logging.Logger) (*IMAPClient, error) {
	addr := fmt.Sprintf("%s:%d", opts.Server, opts.Port)
	logger.Info("Connecting to IMAP server",
		logging.F("server", addr),
		logging.F("username", opts.Username))

	conn, err := client.DialTLS(addr, nil)
	if err != nil {
		return nil, &parsererror.MailboxError{Op: "dial", Err: err}
	}

	if err := conn.Login(opts.Username, opts.Password); err != nil {
		_ = conn.Logout()
		return nil, &parsererror.MailboxError{Op: "login", Err: err}
	}

	if _, err := conn.Select(opts.Folder, false); err != nil {
		_ = conn.Logout()
		return nil, &parsererror.MailboxError{Op: "select", Err: err}
	}

	return &IMAPClient{conn: conn, opts: opts, logger: logger}, nil
}

// Close logs out and drops the connection.
func (c *IMAPClient) Close() error {
	return c.conn.Logout()
}

// Fetch returns unread emails from the selected folder, most recent first,
// capped at MaxEmails. Bodies are fetched with BODY.PEEK so the messages
// stay unread until MarkRead confirms they were recorded. A message whose
// body cannot be parsed is logged and dropped, not fatal.
func (c *IMAPClient) Fetch() ([]models.RawEmail, error) {
	criteria := imap.NewSearchCriteria()
	criteria.WithoutFlags = []string{imap.SeenFlag}
	if c.opts.Sender != "" {
		criteria.Header = textproto.MIMEHeader{}
		criteria.Header.Add("From", c.opts.Sender)
	}

	uids, err := c.conn.UidSearch(criteria)
	if err != nil {
		return nil, &parsererror.MailboxError{Op: "search", Err: err}
	}
	if len(uids) == 0 {
		c.logger.Info("No unread emails found")
		return nil, nil
	}

	// UIDs arrive in mailbox order, oldest first. Keep the newest MaxEmails.
	if c.opts.MaxEmails > 0 && len(uids) > c.opts.MaxEmails {
		uids = uids[len(uids)-c.opts.MaxEmails:]
	}

	c.logger.Info("Fetching unread emails", logging.F("count", len(uids)))

	seqset := new(imap.SeqSet)
	seqset.AddNum(uids...)

	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{imap.FetchEnvelope, imap.FetchUid, section.FetchItem()}

	messages := make(chan *imap.Message, len(uids))
	if err := c.conn.UidFetch(seqset, items, messages); err != nil {
		return nil, &parsererror.MailboxError{Op: "fetch", Err: err}
	}

	var emails []models.RawEmail
	for msg := range messages {
		email, err := c.buildEmail(msg, section)
		if err != nil {
			c.logger.WithError(err).Warn("Skipping unparseable email",
				logging.F("uid", msg.Uid))
			continue
		}
		emails = append(emails, email)
	}

	// Most recent first.
	for i, j := 0, len(emails)-1; i < j; i, j = i+1, j-1 {
		emails[i], emails[j] = emails[j], emails[i]
	}

	c.logger.Info("Fetched emails", logging.F("count", len(emails)))
	return emails, nil
}

// MarkRead adds the \Seen flag to the messages with the given UIDs. IDs that
// do not parse as UIDs are counted as failures but do not stop the rest.
func (c *IMAPClient) MarkRead(ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	seqset := new(imap.SeqSet)
	valid := 0
	for _, id := range ids {
		uid, err := strconv.ParseUint(id, 10, 32)
		if err != nil {
			c.logger.Warn("Ignoring malformed email ID", logging.F("id", id))
			continue
		}
		seqset.AddNum(uint32(uid))
		valid++
	}
	if valid == 0 {
		return nil
	}

	item := imap.FormatFlagsOp(imap.AddFlags, true)
	flags := []interface{}{imap.SeenFlag}
	if err := c.conn.UidStore(seqset, item, flags, nil); err != nil {
		return &parsererror.MailboxError{Op: "store", Err: err}
	}

	c.logger.Info("Marked emails as read", logging.F("count", valid))
	return nil
}

// buildEmail converts one fetched IMAP message into a RawEmail.
func (c *IMAPClient) buildEmail(msg *imap.Message, section *imap.BodySectionName) (models.RawEmail, error) {
	var email models.RawEmail

	body := msg.GetBody(section)
	if body == nil {
		return email, fmt.Errorf("server returned no body for UID %d", msg.Uid)
	}

	mr, err := mail.CreateReader(body)
	if err != nil {
		return email, fmt.Errorf("creating mail reader: %w", err)
	}

	email.ID = strconv.FormatUint(uint64(msg.Uid), 10)
	if msg.Envelope != nil {
		email.ThreadID = msg.Envelope.MessageId
		email.Subject = msg.Envelope.Subject
		if len(msg.Envelope.From) > 0 {
			email.Sender = msg.Envelope.From[0].Address()
		}
		if !msg.Envelope.Date.IsZero() {
			email.Date = msg.Envelope.Date.Format(time.RFC1123Z)
		}
	}

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Keep whatever parts already decoded.
			c.logger.WithError(err).Debug("Stopping at malformed MIME part",
				logging.F("uid", msg.Uid))
			break
		}

		header, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			continue // attachments carry no transaction text
		}

		contentType, _, err := header.ContentType()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(part.Body)
		if err != nil {
			continue
		}

		switch contentType {
		case "text/plain":
			email.BodyText = string(data)
		case "text/html":
			email.BodyHTML = string(data)
		}
	}

	if email.BodyText == "" && email.BodyHTML == "" {
		return email, fmt.Errorf("no text parts in UID %d", msg.Uid)
	}
	return email, nil
}
