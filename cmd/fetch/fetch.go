// Package fetch handles the IMAP fetch command
package fetch

import (
	"fmt"

	"github.com/spf13/cobra"

	"jsolano/mail-ledger/cmd/root"
	"jsolano/mail-ledger/internal/export"
	"jsolano/mail-ledger/internal/logging"
	"jsolano/mail-ledger/internal/mailbox"
	"jsolano/mail-ledger/internal/models"
)

const defaultBatchFile = "emails.yaml"

var (
	sender    string
	maxEmails int
)

// Cmd represents the fetch command
var Cmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch unread bank emails from the mailbox",
	Long: `Fetch unread bank notification emails over IMAP and save them to a
batch file for a later process run. Messages stay unread; the process
command marks them read once their transactions are recorded.`,
	RunE: fetchFunc,
}

func init() {
	Cmd.Flags().StringVar(&sender, "sender", "", "Only fetch emails from this sender address")
	Cmd.Flags().IntVar(&maxEmails, "max", 0, "Maximum emails to fetch (overrides config)")
}

func fetchFunc(cmd *cobra.Command, args []string) error {
	root.Log.Info("Fetch command called")

	opts := mailboxOptions()
	client, err := mailbox.Connect(opts, root.Log)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Close(); err != nil {
			root.Log.WithError(err).Warn("Failed to close mailbox connection")
		}
	}()

	emails, err := client.Fetch()
	if err != nil {
		return err
	}

	output := root.Output
	if output == "" {
		output = defaultBatchFile
	}
	if err := export.SaveBatch(models.EmailBatch{Emails: emails}, output); err != nil {
		return fmt.Errorf("saving email batch: %w", err)
	}

	root.Log.Info("Saved email batch",
		logging.F("file", output),
		logging.F("count", len(emails)))
	return nil
}

// mailboxOptions merges the config with the command's flag overrides.
func mailboxOptions() mailbox.Options {
	cfg := root.Cfg
	opts := mailbox.Options{
		Server:    cfg.Mailbox.Server,
		Port:      cfg.Mailbox.Port,
		Username:  cfg.Mailbox.Username,
		Password:  cfg.Mailbox.Password,
		Folder:    cfg.Mailbox.Folder,
		Sender:    cfg.Mailbox.Sender,
		MaxEmails: cfg.Mailbox.MaxEmails,
	}
	if sender != "" {
		opts.Sender = sender
	}
	if maxEmails > 0 {
		opts.MaxEmails = maxEmails
	}
	return opts
}
