// Package process handles the end-to-end parse command
package process

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"jsolano/mail-ledger/cmd/root"
	"jsolano/mail-ledger/internal/bankdetect"
	"jsolano/mail-ledger/internal/categorizer"
	"jsolano/mail-ledger/internal/engine"
	"jsolano/mail-ledger/internal/export"
	"jsolano/mail-ledger/internal/extractor"
	"jsolano/mail-ledger/internal/logging"
	"jsolano/mail-ledger/internal/mailbox"
	"jsolano/mail-ledger/internal/models"
	"jsolano/mail-ledger/internal/sheets"
	"jsolano/mail-ledger/internal/store"
)

const defaultCSVFile = "transactions.csv"

var (
	upload   bool
	markRead bool
)

// Cmd represents the process command
var Cmd = &cobra.Command{
	Use:   "process",
	Short: "Parse emails into categorized transactions",
	Long: `Parse bank notification emails into categorized transaction records.
Emails come from a batch file written by the fetch command (--input), or are
fetched live from the mailbox when no input file is given. Results are
written to CSV and optionally appended to the configured Google Sheet.`,
	RunE: processFunc,
}

func init() {
	Cmd.Flags().BoolVar(&upload, "upload", false, "Append results to the configured Google Sheet")
	Cmd.Flags().BoolVar(&markRead, "mark-read", false, "Mark parsed emails as read in the mailbox")
}

func processFunc(cmd *cobra.Command, args []string) error {
	root.Log.Info("Process command called")
	ctx := cmd.Context()

	var (
		emails []models.RawEmail
		client *mailbox.IMAPClient
		err    error
	)

	if root.Input != "" {
		batch, err := export.LoadBatch(root.Input)
		if err != nil {
			return err
		}
		emails = batch.Emails
		root.Log.Info("Loaded email batch",
			logging.F("file", root.Input),
			logging.F("count", len(emails)))
	} else {
		client, err = connectMailbox()
		if err != nil {
			return err
		}
		defer closeMailbox(client)

		emails, err = client.Fetch()
		if err != nil {
			return err
		}
	}

	if len(emails) == 0 {
		root.Log.Info("No emails to process")
		return nil
	}

	transactions, stats, err := runPipeline(ctx, emails)
	if err != nil {
		return err
	}
	root.Log.Info("Pipeline finished",
		logging.F("processed", stats.Processed),
		logging.F("parsed", stats.Parsed),
		logging.F("skipped", stats.Skipped),
		logging.F("failed", stats.Failed))

	if len(transactions) == 0 {
		root.Log.Info("No transactions extracted")
		return nil
	}

	output := root.Output
	if output == "" {
		output = defaultCSVFile
	}
	if err := export.NewCSVWriter(root.Log).Write(transactions, output); err != nil {
		return err
	}

	if upload {
		if err := uploadTransactions(ctx, transactions); err != nil {
			return err
		}
	}

	if markRead {
		if client == nil {
			client, err = connectMailbox()
			if err != nil {
				return err
			}
			defer closeMailbox(client)
		}
		ids := make([]string, 0, len(transactions))
		for _, tx := range transactions {
			ids = append(ids, tx.EmailID)
		}
		if err := client.MarkRead(ids); err != nil {
			return err
		}
	}

	return nil
}

// runPipeline wires the parse stages from the loaded tables and runs them
// over the batch.
func runPipeline(ctx context.Context, emails []models.RawEmail) ([]models.CategorizedTransaction, engine.Stats, error) {
	tables, err := store.NewTableStore(root.Cfg.Tables.BanksFile, root.Cfg.Tables.CategoriesFile, root.Log).Load()
	if err != nil {
		return nil, engine.Stats{}, err
	}

	processor := engine.NewProcessor(
		bankdetect.NewDetector(tables.Banks(), root.Log),
		extractor.New(root.Log),
		engine.NewAssembler(root.Log),
		categorizer.New(tables.Categories(), root.Log),
		root.Log,
		root.Cfg.Processing.Workers,
	)
	return processor.Process(ctx, emails)
}

func uploadTransactions(ctx context.Context, transactions []models.CategorizedTransaction) error {
	if root.Cfg.Sheets.SpreadsheetID == "" {
		return fmt.Errorf("sheets.spreadsheet_id is not configured")
	}

	appender, err := sheets.NewGoogleClient(ctx, sheets.Options{
		SpreadsheetID:   root.Cfg.Sheets.SpreadsheetID,
		SheetName:       root.Cfg.Sheets.SheetName,
		CredentialsFile: root.Cfg.Sheets.CredentialsFile,
	}, root.Log)
	if err != nil {
		return err
	}

	rows, err := appender.Append(ctx, transactions)
	if err != nil {
		return err
	}
	root.Log.Info("Uploaded transactions", logging.F("rows", rows))
	return nil
}

func connectMailbox() (*mailbox.IMAPClient, error) {
	cfg := root.Cfg
	return mailbox.Connect(mailbox.Options{
		Server:    cfg.Mailbox.Server,
		Port:      cfg.Mailbox.Port,
		Username:  cfg.Mailbox.Username,
		Password:  cfg.Mailbox.Password,
		Folder:    cfg.Mailbox.Folder,
		Sender:    cfg.Mailbox.Sender,
		MaxEmails: cfg.Mailbox.MaxEmails,
	}, root.Log)
}

func closeMailbox(client *mailbox.IMAPClient) {
	if err := client.Close(); err != nil {
		root.Log.WithError(err).Warn("Failed to close mailbox connection")
	}
}
