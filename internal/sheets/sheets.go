// Package sheets appends categorized transactions to a Google Sheets
// spreadsheet. The uploader is behind the Appender interface so commands can
// be tested without Google credentials.
package sheets

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"jsolano/mail-ledger/internal/logging"
	"jsolano/mail-ledger/internal/models"
	"jsolano/mail-ledger/internal/parsererror"
)

// headerRow is the first spreadsheet row, matching the SheetRow column order.
var headerRow = []interface{}{
	"Processed Date",
	"Transaction Date",
	"Merchant",
	"Amount",
	"Category",
	"Type",
	"Card (Last 4)",
	"Confidence",
	"Description",
}

// headerRange addresses the header row regardless of how many data rows
// exist; the append endpoint also takes it as the table anchor.
const headerRange = "A1:I1"

// Appender uploads categorized transactions to a spreadsheet.
type Appender interface {
	Append(ctx context.Context, transactions []models.CategorizedTransaction) (int, error)
}

// Options configures the spreadsheet target.
type Options struct {
	SpreadsheetID   string
	SheetName       string
	CredentialsFile string // Google service account JSON
}

// GoogleClient is the Sheets API implementation of Appender.
type GoogleClient struct {
	service *gsheets.Service
	opts    Options
	logger  logging.Logger
	now     func() time.Time
}

// NewGoogleClient builds a Sheets client from a service account credentials
// file.
func NewGoogleClient(ctx context.Context, opts Options, logger logging.Logger) (*GoogleClient, error) {
	service, err := gsheets.NewService(ctx,
		option.WithCredentialsFile(opts.CredentialsFile),
		option.WithScopes(gsheets.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("error creating sheets service: %w", err)
	}
	return &GoogleClient{service: service, opts: opts, logger: logger, now: time.Now}, nil
}

// Append uploads the transactions as new rows and returns how many rows the
// server reported appended. The header row is created first if the sheet is
// empty. Appending uses USER_ENTERED so dates and amounts land as native
// spreadsheet values rather than strings.
func (c *GoogleClient) Append(ctx context.Context, transactions []models.CategorizedTransaction) (int, error) {
	if len(transactions) == 0 {
		c.logger.Info("No transactions to upload")
		return 0, nil
	}

	if err := c.ensureHeaders(ctx); err != nil {
		return 0, err
	}

	processedAt := c.now()
	values := make([][]interface{}, 0, len(transactions))
	for _, tx := range transactions {
		row := tx.ToSheetRow(processedAt)
		values = append(values, []interface{}{
			row.ProcessedAt,
			row.Date,
			row.Merchant,
			row.Amount,
			row.Category,
			row.Type,
			row.CardLast4,
			row.Confidence,
			row.Description,
		})
	}

	c.logger.Info("Appending rows to spreadsheet",
		logging.F("spreadsheet_id", c.opts.SpreadsheetID),
		logging.F("sheet", c.opts.SheetName),
		logging.F("count", len(values)))

	rangeSpec := fmt.Sprintf("%s!%s", c.opts.SheetName, headerRange)
	resp, err := c.service.Spreadsheets.Values.
		Append(c.opts.SpreadsheetID, rangeSpec, &gsheets.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return 0, &parsererror.AppendError{SpreadsheetID: c.opts.SpreadsheetID, Err: err}
	}

	appended := 0
	if resp.Updates != nil {
		appended = int(resp.Updates.UpdatedRows)
	}
	c.logger.Info("Appended rows", logging.F("rows", appended))
	return appended, nil
}

// ensureHeaders writes the header row when the sheet has none.
func (c *GoogleClient) ensureHeaders(ctx context.Context) error {
	rangeSpec := fmt.Sprintf("%s!%s", c.opts.SheetName, headerRange)

	resp, err := c.service.Spreadsheets.Values.
		Get(c.opts.SpreadsheetID, rangeSpec).
		Context(ctx).
		Do()
	if err != nil {
		return &parsererror.AppendError{SpreadsheetID: c.opts.SpreadsheetID, Err: err}
	}
	if len(resp.Values) > 0 {
		return nil
	}

	c.logger.Info("Creating header row", logging.F("sheet", c.opts.SheetName))
	_, err = c.service.Spreadsheets.Values.
		Update(c.opts.SpreadsheetID, rangeSpec, &gsheets.ValueRange{Values: [][]interface{}{headerRow}}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return &parsererror.AppendError{SpreadsheetID: c.opts.SpreadsheetID, Err: err}
	}
	return nil
}
