// Package export writes pipeline results to local files: categorized
// transactions as CSV and fetched email batches as YAML, so that fetching,
// parsing and uploading can run as separate commands.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"

	"jsolano/mail-ledger/internal/logging"
	"jsolano/mail-ledger/internal/models"
)

// CSVWriter writes categorized transactions to CSV files.
type CSVWriter struct {
	logger logging.Logger
	now    func() time.Time
}

// NewCSVWriter creates a CSVWriter.
func NewCSVWriter(logger logging.Logger) *CSVWriter {
	return &CSVWriter{logger: logger, now: time.Now}
}

// Write renders the transactions as sheet rows and writes them to csvFile,
// creating parent directories as needed. The column set matches what the
// spreadsheet uploader appends, so the CSV can serve as an offline record of
// the same data.
func (w *CSVWriter) Write(transactions []models.CategorizedTransaction, csvFile string) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}

	w.logger.Info("Writing transactions to CSV file",
		logging.F("file", csvFile),
		logging.F("count", len(transactions)))

	processedAt := w.now()
	rows := make([]models.SheetRow, 0, len(transactions))
	for _, tx := range transactions {
		rows = append(rows, tx.ToSheetRow(processedAt))
	}

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			w.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	csvWriter := csv.NewWriter(file)
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	w.logger.Info("Successfully wrote transactions to CSV file",
		logging.F("file", csvFile),
		logging.F("count", len(rows)))
	return nil
}
