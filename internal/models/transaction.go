package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction type values. Debit is money leaving the account, credit is
// money arriving.
const (
	TypeDebit  = "DEBIT"
	TypeCredit = "CREDIT"
)

// Default values applied when an extractor cascade finds nothing.
const (
	DefaultMerchant = "Unknown Merchant"

	// RawTextLimit bounds the audit snippet kept on a record.
	RawTextLimit = 500

	// SheetSnippetLimit bounds the snippet written to the spreadsheet column.
	SheetSnippetLimit = 100
)

// TransactionRecord is one parsed bank notification. It is created once by
// the assembler and never mutated afterwards.
type TransactionRecord struct {
	EmailID    string          `yaml:"email_id"`
	Date       string          `yaml:"date"` // YYYY-MM-DD
	Amount     decimal.Decimal `yaml:"amount"`
	Currency   string          `yaml:"currency"` // ISO-like code: USD, CRC
	Merchant   string          `yaml:"merchant"`
	CardLast4  string          `yaml:"card_last_4"` // "" or exactly 4 digits
	Type       string          `yaml:"transaction_type"`
	Confidence float64         `yaml:"confidence"` // [0,1], rounded to 2 decimals
	RawText    string          `yaml:"raw_text"`
}

// IsDebit returns true if money left the account.
func (t *TransactionRecord) IsDebit() bool {
	return t.Type == TypeDebit
}

// IsCredit returns true if money arrived on the account.
func (t *TransactionRecord) IsCredit() bool {
	return t.Type == TypeCredit
}

// Validate checks the record invariants: a non-negative amount, an ISO date
// and a card suffix that is either empty or exactly four digits.
func (t *TransactionRecord) Validate() error {
	if t.Amount.IsNegative() {
		return fmt.Errorf("negative amount %s for email %s", t.Amount, t.EmailID)
	}
	if t.Type != TypeDebit && t.Type != TypeCredit {
		return fmt.Errorf("invalid transaction type %q for email %s", t.Type, t.EmailID)
	}
	if _, err := time.Parse("2006-01-02", t.Date); err != nil {
		return fmt.Errorf("invalid date %q for email %s", t.Date, t.EmailID)
	}
	if t.CardLast4 != "" && len(t.CardLast4) != 4 {
		return fmt.Errorf("card suffix %q is not 4 digits for email %s", t.CardLast4, t.EmailID)
	}
	if t.Confidence < 0 || t.Confidence > 1 {
		return fmt.Errorf("confidence %v out of range for email %s", t.Confidence, t.EmailID)
	}
	return nil
}

// CategorizedTransaction is a TransactionRecord plus its assigned spending
// category. The categorizer produces it without touching the embedded record.
type CategorizedTransaction struct {
	TransactionRecord `yaml:",inline"`

	Category      string `yaml:"category"`
	CategoryEmoji string `yaml:"category_emoji"`
}

// SheetRow is the flattened column tuple the spreadsheet and CSV boundaries
// expect. Field order matches the sheet header row.
type SheetRow struct {
	ProcessedAt string `csv:"Processed Date"`
	Date        string `csv:"Transaction Date"`
	Merchant    string `csv:"Merchant"`
	Amount      string `csv:"Amount"`
	Category    string `csv:"Category"`
	Type        string `csv:"Type"`
	CardLast4   string `csv:"Card (Last 4)"`
	Confidence  string `csv:"Confidence"`
	Description string `csv:"Description"`
}

// ToSheetRow flattens a categorized transaction for the tabular boundaries.
// Confidence becomes a whole percentage ("85%"), the snippet is truncated to
// the sheet limit and the category carries its display glyph.
func (ct *CategorizedTransaction) ToSheetRow(processedAt time.Time) SheetRow {
	return SheetRow{
		ProcessedAt: processedAt.Format("2006-01-02 15:04:05"),
		Date:        ct.Date,
		Merchant:    ct.Merchant,
		Amount:      ct.Amount.StringFixed(2),
		Category:    fmt.Sprintf("%s %s", ct.CategoryEmoji, ct.Category),
		Type:        ct.Type,
		CardLast4:   ct.CardLast4,
		Confidence:  fmt.Sprintf("%.0f%%", ct.Confidence*100),
		Description: Truncate(ct.RawText, SheetSnippetLimit),
	}
}

// Truncate caps s at limit bytes, cutting on a rune boundary.
func Truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !isRuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
