package models

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validRecord() TransactionRecord {
	return TransactionRecord{
		EmailID:    "1",
		Date:       "2024-03-15",
		Amount:     decimal.RequireFromString("25500"),
		Currency:   "CRC",
		Merchant:   "AUTOMERCADO MORAVIA",
		CardLast4:  "1234",
		Type:       TypeDebit,
		Confidence: 0.89,
		RawText:    "Compra AUTOMERCADO MORAVIA",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*TransactionRecord)
		expectedOk bool
	}{
		{"Valid record", func(r *TransactionRecord) {}, true},
		{"No card suffix", func(r *TransactionRecord) { r.CardLast4 = "" }, true},
		{"Credit type", func(r *TransactionRecord) { r.Type = TypeCredit }, true},
		{"Negative amount", func(r *TransactionRecord) { r.Amount = decimal.RequireFromString("-5") }, false},
		{"Bad type", func(r *TransactionRecord) { r.Type = "TRANSFER" }, false},
		{"Bad date", func(r *TransactionRecord) { r.Date = "15-03-2024" }, false},
		{"Short card suffix", func(r *TransactionRecord) { r.CardLast4 = "34" }, false},
		{"Confidence above one", func(r *TransactionRecord) { r.Confidence = 1.2 }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			record := validRecord()
			tc.mutate(&record)

			err := record.Validate()
			if tc.expectedOk {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestIsDebitIsCredit(t *testing.T) {
	record := validRecord()
	assert.True(t, record.IsDebit())
	assert.False(t, record.IsCredit())

	record.Type = TypeCredit
	assert.True(t, record.IsCredit())
	assert.False(t, record.IsDebit())
}

func TestToSheetRow(t *testing.T) {
	ct := CategorizedTransaction{
		TransactionRecord: validRecord(),
		Category:          "Groceries",
		CategoryEmoji:     "🛒",
	}
	processedAt := time.Date(2024, time.March, 16, 9, 30, 0, 0, time.UTC)

	row := ct.ToSheetRow(processedAt)

	assert.Equal(t, "2024-03-16 09:30:00", row.ProcessedAt)
	assert.Equal(t, "2024-03-15", row.Date)
	assert.Equal(t, "AUTOMERCADO MORAVIA", row.Merchant)
	assert.Equal(t, "25500.00", row.Amount)
	assert.Equal(t, "🛒 Groceries", row.Category)
	assert.Equal(t, TypeDebit, row.Type)
	assert.Equal(t, "1234", row.CardLast4)
	assert.Equal(t, "89%", row.Confidence)
	assert.Equal(t, "Compra AUTOMERCADO MORAVIA", row.Description)
}

func TestToSheetRowTruncatesDescription(t *testing.T) {
	ct := CategorizedTransaction{TransactionRecord: validRecord()}
	ct.RawText = strings.Repeat("a", 300)

	row := ct.ToSheetRow(time.Now())
	assert.Len(t, row.Description, SheetSnippetLimit)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		limit    int
		expected string
	}{
		{"Under limit", "short", 10, "short"},
		{"Exact limit", "12345", 5, "12345"},
		{"Over limit", "1234567", 5, "12345"},
		{"Rune boundary", "añejo", 2, "a"},
		{"Zero limit", "abc", 0, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Truncate(tc.input, tc.limit))
		})
	}
}
