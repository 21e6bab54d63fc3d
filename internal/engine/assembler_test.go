package engine

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jsolano/mail-ledger/internal/extractor"
	"jsolano/mail-ledger/internal/logging"
	"jsolano/mail-ledger/internal/models"
)

func amountResult(literal string, currency string, confidence float64) *models.FieldResult[extractor.Amount] {
	r := models.NewFieldResult(extractor.Amount{
		Value:    decimal.RequireFromString(literal),
		Currency: currency,
	}, confidence)
	return &r
}

func stringResult(value string, confidence float64) *models.FieldResult[string] {
	r := models.NewFieldResult(value, confidence)
	return &r
}

func TestAssembleFullResults(t *testing.T) {
	a := NewAssembler(logging.NewMockLogger())

	in := extractor.NewInput("Notificación", "Monto: CRC 25,500.00", "", fixedNow)
	res := extractor.Results{
		Amount:   amountResult("25500", "CRC", 0.95),
		Merchant: stringResult("AUTOMERCADO", 0.9),
		Card:     stringResult("1234", 0.9),
		Type:     models.NewFieldResult(models.TypeDebit, 0.8),
		Date:     models.NewFieldResult("2024-03-15", 0.9),
	}

	record, ok := a.Assemble("42", in, res)
	require.True(t, ok)

	assert.Equal(t, "42", record.EmailID)
	assert.Equal(t, "25500.00", record.Amount.StringFixed(2))
	assert.Equal(t, "CRC", record.Currency)
	assert.Equal(t, "AUTOMERCADO", record.Merchant)
	assert.Equal(t, "1234", record.CardLast4)
	assert.Equal(t, models.TypeDebit, record.Type)
	assert.Equal(t, "2024-03-15", record.Date)
	// (0.95 + 0.9 + 0.9 + 0.8 + 0.9) / 5
	assert.InDelta(t, 0.89, record.Confidence, 0.0001)
	assert.NoError(t, record.Validate())
}

func TestAssembleWithoutAmount(t *testing.T) {
	log := logging.NewMockLogger()
	a := NewAssembler(log)

	in := extractor.NewInput("Welcome", "no money here", "", fixedNow)
	res := extractor.Results{
		Type: models.NewFieldResult(models.TypeDebit, 0.3),
		Date: models.NewFieldResult("2024-06-01", 0.1),
	}

	record, ok := a.Assemble("7", in, res)
	assert.False(t, ok)
	assert.Nil(t, record)
	assert.True(t, log.HasEntry("INFO", "Skipping email without extractable amount"))
}

// Absent optional fields contribute zero to the mean instead of shrinking the
// denominator.
func TestAssembleDefaultsAndConfidence(t *testing.T) {
	a := NewAssembler(logging.NewMockLogger())

	in := extractor.NewInput("Alert", "Amount: $5.00", "", fixedNow)
	res := extractor.Results{
		Amount: amountResult("5", "USD", 0.8),
		Type:   models.NewFieldResult(models.TypeDebit, 0.3),
		Date:   models.NewFieldResult("2024-06-01", 0.1),
	}

	record, ok := a.Assemble("9", in, res)
	require.True(t, ok)

	assert.Equal(t, models.DefaultMerchant, record.Merchant)
	assert.Equal(t, "", record.CardLast4)
	// (0.8 + 0 + 0 + 0.3 + 0.1) / 5
	assert.InDelta(t, 0.24, record.Confidence, 0.0001)
}

func TestAssembleTruncatesRawText(t *testing.T) {
	a := NewAssembler(logging.NewMockLogger())

	longBody := "Monto: CRC 45,00 " + strings.Repeat("x", 600)
	in := extractor.NewInput("s", longBody, "", fixedNow)
	res := extractor.Results{
		Amount: amountResult("45", "CRC", 0.95),
		Type:   models.NewFieldResult(models.TypeDebit, 0.3),
		Date:   models.NewFieldResult("2024-06-01", 0.1),
	}

	record, ok := a.Assemble("1", in, res)
	require.True(t, ok)
	assert.Len(t, record.RawText, models.RawTextLimit)
}
