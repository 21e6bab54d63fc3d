// Package engine combines the field extractors' outputs into transaction
// records and drives batch processing of email sets.
package engine

import (
	"math"

	"jsolano/mail-ledger/internal/extractor"
	"jsolano/mail-ledger/internal/logging"
	"jsolano/mail-ledger/internal/models"
)

// Assembler turns one email's extraction results into a TransactionRecord.
type Assembler struct {
	logger logging.Logger
}

// NewAssembler creates an Assembler.
func NewAssembler(logger logging.Logger) *Assembler {
	return &Assembler{logger: logger}
}

// Assemble builds the record for one email. The amount is the only mandatory
// field: without it the email yields no record and ok is false. Every other
// field degrades to its documented default.
//
// Aggregate confidence is the arithmetic mean over all five fields, with
// absent fields contributing 0, rounded to two decimals. The rule is applied
// uniformly regardless of which cascades ran.
func (a *Assembler) Assemble(emailID string, in extractor.Input, res extractor.Results) (*models.TransactionRecord, bool) {
	if res.Amount == nil {
		a.logger.Info("Skipping email without extractable amount",
			logging.F("email_id", emailID))
		return nil, false
	}

	merchant := models.DefaultMerchant
	merchantConfidence := 0.0
	if res.Merchant != nil {
		merchant = res.Merchant.Value
		merchantConfidence = res.Merchant.Confidence
	}

	card := ""
	cardConfidence := 0.0
	if res.Card != nil {
		card = res.Card.Value
		cardConfidence = res.Card.Confidence
	}

	confidence := mean(
		res.Amount.Confidence,
		merchantConfidence,
		cardConfidence,
		res.Type.Confidence,
		res.Date.Confidence,
	)

	record := &models.TransactionRecord{
		EmailID:    emailID,
		Date:       res.Date.Value,
		Amount:     res.Amount.Value.Value,
		Currency:   res.Amount.Value.Currency,
		Merchant:   merchant,
		CardLast4:  card,
		Type:       res.Type.Value,
		Confidence: confidence,
		RawText:    models.Truncate(in.Combined, models.RawTextLimit),
	}

	a.logger.Debug("Assembled transaction",
		logging.F("email_id", emailID),
		logging.F("amount", record.Amount.StringFixed(2)),
		logging.F("currency", record.Currency),
		logging.F("merchant", record.Merchant),
		logging.F("confidence", record.Confidence))

	return record, true
}

// mean averages the given confidences and rounds to two decimals.
func mean(values ...float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return math.Round(sum/float64(len(values))*100) / 100
}
