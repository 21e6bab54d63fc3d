// Package extractor implements the field extraction cascades that pull
// structured transaction fields out of normalized email text. One engine
// serves every bank; bank differences live in the pattern tables in
// cascades.go, so supporting a new bank format is a data change.
package extractor

import (
	"time"

	"github.com/shopspring/decimal"

	"jsolano/mail-ledger/internal/logging"
	"jsolano/mail-ledger/internal/models"
)

// Input is everything the field extractors may consult for one email.
type Input struct {
	Subject    string
	Body       string // normalized body text
	Combined   string // subject + newline + normalized body
	DateHeader string // raw RFC 2822 transport date header
	Now        time.Time
}

// NewInput assembles an Input from the normalized parts of an email.
func NewInput(subject, body, dateHeader string, now time.Time) Input {
	return Input{
		Subject:    subject,
		Body:       body,
		Combined:   subject + "\n" + body,
		DateHeader: dateHeader,
		Now:        now,
	}
}

// Amount is an extracted monetary value with its normalized currency code.
type Amount struct {
	Value    decimal.Decimal
	Currency string
}

// Results carries every field extractor's output for one email. Amount,
// Merchant and Card are nil when their cascade found nothing; Type and Date
// always hold a value because they have documented fallbacks.
type Results struct {
	Amount   *models.FieldResult[Amount]
	Merchant *models.FieldResult[string]
	Card     *models.FieldResult[string]
	Type     models.FieldResult[string]
	Date     models.FieldResult[string]
}

// Extractor runs all field cascades for a bank's pattern set.
type Extractor struct {
	logger logging.Logger
}

// New creates an Extractor.
func New(logger logging.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract runs every field cascade against the input using the pattern set
// selected by bankID. Individual field misses are soft: they leave nil (or a
// fallback value) in Results and never fail the call.
func (e *Extractor) Extract(bankID string, in Input) Results {
	patterns := cascadeFor(bankID)
	log := e.logger.WithField("bank", bankID)

	results := Results{
		Amount:   extractAmount(patterns.amount, in, log),
		Merchant: extractMerchant(patterns.merchant, in, log),
		Card:     extractCard(patterns.card, in),
		Type:     extractType(in),
		Date:     extractDate(patterns.date, in, log),
	}

	if results.Amount == nil {
		log.Debug("No amount matched in any cascade tier")
	}
	return results
}

// text returns the view of the input a pattern source selects.
func (in Input) text(source textSource) string {
	switch source {
	case sourceSubject:
		return in.Subject
	case sourceBody:
		return in.Body
	default:
		return in.Combined
	}
}
