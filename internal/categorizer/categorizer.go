// Package categorizer assigns a spending category to parsed transactions by
// scoring them against the static category keyword table. It is a pure
// function over the table: no state, no feedback into extraction, safe for
// concurrent use.
package categorizer

import (
	"strings"

	"jsolano/mail-ledger/internal/logging"
	"jsolano/mail-ledger/internal/models"
)

// Categorizer scores transactions against an ordered category table.
type Categorizer struct {
	categories []models.CategoryConfig
	logger     logging.Logger
}

// New creates a Categorizer over the given table. Table order is the
// tie-breaker: when two categories score the same, the earlier one is kept.
func New(categories []models.CategoryConfig, logger logging.Logger) *Categorizer {
	return &Categorizer{categories: categories, logger: logger}
}

// Categorize derives a CategorizedTransaction from a record without
// modifying it. Each category scores one point per keyword found (case
// insensitive) in the merchant name or the raw-text snippet; the strictly
// highest score wins. No hits at all yields the "Other" fallback.
func (c *Categorizer) Categorize(record models.TransactionRecord) models.CategorizedTransaction {
	merchant := strings.ToLower(record.Merchant)
	rawText := strings.ToLower(record.RawText)

	bestName := models.CategoryOther
	bestEmoji := models.CategoryOtherEmoji
	bestScore := 0

	for _, category := range c.categories {
		score := 0
		for _, keyword := range category.Keywords {
			kw := strings.ToLower(keyword)
			if strings.Contains(merchant, kw) || strings.Contains(rawText, kw) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			bestName = category.Name
			bestEmoji = category.Emoji
		}
	}

	c.logger.Debug("Categorized transaction",
		logging.F("merchant", record.Merchant),
		logging.F("category", bestName),
		logging.F("score", bestScore))

	return models.CategorizedTransaction{
		TransactionRecord: record,
		Category:          bestName,
		CategoryEmoji:     bestEmoji,
	}
}

// CategorizeAll categorizes a slice of records in input order.
func (c *Categorizer) CategorizeAll(records []models.TransactionRecord) []models.CategorizedTransaction {
	out := make([]models.CategorizedTransaction, 0, len(records))
	for _, record := range records {
		out = append(out, c.Categorize(record))
	}
	return out
}
