package extractor

import (
	"strings"

	"jsolano/mail-ledger/internal/logging"
	"jsolano/mail-ledger/internal/models"
	"jsolano/mail-ledger/internal/textutils"
)

const (
	merchantMinLen = 3
	merchantMaxLen = 50
)

// extractMerchant walks the merchant cascade. Candidates are cleaned before
// acceptance; degenerate matches shorter than three characters are rejected
// and the cascade continues. Returns nil when nothing usable matched; the
// assembler substitutes the documented placeholder.
func extractMerchant(patterns []merchantPattern, in Input, log logging.Logger) *models.FieldResult[string] {
	for _, pattern := range patterns {
		match := pattern.re.FindStringSubmatch(in.text(pattern.source))
		if match == nil {
			continue
		}

		name := cleanMerchant(match[pattern.re.SubexpIndex("m")])
		if len(name) < merchantMinLen {
			continue
		}

		log.Debug("Merchant extracted",
			logging.F("merchant", name),
			logging.F("confidence", pattern.confidence))

		result := models.NewFieldResult(name, pattern.confidence)
		return &result
	}
	return nil
}

// cleanMerchant trims, squeezes internal whitespace, strips trailing
// punctuation and bounds the length of a candidate merchant name.
func cleanMerchant(name string) string {
	name = textutils.CollapseWhitespace(name)
	name = strings.TrimRight(name, ".,;:-|")
	name = strings.TrimSpace(name)
	if len(name) > merchantMaxLen {
		name = models.Truncate(name, merchantMaxLen)
		name = strings.TrimSpace(name)
	}
	return name
}
