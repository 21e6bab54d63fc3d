package extractor

import (
	"jsolano/mail-ledger/internal/models"
)

// extractCard walks the masked-PAN cascade over the combined text. Returns
// nil when no tier matches; the record keeps an empty suffix, never fatal.
func extractCard(patterns []cardPattern, in Input) *models.FieldResult[string] {
	for _, pattern := range patterns {
		match := pattern.re.FindStringSubmatch(in.Combined)
		if match == nil {
			continue
		}
		result := models.NewFieldResult(match[1], pattern.confidence)
		return &result
	}
	return nil
}
