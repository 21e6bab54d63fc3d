package extractor

import (
	"strings"

	"jsolano/mail-ledger/internal/models"
)

// Transaction-type confidence depends on how clearly the keyword vote was
// decided, not on which pattern matched.
const (
	typeConfidenceDecided   = 0.8
	typeConfidenceTied      = 0.5
	typeConfidenceDefaulted = 0.3
)

// extractType classifies the transaction direction by a bilingual keyword
// vote over subject and body. Unlike the other fields this is a frequency
// vote, not a first-match cascade: direction is usually signaled by several
// scattered words rather than one anchored label. Credit wins only with a
// strictly higher count; ties and silence default to debit.
func extractType(in Input) models.FieldResult[string] {
	text := strings.ToLower(in.Combined)

	debitScore := countHits(text, debitKeywords)
	creditScore := countHits(text, creditKeywords)

	txType := models.TypeDebit
	if creditScore > debitScore {
		txType = models.TypeCredit
	}

	confidence := typeConfidenceDefaulted
	switch {
	case debitScore+creditScore == 0:
		confidence = typeConfidenceDefaulted
	case debitScore == creditScore:
		confidence = typeConfidenceTied
	default:
		confidence = typeConfidenceDecided
	}

	return models.NewFieldResult(txType, confidence)
}

// countHits counts how many keywords from the list occur in the text. Each
// keyword contributes at most one point regardless of repetitions.
func countHits(text string, keywords []string) int {
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			hits++
		}
	}
	return hits
}
