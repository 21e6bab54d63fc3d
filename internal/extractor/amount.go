package extractor

import (
	"jsolano/mail-ledger/internal/currencyutils"
	"jsolano/mail-ledger/internal/logging"
	"jsolano/mail-ledger/internal/models"
)

// extractAmount walks the amount cascade and returns the first tier that
// yields a positive, parsable amount. A tier that matches text but parses to
// zero or garbage does not stop the cascade; the next tier still runs.
// Returns nil when every tier misses, which makes the email unusable.
func extractAmount(cascade amountCascade, in Input, log logging.Logger) *models.FieldResult[Amount] {
	for _, pattern := range cascade.patterns {
		match := pattern.re.FindStringSubmatch(in.Combined)
		if match == nil {
			continue
		}

		literal := match[pattern.re.SubexpIndex("amt")]
		value, err := currencyutils.ParseAmount(literal)
		if err != nil {
			log.WithError(err).Debug("Amount literal did not parse, trying next tier")
			continue
		}
		if !value.IsPositive() {
			continue
		}

		currency := cascade.defaultCurrency
		if i := pattern.re.SubexpIndex("cur"); i >= 0 && match[i] != "" {
			if code := currencyutils.NormalizeCurrencyToken(match[i]); code != "" {
				currency = code
			}
		}

		log.Debug("Amount extracted",
			logging.F("amount", value.StringFixed(2)),
			logging.F("currency", currency),
			logging.F("confidence", pattern.confidence))

		result := models.NewFieldResult(Amount{Value: value, Currency: currency}, pattern.confidence)
		return &result
	}
	return nil
}
