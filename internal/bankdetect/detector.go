// Package bankdetect classifies an email's origin bank from its sender
// address. The result only selects which pattern set the extractors consult
// first; every bank funnels through the same extraction contracts.
package bankdetect

import (
	"strings"

	"jsolano/mail-ledger/internal/logging"
	"jsolano/mail-ledger/internal/models"
)

// GenericBankID is returned for senders no rule matches.
const GenericBankID = "generic"

// Detector holds the ordered sender-substring rules.
type Detector struct {
	rules  []models.BankRule
	logger logging.Logger
}

// NewDetector creates a detector over the given rules. Rule order is
// significant: the first matching substring wins.
func NewDetector(rules []models.BankRule, logger logging.Logger) *Detector {
	return &Detector{rules: rules, logger: logger}
}

// Detect returns the bank identifier for a sender address, or GenericBankID
// when no rule matches.
func (d *Detector) Detect(sender string) string {
	senderLower := strings.ToLower(sender)
	for _, rule := range d.rules {
		if strings.Contains(senderLower, rule.Substring) {
			d.logger.Debug("Detected bank",
				logging.F("sender", sender),
				logging.F("bank", rule.BankID))
			return rule.BankID
		}
	}
	return GenericBankID
}
