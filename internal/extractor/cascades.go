package extractor

import (
	"regexp"

	"jsolano/mail-ledger/internal/currencyutils"
	"jsolano/mail-ledger/internal/dateutils"
)

// textSource selects which view of the email a pattern runs against.
type textSource int

const (
	sourceCombined textSource = iota // subject + normalized body
	sourceSubject
	sourceBody
)

// amountPattern is one tier of an amount cascade. Patterns use the named
// groups "cur" (optional currency token) and "amt" (numeric literal).
type amountPattern struct {
	re         *regexp.Regexp
	confidence float64
}

// amountCascade is the ordered amount pattern list for one bank, plus the
// currency assumed when a match captures no currency token.
type amountCascade struct {
	patterns        []amountPattern
	defaultCurrency string
}

// merchantPattern is one tier of a merchant cascade; group "m" captures the
// candidate name.
type merchantPattern struct {
	re         *regexp.Regexp
	source     textSource
	confidence float64
}

// cardPattern is one tier of the card-suffix cascade; the first group
// captures exactly four digits.
type cardPattern struct {
	re         *regexp.Regexp
	confidence float64
}

// dateCascade holds the ordered date tiers for one bank. labelRe and
// numericRe capture a numeric literal in group "d"; monthNameRe captures
// "day", "mon" and "yr". layouts is the trial order for numeric literals,
// which decides how ambiguous dates like 03-04-2024 are read.
type dateCascade struct {
	labelRe     *regexp.Regexp
	monthNameRe *regexp.Regexp
	numericRe   *regexp.Regexp
	layouts     []string
}

// bankPatterns bundles every field cascade for one bank identifier.
type bankPatterns struct {
	amount   amountCascade
	merchant []merchantPattern
	card     []cardPattern
	date     dateCascade
}

// boundary matches the structural gap between a label and its value after
// normalization: whitespace, newlines and table-cell separators.
const boundary = `[\s|]*`

// numeric matches a money literal in either locale convention.
const numeric = `[0-9][0-9.,]*[0-9]|[0-9]`

// Pattern cascades per bank identifier, ordered within each field from most
// structurally precise to most generic. A structural label match is far less
// likely to be a false positive than a loose free-text hit, so the first
// matching tier always wins. Bank identifiers without an entry here (chase,
// bofa, ...) use the generic cascade; their value is in sender detection and
// logging, not in dedicated patterns.
var cascades = map[string]bankPatterns{
	"bac_cr": {
		amount: amountCascade{
			defaultCurrency: currencyutils.CurrencyCRC,
			patterns: []amountPattern{
				{regexp.MustCompile(`(?i)(?:monto|cantidad|total)\s*:?` + boundary + `(?P<cur>CRC|USD|US\$|[₡$¢])?\s*(?P<amt>` + numeric + `)`), 0.95},
				{regexp.MustCompile(`(?i)(?P<cur>CRC|USD|US\$|[₡$¢])\s*(?P<amt>[0-9]{1,3}(?:[.,][0-9]{3})*(?:[.,][0-9]{2})?)`), 0.8},
				{regexp.MustCompile(`(?P<amt>[0-9]{1,3}(?:[.,][0-9]{3})*[.,][0-9]{2})`), 0.55},
			},
		},
		merchant: []merchantPattern{
			{regexp.MustCompile(`(?i)(?:comercio|establecimiento|merchant)\s*:?` + boundary + `(?P<m>[^\n|]{3,60})`), sourceBody, 0.9},
			{regexp.MustCompile(`(?i)notificaci[oó]n\s+de\s+transacci[oó]n\s+(?P<m>.+?)\s+\d{2}-\d{2}-\d{4}`), sourceSubject, 0.85},
			{regexp.MustCompile(`(?i)(?:\ben|\bat|\bfrom)\s+(?P<m>[A-Za-z0-9ÁÉÍÓÚÑáéíóúñ&'.\- ]+?)(?:\s+(?:on|por|el)\b|\s*[₡$]|[.,\n|]|$)`), sourceCombined, 0.6},
		},
		card:  commonCardPatterns,
		date: dateCascade{
			labelRe:     regexp.MustCompile(`(?i)fecha(?:\s+de\s+transacci[oó]n)?\s*:?` + boundary + `(?P<d>\d{1,2}[-/.]\d{1,2}[-/.]\d{2,4})`),
			monthNameRe: regexp.MustCompile(`(?i)(?P<day>\d{1,2})\s+de\s+(?P<mon>[a-záéíóúñ]+)\s+(?:de\s+)?(?P<yr>\d{4})`),
			numericRe:   regexp.MustCompile(`(?P<d>\d{1,2}[-/]\d{1,2}[-/]\d{2,4})`),
			layouts:     dateutils.LayoutsDayFirst,
		},
	},
	"generic": {
		amount: amountCascade{
			defaultCurrency: currencyutils.CurrencyUSD,
			patterns: []amountPattern{
				{regexp.MustCompile(`(?i)(?:amount|total|charged?)\s*:?` + boundary + `(?P<cur>USD|US\$|\$)?\s*(?P<amt>` + numeric + `)`), 0.9},
				{regexp.MustCompile(`(?i)(?P<cur>USD|US\$|\$)\s*(?P<amt>[0-9]{1,3}(?:,[0-9]{3})*(?:\.[0-9]{2})?)`), 0.8},
				{regexp.MustCompile(`(?P<amt>[0-9]{1,3}(?:,[0-9]{3})*\.[0-9]{2})`), 0.5},
			},
		},
		merchant: []merchantPattern{
			{regexp.MustCompile(`(?i)merchant\s*:?` + boundary + `(?P<m>[^\n|]{3,60})`), sourceBody, 0.9},
			{regexp.MustCompile(`(?i)transaction\s+(?:at\s+)?(?P<m>.+?)\s+(?:on\s+)?\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`), sourceSubject, 0.8},
			{regexp.MustCompile(`(?i)(?:\bat|\bfrom|\bto|\bwith)\s+(?P<m>[A-Za-z0-9&'.\- ]+?)(?:\s+on\b|\s+for\b|\s*\$|[.,\n|]|$)`), sourceCombined, 0.6},
		},
		card:  commonCardPatterns,
		date: dateCascade{
			labelRe:     regexp.MustCompile(`(?i)date\s*:?` + boundary + `(?P<d>\d{1,2}[-/.]\d{1,2}[-/.]\d{2,4})`),
			monthNameRe: regexp.MustCompile(`(?i)(?P<mon>[A-Za-z]+)\s+(?P<day>\d{1,2}),?\s+(?P<yr>\d{4})`),
			numericRe:   regexp.MustCompile(`(?P<d>\d{1,2}[-/]\d{1,2}[-/]\d{2,4})`),
			layouts:     dateutils.LayoutsMonthFirst,
		},
	},
}

// Masked-PAN shapes are the same across banks; only the surrounding label
// wording differs, and the tiers below cover both languages.
var commonCardPatterns = []cardPattern{
	{regexp.MustCompile(`\*{2,4}\s?(\d{4})\b`), 0.9},
	{regexp.MustCompile(`(?i)\bx{2,4}\s?(\d{4})\b`), 0.85},
	{regexp.MustCompile(`(?i)(?:ending\s+in|terminaci[oó]n|terminada?\s+en|final)\s*:?\s*\*{0,4}\s*(\d{4})\b`), 0.85},
	{regexp.MustCompile(`(?i)(?:visa|mastercard|amex|tarjeta|card)\D{0,20}?(\d{4})\b`), 0.6},
}

// Transaction-direction keyword lists, bilingual. Direction is signaled
// diffusely rather than by one anchored label, so this field is a frequency
// vote instead of a first-match cascade.
var (
	debitKeywords = []string{
		"compra", "purchase", "cargo", "débito", "debito", "retiro",
		"withdrawal", "pago", "payment", "cobro", "charge", "spent",
		"cajero", "atm",
	}
	creditKeywords = []string{
		"crédito", "credito", "credit", "depósito", "deposito", "deposit",
		"abono", "reembolso", "refund", "devolución", "devolucion",
		"received", "cashback",
	}
)

// cascadeFor returns the pattern set for a bank identifier, falling back to
// the generic set for banks without dedicated patterns.
func cascadeFor(bankID string) bankPatterns {
	if p, ok := cascades[bankID]; ok {
		return p
	}
	return cascades["generic"]
}
