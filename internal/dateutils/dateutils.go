// Package dateutils provides the shared multi-template date parser consumed
// by every extractor cascade. All output is normalized to ISO YYYY-MM-DD.
package dateutils

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"
)

// LayoutISO is the canonical output layout for transaction dates.
const LayoutISO = "2006-01-02"

// LayoutsDayFirst is the trial order for Spanish-locale banks, which write
// dates day-first (DD-MM-YYYY).
var LayoutsDayFirst = []string{
	"02-01-2006",
	"02/01/2006",
	LayoutISO,
	"02.01.2006",
	"2/1/2006",
	"2-1-2006",
	"02/01/06",
}

// LayoutsMonthFirst is the trial order for US banks (MM/DD/YYYY first).
var LayoutsMonthFirst = []string{
	"01/02/2006",
	"01/02/06",
	"01-02-2006",
	LayoutISO,
	"1/2/2006",
	"02/01/2006",
}

var spaceRe = regexp.MustCompile(`\s+`)

// monthNumbers maps English and Spanish month names, full and abbreviated,
// to their month number.
var monthNumbers = map[string]time.Month{
	"january": time.January, "jan": time.January, "enero": time.January, "ene": time.January,
	"february": time.February, "feb": time.February, "febrero": time.February,
	"march": time.March, "mar": time.March, "marzo": time.March,
	"april": time.April, "apr": time.April, "abril": time.April, "abr": time.April,
	"may": time.May, "mayo": time.May,
	"june": time.June, "jun": time.June, "junio": time.June,
	"july": time.July, "jul": time.July, "julio": time.July,
	"august": time.August, "aug": time.August, "agosto": time.August, "ago": time.August,
	"september": time.September, "sep": time.September, "sept": time.September, "septiembre": time.September, "setiembre": time.September,
	"october": time.October, "oct": time.October, "octubre": time.October,
	"november": time.November, "nov": time.November, "noviembre": time.November,
	"december": time.December, "dec": time.December, "diciembre": time.December, "dic": time.December,
}

// ParseWithLayouts tries each layout in order and returns the first parse
// that succeeds. The trial order is significant for ambiguous numeric dates:
// "03-04-2024" is March 4 or April 3 depending on which layout is tried
// first, so each bank cascade supplies its own list.
func ParseWithLayouts(dateStr string, layouts []string) (time.Time, error) {
	cleaned := CleanDateString(dateStr)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// MonthNumber resolves an English or Spanish month name (full or
// abbreviated) to its month. The second return is false for unknown names.
func MonthNumber(name string) (time.Month, bool) {
	m, ok := monthNumbers[strings.ToLower(strings.TrimSpace(name))]
	return m, ok
}

// ParseEmailHeader parses an RFC 2822 date header ("Mon, 02 Jan 2006
// 15:04:05 -0700") as carried on email transport headers.
func ParseEmailHeader(header string) (time.Time, error) {
	t, err := mail.ParseDate(strings.TrimSpace(header))
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse email date header %q: %w", header, err)
	}
	return t, nil
}

// ToISODate formats a time as YYYY-MM-DD.
func ToISODate(t time.Time) string {
	return t.Format(LayoutISO)
}

// CleanDateString trims and squeezes whitespace in a date literal.
func CleanDateString(dateStr string) string {
	return spaceRe.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}
