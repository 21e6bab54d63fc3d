package extractor

import (
	"fmt"
	"time"

	"jsolano/mail-ledger/internal/dateutils"
	"jsolano/mail-ledger/internal/logging"
	"jsolano/mail-ledger/internal/models"
)

const (
	dateConfidenceLabel     = 0.9
	dateConfidenceMonthName = 0.8
	dateConfidenceNumeric   = 0.7
	dateConfidenceHeader    = 0.4
	dateConfidenceNow       = 0.1
)

// extractDate walks the date cascade: structural label, month-name literal,
// then loose numeric literals tried against the bank's layout order. A
// captured literal that fails to parse is a soft miss and the next tier
// runs. When every tier misses, the transport date header is used, and as a
// last resort the processing date. Output is always ISO YYYY-MM-DD, so this
// field always yields a value.
func extractDate(cascade dateCascade, in Input, log logging.Logger) models.FieldResult[string] {
	if match := cascade.labelRe.FindStringSubmatch(in.Combined); match != nil {
		literal := match[cascade.labelRe.SubexpIndex("d")]
		if t, err := dateutils.ParseWithLayouts(literal, cascade.layouts); err == nil {
			return models.NewFieldResult(dateutils.ToISODate(t), dateConfidenceLabel)
		}
	}

	if match := cascade.monthNameRe.FindStringSubmatch(in.Combined); match != nil {
		if t, err := monthNameDate(cascade.monthNameRe, match); err == nil {
			return models.NewFieldResult(dateutils.ToISODate(t), dateConfidenceMonthName)
		}
	}

	if match := cascade.numericRe.FindStringSubmatch(in.Combined); match != nil {
		literal := match[cascade.numericRe.SubexpIndex("d")]
		if t, err := dateutils.ParseWithLayouts(literal, cascade.layouts); err == nil {
			return models.NewFieldResult(dateutils.ToISODate(t), dateConfidenceNumeric)
		}
	}

	if t, err := dateutils.ParseEmailHeader(in.DateHeader); err == nil {
		return models.NewFieldResult(dateutils.ToISODate(t), dateConfidenceHeader)
	}

	log.Debug("No transaction date found, using processing date")
	return models.NewFieldResult(dateutils.ToISODate(in.Now), dateConfidenceNow)
}

// monthNameDate builds a date from a month-name literal match ("15 de marzo
// de 2024", "March 12, 2024").
func monthNameDate(re interface{ SubexpIndex(string) int }, match []string) (time.Time, error) {
	month, ok := dateutils.MonthNumber(match[re.SubexpIndex("mon")])
	if !ok {
		return time.Time{}, fmt.Errorf("unknown month name %q", match[re.SubexpIndex("mon")])
	}

	var day, year int
	if _, err := fmt.Sscanf(match[re.SubexpIndex("day")], "%d", &day); err != nil {
		return time.Time{}, err
	}
	if _, err := fmt.Sscanf(match[re.SubexpIndex("yr")], "%d", &year); err != nil {
		return time.Time{}, err
	}
	if day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("day %d out of range", day)
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
}
