package report

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// groupedThousandsRe matches dot-grouped integers like "1.000" or
// "-12.345.678". These parse as floats too, so they must be recognized
// before the plain-number pass-through or "1.000" would become 1.
var groupedThousandsRe = regexp.MustCompile(`^-?\d{1,3}(\.\d{3})+$`)

// ParseCurrency converts a locale-formatted money string into a number.
// Unambiguously numeric strings ("1234.5") pass through unchanged;
// everything else ("$1.234.567", "1.000", "1 250 000") is stripped of
// currency symbols, separators and whitespace first. Empty or unparsable
// input resolves to 0 so a single malformed cell never blocks the report.
func ParseCurrency(s string) float64 {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0
	}

	if !groupedThousandsRe.MatchString(trimmed) {
		if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return v
		}
	}

	cleaner := strings.NewReplacer("$", "", ".", "", ",", "", " ", "", " ", "")
	clean := cleaner.Replace(trimmed)
	if clean == "" {
		return 0
	}

	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0
	}
	return v
}

// dateLayouts lists the accepted date formats, ordered day-first or
// month-first depending on the locale setting. ISO dates parse either way.
var (
	dayFirstLayouts = []string{
		"02/01/2006", "2/1/2006", "02-01-2006", "2-1-2006",
		"02/01/2006 15:04:05", "2006-01-02", "2006-01-02 15:04:05",
	}
	monthFirstLayouts = []string{
		"01/02/2006", "1/2/2006", "01-02-2006", "1-2-2006",
		"01/02/2006 15:04:05", "2006-01-02", "2006-01-02 15:04:05",
	}
)

// ParseDate parses a human-entered date string. dayFirst selects
// DD/MM/YYYY interpretation, required for day/month/year locales.
// Returns ok=false for missing or unparsable input.
func ParseDate(s string, dayFirst bool) (time.Time, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return time.Time{}, false
	}

	layouts := monthFirstLayouts
	if dayFirst {
		layouts = dayFirstLayouts
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// PeriodKey formats a date to the year-month granularity used to join
// observations against targets.
func PeriodKey(t time.Time) string {
	return t.Format("2006-01")
}

var periodLabelRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// PeriodKeyFromLabel resolves a period key from a source cell that may
// hold either a pre-formatted "YYYY-MM" label (used verbatim) or a date
// from which the key is derived. Returns "" when neither applies; rows
// with an empty key are dropped upstream.
func PeriodKeyFromLabel(s string, dayFirst bool) string {
	trimmed := strings.TrimSpace(s)
	if periodLabelRe.MatchString(trimmed) {
		return trimmed
	}
	if t, ok := ParseDate(trimmed, dayFirst); ok {
		return PeriodKey(t)
	}
	return ""
}
