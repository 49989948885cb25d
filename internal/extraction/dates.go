package extraction

import (
	"regexp"
	"strings"
	"time"
)

// maxDateAge is how far back a test date may lie before it is treated
// as an extraction artifact and replaced.
const maxDateAge = 5 * 365 * 24 * time.Hour

// exactDateFormats are tried in order against the cleaned input.
// Numeric slash/dash forms are month-first; day-first inputs still
// parse when the month field is unambiguous (see numericFallbacks).
var exactDateFormats = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"1-2-2006",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
	"02 Jan 2006",
}

// monthYearFormats resolve to the 15th of the month. Deliberate
// convention: callers needing exact days must supply them.
var monthYearFormats = []string{
	"January 2006",
	"Jan 2006",
	"01/2006",
	"1/2006",
	"2006-01",
}

// numericFallbacks reinterpret day-first numeric dates that the
// month-first formats rejected (e.g. "25/03/2024").
var numericFallbacks = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
}

var dateCleanRe = regexp.MustCompile(`(?i)^(?:collected|reported|date)[:\s]+`)

// NormalizeDate parses a raw date string into an ISO calendar date.
// The second return is true when the result was substituted rather
// than read from the input: unparseable strings, future dates and
// dates more than five years old all fall back to today. The fallback
// is uniform across every generator.
func NormalizeDate(raw string, now time.Time) (string, bool) {
	today := now.Format("2006-01-02")

	s := strings.TrimSpace(dateCleanRe.ReplaceAllString(strings.TrimSpace(raw), ""))
	if s == "" {
		return today, true
	}

	t, ok := parseDate(s)
	if !ok {
		return today, true
	}

	if t.After(now) || now.Sub(t) > maxDateAge {
		return today, true
	}
	return t.Format("2006-01-02"), false
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range exactDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range numericFallbacks {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range monthYearFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), 15, 0, 0, 0, 0, time.UTC), true
		}
	}
	// Two-digit years come through often enough from table cells.
	for _, layout := range []string{"01/02/06", "02/01/06"} {
		if t, err := time.Parse(layout, s); err == nil {
			if t.Year() < 100 {
				t = t.AddDate(2000, 0, 0)
			}
			return t, true
		}
	}
	return time.Time{}, false
}

// documentTestDate picks the document-level test date: the most common
// normalized date among the parameters, falling back to today.
func documentTestDate(params []CanonicalParameter, now time.Time) string {
	counts := make(map[string]int)
	for _, p := range params {
		if !p.DateEstimated {
			counts[p.Date]++
		}
	}
	best, bestN := "", 0
	for d, n := range counts {
		if n > bestN || (n == bestN && d > best) {
			best, bestN = d, n
		}
	}
	if best != "" {
		return best
	}
	return now.Format("2006-01-02")
}
