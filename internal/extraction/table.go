package extraction

import (
	"context"
	"strings"
)

// tableHeaderKeywords mark column headers of a tabular lab report.
var tableHeaderKeywords = []string{"test", "result", "reference", "range", "units"}

// TableGenerator first classifies the text as tabular; if so it uses
// patterns that capture the middle (result) field of a
// "name  result  reference-range" triple so the reference bound is not
// mistaken for the measurement. Non-tabular text falls back to the
// plain pattern set.
type TableGenerator struct{}

func (TableGenerator) Name() Strategy { return StrategyTable }

func (TableGenerator) Generate(_ context.Context, text string) []Candidate {
	if !looksTabular(text) {
		return matchPatterns(text, StrategyTable, false)
	}
	out := matchPatterns(text, StrategyTable, true)
	if len(out) == 0 {
		// Tabular classification was wrong often enough in practice
		// that the plain patterns remain the safety net.
		out = matchPatterns(text, StrategyTable, false)
	}
	return out
}

// looksTabular is the confidence heuristic: column-header keywords, or
// at least three lines that each pair a known parameter name with a
// number.
func looksTabular(text string) bool {
	lower := strings.ToLower(text)

	headerHits := 0
	for _, kw := range tableHeaderKeywords {
		if strings.Contains(lower, kw) {
			headerHits++
		}
	}
	if headerHits >= 3 {
		return true
	}

	parameterLines := 0
	for _, line := range strings.Split(lower, "\n") {
		if !numericTokenRe.MatchString(line) {
			continue
		}
		for _, name := range patternOrder {
			if containsAnyTerm(line, catalog[name].Terms) {
				parameterLines++
				break
			}
		}
		if parameterLines >= 3 {
			return true
		}
	}
	return false
}

func containsAnyTerm(line string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(line, t) {
			return true
		}
	}
	return false
}
