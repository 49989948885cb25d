package extraction

import (
	"context"
	"regexp"
	"strconv"
	"strings"
)

// fuzzyWindow is how many characters around a term occurrence are
// inspected for a numeric token.
const fuzzyWindow = 20

var numericTokenRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

// FuzzyGenerator is the proximity scanner: it locates the first
// occurrence of each known medical term and takes the first numeric
// token within a fixed-size window around it, gated by the plausible
// range so street addresses and years are not mistaken for readings.
type FuzzyGenerator struct{}

func (FuzzyGenerator) Name() Strategy { return StrategyFuzzy }

func (FuzzyGenerator) Generate(_ context.Context, text string) []Candidate {
	lower := strings.ToLower(text)
	var out []Candidate

	for _, name := range patternOrder {
		spec := catalog[name]
		for _, term := range spec.Terms {
			idx := strings.Index(lower, term)
			if idx == -1 {
				continue
			}
			window := windowAround(text, idx+len(term), fuzzyWindow)
			tok := numericTokenRe.FindString(window)
			if tok == "" {
				break
			}
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil || v < spec.Min || v > spec.Max {
				break
			}
			out = append(out, Candidate{
				Parameter: name,
				Value:     tok,
				Unit:      spec.Unit,
				Source:    StrategyFuzzy,
			})
			break
		}
	}

	return out
}

// windowAround returns up to n characters on either side of pos.
func windowAround(s string, pos, n int) string {
	start := pos - n
	if start < 0 {
		start = 0
	}
	end := pos + n
	if end > len(s) {
		end = len(s)
	}
	return s[start:end]
}
