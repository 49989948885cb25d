package extraction

import "context"

// PatternGenerator is the curated regex matcher: for each catalog
// entry it tries the configured expressions in order and takes the
// first numeric capture, then stops scanning for that parameter.
type PatternGenerator struct{}

func (PatternGenerator) Name() Strategy { return StrategyPattern }

func (PatternGenerator) Generate(_ context.Context, text string) []Candidate {
	return matchPatterns(text, StrategyPattern, false)
}

// matchPatterns is shared between the pattern generator and the
// table-aware generator's non-tabular fallback.
func matchPatterns(text string, source Strategy, tableFirst bool) []Candidate {
	var out []Candidate

	for _, name := range patternOrder {
		spec := catalog[name]
		exprs := spec.Patterns
		if tableFirst && len(spec.TablePatterns) > 0 {
			exprs = spec.TablePatterns
		}
		for _, re := range exprs {
			m := re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			out = append(out, Candidate{
				Parameter: name,
				Value:     m[1],
				Unit:      spec.Unit,
				Source:    source,
			})
			break // first successful expression wins for this parameter
		}
	}

	// Blood pressure is a paired capture, handled outside the table.
	if m := bloodPressureRe.FindStringSubmatch(text); m != nil {
		out = append(out,
			Candidate{Parameter: "Systolic BP", Value: m[1], Unit: "mmHg", Source: source},
			Candidate{Parameter: "Diastolic BP", Value: m[2], Unit: "mmHg", Source: source},
		)
	}

	return out
}
