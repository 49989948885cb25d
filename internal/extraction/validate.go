package extraction

import (
	"strconv"
	"strings"
)

// Validate checks a candidate against the medically plausible range for
// its parameter. Out-of-range or unknown candidates are dropped, never
// clamped. Returns false when the candidate did not survive.
func Validate(c Candidate) (ValidatedParameter, bool) {
	spec := catalog[c.Parameter]
	if spec == nil {
		return ValidatedParameter{}, false
	}

	v, err := strconv.ParseFloat(c.Value, 64)
	if err != nil {
		return ValidatedParameter{}, false
	}
	if v < spec.Min || v > spec.Max {
		return ValidatedParameter{}, false
	}

	return ValidatedParameter{
		Parameter:      spec.Name,
		Value:          v,
		Unit:           c.Unit,
		ReferenceRange: spec.ReferenceRange,
		Status:         deriveStatus(spec, v),
		Date:           c.Date,
		Source:         c.Source,
	}, true
}

// deriveStatus compares a validated value against the configured
// cut-points. Parameters without cut-points stay Unknown.
func deriveStatus(spec *ParameterSpec, v float64) Status {
	cuts := spec.Cuts
	if cuts.Low == 0 && cuts.High == 0 {
		return StatusUnknown
	}
	if cuts.Low > 0 && v < cuts.Low {
		return StatusLow
	}
	if cuts.High > 0 && v > cuts.High {
		return StatusHigh
	}
	return StatusNormal
}

// validateAll filters each strategy's candidates through Validate.
func validateAll(byStrategy map[Strategy][]Candidate) map[Strategy][]ValidatedParameter {
	out := make(map[Strategy][]ValidatedParameter, len(byStrategy))
	for strat, candidates := range byStrategy {
		var kept []ValidatedParameter
		for _, c := range candidates {
			if vp, ok := Validate(c); ok {
				kept = append(kept, vp)
			}
		}
		out[strat] = kept
	}
	return out
}

var nameJunkReplacer = strings.NewReplacer("(", " ", ")", " ", ":", " ", "_", " ")

func normalizeName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = nameJunkReplacer.Replace(n)
	return strings.Join(strings.Fields(n), " ")
}
