package extraction

import "time"

// DefaultPriority is the strategy order used to break ties when the
// same parameter is found by multiple generators. Pattern and
// table-aware results outrank the LLM, which outranks the proximity
// scanner. Configurable because some deployments prefer the LLM first.
var DefaultPriority = []Strategy{StrategyPattern, StrategyTable, StrategyLLM, StrategyFuzzy}

// Merge resolves validated candidates to one canonical record per
// parameter name. Iterating strategies in priority order, the first
// candidate for a name wins; later duplicates are discarded outright,
// not averaged. Output preserves insertion order of first resolution.
func Merge(byStrategy map[Strategy][]ValidatedParameter, priority []Strategy, now time.Time) []CanonicalParameter {
	if len(priority) == 0 {
		priority = DefaultPriority
	}

	seen := make(map[string]bool)
	var out []CanonicalParameter

	for _, strat := range priority {
		for _, vp := range byStrategy[strat] {
			if seen[vp.Parameter] {
				continue
			}
			seen[vp.Parameter] = true

			date, estimated := NormalizeDate(vp.Date, now)
			out = append(out, CanonicalParameter{
				Category:       catalog[vp.Parameter].Category,
				Parameter:      vp.Parameter,
				Value:          vp.Value,
				Unit:           vp.Unit,
				ReferenceRange: vp.ReferenceRange,
				Status:         string(vp.Status),
				Date:           date,
				DateEstimated:  estimated,
				Source:         string(vp.Source),
			})
		}
	}

	return out
}
