package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// Completer is the single opaque operation this package needs from the
// hosted text-completion collaborator. Its output is untrusted text.
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
}

const llmMaxOutputTokens = 2048

// LLMGenerator prompts the completion model for a strict JSON parameter
// list. It is best-effort end to end: any transport or parse failure
// yields zero candidates and never aborts the pipeline.
type LLMGenerator struct {
	Client Completer
}

func (LLMGenerator) Name() Strategy { return StrategyLLM }

func (g LLMGenerator) Generate(ctx context.Context, text string) []Candidate {
	if g.Client == nil {
		return nil
	}

	raw, err := g.Client.Complete(ctx, buildExtractionPrompt(text), llmMaxOutputTokens, 0)
	if err != nil {
		log.Warn().Err(err).Msg("llm generator: completion failed, returning no candidates")
		return nil
	}

	var parsed struct {
		Parameters []struct {
			Parameter string          `json:"parameter"`
			Value     json.RawMessage `json:"value"`
			Unit      string          `json:"unit"`
			Date      string          `json:"date"`
		} `json:"parameters"`
	}
	if err := extractJSON(raw, &parsed); err != nil {
		log.Warn().Err(err).Msg("llm generator: response was not parseable JSON")
		return nil
	}

	var out []Candidate
	for _, p := range parsed.Parameters {
		name := CanonicalName(p.Parameter)
		if name == "" {
			continue
		}
		value := rawNumber(p.Value)
		if value == "" {
			continue
		}
		unit := strings.TrimSpace(p.Unit)
		if unit == "" {
			unit = catalog[name].Unit
		}
		out = append(out, Candidate{
			Parameter: name,
			Value:     value,
			Unit:      unit,
			Date:      strings.TrimSpace(p.Date),
			Source:    StrategyLLM,
		})
	}
	return out
}

// buildExtractionPrompt embeds the acquired text in a deterministic
// instruction with a strict output schema.
func buildExtractionPrompt(text string) string {
	return fmt.Sprintf(`You are a clinical data extraction engine.
Extract every laboratory parameter with a numeric value from the report below.

Return ONLY a valid JSON object with this exact structure:
{
  "parameters": [
    {"parameter": "Total Cholesterol", "value": 218, "unit": "mg/dL", "date": "2025-03-14"}
  ]
}
Rules:
- "value" must be a plain number, never a string or a range
- omit a parameter entirely if its value is not clearly numeric
- "date" is the specimen collection date if stated, else ""
- do not invent parameters that are not present in the report

Report text:
"""
%s
"""`, text)
}

// rawNumber accepts a JSON number or a numeric string and returns a
// clean numeric string, or "" if the value is not syntactically numeric.
func rawNumber(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	s = strings.Trim(s, `"`)
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return ""
	}
	return s
}

// extractJSON locates the first balanced {...} span in an LLM response
// and unmarshals it. Models wrap JSON in prose and markdown fences
// often enough that naive unmarshalling is not an option.
func extractJSON(text string, v interface{}) error {
	start := -1
	end := -1
	depth := 0

	for i, c := range text {
		if c == '{' {
			if start == -1 {
				start = i
			}
			depth++
		} else if c == '}' {
			depth--
			if depth == 0 && start != -1 {
				end = i + 1
				break
			}
		}
	}

	if start == -1 || end == -1 {
		return fmt.Errorf("no JSON object found in response")
	}
	return json.Unmarshal([]byte(text[start:end]), v)
}
