// Package risk computes rule-based risk scores over extracted health
// parameters and drives the LLM narrative for assessments.
package risk

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/healthlens/backend/internal/extraction"
)

// UserProfile carries the optional caller-supplied context that tunes
// scoring thresholds.
type UserProfile struct {
	Age    int    `json:"age,omitempty"`
	Gender string `json:"gender,omitempty"`
	Smoker bool   `json:"smoker,omitempty"`
}

// Assessment is the result of scoring one parameter set.
type Assessment struct {
	CategoryScores map[string]int `json:"categoryScores"`
	OverallScore   int            `json:"overallScore"`
	OverallLevel   string         `json:"overallLevel"`
	Findings       []string       `json:"findings"`
	Narrative      string         `json:"narrative,omitempty"`
}

// riskPoints is the per-parameter contribution when a reading is
// abnormal. Values are product decisions, not clinical guidance.
var riskPoints = map[string]int{
	"Total Cholesterol": 30,
	"LDL Cholesterol":   35,
	"HDL Cholesterol":   25,
	"Triglycerides":     25,
	"Systolic BP":       35,
	"Diastolic BP":      30,
	"Glucose":           35,
	"HbA1c":             40,
	"CRP":               40,
	"ALT":               35,
	"AST":               35,
	"Creatinine":        45,
	"TSH":               35,
	"Vitamin D":         20,
	"Vitamin B12":       20,
	"Hemoglobin":        30,
}

// Overall level thresholds.
const (
	levelModerateAt = 25
	levelHighAt     = 50
	levelVeryHighAt = 75
)

// Completer produces the narrative text; nil disables it.
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
}

// Scorer aggregates parameters into category scores and an overall
// level, optionally asking the completion model for prose.
type Scorer struct {
	Client Completer
}

// Assess scores the given parameters. The narrative is best-effort:
// an LLM failure logs and leaves Narrative empty, never failing the
// assessment itself.
func (s *Scorer) Assess(ctx context.Context, params []extraction.CanonicalParameter, profile UserProfile) *Assessment {
	a := &Assessment{CategoryScores: make(map[string]int)}

	for _, p := range params {
		status := effectiveStatus(p, profile)
		if status != extraction.StatusHigh && status != extraction.StatusLow {
			continue
		}
		points := riskPoints[p.Parameter]
		if points == 0 {
			points = 20
		}
		a.CategoryScores[p.Category] += points
		a.Findings = append(a.Findings, fmt.Sprintf("%s is %s at %g %s (reference %s)",
			p.Parameter, strings.ToLower(string(status)), p.Value, p.Unit, p.ReferenceRange))
	}

	total := 0
	for cat, score := range a.CategoryScores {
		if score > 100 {
			score = 100
			a.CategoryScores[cat] = score
		}
		total += score
	}
	if n := len(a.CategoryScores); n > 0 {
		a.OverallScore = total / n
	}
	a.OverallScore += profileAdjustment(profile)
	if a.OverallScore > 100 {
		a.OverallScore = 100
	}
	a.OverallLevel = levelFor(a.OverallScore)
	sort.Strings(a.Findings)

	if s.Client != nil && len(params) > 0 {
		narrative, err := s.Client.Complete(ctx, narrativePrompt(params, a, profile), 512, 0.3)
		if err != nil {
			log.Warn().Err(err).Msg("risk narrative generation failed, returning scores only")
		} else {
			a.Narrative = strings.TrimSpace(narrative)
		}
	}

	return a
}

// effectiveStatus re-derives HDL status with the sex-adjusted cut-point
// when the caller supplied a profile; all other parameters keep the
// status assigned at validation time.
func effectiveStatus(p extraction.CanonicalParameter, profile UserProfile) extraction.Status {
	if p.Parameter == "HDL Cholesterol" && strings.EqualFold(profile.Gender, "female") {
		if p.Value < 50 {
			return extraction.StatusLow
		}
		return extraction.StatusNormal
	}
	return extraction.Status(p.Status)
}

func profileAdjustment(profile UserProfile) int {
	adj := 0
	if profile.Age >= 50 {
		adj += 5
	}
	if profile.Smoker {
		adj += 10
	}
	return adj
}

func levelFor(score int) string {
	switch {
	case score >= levelVeryHighAt:
		return "very_high"
	case score >= levelHighAt:
		return "high"
	case score >= levelModerateAt:
		return "moderate"
	default:
		return "low"
	}
}

func narrativePrompt(params []extraction.CanonicalParameter, a *Assessment, profile UserProfile) string {
	var sb strings.Builder
	sb.WriteString("You are a health information assistant. Summarize the following lab results for a layperson in 3-5 sentences, then give 2-3 general lifestyle recommendations. Do not diagnose. Do not prescribe.\n\nResults:\n")
	for _, p := range params {
		fmt.Fprintf(&sb, "- %s: %g %s (%s, reference %s)\n", p.Parameter, p.Value, p.Unit, p.Status, p.ReferenceRange)
	}
	fmt.Fprintf(&sb, "\nOverall risk level: %s\n", a.OverallLevel)
	if profile.Age > 0 {
		fmt.Fprintf(&sb, "Patient age: %d\n", profile.Age)
	}
	return sb.String()
}
