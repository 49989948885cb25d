package extraction

import (
	"context"
	"testing"
)

func candidateByName(t *testing.T, cands []Candidate, name string) Candidate {
	t.Helper()
	for _, c := range cands {
		if c.Parameter == name {
			return c
		}
	}
	t.Fatalf("no candidate for %s in %+v", name, cands)
	return Candidate{}
}

func TestPatternGenerator(t *testing.T) {
	text := "LIPID PANEL\n" +
		"Total Cholesterol: 230 mg/dL (Reference: <200 mg/dL)\n" +
		"HbA1c: 6.8% (Reference: <5.7%)\n"

	got := PatternGenerator{}.Generate(context.Background(), text)
	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2: %+v", len(got), got)
	}

	chol := candidateByName(t, got, "Total Cholesterol")
	if chol.Value != "230" || chol.Unit != "mg/dL" || chol.Source != StrategyPattern {
		t.Errorf("unexpected cholesterol candidate: %+v", chol)
	}
	a1c := candidateByName(t, got, "HbA1c")
	if a1c.Value != "6.8" || a1c.Unit != "%" {
		t.Errorf("unexpected HbA1c candidate: %+v", a1c)
	}
}

func TestPatternGeneratorDistinguishesLipidFractions(t *testing.T) {
	text := "Total Cholesterol 230 mg/dL\nLDL Cholesterol 140 mg/dL\nHDL Cholesterol 55 mg/dL\nTriglycerides 180 mg/dL\n"

	got := PatternGenerator{}.Generate(context.Background(), text)
	want := map[string]string{
		"Total Cholesterol": "230",
		"LDL Cholesterol":   "140",
		"HDL Cholesterol":   "55",
		"Triglycerides":     "180",
	}
	if len(got) != len(want) {
		t.Fatalf("got %d candidates, want %d: %+v", len(got), len(want), got)
	}
	for name, value := range want {
		if c := candidateByName(t, got, name); c.Value != value {
			t.Errorf("%s = %s, want %s", name, c.Value, value)
		}
	}
}

func TestPatternGeneratorBloodPressurePair(t *testing.T) {
	got := PatternGenerator{}.Generate(context.Background(), "Vitals: Blood Pressure 130/85 mmHg, pulse 72")

	sys := candidateByName(t, got, "Systolic BP")
	dia := candidateByName(t, got, "Diastolic BP")
	if sys.Value != "130" || sys.Unit != "mmHg" {
		t.Errorf("systolic = %+v", sys)
	}
	if dia.Value != "85" || dia.Unit != "mmHg" {
		t.Errorf("diastolic = %+v", dia)
	}
}

func TestPatternGeneratorFirstExpressionWins(t *testing.T) {
	// Both the "total cholesterol" and the bare "serum cholesterol"
	// expressions can match; only one candidate may be emitted.
	text := "Serum Cholesterol 210 mg/dL. Total Cholesterol 230 mg/dL."
	got := PatternGenerator{}.Generate(context.Background(), text)

	count := 0
	for _, c := range got {
		if c.Parameter == "Total Cholesterol" {
			count++
			if c.Value != "230" {
				t.Errorf("value = %s, want 230 from the higher-precision expression", c.Value)
			}
		}
	}
	if count != 1 {
		t.Errorf("got %d Total Cholesterol candidates, want exactly 1", count)
	}
}

func TestPatternGeneratorNoMatches(t *testing.T) {
	got := PatternGenerator{}.Generate(context.Background(), "Dear patient, thank you for visiting our clinic.")
	if len(got) != 0 {
		t.Errorf("expected no candidates from prose, got %+v", got)
	}
}
