package extraction

import (
	"context"
	"testing"
)

const tabularReport = `Test                Result      Units     Reference Range
Total Cholesterol   230         mg/dL     <200
HDL Cholesterol     55          mg/dL     >40
Triglycerides       180         mg/dL     <150
Creatinine          1.1         mg/dL     0.7-1.3
`

func TestLooksTabular(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"header keywords", tabularReport, true},
		{
			"three parameter lines without headers",
			"total cholesterol 230\nhdl 55\ntriglyceride 180\n",
			true,
		},
		{"narrative prose", "your cholesterol was a little high at 230 this year", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := looksTabular(tt.text); got != tt.want {
				t.Errorf("looksTabular = %v, want %v", got, tt.want)
			}
		})
	}
}

// In a tabular row the result column must win over the reference bound
// that follows it on the same line.
func TestTableGeneratorCapturesResultColumn(t *testing.T) {
	got := TableGenerator{}.Generate(context.Background(), tabularReport)

	want := map[string]string{
		"Total Cholesterol": "230",
		"HDL Cholesterol":   "55",
		"Triglycerides":     "180",
		"Creatinine":        "1.1",
	}
	for name, value := range want {
		c := candidateByName(t, got, name)
		if c.Value != value {
			t.Errorf("%s = %s, want %s (reference bound must not be captured)", name, c.Value, value)
		}
		if c.Source != StrategyTable {
			t.Errorf("%s source = %s, want %s", name, c.Source, StrategyTable)
		}
	}
}

func TestTableGeneratorFallsBackOnProse(t *testing.T) {
	got := TableGenerator{}.Generate(context.Background(), "Total Cholesterol: 230 mg/dL measured today.")
	c := candidateByName(t, got, "Total Cholesterol")
	if c.Value != "230" {
		t.Errorf("value = %s, want 230", c.Value)
	}
	if c.Source != StrategyTable {
		t.Errorf("source = %s, want %s", c.Source, StrategyTable)
	}
}
