package extraction

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		candidate  Candidate
		wantOK     bool
		wantStatus Status
	}{
		{
			name:       "high cholesterol within plausible range",
			candidate:  Candidate{Parameter: "Total Cholesterol", Value: "230", Unit: "mg/dL", Source: StrategyPattern},
			wantOK:     true,
			wantStatus: StatusHigh,
		},
		{
			name:      "implausible cholesterol dropped",
			candidate: Candidate{Parameter: "Total Cholesterol", Value: "550", Unit: "mg/dL", Source: StrategyPattern},
			wantOK:    false,
		},
		{
			name:       "normal cholesterol",
			candidate:  Candidate{Parameter: "Total Cholesterol", Value: "180", Unit: "mg/dL", Source: StrategyPattern},
			wantOK:     true,
			wantStatus: StatusNormal,
		},
		{
			name:       "low HDL",
			candidate:  Candidate{Parameter: "HDL Cholesterol", Value: "35", Unit: "mg/dL", Source: StrategyFuzzy},
			wantOK:     true,
			wantStatus: StatusLow,
		},
		{
			name:       "high HbA1c",
			candidate:  Candidate{Parameter: "HbA1c", Value: "6.8", Unit: "%", Source: StrategyTable},
			wantOK:     true,
			wantStatus: StatusHigh,
		},
		{
			name:      "HbA1c below plausible floor dropped",
			candidate: Candidate{Parameter: "HbA1c", Value: "2.1", Unit: "%", Source: StrategyTable},
			wantOK:    false,
		},
		{
			name:      "unknown parameter dropped",
			candidate: Candidate{Parameter: "Quantum Flux", Value: "42", Unit: "qf", Source: StrategyLLM},
			wantOK:    false,
		},
		{
			name:      "non-numeric value dropped",
			candidate: Candidate{Parameter: "Glucose", Value: "ninety", Unit: "mg/dL", Source: StrategyLLM},
			wantOK:    false,
		},
		{
			name:       "glucose in normal band",
			candidate:  Candidate{Parameter: "Glucose", Value: "85", Unit: "mg/dL", Source: StrategyPattern},
			wantOK:     true,
			wantStatus: StatusNormal,
		},
		{
			name:       "creatinine low",
			candidate:  Candidate{Parameter: "Creatinine", Value: "0.5", Unit: "mg/dL", Source: StrategyPattern},
			wantOK:     true,
			wantStatus: StatusLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Validate(tt.candidate)
			if ok != tt.wantOK {
				t.Fatalf("Validate(%v) ok = %v, want %v", tt.candidate, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", got.Status, tt.wantStatus)
			}
			if got.ReferenceRange == "" {
				t.Error("expected a reference range to be attached")
			}
			spec := Lookup(tt.candidate.Parameter)
			if got.Value < spec.Min || got.Value > spec.Max {
				t.Errorf("validated value %f outside plausible range [%f, %f]", got.Value, spec.Min, spec.Max)
			}
		})
	}
}

// Every validated value must lie inside its parameter's configured
// range, whatever numeric string a generator produced.
func TestValidateRangeProperty(t *testing.T) {
	values := []string{"-10", "0", "0.5", "3", "29.9", "42", "99", "150.5", "230", "401", "599", "1200", "99999"}
	for _, name := range patternOrder {
		spec := catalog[name]
		for _, v := range values {
			got, ok := Validate(Candidate{Parameter: name, Value: v, Source: StrategyPattern})
			if !ok {
				continue
			}
			if got.Value < spec.Min || got.Value > spec.Max {
				t.Errorf("%s: value %s survived validation outside [%g, %g]", name, v, spec.Min, spec.Max)
			}
		}
	}
}

func TestCanonicalName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"total cholesterol", "Total Cholesterol"},
		{"Total Cholesterol", "Total Cholesterol"},
		{"LDL-C", "LDL Cholesterol"},
		{"  glycated hemoglobin  ", "HbA1c"},
		{"SGPT", "ALT"},
		{"thyroid stimulating hormone", "TSH"},
		{"made-up thing", ""},
	}
	for _, tt := range tests {
		if got := CanonicalName(tt.in); got != tt.want {
			t.Errorf("CanonicalName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
