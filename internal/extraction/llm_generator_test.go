package extraction

import (
	"context"
	"errors"
	"testing"
)

// fakeCompleter returns a canned response or error and records the
// prompt it was given.
type fakeCompleter struct {
	response string
	err      error
	prompt   string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string, _ int, _ float64) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func TestLLMGenerator(t *testing.T) {
	fake := &fakeCompleter{response: `Sure, here is the extraction:
` + "```json" + `
{"parameters": [
  {"parameter": "total cholesterol", "value": 230, "unit": "mg/dL", "date": "2025-03-14"},
  {"parameter": "hba1c", "value": "6.8", "unit": "", "date": ""},
  {"parameter": "mystery marker", "value": 12, "unit": "x", "date": ""},
  {"parameter": "glucose", "value": "about ninety", "unit": "mg/dL", "date": ""}
]}
` + "```"}

	got := LLMGenerator{Client: fake}.Generate(context.Background(), "Total Cholesterol 230 mg/dL, HbA1c 6.8%")
	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2: %+v", len(got), got)
	}

	chol := got[0]
	if chol.Parameter != "Total Cholesterol" || chol.Value != "230" || chol.Unit != "mg/dL" {
		t.Errorf("unexpected first candidate: %+v", chol)
	}
	if chol.Date != "2025-03-14" {
		t.Errorf("date = %q, want 2025-03-14", chol.Date)
	}
	if chol.Source != StrategyLLM {
		t.Errorf("source = %s, want %s", chol.Source, StrategyLLM)
	}

	a1c := got[1]
	if a1c.Parameter != "HbA1c" || a1c.Value != "6.8" {
		t.Errorf("unexpected second candidate: %+v", a1c)
	}
	if a1c.Unit != "%" {
		t.Errorf("missing unit should default to the catalog unit, got %q", a1c.Unit)
	}

	if fake.prompt == "" {
		t.Fatal("completer was never called")
	}
}

func TestLLMGeneratorFailuresYieldNoCandidates(t *testing.T) {
	tests := []struct {
		name string
		fake *fakeCompleter
	}{
		{"transport error", &fakeCompleter{err: errors.New("boom")}},
		{"no JSON in response", &fakeCompleter{response: "I could not find any parameters."}},
		{"malformed JSON", &fakeCompleter{response: `{"parameters": [{"parameter": }`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (LLMGenerator{Client: tt.fake}).Generate(context.Background(), "some text"); got != nil {
				t.Errorf("want nil candidates, got %+v", got)
			}
		})
	}
}

func TestLLMGeneratorNilClient(t *testing.T) {
	if got := (LLMGenerator{}).Generate(context.Background(), "text"); got != nil {
		t.Errorf("nil client must yield nil, got %+v", got)
	}
}

func TestExtractJSON(t *testing.T) {
	var v struct {
		A int `json:"a"`
	}
	if err := extractJSON("prefix {\"a\": 3, \"b\": {\"c\": 1}} suffix", &v); err != nil {
		t.Fatalf("extractJSON: %v", err)
	}
	if v.A != 3 {
		t.Errorf("a = %d, want 3", v.A)
	}
	if err := extractJSON("no braces here", &v); err == nil {
		t.Error("expected an error when no object is present")
	}
}

func TestRawNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`230`, "230"},
		{`"6.8"`, "6.8"},
		{`" 95 "`, "95"},
		{`"high"`, ""},
		{`null`, ""},
		{`""`, ""},
	}
	for _, tt := range tests {
		if got := rawNumber([]byte(tt.in)); got != tt.want {
			t.Errorf("rawNumber(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
