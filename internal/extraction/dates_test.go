package extraction

import (
	"testing"
	"time"
)

var testNow = time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		want          string
		wantEstimated bool
	}{
		{"ISO passes through", "2025-03-14", "2025-03-14", false},
		{"slash month-first", "03/14/2025", "2025-03-14", false},
		{"ambiguous defaults month-first", "04/05/2025", "2025-04-05", false},
		{"day-first when month impossible", "25/03/2025", "2025-03-25", false},
		{"full month name", "March 14, 2025", "2025-03-14", false},
		{"abbreviated month name", "14 Mar 2025", "2025-03-14", false},
		{"month-year resolves to 15th", "September 2025", "2025-09-15", false},
		{"numeric month-year", "09/2025", "2025-09-15", false},
		{"future falls back to today", "2026-01-01", "2025-10-01", true},
		{"too old falls back to today", "2019-01-01", "2025-10-01", true},
		{"unparseable falls back to today", "not a date", "2025-10-01", true},
		{"empty falls back to today", "", "2025-10-01", true},
		{"label prefix stripped", "Collected: 2025-03-14", "2025-03-14", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, estimated := NormalizeDate(tt.input, testNow)
			if got != tt.want {
				t.Errorf("NormalizeDate(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if estimated != tt.wantEstimated {
				t.Errorf("NormalizeDate(%q) estimated = %v, want %v", tt.input, estimated, tt.wantEstimated)
			}
		})
	}
}

func TestDocumentTestDate(t *testing.T) {
	params := []CanonicalParameter{
		{Parameter: "Glucose", Date: "2025-03-14"},
		{Parameter: "HbA1c", Date: "2025-03-14"},
		{Parameter: "ALT", Date: "2025-10-01", DateEstimated: true},
	}
	if got := documentTestDate(params, testNow); got != "2025-03-14" {
		t.Errorf("documentTestDate = %q, want 2025-03-14", got)
	}

	// All estimated: fall back to today.
	estimated := []CanonicalParameter{{Parameter: "Glucose", Date: "2025-10-01", DateEstimated: true}}
	if got := documentTestDate(estimated, testNow); got != "2025-10-01" {
		t.Errorf("documentTestDate (estimated only) = %q", got)
	}
}
