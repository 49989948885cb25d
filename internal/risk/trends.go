package risk

import (
	"github.com/healthlens/backend/internal/store"
)

// Trend directions.
const (
	TrendIncreasing   = "increasing"
	TrendDecreasing   = "decreasing"
	TrendStable       = "stable"
	TrendInsufficient = "insufficient_data"
)

// stabilityBand is the percent-change band treated as no real movement.
const stabilityBand = 5.0

// Trend describes how one parameter moved over the analysis window.
type Trend struct {
	Parameter     string  `json:"parameter"`
	Direction     string  `json:"direction"`
	FirstValue    float64 `json:"firstValue,omitempty"`
	LastValue     float64 `json:"lastValue,omitempty"`
	PercentChange float64 `json:"percentChange,omitempty"`
	Readings      int     `json:"readings"`
}

// AnalyzeTrend computes the direction for one parameter's history,
// which must already be ordered by test date ascending. Direction is
// percent change from first to last value with a ±5% stability band.
func AnalyzeTrend(parameter string, history []store.ParameterRecord) Trend {
	t := Trend{Parameter: parameter, Readings: len(history)}
	if len(history) < 2 {
		t.Direction = TrendInsufficient
		return t
	}

	first := history[0].Value
	last := history[len(history)-1].Value
	t.FirstValue = first
	t.LastValue = last

	if first == 0 {
		t.Direction = TrendInsufficient
		return t
	}

	pct := (last - first) / first * 100
	t.PercentChange = pct
	switch {
	case pct > stabilityBand:
		t.Direction = TrendIncreasing
	case pct < -stabilityBand:
		t.Direction = TrendDecreasing
	default:
		t.Direction = TrendStable
	}
	return t
}
