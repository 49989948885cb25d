// Package extraction turns lab-report text into validated health parameters.
package extraction

// Strategy identifies which generator produced a candidate.
type Strategy string

const (
	StrategyPattern Strategy = "pattern"
	StrategyTable   Strategy = "table"
	StrategyFuzzy   Strategy = "fuzzy"
	StrategyLLM     Strategy = "llm"
)

// Candidate is one raw (name, value, unit) reading emitted by a single
// generator. Value is always a syntactically numeric string; generators
// that cannot produce a clean number must not emit a candidate.
type Candidate struct {
	Parameter string
	Value     string
	Unit      string
	Date      string // raw date text if the generator saw one, else ""
	Source    Strategy
}

// ValidatedParameter is a candidate that passed the plausible-range
// check, with status and reference range attached.
type ValidatedParameter struct {
	Parameter      string
	Value          float64
	Unit           string
	ReferenceRange string
	Status         Status
	Date           string // raw date text carried through from the candidate
	Source         Strategy
}

// CanonicalParameter is the single resolved reading for a parameter
// name within one document. This is the unit of persistence.
type CanonicalParameter struct {
	Category       string  `json:"category" firestore:"category"`
	Parameter      string  `json:"parameter" firestore:"parameter"`
	Value          float64 `json:"value" firestore:"value"`
	Unit           string  `json:"unit" firestore:"unit"`
	ReferenceRange string  `json:"referenceRange" firestore:"referenceRange"`
	Status         string  `json:"status" firestore:"status"`
	Date           string  `json:"date" firestore:"date"` // ISO calendar date
	// DateEstimated is true when the date was substituted (unparseable,
	// future, or too old) rather than read from the document.
	DateEstimated bool   `json:"dateEstimated,omitempty" firestore:"dateEstimated"`
	Source        string `json:"-" firestore:"source"`
}

// Status classifies a validated value against its clinical cut-points.
type Status string

const (
	StatusNormal  Status = "Normal"
	StatusLow     Status = "Low"
	StatusHigh    Status = "High"
	StatusUnknown Status = "Unknown"
)

// Result is the outcome of a full pipeline run over one document.
type Result struct {
	Parameters     []CanonicalParameter
	DocumentType   string
	TestDate       string
	MethodsUsed    []string
	StrategyCounts map[Strategy]int
}
