package extraction

import "fmt"

// ErrorCode identifies a terminal pipeline failure class.
type ErrorCode string

const (
	ErrEmptyInput        ErrorCode = "EMPTY_INPUT"
	ErrInsufficientText  ErrorCode = "INSUFFICIENT_TEXT"
	ErrNoParametersFound ErrorCode = "NO_PARAMETERS_FOUND"
	ErrInvalidDocument   ErrorCode = "INVALID_DOCUMENT"
	ErrLLMUnavailable    ErrorCode = "LLM_UNAVAILABLE"
	ErrLLMRateLimited    ErrorCode = "LLM_RATE_LIMITED"
)

// PipelineError is a structured error for extraction failures. It
// carries the diagnostics the caller needs to retry with pasted text
// instead of a binary upload.
type PipelineError struct {
	Code    ErrorCode
	Message string
	// MethodsAttempted lists the acquisition heuristics that ran.
	MethodsAttempted []string
	// PartialText holds whatever text was acquired before failing.
	PartialText string
	// StrategyCounts holds per-generator candidate counts (set for
	// NO_PARAMETERS_FOUND).
	StrategyCounts map[Strategy]int
	Retryable      bool
	Cause          error
}

func (e *PipelineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *PipelineError) Unwrap() error {
	return e.Cause
}

// IsRetryable returns whether retrying the same input could succeed.
func (e *PipelineError) IsRetryable() bool {
	return e.Retryable
}
