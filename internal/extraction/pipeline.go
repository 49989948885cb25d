package extraction

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultLLMTimeout bounds the one generator that does network I/O.
// On expiry the LLM strategy is treated as "found nothing".
const DefaultLLMTimeout = 20 * time.Second

// Pipeline wires acquisition, the candidate generators, validation and
// merge into one extraction unit. It holds no per-request state; a
// single Pipeline serves concurrent requests.
type Pipeline struct {
	generators []Generator
	priority   []Strategy
	llmTimeout time.Duration
	now        func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithPriority overrides the merge tie-break order.
func WithPriority(p []Strategy) Option {
	return func(pl *Pipeline) { pl.priority = p }
}

// WithLLMTimeout overrides the LLM generator deadline.
func WithLLMTimeout(d time.Duration) Option {
	return func(pl *Pipeline) { pl.llmTimeout = d }
}

// withClock fixes the pipeline clock; tests use it for date fallbacks.
func withClock(now func() time.Time) Option {
	return func(pl *Pipeline) { pl.now = now }
}

// NewPipeline builds the standard pipeline. A nil completer disables
// the LLM strategy; the three local generators always run.
func NewPipeline(completer Completer, opts ...Option) *Pipeline {
	p := &Pipeline{
		generators: []Generator{
			PatternGenerator{},
			TableGenerator{},
			FuzzyGenerator{},
		},
		priority:   DefaultPriority,
		llmTimeout: DefaultLLMTimeout,
		now:        time.Now,
	}
	if completer != nil {
		p.generators = append(p.generators, LLMGenerator{Client: completer})
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Extract runs the full pipeline over one uploaded document. Exactly
// one of blob and pastedText may be empty; pastedText wins when both
// are present since the caller pasted it deliberately.
func (p *Pipeline) Extract(ctx context.Context, blob []byte, declaredType, pastedText string) (*Result, error) {
	var acquired *AcquiredText
	var err error

	if pastedText != "" {
		acquired, err = AcquireText([]byte(pastedText), "text/plain")
	} else {
		acquired, err = AcquireText(blob, declaredType)
	}
	if err != nil {
		return nil, err
	}

	llmCtx, cancel := context.WithTimeout(ctx, p.llmTimeout)
	defer cancel()
	candidates := runGenerators(llmCtx, p.generators, acquired.Text)

	validated := validateAll(candidates)

	counts := make(map[Strategy]int, len(validated))
	total := 0
	for strat, list := range validated {
		counts[strat] = len(list)
		total += len(list)
	}

	if total == 0 {
		return nil, &PipelineError{
			Code:             ErrNoParametersFound,
			Message:          "no recognizable health parameters found in the document",
			MethodsAttempted: acquired.MethodsUsed,
			PartialText:      acquired.Text,
			StrategyCounts:   counts,
		}
	}

	now := p.now()
	params := Merge(validated, p.priority, now)

	log.Info().
		Int("parameters", len(params)).
		Strs("methods", acquired.MethodsUsed).
		Msg("extraction pipeline completed")

	return &Result{
		Parameters:     params,
		DocumentType:   classifyDocument(acquired.Text),
		TestDate:       documentTestDate(params, now),
		MethodsUsed:    acquired.MethodsUsed,
		StrategyCounts: counts,
	}, nil
}

// classifyDocument labels the report from its vocabulary. Coarse on
// purpose; the label is informational, not load-bearing.
func classifyDocument(text string) string {
	switch {
	case looksTabular(text):
		return "lab_report"
	case bloodPressureRe.MatchString(text):
		return "vitals_record"
	default:
		return "medical_document"
	}
}
