package extraction

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Generator is one independent extraction strategy over immutable text.
// Implementations must never panic outward; a strategy that finds
// nothing returns an empty slice.
type Generator interface {
	Name() Strategy
	Generate(ctx context.Context, text string) []Candidate
}

// runGenerators executes all generators concurrently over the same
// text. Each runs in its own goroutine with a recover guard so a single
// misbehaving strategy degrades to "found nothing" instead of taking
// the request down.
func runGenerators(ctx context.Context, gens []Generator, text string) map[Strategy][]Candidate {
	var mu sync.Mutex
	results := make(map[Strategy][]Candidate, len(gens))

	var wg sync.WaitGroup
	for _, g := range gens {
		wg.Add(1)
		go func(g Generator) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					log.Warn().
						Str("strategy", string(g.Name())).
						Interface("panic", r).
						Msg("generator panicked, treating as no candidates")
				}
			}()
			out := g.Generate(ctx, text)
			mu.Lock()
			results[g.Name()] = out
			mu.Unlock()
		}(g)
	}
	wg.Wait()

	return results
}
