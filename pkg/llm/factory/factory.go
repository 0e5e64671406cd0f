package factory

import (
	"fmt"

	"finbot-be/internal/apperror"
	"finbot-be/pkg/llm"
	"finbot-be/pkg/llm/gemini"
)

// Constructor builds a provider for one model identifier.
type Constructor func(apiKey, model string) (llm.Provider, error)

// NewWithFallback walks the candidate model identifiers in order and returns
// the first provider that constructs. Construction failures advance to the
// next candidate; a later invocation failure on the chosen provider does not
// come back here.
func NewWithFallback(apiKey string, candidates []string, construct Constructor) (llm.Provider, error) {
	if construct == nil {
		construct = func(apiKey, model string) (llm.Provider, error) {
			return gemini.NewProvider(apiKey, model)
		}
	}

	var lastErr error
	for _, model := range candidates {
		provider, err := construct(apiKey, model)
		if err != nil {
			lastErr = err
			continue
		}
		return provider, nil
	}
	if lastErr != nil {
		return nil, fmt.Errorf("%w: last candidate error: %v", apperror.ErrNoModelAvailable, lastErr)
	}
	return nil, fmt.Errorf("%w: empty candidate list", apperror.ErrNoModelAvailable)
}
