package llm

import "context"

// Option allows optional generation parameters.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

// Provider is the contract for any generation backend. Failures are returned
// as *Error so callers can branch on the kind instead of matching message
// substrings.
type Provider interface {
	// Generate sends a single prompt to the model and returns the completion.
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)

	// Model returns the identifier of the model this provider was built for.
	Model() string
}
