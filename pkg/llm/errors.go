package llm

import (
	"errors"
	"fmt"
)

// Kind classifies a generation failure at the adapter boundary. Downstream
// code switches on the kind, never on vendor error text.
type Kind int

const (
	KindUnclassified Kind = iota
	KindRateLimited
	KindTimeout
	KindInvalidCredentials
)

func (k Kind) String() string {
	switch k {
	case KindRateLimited:
		return "rate_limited"
	case KindTimeout:
		return "timeout"
	case KindInvalidCredentials:
		return "invalid_credentials"
	default:
		return "unclassified"
	}
}

// Error is a tagged generation failure.
type Error struct {
	Kind  Kind
	Model string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("llm %s: %s: %v", e.Model, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the kind from an error chain; plain errors come back as
// KindUnclassified.
func KindOf(err error) Kind {
	var lerr *Error
	if errors.As(err, &lerr) {
		return lerr.Kind
	}
	return KindUnclassified
}
