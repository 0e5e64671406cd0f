package embedding

import "context"

// Provider maps text to fixed-dimension vectors.
type Provider interface {
	// EmbedBatch encodes all texts in one call. The returned slice is
	// positionally aligned with the input.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimension returns the output width, or 0 when it is only known after
	// the first call.
	Dimension() int
}
