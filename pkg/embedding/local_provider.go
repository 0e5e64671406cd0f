package embedding

import (
	"context"
	"hash/fnv"
	"math"
)

// LocalProvider produces deterministic pseudo-embeddings without any network
// dependency. Identical texts always map to identical unit-norm vectors, which
// is enough for the retrieval pipeline to behave sensibly in development and
// in tests. Not a semantic model.
type LocalProvider struct {
	dimension int
}

func NewLocalProvider(dimension int) *LocalProvider {
	if dimension <= 0 {
		dimension = 128
	}
	return &LocalProvider{dimension: dimension}
}

func (p *LocalProvider) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = p.encode(text)
	}
	return vectors, nil
}

func (p *LocalProvider) Dimension() int {
	return p.dimension
}

func (p *LocalProvider) encode(text string) []float32 {
	vec := make([]float32, p.dimension)

	// Hash overlapping trigrams into buckets so that near-identical texts
	// land near each other.
	runes := []rune(text)
	for i := 0; i+3 <= len(runes); i++ {
		h := fnv.New32a()
		h.Write([]byte(string(runes[i : i+3])))
		bucket := int(h.Sum32()) % p.dimension
		if bucket < 0 {
			bucket += p.dimension
		}
		vec[bucket]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		vec[0] = 1
		return vec
	}
	scale := float32(1 / math.Sqrt(norm))
	for i := range vec {
		vec[i] *= scale
	}
	return vec
}
