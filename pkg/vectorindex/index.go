package vectorindex

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrInvalidDimension  = errors.New("vector dimension must be positive")
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
)

// Result is a single search hit: the inner-product score and the row the
// vector was appended at.
type Result struct {
	Score float32
	Row   int
}

// Index is a flat, append-only collection of fixed-width vectors searched by
// brute-force inner product. Rows are never removed or reordered, so a row
// number handed out by Search stays valid for the life of the index.
type Index struct {
	mu        sync.RWMutex
	dimension int
	vectors   [][]float32
}

func New(dimension int) (*Index, error) {
	if dimension <= 0 {
		return nil, ErrInvalidDimension
	}
	return &Index{dimension: dimension}, nil
}

// Add appends a batch of vectors and returns the new total row count.
// The whole batch is rejected if any vector has the wrong width.
func (idx *Index) Add(vectors [][]float32) (int, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	for i, v := range vectors {
		if len(v) != idx.dimension {
			return len(idx.vectors), fmt.Errorf("%w: row %d has %d values, index width is %d",
				ErrDimensionMismatch, i, len(v), idx.dimension)
		}
	}
	idx.vectors = append(idx.vectors, vectors...)
	return len(idx.vectors), nil
}

// Search returns up to k rows ranked by descending inner product with query.
// An empty index yields an empty result set, not an error. Scores are plain
// dot products: nothing here normalizes them into [0,1].
func (idx *Index) Search(query []float32, k int) []Result {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	if len(idx.vectors) == 0 || k <= 0 {
		return nil
	}

	results := make([]Result, len(idx.vectors))
	for i, v := range idx.vectors {
		results[i] = Result{Score: dot(query, v), Row: i}
	}
	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})

	if k < len(results) {
		results = results[:k]
	}
	return results
}

func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.vectors)
}

func (idx *Index) Dimension() int {
	return idx.dimension
}

// Rows returns a copy of the raw vectors, oldest first. Used by the snapshot
// writer only.
func (idx *Index) Rows() [][]float32 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	out := make([][]float32, len(idx.vectors))
	for i, v := range idx.vectors {
		row := make([]float32, len(v))
		copy(row, v)
		out[i] = row
	}
	return out
}

func dot(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float32
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
