package store

import (
	"errors"
	"sync"

	"finbot-be/pkg/vectorindex"
)

// ErrLengthMismatch is returned when a batch's vectors and records disagree
// in count.
var ErrLengthMismatch = errors.New("vectors and records length mismatch")

// ChunkRecord is the metadata side of one indexed vector: the chunk text and
// a human-readable origin label (URL, filename, or "FAQ").
type ChunkRecord struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// RetrievedChunk is a ChunkRecord joined back to its similarity score.
type RetrievedChunk struct {
	Text   string
	Source string
	Score  float32
}

// Session is one isolated knowledge base: a vector index and the metadata
// records for its rows. Record i always describes index row i; Append and
// Search keep that correspondence by doing both halves under one lock.
type Session struct {
	ID string

	mu      sync.RWMutex
	index   *vectorindex.Index
	records []ChunkRecord
}

func NewSession(id string) *Session {
	return &Session{ID: id}
}

// Append adds a batch of vectors and their matching records as one unit.
// The index is created lazily from the first batch's width. A failed index
// append leaves the records untouched, so the two sides never diverge.
func (s *Session) Append(vectors [][]float32, records []ChunkRecord) (int, error) {
	if len(vectors) != len(records) {
		return 0, ErrLengthMismatch
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index == nil {
		if len(vectors) == 0 {
			return 0, nil
		}
		idx, err := vectorindex.New(len(vectors[0]))
		if err != nil {
			return 0, err
		}
		s.index = idx
	}

	if _, err := s.index.Add(vectors); err != nil {
		return 0, err
	}
	s.records = append(s.records, records...)
	return len(vectors), nil
}

// Search runs a top-k query and joins each hit to its record. The read lock
// spans both the index scan and the metadata lookup, so a concurrent Append
// can never make a returned row point past the records it was paired with.
func (s *Session) Search(query []float32, k int) []RetrievedChunk {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.index == nil {
		return nil
	}
	hits := s.index.Search(query, k)
	out := make([]RetrievedChunk, 0, len(hits))
	for _, h := range hits {
		if h.Row >= len(s.records) {
			continue
		}
		rec := s.records[h.Row]
		out = append(out, RetrievedChunk{Text: rec.Text, Source: rec.Source, Score: h.Score})
	}
	return out
}

// Records returns a copy of the metadata sequence in row order.
func (s *Session) Records() []ChunkRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ChunkRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of indexed chunks.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// HasIndex reports whether any batch has been appended yet.
func (s *Session) HasIndex() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index != nil
}

// Vectors exposes a copy of the raw index rows for snapshotting.
func (s *Session) Vectors() [][]float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.index == nil {
		return nil
	}
	return s.index.Rows()
}
