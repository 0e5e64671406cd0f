package store

import (
	"strings"
	"sync"
	"testing"
)

func vec(vals ...float32) []float32 { return vals }

func TestAppendKeepsSidesAligned(t *testing.T) {
	s := NewSession("t1")

	n, err := s.Append(
		[][]float32{vec(1, 0), vec(0, 1)},
		[]ChunkRecord{{Text: "a", Source: "doc1"}, {Text: "b", Source: "doc1"}},
	)
	if err != nil || n != 2 {
		t.Fatalf("Append = %d, %v, want 2, nil", n, err)
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}

	records := s.Records()
	if records[0].Text != "a" || records[1].Text != "b" {
		t.Errorf("record order broken: %+v", records)
	}
}

func TestAppendLengthMismatch(t *testing.T) {
	s := NewSession("t2")

	_, err := s.Append([][]float32{vec(1, 0)}, []ChunkRecord{{Text: "a"}, {Text: "b"}})
	if err == nil {
		t.Fatal("Append with mismatched lengths did not fail")
	}
	if s.Len() != 0 || s.HasIndex() {
		t.Errorf("failed Append mutated the session: len=%d hasIndex=%v", s.Len(), s.HasIndex())
	}
}

func TestAppendBadDimensionLeavesRecordsUntouched(t *testing.T) {
	s := NewSession("t3")
	s.Append([][]float32{vec(1, 0)}, []ChunkRecord{{Text: "a"}})

	_, err := s.Append([][]float32{vec(1, 0, 0)}, []ChunkRecord{{Text: "b"}})
	if err == nil {
		t.Fatal("Append with wrong width did not fail")
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d after rejected batch, want 1", s.Len())
	}
}

func TestSearchJoinsRecordToScore(t *testing.T) {
	s := NewSession("t4")
	s.Append(
		[][]float32{vec(1, 0), vec(0, 1)},
		[]ChunkRecord{{Text: "alpha", Source: "x"}, {Text: "beta", Source: "y"}},
	)

	hits := s.Search(vec(0, 1), 1)
	if len(hits) != 1 {
		t.Fatalf("Search returned %d hits, want 1", len(hits))
	}
	if hits[0].Text != "beta" || hits[0].Source != "y" {
		t.Errorf("Search joined wrong record: %+v", hits[0])
	}
}

func TestSearchEmptySession(t *testing.T) {
	s := NewSession("t5")
	if hits := s.Search(vec(1, 0), 3); len(hits) != 0 {
		t.Errorf("Search on empty session returned %d hits", len(hits))
	}
}

func TestConcurrentAppends(t *testing.T) {
	s := NewSession("t6")

	var wg sync.WaitGroup
	for w := 0; w < 2; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			vectors := make([][]float32, 5)
			records := make([]ChunkRecord, 5)
			for i := range vectors {
				vectors[i] = vec(float32(w), float32(i))
				records[i] = ChunkRecord{Text: strings.Repeat("x", 60), Source: "doc"}
			}
			if _, err := s.Append(vectors, records); err != nil {
				t.Errorf("concurrent Append failed: %v", err)
			}
		}(w)
	}
	wg.Wait()

	if s.Len() != 10 {
		t.Errorf("Len = %d after two concurrent appends of 5, want 10", s.Len())
	}
	// Every indexed row must resolve to a record.
	hits := s.Search(vec(1, 1), 10)
	if len(hits) != 10 {
		t.Errorf("Search resolved %d of 10 rows", len(hits))
	}
}
