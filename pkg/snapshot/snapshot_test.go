package snapshot

import (
	"path/filepath"
	"testing"

	"finbot-be/pkg/store"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faq_index")

	vectors := [][]float32{{1, 0, 0}, {0, 1, 0}}
	records := []store.ChunkRecord{
		{Text: "What is a savings account?", Source: "FAQ"},
		{Text: "What is APR?", Source: "FAQ"},
	}

	if err := Save(path, vectors, records); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !Exists(path) {
		t.Fatal("Exists = false after Save")
	}

	gotVectors, gotRecords, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(gotVectors) != 2 || len(gotRecords) != 2 {
		t.Fatalf("Load returned %d vectors, %d records", len(gotVectors), len(gotRecords))
	}
	if gotRecords[0] != records[0] || gotRecords[1] != records[1] {
		t.Errorf("records did not round-trip: %+v", gotRecords)
	}
	if gotVectors[1][1] != 1 {
		t.Errorf("vectors did not round-trip: %v", gotVectors)
	}
}

func TestLoadMissingPair(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nothing_here")

	vectors, records, err := Load(path)
	if err != nil {
		t.Fatalf("Load of absent snapshot errored: %v", err)
	}
	if vectors != nil || records != nil {
		t.Errorf("Load of absent snapshot returned data")
	}
}

func TestSaveRejectsMismatchedPair(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad")
	err := Save(path, [][]float32{{1}}, nil)
	if err == nil {
		t.Fatal("Save accepted mismatched vector/record counts")
	}
}
