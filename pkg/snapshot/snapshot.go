package snapshot

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"finbot-be/pkg/store"
)

// A snapshot is two paired artifacts next to each other: the raw vector rows
// and the metadata records for those rows. Only the default seed corpus is
// ever persisted; runtime sessions stay in memory.
const (
	vectorSuffix = ".vectors.gob"
	metaSuffix   = ".metadata.gob"
)

// Save writes both halves of a snapshot. The vector blob is written first so
// a torn write leaves a missing metadata file, which Load treats as absent.
func Save(path string, vectors [][]float32, records []store.ChunkRecord) error {
	if len(vectors) != len(records) {
		return fmt.Errorf("snapshot: %d vectors for %d records", len(vectors), len(records))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("snapshot: create dir: %w", err)
	}
	if err := writeGob(path+vectorSuffix, vectors); err != nil {
		return err
	}
	return writeGob(path+metaSuffix, records)
}

// Load reads a snapshot pair. A missing pair is not an error; both values
// come back nil and the caller re-embeds the seed corpus.
func Load(path string) ([][]float32, []store.ChunkRecord, error) {
	if !Exists(path) {
		return nil, nil, nil
	}

	var vectors [][]float32
	if err := readGob(path+vectorSuffix, &vectors); err != nil {
		return nil, nil, err
	}
	var records []store.ChunkRecord
	if err := readGob(path+metaSuffix, &records); err != nil {
		return nil, nil, err
	}
	if len(vectors) != len(records) {
		return nil, nil, fmt.Errorf("snapshot: %d vectors for %d records, pair is corrupt",
			len(vectors), len(records))
	}
	return vectors, records, nil
}

// Exists reports whether both halves of the pair are present.
func Exists(path string) bool {
	for _, suffix := range []string{vectorSuffix, metaSuffix} {
		if _, err := os.Stat(path + suffix); err != nil {
			return false
		}
	}
	return true
}

func writeGob(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: create %s: %w", path, err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(v); err != nil {
		return fmt.Errorf("snapshot: encode %s: %w", path, err)
	}
	return nil
}

func readGob(path string, v interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("snapshot: open %s: %w", path, err)
	}
	defer f.Close()
	if err := gob.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("snapshot: decode %s: %w", path, err)
	}
	return nil
}
