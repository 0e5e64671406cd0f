package chunker

import "strings"

const (
	DefaultChunkSize = 1000
	DefaultOverlap   = 200

	// MinChunkLength is the ingestion floor: anything shorter after trimming
	// carries too little signal to be worth an embedding.
	MinChunkLength = 50
)

// Split cuts text into fixed-size character windows with the given overlap
// between consecutive windows. Whitespace runs are collapsed first so that
// scraped HTML does not produce windows full of padding.
func Split(text string, size, overlap int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = DefaultOverlap
		if overlap >= size {
			overlap = size / 4
		}
	}

	text = Normalize(text)
	if text == "" {
		return nil
	}

	runes := []rune(text)
	if len(runes) <= size {
		return []string{text}
	}

	step := size - overlap
	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return chunks
}

// FilterShort drops chunks shorter than min characters after trimming.
func FilterShort(chunks []string, min int) []string {
	if min <= 0 {
		min = MinChunkLength
	}
	var kept []string
	for _, c := range chunks {
		if len(strings.TrimSpace(c)) >= min {
			kept = append(kept, c)
		}
	}
	return kept
}

// Normalize collapses all whitespace runs into single spaces and trims the
// ends, mirroring what the scraper does to extracted page text.
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
