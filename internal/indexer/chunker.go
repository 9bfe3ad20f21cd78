package indexer

import (
	"strings"
	"unicode"
)

const (
	defaultChunkSize = 1000 // Max runes per chunk
	defaultOverlap   = 200  // Runes shared between adjacent chunks
)

// Splitter splits extracted text into overlapping fixed-size chunks.
// Splitting is deterministic: the same text always yields the same chunks.
type Splitter struct {
	ChunkSize int
	Overlap   int
}

// NewSplitter creates a splitter with the default chunk size and overlap.
func NewSplitter() *Splitter {
	return &Splitter{
		ChunkSize: defaultChunkSize,
		Overlap:   defaultOverlap,
	}
}

// Split slices text into chunks of at most ChunkSize runes, preferring to cut
// at a paragraph break, then a sentence end, then any whitespace, before
// falling back to a hard cut. Adjacent chunks overlap by at most Overlap
// runes. Offsets are rune offsets into the original text.
func (s *Splitter) Split(docID, text string) []Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	runes := []rune(text)
	var chunks []Chunk
	start := 0
	ordinal := 0

	for start < len(runes) {
		end := start + s.ChunkSize
		if end >= len(runes) {
			end = len(runes)
		} else {
			end = s.findBoundary(runes, start, end)
		}

		chunkText := string(runes[start:end])
		if strings.TrimSpace(chunkText) != "" {
			chunks = append(chunks, Chunk{
				SourceDocumentID: docID,
				Ordinal:          ordinal,
				Text:             chunkText,
				CharStart:        start,
				CharEnd:          end,
			})
			ordinal++
		}

		if end == len(runes) {
			break
		}

		// Step back by the overlap, but always make forward progress.
		next := end - s.Overlap
		if next <= start {
			next = end
		}
		start = next
	}

	return chunks
}

// findBoundary scans the window [start, end) backwards for the best cut point.
// Preference order: paragraph break, sentence end, whitespace, hard cut at end.
func (s *Splitter) findBoundary(runes []rune, start, end int) int {
	window := runes[start:end]

	for i := len(window) - 1; i > 0; i-- {
		if window[i] == '\n' && window[i-1] == '\n' {
			return start + i + 1
		}
	}

	for i := len(window) - 1; i > 0; i-- {
		if !unicode.IsSpace(window[i]) {
			continue
		}
		switch window[i-1] {
		case '.', '?', '!':
			return start + i + 1
		}
	}

	for i := len(window) - 1; i >= 0; i-- {
		if unicode.IsSpace(window[i]) {
			return start + i + 1
		}
	}

	return end
}
