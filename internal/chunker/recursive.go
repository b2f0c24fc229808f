package chunker

import (
	"docqa/internal/domain"
)

// Default window sized for a large-context generation model rather than
// classic small-window retrieval.
const (
	DefaultChunkSize = 11000
	DefaultOverlap   = 1000
)

// separators is the split cascade, largest first. A chunk boundary is
// placed at the last occurrence of the largest separator that still
// makes progress; when no separator is usable the cascade bottoms out
// at the character level and the window is cut at exactly chunkSize.
var separators = [][]rune{
	[]rune("\n\n"),
	[]rune("\n"),
	[]rune(". "),
	[]rune(" "),
}

// RecursiveChunker splits text into overlapping chunks bounded by a
// character limit. Consecutive chunks share the trailing overlap of
// the previous chunk, so content spanning a boundary stays visible to
// both sides. No character of the input is ever dropped.
type RecursiveChunker struct {
	chunkSize int
	overlap   int
}

func New(chunkSize, overlap int) *RecursiveChunker {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= chunkSize {
		overlap = chunkSize / 10
	}
	return &RecursiveChunker{chunkSize: chunkSize, overlap: overlap}
}

// Split produces the ordered chunk sequence for text. Every chunk is
// at most chunkSize characters. Empty input yields an empty sequence.
func (c *RecursiveChunker) Split(text string) []domain.Chunk {
	if text == "" {
		return nil
	}
	runes := []rune(text)
	n := len(runes)
	var chunks []domain.Chunk
	start, ord := 0, 0
	for start < n {
		end := n
		if start+c.chunkSize < n {
			end = c.cut(runes, start)
		}
		chunks = append(chunks, domain.Chunk{Text: string(runes[start:end]), Ordinal: ord})
		ord++
		if end >= n {
			break
		}
		start = end - c.overlap
	}
	return chunks
}

// cut finds the boundary for a chunk starting at start, trying each
// separator from largest to smallest within the size window. A boundary
// must land past the overlap region, otherwise the next chunk would not
// advance. A window with no usable separator is cut at the character
// level, exactly at chunkSize. New guarantees chunkSize > overlap, so
// every boundary makes progress and no character is ever dropped.
func (c *RecursiveChunker) cut(runes []rune, start int) int {
	window := runes[start : start+c.chunkSize]
	for _, sep := range separators {
		idx := lastIndexRunes(window, sep)
		if idx >= 0 && idx+len(sep) > c.overlap {
			return start + idx + len(sep)
		}
	}
	return start + c.chunkSize
}

func lastIndexRunes(s, sep []rune) int {
	for i := len(s) - len(sep); i >= 0; i-- {
		match := true
		for j := range sep {
			if s[i+j] != sep[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
