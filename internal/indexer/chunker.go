package indexer

import "strings"

const (
	// DefaultChunkSize is the number of words per chunk.
	DefaultChunkSize = 800
	// DefaultChunkOverlap is the number of words shared by consecutive chunks.
	DefaultChunkOverlap = 100
)

// WordChunker splits text on whitespace into overlapping windows of words.
type WordChunker struct {
	size    int
	overlap int
}

// NewWordChunker creates a chunker. A non-positive size selects both default
// size and default overlap, and an overlap that would stall the window is
// reduced to size-1.
func NewWordChunker(size, overlap int) *WordChunker {
	if size <= 0 {
		size, overlap = DefaultChunkSize, DefaultChunkOverlap
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size - 1
	}
	return &WordChunker{size: size, overlap: overlap}
}

// Chunk returns the windows in order. Every window starts size-overlap words
// after the previous one; the last may be shorter.
func (c *WordChunker) Chunk(text string) []Chunk {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	step := c.size - c.overlap
	chunks := make([]Chunk, 0, len(words)/step+1)
	for start := 0; start < len(words); start += step {
		end := min(start+c.size, len(words))
		chunks = append(chunks, Chunk{
			Index: len(chunks),
			Text:  strings.Join(words[start:end], " "),
			Words: end - start,
		})
	}
	return chunks
}
