package chunker

import (
	"fmt"

	"docqa/internal/domain"
)

// WindowChunker splits text into fixed-length overlapping byte windows.
// Consecutive windows overlap by a fixed byte count, so the windows fully
// cover the document with no gaps; only the final window may be shorter.
type WindowChunker struct {
	maxLength int
	overlap   int
}

// NewWindowChunker validates the window parameters. An overlap at or above
// the window length would make the step non-positive, so it is rejected here
// rather than looping forever later.
func NewWindowChunker(maxLength, overlap int) (*WindowChunker, error) {
	if maxLength <= 0 {
		return nil, fmt.Errorf("%w: max_length %d must be positive", domain.ErrChunkConfig, maxLength)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("%w: overlap %d must not be negative", domain.ErrChunkConfig, overlap)
	}
	if overlap >= maxLength {
		return nil, fmt.Errorf("%w: overlap %d must be smaller than max_length %d", domain.ErrChunkConfig, overlap, maxLength)
	}
	return &WindowChunker{maxLength: maxLength, overlap: overlap}, nil
}

// Chunk emits the ordered window sequence for the document.
// Empty text yields zero chunks.
func (c *WindowChunker) Chunk(doc domain.Document) []domain.Chunk {
	text := doc.Content
	step := c.maxLength - c.overlap
	var chunks []domain.Chunk
	for start := 0; start < len(text); start += step {
		end := start + c.maxLength
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, domain.Chunk{
			Text:  text[start:end],
			Index: len(chunks),
			Start: start,
		})
		// Once a window reaches the end of the text the document is fully
		// covered; a further window would only repeat the tail.
		if end == len(text) {
			break
		}
	}
	return chunks
}
