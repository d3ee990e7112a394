package domain

import "context"

// Document is the raw UTF-8 text loaded for the current session.
// It is immutable once loaded and discarded when a new document replaces it.
type Document struct {
	Name    string
	Content string
}

// Chunk is a contiguous window of a document's text.
// Index is the chunk's position in the chunk sequence; Start is the byte
// offset of the window in the document.
type Chunk struct {
	Text  string
	Index int
	Start int
}

// SearchResult pairs a stored vector position with its squared Euclidean
// distance from the query. Position maps back to Chunk.Index.
type SearchResult struct {
	Position int
	Distance float64
}

// Embedder maps texts to fixed-dimension vectors. The output has one vector
// per input, in input order, all of identical dimensionality. A failed call
// returns no vectors at all; callers must never index partial output.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Completer generates an answer for a fully rendered prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error)
}

// Summarizer produces a brief summary of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
}
