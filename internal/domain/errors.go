package domain

import "errors"

// Failure classes surfaced by the pipeline. All are returned to the caller
// as-is; nothing in the core retries or substitutes a fallback answer.
var (
	// ErrChunkConfig marks invalid chunking parameters
	// (non-positive window, negative overlap, overlap >= window).
	ErrChunkConfig = errors.New("invalid chunking configuration")

	// ErrModel marks an embedding model failure: endpoint unavailable,
	// input rejected, or malformed output.
	ErrModel = errors.New("embedding model error")

	// ErrDimensionMismatch marks inconsistent vector dimensionality at
	// index build or query time.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrEmptyIndex marks an attempt to build or query an index with no
	// vectors. A document with zero chunks blocks question-answering.
	ErrEmptyIndex = errors.New("no vectors in index")

	// ErrInvalidTopK marks a search with a non-positive result count.
	ErrInvalidTopK = errors.New("top-k must be positive")

	// ErrEmptyQuestion is returned before any embedding call is made.
	ErrEmptyQuestion = errors.New("question is empty")

	// Answer-generation failures, mapped from the completion endpoint.
	ErrRateLimited  = errors.New("answer service rate limited")
	ErrUnauthorized = errors.New("answer service unauthorized")
	ErrTimeout      = errors.New("answer service timed out")
)
