// Package index provides an exact nearest-neighbor index over a fixed set
// of vectors. Flat brute-force search is deliberate: at single-document
// corpus sizes determinism matters more than scale, and the index is rebuilt
// from scratch for every loaded document.
package index

import (
	"fmt"
	"sort"

	"docqa/internal/domain"
)

// Flat stores vectors in insertion order and answers queries by squared
// Euclidean distance. It is read-only after Build.
type Flat struct {
	dim     int
	vectors [][]float32
}

// Build validates the vector set and constructs the index. Vector position i
// must correspond to chunk index i; Build keeps the given order.
func Build(vectors [][]float32) (*Flat, error) {
	if len(vectors) == 0 {
		return nil, fmt.Errorf("%w: cannot build from zero vectors", domain.ErrEmptyIndex)
	}
	dim := len(vectors[0])
	if dim == 0 {
		return nil, fmt.Errorf("%w: zero-dimensional vector at position 0", domain.ErrDimensionMismatch)
	}
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: vector %d has dimension %d, expected %d",
				domain.ErrDimensionMismatch, i, len(v), dim)
		}
	}
	return &Flat{dim: dim, vectors: vectors}, nil
}

// Len returns the number of stored vectors.
func (f *Flat) Len() int { return len(f.vectors) }

// Dimension returns the dimensionality shared by all stored vectors.
func (f *Flat) Dimension() int { return f.dim }

// Search returns the min(k, Len()) stored positions closest to the query,
// ascending by squared Euclidean distance. Equal distances are ordered by
// ascending position, so results are deterministic.
func (f *Flat) Search(query []float32, k int) ([]domain.SearchResult, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidTopK, k)
	}
	if len(query) != f.dim {
		return nil, fmt.Errorf("%w: query has dimension %d, index has %d",
			domain.ErrDimensionMismatch, len(query), f.dim)
	}
	results := make([]domain.SearchResult, len(f.vectors))
	for i, v := range f.vectors {
		results[i] = domain.SearchResult{Position: i, Distance: l2sq(query, v)}
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}
		return results[i].Position < results[j].Position
	})
	if k > len(results) {
		k = len(results)
	}
	return results[:k], nil
}

func l2sq(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}
