package index

import (
	"errors"
	"testing"

	"docqa/internal/domain"
)

func TestBuild_EmptyInput(t *testing.T) {
	_, err := Build(nil)
	if !errors.Is(err, domain.ErrEmptyIndex) {
		t.Fatalf("expected ErrEmptyIndex, got %v", err)
	}
	_, err = Build([][]float32{})
	if !errors.Is(err, domain.ErrEmptyIndex) {
		t.Fatalf("expected ErrEmptyIndex, got %v", err)
	}
}

func TestBuild_RaggedVectors(t *testing.T) {
	_, err := Build([][]float32{{1, 0}, {0, 1, 2}})
	if !errors.Is(err, domain.ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestSearch_QueryDimensionMismatch(t *testing.T) {
	idx, err := Build([][]float32{{1, 0}, {0, 1}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := idx.Search([]float32{1, 0, 0}, 1); !errors.Is(err, domain.ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestSearch_RejectsNonPositiveK(t *testing.T) {
	idx, err := Build([][]float32{{1, 0}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := idx.Search([]float32{1, 0}, 0); !errors.Is(err, domain.ErrInvalidTopK) {
		t.Fatalf("expected ErrInvalidTopK for k=0, got %v", err)
	}
	if _, err := idx.Search([]float32{1, 0}, -1); !errors.Is(err, domain.ErrInvalidTopK) {
		t.Fatalf("expected ErrInvalidTopK for k=-1, got %v", err)
	}
}

func TestSearch_ExactMatchFirst(t *testing.T) {
	idx, err := Build([][]float32{{1, 0}, {0, 1}, {3, 4}})
	if err != nil {
		t.Fatal(err)
	}
	res, err := idx.Search([]float32{0, 1}, 3)
	if err != nil {
		t.Fatal(err)
	}
	if res[0].Position != 1 || res[0].Distance != 0 {
		t.Fatalf("expected position 1 with distance 0 first, got %+v", res[0])
	}
	for i := 1; i < len(res); i++ {
		if res[i].Distance < res[i-1].Distance {
			t.Fatalf("results not sorted ascending: %+v", res)
		}
	}
}

func TestSearch_ReturnsMinKAndN(t *testing.T) {
	idx, err := Build([][]float32{{0}, {1}, {2}})
	if err != nil {
		t.Fatal(err)
	}
	res, err := idx.Search([]float32{0}, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 3 {
		t.Fatalf("expected exactly 3 results for k=10 over 3 vectors, got %d", len(res))
	}
	res, err = idx.Search([]float32{0}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 2 {
		t.Fatalf("expected 2 results, got %d", len(res))
	}
}

func TestSearch_TiesBrokenByPosition(t *testing.T) {
	// Positions 0 and 2 are equidistant from the query; 0 must come first.
	idx, err := Build([][]float32{{2, 0}, {0, 0}, {-2, 0}, {0, 1}})
	if err != nil {
		t.Fatal(err)
	}
	res, err := idx.Search([]float32{0, 0}, 4)
	if err != nil {
		t.Fatal(err)
	}
	wantOrder := []int{1, 3, 0, 2}
	for i, want := range wantOrder {
		if res[i].Position != want {
			t.Fatalf("expected order %v, got %+v", wantOrder, res)
		}
	}
}
