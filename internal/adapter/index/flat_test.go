package index

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuildRejectsDimensionMismatch(t *testing.T) {
	_, err := Build(3, [][]float32{{1, 2, 3}, {1, 2}})
	if err == nil {
		t.Fatal("expected error for inconsistent vector dimensions")
	}
}

func TestSearchOrdering(t *testing.T) {
	idx, err := Build(2, [][]float32{
		{10, 10}, // id 0, far
		{1, 1},   // id 1, nearest
		{3, 3},   // id 2, middle
	})
	if err != nil {
		t.Fatal(err)
	}

	matches, err := idx.Search([]float32{1, 1}, 3)
	if err != nil {
		t.Fatal(err)
	}

	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}
	wantIDs := []int{1, 2, 0}
	for i, m := range matches {
		if m.ChunkID != wantIDs[i] {
			t.Errorf("position %d: expected chunk %d, got %d", i, wantIDs[i], m.ChunkID)
		}
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Distance < matches[i-1].Distance {
			t.Error("matches not ordered by ascending distance")
		}
	}
	if matches[0].Distance != 0 {
		t.Errorf("exact match should have distance 0, got %f", matches[0].Distance)
	}
}

func TestSearchTieBreakAscendingID(t *testing.T) {
	// Two vectors equidistant from the query.
	idx, err := Build(1, [][]float32{{2}, {0}, {2}, {0}})
	if err != nil {
		t.Fatal(err)
	}

	matches, err := idx.Search([]float32{1}, 4)
	if err != nil {
		t.Fatal(err)
	}

	wantIDs := []int{0, 1, 2, 3}
	for i, m := range matches {
		if m.ChunkID != wantIDs[i] {
			t.Errorf("position %d: expected chunk %d, got %d (ties must break by ascending id)", i, wantIDs[i], m.ChunkID)
		}
	}
}

func TestSearchKLargerThanCount(t *testing.T) {
	idx, err := Build(1, [][]float32{{1}, {2}, {3}})
	if err != nil {
		t.Fatal(err)
	}

	matches, err := idx.Search([]float32{0}, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 3 {
		t.Errorf("expected all 3 chunks for k=10, got %d", len(matches))
	}
}

func TestSearchInvalidK(t *testing.T) {
	idx, _ := Build(1, [][]float32{{1}})

	if _, err := idx.Search([]float32{0}, 0); err == nil {
		t.Error("expected error for k=0")
	}
	if _, err := idx.Search([]float32{0}, -1); err == nil {
		t.Error("expected error for negative k")
	}
}

func TestSearchEmptyIndex(t *testing.T) {
	idx, err := Build(4, nil)
	if err != nil {
		t.Fatal(err)
	}

	matches, err := idx.Search([]float32{0, 0, 0, 0}, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 0 {
		t.Errorf("expected no matches from empty index, got %d", len(matches))
	}
}

func TestSearchQueryDimensionMismatch(t *testing.T) {
	idx, _ := Build(3, [][]float32{{1, 2, 3}})

	if _, err := idx.Search([]float32{1, 2}, 1); err == nil {
		t.Error("expected error for query dimension mismatch")
	}
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.vec")

	idx, err := Build(2, [][]float32{{1.5, -2.25}, {0, 3.75}})
	if err != nil {
		t.Fatal(err)
	}
	if err := idx.WriteFile(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Count() != 2 || loaded.Dimension() != 2 {
		t.Fatalf("expected count=2 dim=2, got count=%d dim=%d", loaded.Count(), loaded.Dimension())
	}

	matches, err := loaded.Search([]float32{1.5, -2.25}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if matches[0].ChunkID != 0 || matches[0].Distance != 0 {
		t.Errorf("round-tripped index returned chunk %d at distance %f", matches[0].ChunkID, matches[0].Distance)
	}
}

func TestFileRoundTripEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.vec")

	idx, err := Build(8, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := idx.WriteFile(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Count() != 0 || loaded.Dimension() != 8 {
		t.Fatalf("expected count=0 dim=8, got count=%d dim=%d", loaded.Count(), loaded.Dimension())
	}
}

func TestOpenFileRejectsCorrupt(t *testing.T) {
	dir := t.TempDir()

	missing := filepath.Join(dir, "missing.vec")
	if _, err := OpenFile(missing); err == nil {
		t.Error("expected error for missing file")
	}

	garbage := filepath.Join(dir, "garbage.vec")
	if err := os.WriteFile(garbage, []byte("not an index"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenFile(garbage); err == nil {
		t.Error("expected error for non-index file")
	}

	idx, _ := Build(2, [][]float32{{1, 2}, {3, 4}})
	truncated := filepath.Join(dir, "trunc.vec")
	if err := idx.WriteFile(truncated); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(truncated)
	if err := os.WriteFile(truncated, data[:len(data)-5], 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenFile(truncated); err == nil {
		t.Error("expected error for truncated file")
	}
}
