package embedding

import (
	"sync"
	"testing"
)

func TestHashEmbedderDeterministic(t *testing.T) {
	e := NewHashEmbedder(64)

	a, err := e.Embed([]string{"the quick brown fox"})
	if err != nil {
		t.Fatal(err)
	}
	b, err := e.Embed([]string{"the quick brown fox"})
	if err != nil {
		t.Fatal(err)
	}

	for i := range a[0] {
		if a[0][i] != b[0][i] {
			t.Fatal("identical input produced different embeddings")
		}
	}
}

func TestHashEmbedderDimension(t *testing.T) {
	e := NewHashEmbedder(32)

	vecs, err := e.Embed([]string{"one", "two words", ""})
	if err != nil {
		t.Fatal(err)
	}
	if len(vecs) != 3 {
		t.Fatalf("expected 3 vectors, got %d", len(vecs))
	}
	for i, v := range vecs {
		if len(v) != 32 {
			t.Errorf("vector %d has dimension %d, expected 32", i, len(v))
		}
	}
	if e.Dimension() != 32 {
		t.Errorf("Dimension() = %d, expected 32", e.Dimension())
	}
}

func TestHashEmbedderEmptyText(t *testing.T) {
	e := NewHashEmbedder(16)

	vecs, err := e.Embed([]string{""})
	if err != nil {
		t.Fatalf("empty string must embed without error, got %v", err)
	}
	for _, x := range vecs[0] {
		if x != 0 {
			t.Error("empty string should embed to the zero vector")
		}
	}
}

func TestSerializedPassthrough(t *testing.T) {
	inner := NewHashEmbedder(16)
	s := Serialize(inner)

	if s.Dimension() != inner.Dimension() {
		t.Error("Dimension not passed through")
	}
	if s.ModelName() != inner.ModelName() {
		t.Error("ModelName not passed through")
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Embed([]string{"concurrent call"}); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
}
