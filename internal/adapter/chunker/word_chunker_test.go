package chunker

import (
	"strings"
	"testing"
)

func TestWordChunkerBasic(t *testing.T) {
	c := NewWordChunker(2)

	chunks := c.Chunk("A B C D E")

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}

	want := []string{"A B", "C D", "E"}
	for i, chunk := range chunks {
		if chunk.ID != i {
			t.Errorf("chunk %d: expected ID %d, got %d", i, i, chunk.ID)
		}
		if chunk.Text != want[i] {
			t.Errorf("chunk %d: expected %q, got %q", i, want[i], chunk.Text)
		}
	}
}

func TestWordChunkerEmpty(t *testing.T) {
	c := NewWordChunker(100)

	if chunks := c.Chunk(""); len(chunks) != 0 {
		t.Errorf("expected no chunks for empty document, got %d", len(chunks))
	}
	if chunks := c.Chunk("   \n\t  "); len(chunks) != 0 {
		t.Errorf("expected no chunks for whitespace-only document, got %d", len(chunks))
	}
}

func TestWordChunkerWordLimit(t *testing.T) {
	c := NewWordChunker(5)

	text := strings.Repeat("word ", 23)
	chunks := c.Chunk(text)

	for _, chunk := range chunks {
		if n := len(strings.Fields(chunk.Text)); n > 5 {
			t.Errorf("chunk %d has %d words, limit is 5", chunk.ID, n)
		}
	}
	if len(chunks) != 5 {
		t.Errorf("expected 5 chunks for 23 words with limit 5, got %d", len(chunks))
	}
}

func TestWordChunkerLossless(t *testing.T) {
	c := NewWordChunker(3)

	text := "the quick brown fox\njumps   over\tthe lazy dog"
	chunks := c.Chunk(text)

	parts := make([]string, len(chunks))
	for i, chunk := range chunks {
		parts[i] = chunk.Text
	}
	joined := strings.Join(parts, " ")

	if joined != strings.Join(strings.Fields(text), " ") {
		t.Errorf("chunking lost or reordered words: %q", joined)
	}
}

func TestWordChunkerOversizedWord(t *testing.T) {
	c := NewWordChunker(1)

	word := strings.Repeat("x", 500)
	chunks := c.Chunk(word)

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != word {
		t.Error("oversized word must be emitted unsplit")
	}
}

func TestWordChunkerIDsDense(t *testing.T) {
	c := NewWordChunker(4)

	chunks := c.Chunk(strings.Repeat("a b c ", 20))
	for i, chunk := range chunks {
		if chunk.ID != i {
			t.Fatalf("ids not dense: position %d has id %d", i, chunk.ID)
		}
	}
}
