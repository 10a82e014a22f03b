package chunker

import (
	"strings"

	"vecserve/internal/domain"
)

// WordChunker splits text on whitespace-delimited word boundaries and packs
// words greedily into chunks of at most maxWords words. Chunks never
// overlap and words are never split: a single word longer than the limit is
// emitted as its own one-word chunk.
type WordChunker struct {
	maxWords int
}

func NewWordChunker(maxWords int) *WordChunker {
	if maxWords <= 0 {
		maxWords = 1
	}
	return &WordChunker{maxWords: maxWords}
}

// Chunk returns the ordered chunk sequence for the given text. Ids are the
// 0-based position in the output; joining the chunk texts with single
// spaces reproduces the document's word sequence.
func (c *WordChunker) Chunk(text string) []domain.Chunk {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	chunks := make([]domain.Chunk, 0, (len(words)+c.maxWords-1)/c.maxWords)
	for start := 0; start < len(words); start += c.maxWords {
		end := start + c.maxWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, domain.Chunk{
			ID:   len(chunks),
			Text: strings.Join(words[start:end], " "),
		})
	}

	return chunks
}
