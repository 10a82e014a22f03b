package port

import "vecserve/internal/domain"

// Chunker splits raw corpus text into an ordered sequence of bounded-size
// chunks with dense 0-based ids.
type Chunker interface {
	Chunk(text string) []domain.Chunk
}
