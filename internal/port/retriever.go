package port

import "vecserve/internal/domain"

// Retriever defines the interface for searching the indexed corpus.
type Retriever interface {
	// Search embeds the query text and returns the top-k nearest chunks
	// ordered by ascending distance. topK must be positive; a topK larger
	// than the corpus returns every chunk.
	Search(queryText string, topK int) ([]domain.Result, error)
}
