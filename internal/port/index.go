package port

// Match is one nearest-neighbor hit: the positional chunk id and its raw
// distance to the query vector.
type Match struct {
	ChunkID  int
	Distance float64
}

// VectorIndex performs nearest-neighbor search over a fixed collection of
// embeddings addressed by positional chunk id. Implementations are
// read-only after construction and safe for concurrent searches.
type VectorIndex interface {
	// Search returns up to k matches ordered by ascending distance.
	// Ties are broken by ascending chunk id. k must be positive.
	Search(query []float32, k int) ([]Match, error)

	// Count returns the number of indexed embeddings.
	Count() int

	// Dimension returns the embedding dimension of the index.
	Dimension() int
}
