package port

import "vecserve/internal/domain"

// ChunkStore persists chunk metadata keyed by positional id. Entries are
// iterated in ascending id order.
type ChunkStore interface {
	// Put stores the given chunks.
	Put(chunks []domain.Chunk) error

	// Get returns the chunk with the given id.
	Get(id int) (domain.Chunk, error)

	// Count returns the number of stored chunks.
	Count() (int, error)

	// ForEach visits every chunk in ascending id order.
	ForEach(fn func(domain.Chunk) error) error

	// Checksum returns a digest over all chunk texts in id order.
	Checksum() (string, error)

	Close() error
}
