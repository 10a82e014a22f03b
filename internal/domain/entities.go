package domain

import (
	"fmt"
	"time"
)

// Chunk is a contiguous, bounded-size unit of corpus text. IDs are dense,
// contiguous and 0-based, assigned in creation order; the ID is the only
// join key between the vector index and the chunk store.
type Chunk struct {
	ID   int
	Text string
}

// ChunkID formats a chunk id the way it appears in persisted metadata and
// in query responses.
func ChunkID(id int) string {
	return fmt.Sprintf("chunk_%d", id)
}

// Query is a single retrieval request. It exists only for the duration of
// one search call.
type Query struct {
	Text      string
	TopK      int
	RequestID string
}

// Result is one ranked search hit. Score is a raw squared-Euclidean
// distance: smaller means more similar, and the range is unbounded.
type Result struct {
	ChunkID string  `json:"chunk_id"`
	Text    string  `json:"text"`
	Score   float64 `json:"score"`
}

// MetricL2Squared identifies the distance metric used by the flat index:
// squared Euclidean over raw, unnormalized embeddings.
const MetricL2Squared = "l2sq"

// Manifest ties the index artifact and the chunk store to a single
// ingestion run. It is written at build time next to both artifacts and
// validated at load time; any mismatch is a fatal load error.
type Manifest struct {
	Count        int       `json:"count"`
	Dimension    int       `json:"dimension"`
	Model        string    `json:"model"`
	Metric       string    `json:"metric"`
	IndexSHA256  string    `json:"index_sha256"`
	ChunksSHA256 string    `json:"chunks_sha256"`
	CreatedAt    time.Time `json:"created_at"`
}
