package usecase

import (
	"fmt"
	"os"
	"time"

	"vecserve/internal/adapter/index"
	"vecserve/internal/adapter/store"
	"vecserve/internal/domain"
	"vecserve/internal/port"
)

// ArtifactSet names the three files a build produces and a retriever loads.
type ArtifactSet struct {
	IndexPath    string
	ChunkDBPath  string
	ManifestPath string
}

// IngestUseCase builds the artifact set for a corpus: chunk, embed, index,
// persist. It runs single-threaded, start to finish, once per corpus.
type IngestUseCase struct {
	chunker   port.Chunker
	embedder  port.Embedder
	artifacts ArtifactSet
	batchSize int
}

// NewIngestUseCase creates an ingest use case.
func NewIngestUseCase(chunker port.Chunker, embedder port.Embedder, artifacts ArtifactSet, batchSize int) *IngestUseCase {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &IngestUseCase{
		chunker:   chunker,
		embedder:  embedder,
		artifacts: artifacts,
		batchSize: batchSize,
	}
}

// IngestResult contains the results of an ingestion run.
type IngestResult struct {
	Chunks    int
	Dimension int
	Model     string
}

// Ingest builds and persists the artifact set from raw corpus text. If any
// embedding call fails the build fails and no artifacts are written: all
// embeddings are generated before the first byte is persisted. progress may
// be nil.
func (u *IngestUseCase) Ingest(text string, progress func(done, total int)) (*IngestResult, error) {
	chunks := u.chunker.Chunk(text)
	dim := u.embedder.Dimension()

	// Embed in chunk-id order. The index addresses embeddings purely by
	// position, so this order must match the persisted chunk sequence.
	vectors := make([][]float32, 0, len(chunks))
	for i := 0; i < len(chunks); i += u.batchSize {
		end := i + u.batchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		texts := make([]string, end-i)
		for j, c := range chunks[i:end] {
			texts[j] = c.Text
		}

		batch, err := u.embedder.Embed(texts)
		if err != nil {
			return nil, fmt.Errorf("embedding failed at chunk %d: %w", i, err)
		}
		if len(batch) != len(texts) {
			return nil, fmt.Errorf("embedder returned %d vectors for %d chunks", len(batch), len(texts))
		}
		for j, v := range batch {
			if len(v) != dim {
				return nil, fmt.Errorf("chunk %d embedded to dimension %d, expected %d", i+j, len(v), dim)
			}
		}

		vectors = append(vectors, batch...)
		if progress != nil {
			progress(end, len(chunks))
		}
	}

	idx, err := index.Build(dim, vectors)
	if err != nil {
		return nil, err
	}

	// Drop any stale manifest first: a half-written rebuild must never be
	// loadable against the previous run's manifest.
	if err := os.Remove(u.artifacts.ManifestPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to remove stale manifest: %w", err)
	}
	if err := os.Remove(u.artifacts.ChunkDBPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to remove stale chunk store: %w", err)
	}

	if err := idx.WriteFile(u.artifacts.IndexPath); err != nil {
		return nil, fmt.Errorf("failed to write index: %w", err)
	}

	chunkStore, err := store.OpenChunkStore(u.artifacts.ChunkDBPath)
	if err != nil {
		return nil, err
	}
	defer chunkStore.Close()

	if err := chunkStore.Put(chunks); err != nil {
		return nil, fmt.Errorf("failed to write chunk store: %w", err)
	}

	indexSum, err := store.FileSHA256(u.artifacts.IndexPath)
	if err != nil {
		return nil, err
	}
	chunksSum, err := chunkStore.Checksum()
	if err != nil {
		return nil, err
	}

	manifest := domain.Manifest{
		Count:        len(chunks),
		Dimension:    dim,
		Model:        u.embedder.ModelName(),
		Metric:       domain.MetricL2Squared,
		IndexSHA256:  indexSum,
		ChunksSHA256: chunksSum,
		CreatedAt:    time.Now().UTC(),
	}
	if err := store.WriteManifest(u.artifacts.ManifestPath, manifest); err != nil {
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}

	return &IngestResult{
		Chunks:    len(chunks),
		Dimension: dim,
		Model:     u.embedder.ModelName(),
	}, nil
}
