package usecase

import (
	"fmt"

	"vecserve/internal/adapter/index"
	"vecserve/internal/adapter/store"
	"vecserve/internal/domain"
	"vecserve/internal/port"
)

// SearchUseCase answers similarity queries against a loaded artifact set.
// All shared state is read-only after Open, so concurrent Search calls are
// independent.
type SearchUseCase struct {
	embedder port.Embedder
	index    port.VectorIndex
	chunks   port.ChunkStore
}

// Open loads and cross-validates the artifact set against the manifest and
// the live embedder. Missing or mismatched artifacts are fatal: the caller
// must not serve queries from an inconsistent pair.
func Open(embedder port.Embedder, artifacts ArtifactSet) (*SearchUseCase, error) {
	manifest, err := store.ReadManifest(artifacts.ManifestPath)
	if err != nil {
		return nil, err
	}
	if manifest.Metric != domain.MetricL2Squared {
		return nil, fmt.Errorf("manifest declares metric %q, this build searches %q", manifest.Metric, domain.MetricL2Squared)
	}

	indexSum, err := store.FileSHA256(artifacts.IndexPath)
	if err != nil {
		return nil, fmt.Errorf("failed to checksum index: %w", err)
	}
	if indexSum != manifest.IndexSHA256 {
		return nil, fmt.Errorf("index checksum mismatch: artifact does not belong to this manifest")
	}

	idx, err := index.OpenFile(artifacts.IndexPath)
	if err != nil {
		return nil, err
	}
	if idx.Count() != manifest.Count {
		return nil, fmt.Errorf("index has %d vectors, manifest says %d", idx.Count(), manifest.Count)
	}
	if idx.Dimension() != manifest.Dimension {
		return nil, fmt.Errorf("index dimension %d, manifest says %d", idx.Dimension(), manifest.Dimension)
	}

	chunks, err := store.OpenChunkStore(artifacts.ChunkDBPath)
	if err != nil {
		return nil, err
	}
	ok := false
	defer func() {
		if !ok {
			chunks.Close()
		}
	}()

	n, err := chunks.Count()
	if err != nil {
		return nil, err
	}
	if n != manifest.Count {
		return nil, fmt.Errorf("chunk store has %d chunks, manifest says %d", n, manifest.Count)
	}
	chunksSum, err := chunks.Checksum()
	if err != nil {
		return nil, err
	}
	if chunksSum != manifest.ChunksSHA256 {
		return nil, fmt.Errorf("chunk store checksum mismatch: artifact does not belong to this manifest")
	}

	if embedder.Dimension() != manifest.Dimension {
		return nil, fmt.Errorf("embedder dimension %d, index built with %d", embedder.Dimension(), manifest.Dimension)
	}
	if embedder.ModelName() != manifest.Model {
		return nil, fmt.Errorf("embedder model %q, index built with %q", embedder.ModelName(), manifest.Model)
	}

	ok = true
	return &SearchUseCase{
		embedder: embedder,
		index:    idx,
		chunks:   chunks,
	}, nil
}

// Search embeds the query and returns the topK nearest chunks ordered by
// ascending distance, ties broken by ascending chunk id. A topK larger
// than the corpus returns every chunk; an empty index returns no results.
func (u *SearchUseCase) Search(queryText string, topK int) ([]domain.Result, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("top_k must be positive, got %d", topK)
	}

	if u.index.Count() == 0 {
		return []domain.Result{}, nil
	}

	embeddings, err := u.embedder.Embed([]string{queryText})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(embeddings) != 1 {
		return nil, fmt.Errorf("embedder returned %d vectors for one query", len(embeddings))
	}

	matches, err := u.index.Search(embeddings[0], topK)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	results := make([]domain.Result, 0, len(matches))
	for _, m := range matches {
		chunk, err := u.chunks.Get(m.ChunkID)
		if err != nil {
			return nil, fmt.Errorf("chunk lookup failed for match %d: %w", m.ChunkID, err)
		}
		results = append(results, domain.Result{
			ChunkID: domain.ChunkID(chunk.ID),
			Text:    chunk.Text,
			Score:   m.Distance,
		})
	}

	return results, nil
}

// Count returns the number of indexed chunks.
func (u *SearchUseCase) Count() int {
	return u.index.Count()
}

// Close releases the chunk store.
func (u *SearchUseCase) Close() error {
	return u.chunks.Close()
}
