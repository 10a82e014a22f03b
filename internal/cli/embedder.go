package cli

import (
	"fmt"

	"vecserve/config"
	"vecserve/internal/adapter/embedding"
	"vecserve/internal/port"
	"vecserve/internal/usecase"
)

// newEmbedder constructs the embedding capability from config. The model is
// loaded once per process and shared by every pipeline that needs it.
func newEmbedder(cfg *config.Config) (port.Embedder, error) {
	var embedder port.Embedder
	var err error

	switch cfg.Embedding.Provider {
	case "openai":
		embedder, err = embedding.NewOpenAIEmbedder(cfg.Embedding.APIKeyEnv, cfg.Embedding.Model, cfg.Embedding.BatchSize)
	case "ollama":
		embedder = embedding.NewOllamaEmbedder(cfg.Embedding.Model, cfg.Embedding.BaseURL)
	case "hash":
		embedder = embedding.NewHashEmbedder(cfg.Embedding.Dimension)
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Embedding.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	if cfg.Embedding.Serialize {
		embedder = embedding.Serialize(embedder)
	}

	return embedder, nil
}

// artifactSet maps the configured root directory to the artifact paths.
func artifactSet(dir string) usecase.ArtifactSet {
	return usecase.ArtifactSet{
		IndexPath:    config.IndexPath(dir),
		ChunkDBPath:  config.ChunkDBPath(dir),
		ManifestPath: config.ManifestPath(dir),
	}
}
