package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the retrieval service.
type Config struct {
	Ingest    IngestConfig    `yaml:"ingest"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// IngestConfig holds corpus ingestion configuration.
type IngestConfig struct {
	ChunkWords int      `yaml:"chunk_words"` // Max words per chunk
	Includes   []string `yaml:"includes"`    // Glob patterns when ingesting a directory
	Excludes   []string `yaml:"excludes"`
}

// EmbeddingConfig holds embedding configuration.
type EmbeddingConfig struct {
	Provider  string `yaml:"provider"`    // "openai", "ollama", "hash"
	Model     string `yaml:"model"`       // e.g., "text-embedding-3-small"
	APIKeyEnv string `yaml:"api_key_env"` // Environment variable for API key
	BaseURL   string `yaml:"base_url"`    // For ollama / OpenAI-compatible endpoints
	Dimension int    `yaml:"dimension"`   // Used by the hash provider
	BatchSize int    `yaml:"batch_size"`
	Serialize bool   `yaml:"serialize"` // Arbitrate concurrent Embed calls with a lock
}

// ServerConfig holds query endpoint configuration.
type ServerConfig struct {
	Addr        string `yaml:"addr"`
	DefaultTopK int    `yaml:"default_top_k"` // Used when a request omits top_k
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Ingest: IngestConfig{
			ChunkWords: 200,
			Includes:   []string{"**/*.txt", "**/*.md"},
			Excludes:   []string{"**/.*/**"},
		},
		Embedding: EmbeddingConfig{
			Provider:  "hash",
			Model:     "text-embedding-3-small",
			APIKeyEnv: "OPENAI_API_KEY",
			Dimension: 256,
			BatchSize: 100,
		},
		Server: ServerConfig{
			Addr:        ":8000",
			DefaultTopK: 3,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for vecserve.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "vecserve.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".vecserve", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// DataDir returns the artifact directory under the given root.
func DataDir(dir string) string {
	return filepath.Join(dir, ".vecserve")
}

// IndexPath returns the path of the vector index artifact.
func IndexPath(dir string) string {
	return filepath.Join(DataDir(dir), "index.vec")
}

// ChunkDBPath returns the path of the chunk metadata store.
func ChunkDBPath(dir string) string {
	return filepath.Join(DataDir(dir), "chunks.db")
}

// ManifestPath returns the path of the build manifest.
func ManifestPath(dir string) string {
	return filepath.Join(DataDir(dir), "manifest.json")
}

// EnsureDataDir ensures the artifact directory exists.
func EnsureDataDir(dir string) error {
	return os.MkdirAll(DataDir(dir), 0755)
}
