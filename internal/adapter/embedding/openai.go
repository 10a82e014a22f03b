package embedding

import (
	"context"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIEmbedder generates embeddings through the OpenAI API.
type OpenAIEmbedder struct {
	client    *openai.Client
	model     string
	dimension int
	batchSize int
}

// NewOpenAIEmbedder creates an OpenAI embedder. The API key is read from
// the given environment variable.
func NewOpenAIEmbedder(apiKeyEnv, model string, batchSize int) (*OpenAIEmbedder, error) {
	apiKey := os.Getenv(apiKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("API key not found in environment variable: %s", apiKeyEnv)
	}

	dimension := 1536
	switch model {
	case "text-embedding-3-small", "text-embedding-ada-002":
		dimension = 1536
	case "text-embedding-3-large":
		dimension = 3072
	}

	if batchSize <= 0 {
		batchSize = 100
	}

	return &OpenAIEmbedder{
		client:    openai.NewClient(apiKey),
		model:     model,
		dimension: dimension,
		batchSize: batchSize,
	}, nil
}

// Embed generates one embedding per input text, batching requests.
func (e *OpenAIEmbedder) Embed(texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	var all [][]float32
	for i := 0; i < len(texts); i += e.batchSize {
		end := i + e.batchSize
		if end > len(texts) {
			end = len(texts)
		}

		resp, err := e.client.CreateEmbeddings(context.Background(), openai.EmbeddingRequest{
			Model: openai.EmbeddingModel(e.model),
			Input: texts[i:end],
		})
		if err != nil {
			return nil, fmt.Errorf("OpenAI embedding request failed: %w", err)
		}
		if len(resp.Data) != end-i {
			return nil, fmt.Errorf("OpenAI returned %d embeddings for %d inputs", len(resp.Data), end-i)
		}

		for _, d := range resp.Data {
			vec := make([]float32, len(d.Embedding))
			for j := range d.Embedding {
				vec[j] = float32(d.Embedding[j])
			}
			all = append(all, vec)
		}
	}

	return all, nil
}

func (e *OpenAIEmbedder) Dimension() int {
	return e.dimension
}

func (e *OpenAIEmbedder) ModelName() string {
	return e.model
}
