package embedding

import (
	"hash/fnv"
	"strings"
)

// HashEmbedder is a deterministic local embedder: each word is hashed into
// a bucket of the output vector. It needs no model or network and always
// produces the same vector for the same input, which makes it the test and
// offline substitute for the API-backed providers. The vectors carry only
// crude lexical similarity.
type HashEmbedder struct {
	dimension int
}

func NewHashEmbedder(dimension int) *HashEmbedder {
	if dimension <= 0 {
		dimension = 256
	}
	return &HashEmbedder{dimension: dimension}
}

func (e *HashEmbedder) Embed(texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, e.dimension)
		for _, word := range strings.Fields(strings.ToLower(text)) {
			h := fnv.New64a()
			h.Write([]byte(word))
			vec[h.Sum64()%uint64(e.dimension)]++
		}
		embeddings[i] = vec
	}
	return embeddings, nil
}

func (e *HashEmbedder) Dimension() int {
	return e.dimension
}

func (e *HashEmbedder) ModelName() string {
	return "hash-v1"
}
