package embedding

import (
	"sync"

	"vecserve/internal/port"
)

// Serialized arbitrates access to an embedder that does not support
// concurrent invocation. Index search stays fully parallel; only the Embed
// calls queue on the lock.
type Serialized struct {
	mu    sync.Mutex
	inner port.Embedder
}

func Serialize(inner port.Embedder) *Serialized {
	return &Serialized{inner: inner}
}

func (s *Serialized) Embed(texts []string) ([][]float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Embed(texts)
}

func (s *Serialized) Dimension() int {
	return s.inner.Dimension()
}

func (s *Serialized) ModelName() string {
	return s.inner.ModelName()
}
