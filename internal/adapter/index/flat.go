package index

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"sort"

	"vecserve/internal/port"
)

const (
	fileMagic   = uint32(0x56494458) // "VIDX"
	fileVersion = uint32(1)
)

// Flat is a flat (exhaustive) vector index over squared Euclidean distance.
// Embeddings are addressed by positional chunk id: vector i belongs to
// chunk i. The index is immutable after construction and safe for
// concurrent searches.
type Flat struct {
	dim  int
	vecs [][]float32
}

// Build constructs a flat index from embeddings in chunk-id order. dim must
// be the embedding dimension even when vectors is empty, so that an empty
// corpus still produces a dimension-checked artifact.
func Build(dim int, vectors [][]float32) (*Flat, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("index: invalid dimension %d", dim)
	}
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("index: vector %d has dimension %d, expected %d", i, len(v), dim)
		}
	}
	return &Flat{dim: dim, vecs: vectors}, nil
}

// Count returns the number of indexed embeddings.
func (f *Flat) Count() int { return len(f.vecs) }

// Dimension returns the embedding dimension.
func (f *Flat) Dimension() int { return f.dim }

// Search returns up to k matches ordered by ascending squared-L2 distance.
// Ties are broken by ascending chunk id. An empty index yields no matches.
func (f *Flat) Search(query []float32, k int) ([]port.Match, error) {
	if k <= 0 {
		return nil, fmt.Errorf("index: k must be positive, got %d", k)
	}
	if len(query) != f.dim {
		return nil, fmt.Errorf("index: query dimension %d, index dimension %d", len(query), f.dim)
	}
	if len(f.vecs) == 0 {
		return nil, nil
	}

	matches := make([]port.Match, len(f.vecs))
	for i, v := range f.vecs {
		matches[i] = port.Match{ChunkID: i, Distance: l2Squared(query, v)}
	}

	sort.Slice(matches, func(a, b int) bool {
		if matches[a].Distance != matches[b].Distance {
			return matches[a].Distance < matches[b].Distance
		}
		return matches[a].ChunkID < matches[b].ChunkID
	})

	if k > len(matches) {
		k = len(matches)
	}
	return matches[:k], nil
}

// l2Squared computes the squared Euclidean distance between two vectors of
// equal length.
func l2Squared(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}

// WriteFile persists the index: magic, version, dim and count as
// little-endian uint32, followed by count*dim little-endian IEEE-754
// float32 values in chunk-id order.
func (f *Flat) WriteFile(path string) error {
	buf := make([]byte, 16+4*f.dim*len(f.vecs))
	binary.LittleEndian.PutUint32(buf[0:4], fileMagic)
	binary.LittleEndian.PutUint32(buf[4:8], fileVersion)
	binary.LittleEndian.PutUint32(buf[8:12], uint32(f.dim))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(len(f.vecs)))

	off := 16
	for _, v := range f.vecs {
		for _, x := range v {
			binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(x))
			off += 4
		}
	}

	return os.WriteFile(path, buf, 0644)
}

// OpenFile loads a persisted index. A missing, truncated or mismatched file
// is an error; loading never repairs a damaged artifact.
func OpenFile(path string) (*Flat, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("index: %w", err)
	}
	if len(data) < 16 {
		return nil, fmt.Errorf("index: %s is truncated", path)
	}
	if binary.LittleEndian.Uint32(data[0:4]) != fileMagic {
		return nil, fmt.Errorf("index: %s is not a vector index file", path)
	}
	if v := binary.LittleEndian.Uint32(data[4:8]); v != fileVersion {
		return nil, fmt.Errorf("index: unsupported file version %d", v)
	}

	dim := int(binary.LittleEndian.Uint32(data[8:12]))
	count := int(binary.LittleEndian.Uint32(data[12:16]))
	if dim <= 0 {
		return nil, fmt.Errorf("index: invalid dimension %d in %s", dim, path)
	}
	if len(data) != 16+4*dim*count {
		return nil, fmt.Errorf("index: %s has %d bytes, expected %d", path, len(data), 16+4*dim*count)
	}

	vecs := make([][]float32, count)
	off := 16
	for i := range vecs {
		v := make([]float32, dim)
		for j := range v {
			v[j] = math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
			off += 4
		}
		vecs[i] = v
	}

	return &Flat{dim: dim, vecs: vecs}, nil
}
