package store

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"
	"vecserve/internal/domain"
)

var bucketChunks = []byte("chunks")

// BoltChunkStore persists chunk metadata in a BoltDB file. Keys are
// big-endian uint64 chunk ids, so cursor iteration visits chunks in
// ascending id order.
type BoltChunkStore struct {
	db *bbolt.DB
}

type chunkRecord struct {
	ID   string `json:"id"` // "chunk_<id>"
	Text string `json:"text"`
}

// OpenChunkStore opens (or creates) the chunk store at the given path.
func OpenChunkStore(path string) (*BoltChunkStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open chunk store: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketChunks)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create chunks bucket: %w", err)
	}

	return &BoltChunkStore{db: db}, nil
}

// Put stores the given chunks in a single transaction.
func (s *BoltChunkStore) Put(chunks []domain.Chunk) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketChunks)
		for _, chunk := range chunks {
			rec := chunkRecord{
				ID:   domain.ChunkID(chunk.ID),
				Text: chunk.Text,
			}
			data, err := json.Marshal(rec)
			if err != nil {
				return err
			}
			if err := b.Put(chunkKey(chunk.ID), data); err != nil {
				return err
			}
		}
		return nil
	})
}

// Get returns the chunk with the given id.
func (s *BoltChunkStore) Get(id int) (domain.Chunk, error) {
	var chunk domain.Chunk
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketChunks).Get(chunkKey(id))
		if data == nil {
			return fmt.Errorf("chunk not found: %d", id)
		}
		var rec chunkRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return fmt.Errorf("chunk %d is corrupt: %w", id, err)
		}
		if rec.ID != domain.ChunkID(id) {
			return fmt.Errorf("chunk %d has mismatched record id %q", id, rec.ID)
		}
		chunk = domain.Chunk{ID: id, Text: rec.Text}
		return nil
	})
	return chunk, err
}

// Count returns the number of stored chunks.
func (s *BoltChunkStore) Count() (int, error) {
	var n int
	err := s.db.View(func(tx *bbolt.Tx) error {
		n = tx.Bucket(bucketChunks).Stats().KeyN
		return nil
	})
	return n, err
}

// ForEach visits every chunk in ascending id order.
func (s *BoltChunkStore) ForEach(fn func(domain.Chunk) error) error {
	return s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketChunks).ForEach(func(k, v []byte) error {
			var rec chunkRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("chunk store is corrupt: %w", err)
			}
			return fn(domain.Chunk{
				ID:   int(binary.BigEndian.Uint64(k)),
				Text: rec.Text,
			})
		})
	})
}

// Checksum returns a hex SHA-256 digest over all chunk texts in id order.
// Each text is length-prefixed so that chunk boundaries contribute to the
// digest.
func (s *BoltChunkStore) Checksum() (string, error) {
	h := sha256.New()
	var lenBuf [binary.MaxVarintLen64]byte

	err := s.ForEach(func(chunk domain.Chunk) error {
		n := binary.PutUvarint(lenBuf[:], uint64(len(chunk.Text)))
		h.Write(lenBuf[:n])
		h.Write([]byte(chunk.Text))
		return nil
	})
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func (s *BoltChunkStore) Close() error {
	return s.db.Close()
}

func chunkKey(id int) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(id))
	return key
}
