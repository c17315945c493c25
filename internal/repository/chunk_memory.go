package repository

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/reposcout/reposcout/internal/models"
)

// ChunkMemory is a brute-force in-memory vector store. It backs tests and
// DB-less runs, and honors the same key and ordering contract as the
// Postgres store.
type ChunkMemory struct {
	mu        sync.RWMutex
	dimension int
	order     []string                // insertion order of keys, for stable ties
	chunks    map[string]models.Chunk // keyed by repoID + "\x00" + path
}

// NewChunkMemory returns an empty store expecting vectors of the given
// dimension.
func NewChunkMemory(dimension int) *ChunkMemory {
	return &ChunkMemory{
		dimension: dimension,
		chunks:    make(map[string]models.Chunk),
	}
}

// Upsert inserts or replaces the chunk stored under (repo id, path).
func (s *ChunkMemory) Upsert(_ context.Context, chunk models.Chunk) error {
	if len(chunk.Embedding) != s.dimension {
		return fmt.Errorf("%w: embedding has %d dimensions, store expects %d",
			models.ErrStorage, len(chunk.Embedding), s.dimension)
	}

	key := chunk.RepoID + "\x00" + chunk.Path
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.chunks[key]; !exists {
		s.order = append(s.order, key)
	}
	s.chunks[key] = chunk
	return nil
}

// NearestNeighbors returns up to limit chunks by descending cosine
// similarity. Ties keep insertion order.
func (s *ChunkMemory) NearestNeighbors(_ context.Context, query []float32, limit int) ([]models.SearchResult, error) {
	if len(query) != s.dimension {
		return nil, fmt.Errorf("%w: query has %d dimensions, store expects %d",
			models.ErrStorage, len(query), s.dimension)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]models.SearchResult, 0, len(s.order))
	for _, key := range s.order {
		chunk := s.chunks[key]
		results = append(results, models.SearchResult{
			Chunk:      chunk,
			Similarity: cosineSimilarity(chunk.Embedding, query),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// Len returns the number of stored chunks.
func (s *ChunkMemory) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}

// cosineSimilarity is the normalized dot product of a and b, in [-1, 1].
// Zero vectors yield 0.
func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
