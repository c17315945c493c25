package service

import (
	"context"
	"strings"
	"sync"

	"github.com/reposcout/reposcout/internal/models"
)

// TextIndex is the plain substring-matching retrieval strategy. It keeps
// every ingested chunk in memory and matches queries against content and
// path, case-insensitively. It needs no embedding service, which makes it
// the strategy of choice for tests and credential-less runs.
//
// The index is an explicit object constructed at process start and
// injected into its consumers; independent instances never share state.
type TextIndex struct {
	mu      sync.RWMutex
	order   []string
	entries map[string]models.Chunk // keyed by repo id + path, like the vector store
}

// NewTextIndex returns an empty index.
func NewTextIndex() *TextIndex {
	return &TextIndex{entries: make(map[string]models.Chunk)}
}

// Save inserts or replaces the chunk under its (repo id, path) key.
// The stored copy drops the embedding; this index never uses it.
func (ix *TextIndex) Save(chunk models.Chunk) {
	chunk.Embedding = nil
	key := chunk.RepoID + "\x00" + chunk.Path

	ix.mu.Lock()
	defer ix.mu.Unlock()
	if _, exists := ix.entries[key]; !exists {
		ix.order = append(ix.order, key)
	}
	ix.entries[key] = chunk
}

// Retrieve returns up to limit chunks whose content or path contains the
// query, in insertion order. Matches carry no similarity score.
func (ix *TextIndex) Retrieve(_ context.Context, query string, limit int) ([]models.SearchResult, error) {
	needle := strings.ToLower(query)

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	var results []models.SearchResult
	for _, key := range ix.order {
		chunk := ix.entries[key]
		if strings.Contains(strings.ToLower(chunk.Content), needle) ||
			strings.Contains(strings.ToLower(chunk.Path), needle) {
			results = append(results, models.SearchResult{Chunk: chunk})
			if limit > 0 && len(results) == limit {
				break
			}
		}
	}
	return results, nil
}

// Len returns the number of indexed chunks.
func (ix *TextIndex) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}
