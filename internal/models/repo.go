package models

import "time"

// ContentType says which normalization rules were applied to a chunk.
// It is set once when the chunk is created and never changes.
type ContentType string

const (
	ContentTypeCode     ContentType = "code"
	ContentTypeDocument ContentType = "document"
)

// Repo is the stored record for an indexed GitHub repository.
// Created on first index; re-indexing only refreshes LastIndexed.
type Repo struct {
	ID          string    `json:"id"`                // GitHub numeric id, stored as string
	Owner       string    `json:"owner"`             // GitHub username or org
	Name        string    `json:"name"`              // repository name
	License     string    `json:"license,omitempty"` // SPDX identifier, may be empty
	LastIndexed time.Time `json:"last_indexed"`
}

// RepoMeta is the live repository metadata fetched from GitHub at
// ingestion time.
type RepoMeta struct {
	ID            string
	Owner         string
	Name          string
	License       string // SPDX identifier, empty when GitHub reports none
	DefaultBranch string
}

// Chunk is the unit of storage and retrieval: a bounded segment of
// normalized text plus its embedding and metadata.
type Chunk struct {
	RepoID    string      `json:"repo_id"`
	Path      string      `json:"path"` // file path or issue/PR reference, plus " (part N)" when split
	Type      ContentType `json:"type"`
	Content   string      `json:"content"`
	License   string      `json:"license,omitempty"`
	Embedding []float32   `json:"-"` // heavy; excluded from JSON
}

// SearchResult is a retrieved chunk with its cosine similarity to the
// query, in [-1, 1].
type SearchResult struct {
	Chunk      Chunk   `json:"chunk"`
	Similarity float64 `json:"similarity"`
}
