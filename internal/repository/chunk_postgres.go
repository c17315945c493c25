package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/reposcout/reposcout/internal/models"
)

// ChunkPostgres persists chunks in Postgres with pgvector and answers
// nearest-neighbor queries with the cosine distance operator.
//
// Expected schema:
//
//	documents
//	  { repo_id, path, type, content, license, embedding vector(dim) }
//	  PRIMARY KEY (repo_id, path)
type ChunkPostgres struct {
	db        *sql.DB
	dimension int
}

// NewChunkRepository wires the documents table. dimension must match the
// configured embedding model; every stored vector is validated against it.
func NewChunkRepository(db *sql.DB, dimension int) *ChunkPostgres {
	return &ChunkPostgres{db: db, dimension: dimension}
}

// Upsert inserts or replaces the chunk stored under (repo_id, path).
// Content, embedding and license are replaced together; re-indexing a
// path never creates a second record.
func (r *ChunkPostgres) Upsert(ctx context.Context, chunk models.Chunk) error {
	if len(chunk.Embedding) != r.dimension {
		return fmt.Errorf("%w: embedding has %d dimensions, store expects %d",
			models.ErrStorage, len(chunk.Embedding), r.dimension)
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO documents (repo_id, path, type, content, license, embedding)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (repo_id, path) DO UPDATE SET
			type = EXCLUDED.type,
			content = EXCLUDED.content,
			license = EXCLUDED.license,
			embedding = EXCLUDED.embedding
	`, chunk.RepoID, chunk.Path, string(chunk.Type), chunk.Content,
		nullable(chunk.License), formatVector(chunk.Embedding))
	if err != nil {
		return fmt.Errorf("%w: upsert %s: %v", models.ErrStorage, chunk.Path, err)
	}
	return nil
}

// NearestNeighbors returns the limit chunks most similar to the query
// vector, descending by cosine similarity. Ties are broken by path order,
// which is stable across identical queries.
func (r *ChunkPostgres) NearestNeighbors(ctx context.Context, query []float32, limit int) ([]models.SearchResult, error) {
	if len(query) != r.dimension {
		return nil, fmt.Errorf("%w: query has %d dimensions, store expects %d",
			models.ErrStorage, len(query), r.dimension)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT repo_id, path, type, content, COALESCE(license, ''),
			1 - (embedding <=> $1::vector) AS similarity
		FROM documents
		ORDER BY embedding <=> $1::vector, path
		LIMIT $2
	`, formatVector(query), limit)
	if err != nil {
		return nil, fmt.Errorf("%w: similarity query: %v", models.ErrStorage, err)
	}
	defer rows.Close()

	var results []models.SearchResult
	for rows.Next() {
		var res models.SearchResult
		var typ string
		if err := rows.Scan(&res.Chunk.RepoID, &res.Chunk.Path, &typ,
			&res.Chunk.Content, &res.Chunk.License, &res.Similarity); err != nil {
			return nil, fmt.Errorf("%w: scan row: %v", models.ErrStorage, err)
		}
		res.Chunk.Type = models.ContentType(typ)
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	return results, nil
}

// formatVector renders an embedding in pgvector literal form: "[0.1,0.2]".
func formatVector(embedding []float32) string {
	parts := make([]string, len(embedding))
	for i, v := range embedding {
		parts[i] = strconv.FormatFloat(float64(v), 'g', -1, 32)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
