package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// NewPostgres opens a connection pool to the vector database and verifies
// it with a ping.
//
// Typical usage:
//
//	db, err := database.NewPostgres(cfg.DatabaseURL)
//	if err != nil { … }
//	defer db.Close()
func NewPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

// Migrate creates the pgvector extension and the tables the service needs.
// dimension fixes the embedding column width; it must match the configured
// embedding model.
func Migrate(db *sql.DB, dimension int) error {
	migrations := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		`CREATE TABLE IF NOT EXISTS repositories (
			id TEXT PRIMARY KEY,
			owner TEXT NOT NULL,
			name TEXT NOT NULL,
			license TEXT,
			last_indexed TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS documents (
			repo_id TEXT NOT NULL,
			path TEXT NOT NULL,
			type TEXT NOT NULL,
			content TEXT NOT NULL,
			license TEXT,
			embedding vector(%d),
			PRIMARY KEY (repo_id, path)
		)`, dimension),
		`CREATE INDEX IF NOT EXISTS idx_documents_embedding
			ON documents USING hnsw (embedding vector_cosine_ops)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("execute migration: %w", err)
		}
	}
	return nil
}
