package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/reposcout/reposcout/internal/models"
)

// RepoPostgres persists one record per indexed repository.
type RepoPostgres struct {
	db *sql.DB
}

// NewRepoRepository wires the repositories table.
func NewRepoRepository(db *sql.DB) *RepoPostgres {
	return &RepoPostgres{db: db}
}

// Upsert creates the repository record on first index and refreshes
// last_indexed on every re-index.
func (r *RepoPostgres) Upsert(ctx context.Context, repo models.Repo) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO repositories (id, owner, name, license, last_indexed)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (id) DO UPDATE SET last_indexed = NOW()
	`, repo.ID, repo.Owner, repo.Name, nullable(repo.License))
	if err != nil {
		return fmt.Errorf("%w: upsert repository %s/%s: %v",
			models.ErrStorage, repo.Owner, repo.Name, err)
	}
	return nil
}

// List returns all indexed repositories, most recently indexed first.
func (r *RepoPostgres) List(ctx context.Context) ([]models.Repo, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner, name, COALESCE(license, ''), last_indexed
		FROM repositories
		ORDER BY last_indexed DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: list repositories: %v", models.ErrStorage, err)
	}
	defer rows.Close()

	var repos []models.Repo
	for rows.Next() {
		var repo models.Repo
		if err := rows.Scan(&repo.ID, &repo.Owner, &repo.Name,
			&repo.License, &repo.LastIndexed); err != nil {
			return nil, fmt.Errorf("%w: scan repository: %v", models.ErrStorage, err)
		}
		repos = append(repos, repo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	return repos, nil
}
