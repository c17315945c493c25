package main

import (
	"context"
	"log"
	"os"

	"github.com/reposcout/reposcout/internal/config"
	"github.com/reposcout/reposcout/internal/database"
	"github.com/reposcout/reposcout/internal/github"
	"github.com/reposcout/reposcout/internal/repository"
	"github.com/reposcout/reposcout/internal/service"
)

// The indexer performs a one-shot full index of a repository:
//
//	indexer <owner> <repo>
//
// It shares the server's configuration and storage layer, so a run
// from the command line and a webhook-triggered run produce the same
// rows.
func main() {
	if len(os.Args) != 3 {
		log.Printf("usage: indexer <owner> <repo>")
		os.Exit(1)
	}
	owner, repo := os.Args[1], os.Args[2]

	cfg := config.Load()
	ctx := context.Background()

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	defer db.Close()
	if err := database.Migrate(db, cfg.EmbeddingDim); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	chunkStore := repository.NewChunkRepository(db, cfg.EmbeddingDim)
	repoStore := repository.NewRepoRepository(db)
	ghClient := github.NewClient(cfg.GitHubToken)

	embedder, err := service.NewVertexEmbedder(ctx, cfg.ProjectID, cfg.Location, cfg.EmbeddingModel)
	if err != nil {
		log.Fatalf("Failed to initialize Vertex AI embedder: %v", err)
	}
	defer embedder.Close()

	svc := service.NewIndexService(ghClient, chunkStore, repoStore, embedder, service.NewTextIndex())

	log.Printf("[Indexer] indexing %s/%s", owner, repo)
	if err := svc.IndexRepository(ctx, owner, repo); err != nil {
		log.Fatalf("Indexing %s/%s failed: %v", owner, repo, err)
	}
	log.Printf("[Indexer] done")
}
