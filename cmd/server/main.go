package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/reposcout/reposcout/internal/config"
	"github.com/reposcout/reposcout/internal/database"
	"github.com/reposcout/reposcout/internal/github"
	"github.com/reposcout/reposcout/internal/handler"
	"github.com/reposcout/reposcout/internal/repository"
	"github.com/reposcout/reposcout/internal/service"
)

// main is the single entry-point for the REST API.
func main() {
	// Load configuration
	cfg := config.Load()
	log.Printf("Configuration loaded:")
	log.Printf("  - Embedding model: %s (dim %d)", cfg.EmbeddingModel, cfg.EmbeddingDim)
	log.Printf("  - Generation model: %s", cfg.GenerationModel)
	log.Printf("  - Retrieval mode: %s", cfg.RetrievalMode)

	ctx := context.Background()

	// Connect to Postgres and make sure the schema exists
	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	defer db.Close()
	if err := database.Migrate(db, cfg.EmbeddingDim); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Printf("Connected to Postgres")

	// Initialize stores
	chunkStore := repository.NewChunkRepository(db, cfg.EmbeddingDim)
	repoStore := repository.NewRepoRepository(db)

	// Initialize GitHub client
	ghClient := github.NewClient(cfg.GitHubToken)

	// Initialize Vertex AI embedder
	embedder, err := service.NewVertexEmbedder(ctx, cfg.ProjectID, cfg.Location, cfg.EmbeddingModel)
	if err != nil {
		log.Fatalf("Failed to initialize Vertex AI embedder: %v", err)
	}
	defer embedder.Close()

	// Initialize Vertex AI generator
	llm, err := service.NewVertexLLM(ctx, cfg.ProjectID, cfg.Location, cfg.GenerationModel)
	if err != nil {
		log.Fatalf("Failed to initialize Vertex AI generator: %v", err)
	}
	defer llm.Close()

	// Initialize services
	textIndex := service.NewTextIndex()
	indexSvc := service.NewIndexService(ghClient, chunkStore, repoStore, embedder, textIndex)

	var retriever service.Retriever
	switch cfg.RetrievalMode {
	case config.RetrievalText:
		retriever = textIndex
	default:
		retriever = service.NewVectorRetriever(embedder, chunkStore)
	}
	ragSvc := service.NewRAGService(retriever, llm, cfg.TopK)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	// Add middleware
	app.Use(recover.New())
	app.Use(logger.New())

	// Register routes
	handler.RegisterRoutes(app, ragSvc, indexSvc, repoStore, db, cfg.WebhookSecret)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
