// Package config centralises all environment / flag configuration for the
// service. It should be imported only by the cmd packages (and test code);
// business-logic layers receive an already-built Config instance via
// dependency-injection.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Retrieval modes selectable via RETRIEVAL_MODE.
const (
	RetrievalVector = "vector"
	RetrievalText   = "text"
)

// Config holds every runtime option the server and the indexer need.
// Keep it flat and simple—prefer primitive types over embedding structs.
type Config struct {
	// Network
	Port string

	// Data stores
	DatabaseURL string

	// External services
	GitHubToken   string
	WebhookSecret string

	// Vertex AI
	ProjectID       string
	Location        string
	EmbeddingModel  string
	EmbeddingDim    int
	GenerationModel string

	// Retrieval
	RetrievalMode string // "vector" or "text"
	TopK          int

	// Server tuning
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Load parses the environment (and an optional .env file) into Config.
// It terminates the program on missing critical variables so
// mis-configurations fail fast.
func Load() Config {
	// godotenv.Load() is a no-op if .env doesn't exist—safe in production.
	_ = godotenv.Load()

	return Config{
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   must("DATABASE_URL"),
		GitHubToken:   must("GITHUB_TOKEN"),
		WebhookSecret: getEnv("GITHUB_WEBHOOK_SECRET", ""),

		ProjectID: must("GCP_PROJECT_ID"),
		Location:  getEnv("GCP_LOCATION", "us-central1"),

		// One embedding model for both indexing and querying. Vectors from
		// different models are not comparable, so this is the single place
		// the model is chosen.
		EmbeddingModel:  getEnv("EMBEDDING_MODEL", "gemini-embedding-001"),
		EmbeddingDim:    getInt("EMBEDDING_DIM", 768),
		GenerationModel: getEnv("GENERATION_MODEL", "gemini-2.0-flash-lite-001"),

		RetrievalMode: getEnv("RETRIEVAL_MODE", RetrievalVector),
		TopK:          getInt("TOP_K", 5),

		ReadTimeout:  getDuration("READ_TIMEOUT_SEC", 5),
		WriteTimeout: getDuration("WRITE_TIMEOUT_SEC", 30),
	}
}

// must fetches a required env var or terminates the program.
func must(key string) string {
	val := os.Getenv(key)
	if val == "" {
		log.Fatalf("env var %s is required", key)
	}
	return val
}

// getEnv returns env[key] if set, otherwise defaultVal.
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getInt reads an integer from env, falling back to defaultVal.
func getInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("invalid %s=%q; using default %d", key, v, defaultVal)
	}
	return defaultVal
}

// getDuration reads an integer (seconds) from env, falling back to defaultSec.
func getDuration(key string, defaultSec int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if sec, err := strconv.Atoi(v); err == nil {
			return time.Duration(sec) * time.Second
		}
		log.Printf("invalid %s=%q; using default %ds", key, v, defaultSec)
	}
	return time.Duration(defaultSec) * time.Second
}
