package models

import "errors"

// Failure kinds shared across the service and repository layers.
// Callers wrap these with fmt.Errorf("%w: ...") so errors.Is works at
// every boundary.
var (
	// ErrEmbeddingService means the upstream embedding call failed or
	// returned a malformed response.
	ErrEmbeddingService = errors.New("embedding service failure")

	// ErrStorage means the persistence layer failed, including a
	// dimensionality mismatch between stored and query vectors.
	ErrStorage = errors.New("storage failure")

	// ErrGeneration means the language-model call failed.
	ErrGeneration = errors.New("generation failure")

	// ErrRateLimited means the GitHub quota is critically low and the
	// current ingestion run must stop.
	ErrRateLimited = errors.New("github rate limit critically low")
)
