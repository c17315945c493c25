package service

import "context"

// EmbeddingClient converts text into a fixed-length vector. Documents and
// queries carry different task-type hints but must always go through the
// same model, or similarity scores become meaningless.
type EmbeddingClient interface {
	EmbedDocument(ctx context.Context, text string) ([]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}
