package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/reposcout/reposcout/internal/models"
)

func TestAnswerRejectsEmptyQuery(t *testing.T) {
	retriever := &MockRetriever{}
	llm := &MockGenerator{}
	svc := NewRAGService(retriever, llm, 5)

	_, err := svc.Answer(context.Background(), "   ")
	assert.Error(t, err)
	retriever.AssertNotCalled(t, "Retrieve", mock.Anything, mock.Anything, mock.Anything)
	llm.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestAnswerCitesSourcesInPrompt(t *testing.T) {
	retriever := &MockRetriever{}
	llm := &MockGenerator{}
	svc := NewRAGService(retriever, llm, 2)
	ctx := context.Background()

	retriever.On("Retrieve", ctx, "how is auth handled?", 2).Return([]models.SearchResult{
		{
			Chunk: models.Chunk{
				RepoID: "42", Path: "internal/auth/middleware.go",
				Type: models.ContentTypeCode, Content: "func RequireToken() {}", License: "MIT",
			},
			Similarity: 0.91,
		},
		{
			Chunk: models.Chunk{
				RepoID: "42", Path: "Issue #7: login loops forever",
				Type: models.ContentTypeDocument, Content: "Sessions expire after one hour.",
			},
			Similarity: 0.74,
		},
	}, nil)

	var prompt string
	llm.On("Generate", ctx, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { prompt = args.String(1) }).
		Return("Tokens are checked by RequireToken.", nil)

	answer, err := svc.Answer(ctx, "how is auth handled?")
	require.NoError(t, err)

	// Every retrieved chunk appears in the prompt with its citation line.
	assert.Contains(t, prompt, "func RequireToken() {}")
	assert.Contains(t, prompt, "Source: internal/auth/middleware.go (License: MIT)")
	assert.Contains(t, prompt, "Source: Issue #7: login loops forever")
	// No license, no license annotation.
	assert.NotContains(t, prompt, "Issue #7: login loops forever (License:")
	assert.Contains(t, prompt, "Question: how is auth handled?")

	assert.Equal(t, "Tokens are checked by RequireToken.", answer.Text)
	require.Len(t, answer.Sources, 2)
	assert.Equal(t, "internal/auth/middleware.go", answer.Sources[0].Path)
	assert.Equal(t, "MIT", answer.Sources[0].License)
	assert.InDelta(t, 0.91, answer.Sources[0].Similarity, 1e-9)
}

func TestAnswerProceedsWithNoResults(t *testing.T) {
	retriever := &MockRetriever{}
	llm := &MockGenerator{}
	svc := NewRAGService(retriever, llm, 5)
	ctx := context.Background()

	retriever.On("Retrieve", ctx, "anything at all", 5).Return([]models.SearchResult{}, nil)

	var prompt string
	llm.On("Generate", ctx, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { prompt = args.String(1) }).
		Return("I have no context to answer from.", nil)

	answer, err := svc.Answer(ctx, "anything at all")
	require.NoError(t, err)

	// The model is still consulted, with an empty context block.
	assert.Contains(t, prompt, "Context:\n\n")
	assert.Empty(t, answer.Sources)
	assert.Equal(t, "I have no context to answer from.", answer.Text)
}

func TestAnswerPropagatesGenerationFailure(t *testing.T) {
	retriever := &MockRetriever{}
	llm := &MockGenerator{}
	svc := NewRAGService(retriever, llm, 5)
	ctx := context.Background()

	retriever.On("Retrieve", ctx, "what changed?", 5).Return([]models.SearchResult{}, nil)
	llm.On("Generate", ctx, mock.AnythingOfType("string")).
		Return("", errors.New("model unavailable"))

	_, err := svc.Answer(ctx, "what changed?")
	assert.EqualError(t, err, "model unavailable")
}

func TestAnswerPropagatesRetrievalFailure(t *testing.T) {
	retriever := &MockRetriever{}
	llm := &MockGenerator{}
	svc := NewRAGService(retriever, llm, 5)
	ctx := context.Background()

	retriever.On("Retrieve", ctx, "what changed?", 5).
		Return(nil, errors.New("store offline"))

	_, err := svc.Answer(ctx, "what changed?")
	assert.Error(t, err)
	llm.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestVectorRetrieverEmbedsThenSearches(t *testing.T) {
	embedder := &MockEmbedder{}
	store := &MockChunkStore{}
	retriever := NewVectorRetriever(embedder, store)
	ctx := context.Background()

	vec := []float32{0.3, 0.1, 0.9}
	want := []models.SearchResult{
		{Chunk: models.Chunk{Path: "cmd/server/main.go"}, Similarity: 0.88},
	}

	embedder.On("EmbedQuery", ctx, "where does the server start?").Return(vec, nil)
	store.On("NearestNeighbors", ctx, vec, 3).Return(want, nil)

	got, err := retriever.Retrieve(ctx, "where does the server start?", 3)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	// Documents and queries must never use different embedding calls here.
	embedder.AssertNotCalled(t, "EmbedDocument", mock.Anything, mock.Anything)
}

func TestVectorRetrieverStopsOnEmbeddingFailure(t *testing.T) {
	embedder := &MockEmbedder{}
	store := &MockChunkStore{}
	retriever := NewVectorRetriever(embedder, store)
	ctx := context.Background()

	embedder.On("EmbedQuery", ctx, "query").
		Return(nil, models.ErrEmbeddingService)

	_, err := retriever.Retrieve(ctx, "query", 3)
	require.ErrorIs(t, err, models.ErrEmbeddingService)
	store.AssertNotCalled(t, "NearestNeighbors", mock.Anything, mock.Anything, mock.Anything)
}

func TestBuildContextJoinsBlocks(t *testing.T) {
	block, sources := buildContext([]models.SearchResult{
		{Chunk: models.Chunk{Path: "a.go", Content: "alpha", License: "MIT"}},
		{Chunk: models.Chunk{Path: "b.md", Content: "beta"}},
	})

	parts := strings.Split(block, "\n\n")
	require.Len(t, parts, 2)
	assert.Equal(t, "alpha\nSource: a.go (License: MIT)", parts[0])
	assert.Equal(t, "beta\nSource: b.md", parts[1])
	require.Len(t, sources, 2)
}
