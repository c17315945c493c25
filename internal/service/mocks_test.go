package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/reposcout/reposcout/internal/models"
)

// Mock implementations for local testing

// MockCodeHost is a mock implementation of CodeHost
type MockCodeHost struct {
	mock.Mock
}

func (m *MockCodeHost) GetRepository(ctx context.Context, owner, name string) (models.RepoMeta, error) {
	args := m.Called(ctx, owner, name)
	return args.Get(0).(models.RepoMeta), args.Error(1)
}

func (m *MockCodeHost) ListFilePaths(ctx context.Context, owner, name, ref string) ([]string, error) {
	args := m.Called(ctx, owner, name, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCodeHost) GetFileContent(ctx context.Context, owner, name, path, ref string) (string, error) {
	args := m.Called(ctx, owner, name, path, ref)
	return args.String(0), args.Error(1)
}

func (m *MockCodeHost) ListIssues(ctx context.Context, owner, name string) ([]models.Issue, error) {
	args := m.Called(ctx, owner, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Issue), args.Error(1)
}

func (m *MockCodeHost) ListCommitFiles(ctx context.Context, owner, name, sha string) ([]models.CommitFile, error) {
	args := m.Called(ctx, owner, name, sha)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CommitFile), args.Error(1)
}

func (m *MockCodeHost) CheckQuota(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockChunkStore is a mock implementation of ChunkStore
type MockChunkStore struct {
	mock.Mock
}

func (m *MockChunkStore) Upsert(ctx context.Context, chunk models.Chunk) error {
	args := m.Called(ctx, chunk)
	return args.Error(0)
}

func (m *MockChunkStore) NearestNeighbors(ctx context.Context, query []float32, limit int) ([]models.SearchResult, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SearchResult), args.Error(1)
}

// MockRepoStore is a mock implementation of RepoStore
type MockRepoStore struct {
	mock.Mock
}

func (m *MockRepoStore) Upsert(ctx context.Context, repo models.Repo) error {
	args := m.Called(ctx, repo)
	return args.Error(0)
}

func (m *MockRepoStore) List(ctx context.Context) ([]models.Repo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Repo), args.Error(1)
}

// MockEmbedder is a mock implementation of EmbeddingClient
type MockEmbedder struct {
	mock.Mock
}

func (m *MockEmbedder) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

func (m *MockEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

// MockRetriever is a mock implementation of Retriever
type MockRetriever struct {
	mock.Mock
}

func (m *MockRetriever) Retrieve(ctx context.Context, query string, limit int) ([]models.SearchResult, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SearchResult), args.Error(1)
}

// MockGenerator is a mock implementation of Generator
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}
