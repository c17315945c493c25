package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/reposcout/reposcout/internal/models"
)

// ---- Collaborator contracts ------------------------------------------------

// Retriever finds the stored chunks most relevant to a query. Which
// strategy backs it (vector similarity or plain text matching) is a
// wiring decision.
type Retriever interface {
	Retrieve(ctx context.Context, query string, limit int) ([]models.SearchResult, error)
}

// Generator produces a completion for a fully assembled prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ---- Service implementation ------------------------------------------------

// answerPrompt is the fixed instruction template around retrieved context.
const answerPrompt = `You are an assistant that answers questions about a GitHub repository codebase.
Use the context below to give accurate, specific answers.

Context:
%s

Question: %s

Answer requirements:
1. Base the answer only on the provided context.
2. When quoting code, always name the file or issue path it came from.
3. Include license information when it is available.
4. If you have to speculate beyond the context, say so explicitly.
5. Keep the answer concise and prefer itemized lists.

Answer:`

// RAGService answers natural-language questions by retrieving similar
// chunks and grounding a completion on them. Each call is stateless; no
// conversation memory is kept here.
type RAGService struct {
	retriever Retriever
	llm       Generator
	topK      int
}

// NewRAGService wires the retrieval strategy and the language model.
func NewRAGService(retriever Retriever, llm Generator, topK int) *RAGService {
	if topK <= 0 {
		topK = 5
	}
	return &RAGService{retriever: retriever, llm: llm, topK: topK}
}

// Answer retrieves context for the query and asks the model for a
// grounded answer. Zero retrieval results are not an error: the model is
// prompted with an empty context block and expected to say it has
// nothing to go on.
func (s *RAGService) Answer(ctx context.Context, query string) (models.Answer, error) {
	if strings.TrimSpace(query) == "" {
		return models.Answer{}, fmt.Errorf("query cannot be empty")
	}

	results, err := s.retriever.Retrieve(ctx, query, s.topK)
	if err != nil {
		return models.Answer{}, err
	}
	log.Printf("[RAG] retrieved %d chunks for query %q", len(results), query)

	contextBlock, sources := buildContext(results)
	prompt := fmt.Sprintf(answerPrompt, contextBlock, query)

	answerText, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		return models.Answer{}, err
	}

	return models.Answer{Text: answerText, Sources: sources}, nil
}

// buildContext renders retrieved chunks as a context block with one
// citation line per chunk, and collects the matching source entries.
func buildContext(results []models.SearchResult) (string, []models.Source) {
	blocks := make([]string, 0, len(results))
	sources := make([]models.Source, 0, len(results))

	for _, res := range results {
		citation := "Source: " + res.Chunk.Path
		if res.Chunk.License != "" {
			citation += fmt.Sprintf(" (License: %s)", res.Chunk.License)
		}
		blocks = append(blocks, res.Chunk.Content+"\n"+citation)

		sources = append(sources, models.Source{
			Path:       res.Chunk.Path,
			License:    res.Chunk.License,
			Similarity: res.Similarity,
		})
	}
	return strings.Join(blocks, "\n\n"), sources
}

// VectorRetriever is the similarity-search strategy: embed the query,
// then ask the vector store for its nearest neighbors.
type VectorRetriever struct {
	embedder EmbeddingClient
	store    ChunkStore
}

// NewVectorRetriever wires the embedder and the vector store.
func NewVectorRetriever(embedder EmbeddingClient, store ChunkStore) *VectorRetriever {
	return &VectorRetriever{embedder: embedder, store: store}
}

// Retrieve embeds the query and returns the top-limit similar chunks.
func (r *VectorRetriever) Retrieve(ctx context.Context, query string, limit int) ([]models.SearchResult, error) {
	vec, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}
	return r.store.NearestNeighbors(ctx, vec, limit)
}
