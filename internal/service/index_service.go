package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"

	"github.com/reposcout/reposcout/internal/models"
	"github.com/reposcout/reposcout/internal/text"
)

// ---- Collaborator contracts ------------------------------------------------

// CodeHost exposes the GitHub operations ingestion consumes.
type CodeHost interface {
	GetRepository(ctx context.Context, owner, name string) (models.RepoMeta, error)
	ListFilePaths(ctx context.Context, owner, name, ref string) ([]string, error)
	GetFileContent(ctx context.Context, owner, name, path, ref string) (string, error)
	ListIssues(ctx context.Context, owner, name string) ([]models.Issue, error)
	ListCommitFiles(ctx context.Context, owner, name, sha string) ([]models.CommitFile, error)
	CheckQuota(ctx context.Context) error
}

// ChunkStore persists chunks keyed by (repository id, path) and answers
// nearest-neighbor queries, descending by similarity.
type ChunkStore interface {
	Upsert(ctx context.Context, chunk models.Chunk) error
	NearestNeighbors(ctx context.Context, query []float32, limit int) ([]models.SearchResult, error)
}

// RepoStore persists one record per indexed repository.
type RepoStore interface {
	Upsert(ctx context.Context, repo models.Repo) error
	List(ctx context.Context) ([]models.Repo, error)
}

// ---- Service implementation ------------------------------------------------

// minPostingLength is the spam filter: issue and PR bodies shorter than
// this are too low-signal to index.
const minPostingLength = 50

// codeFile decides which normalization rules a path gets.
var codeFile = regexp.MustCompile(`(?i)\.(js|ts|py|java|go|rb|php|cs|cpp|h)$`)

// IndexService runs the write path: fetch content from GitHub, split,
// normalize, embed and upsert. Items are processed one at a time in
// path-encounter order; a failed item is logged and skipped, while
// systemic failures (quota critically low) abort the run.
type IndexService struct {
	gh        CodeHost
	chunks    ChunkStore
	repos     RepoStore
	embedder  EmbeddingClient
	textIndex *TextIndex
}

// NewIndexService wires the ingestion dependencies.
func NewIndexService(gh CodeHost, chunks ChunkStore, repos RepoStore,
	embedder EmbeddingClient, textIndex *TextIndex) *IndexService {
	return &IndexService{
		gh:        gh,
		chunks:    chunks,
		repos:     repos,
		embedder:  embedder,
		textIndex: textIndex,
	}
}

// IndexRepository ingests a whole repository: every file in the tree,
// then every issue and pull request. It upserts the repository record
// first, so re-running refreshes last_indexed.
func (s *IndexService) IndexRepository(ctx context.Context, owner, name string) error {
	if err := s.gh.CheckQuota(ctx); err != nil {
		return err
	}

	meta, err := s.gh.GetRepository(ctx, owner, name)
	if err != nil {
		return fmt.Errorf("fetch repository %s/%s: %w", owner, name, err)
	}

	if err := s.repos.Upsert(ctx, models.Repo{
		ID:      meta.ID,
		Owner:   meta.Owner,
		Name:    meta.Name,
		License: meta.License,
	}); err != nil {
		return err
	}

	paths, err := s.gh.ListFilePaths(ctx, owner, name, meta.DefaultBranch)
	if err != nil {
		return fmt.Errorf("list tree %s/%s: %w", owner, name, err)
	}

	var indexed, failed int
	for _, path := range paths {
		if err := s.indexFile(ctx, meta, path); err != nil {
			if systemic(err) {
				return err
			}
			log.Printf("[Index] skipping %s: %v", path, err)
			failed++
			continue
		}
		indexed++
	}

	if err := s.gh.CheckQuota(ctx); err != nil {
		return err
	}

	issues, err := s.gh.ListIssues(ctx, owner, name)
	if err != nil {
		return fmt.Errorf("list issues %s/%s: %w", owner, name, err)
	}

	var postings, skipped int
	for _, issue := range issues {
		if len(issue.Body) < minPostingLength {
			skipped++
			continue
		}
		if err := s.indexPosting(ctx, meta, postingPath(issue), issue.Body); err != nil {
			if systemic(err) {
				return err
			}
			log.Printf("[Index] skipping issue #%d: %v", issue.Number, err)
			failed++
			continue
		}
		postings++
	}

	log.Printf("[Index] %s/%s done: %d files, %d postings indexed, %d short bodies skipped, %d failures",
		owner, name, indexed, postings, skipped, failed)
	return nil
}

// ProcessEvent ingests the content referenced by one webhook delivery.
func (s *IndexService) ProcessEvent(ctx context.Context, event models.WebhookEvent) error {
	if err := s.gh.CheckQuota(ctx); err != nil {
		return err
	}

	switch event.Type {
	case models.EventPush:
		return s.processPush(ctx, event)
	case models.EventPullRequest, models.EventIssues:
		return s.processPosting(ctx, event)
	default:
		return fmt.Errorf("unsupported event type %q", event.Type)
	}
}

// processPush re-indexes the files touched by the pushed commits.
func (s *IndexService) processPush(ctx context.Context, event models.WebhookEvent) error {
	meta, err := s.gh.GetRepository(ctx, event.Owner, event.Repo)
	if err != nil {
		return err
	}

	for _, sha := range event.CommitSHAs {
		files, err := s.gh.ListCommitFiles(ctx, event.Owner, event.Repo, sha)
		if err != nil {
			if systemic(err) {
				return err
			}
			log.Printf("[Index] skipping commit %s: %v", sha, err)
			continue
		}
		for _, file := range files {
			if file.Status == "removed" {
				continue
			}
			if err := s.indexFile(ctx, meta, file.Path); err != nil {
				if systemic(err) {
					return err
				}
				log.Printf("[Index] skipping %s: %v", file.Path, err)
			}
		}
	}
	return nil
}

// processPosting indexes the body of an opened or edited issue / PR.
func (s *IndexService) processPosting(ctx context.Context, event models.WebhookEvent) error {
	if event.Action != "opened" && event.Action != "edited" {
		return nil
	}
	if len(event.Body) < minPostingLength {
		return nil
	}

	meta, err := s.gh.GetRepository(ctx, event.Owner, event.Repo)
	if err != nil {
		return err
	}

	kind := "Issue"
	if event.Type == models.EventPullRequest {
		kind = "PR"
	}
	path := fmt.Sprintf("%s #%d: %s", kind, event.Number, event.Title)
	return s.indexPosting(ctx, meta, path, event.Body)
}

// indexFile fetches one file, splits it and writes its chunks.
func (s *IndexService) indexFile(ctx context.Context, meta models.RepoMeta, path string) error {
	raw, err := s.gh.GetFileContent(ctx, meta.Owner, meta.Name, path, meta.DefaultBranch)
	if err != nil {
		return err
	}

	contentType := models.ContentTypeDocument
	normalize := text.NormalizeDocument
	if codeFile.MatchString(path) {
		contentType = models.ContentTypeCode
		normalize = text.NormalizeCode
	}

	pieces := text.SplitIntoChunks(raw)
	for i, piece := range pieces {
		normalized := normalize(piece)
		if normalized == "" {
			continue
		}

		chunkPath := path
		if len(pieces) > 1 {
			chunkPath = fmt.Sprintf("%s (part %d)", path, i+1)
		}
		if err := s.saveChunk(ctx, models.Chunk{
			RepoID:  meta.ID,
			Path:    chunkPath,
			Type:    contentType,
			Content: normalized,
			License: meta.License,
		}); err != nil {
			return err
		}
	}
	return nil
}

// indexPosting writes one issue or PR body as a single document chunk.
func (s *IndexService) indexPosting(ctx context.Context, meta models.RepoMeta, path, body string) error {
	normalized := text.NormalizeDocument(body)
	if normalized == "" {
		return nil
	}
	return s.saveChunk(ctx, models.Chunk{
		RepoID:  meta.ID,
		Path:    path,
		Type:    models.ContentTypeDocument,
		Content: normalized,
		License: meta.License,
	})
}

// saveChunk embeds the chunk, upserts it into the vector store and
// mirrors it into the fallback text index.
func (s *IndexService) saveChunk(ctx context.Context, chunk models.Chunk) error {
	embedding, err := s.embedder.EmbedDocument(ctx, chunk.Content)
	if err != nil {
		return err
	}
	chunk.Embedding = embedding

	if err := s.chunks.Upsert(ctx, chunk); err != nil {
		return err
	}
	s.textIndex.Save(chunk)
	return nil
}

// postingPath labels an issue or PR the way chunks reference it.
func postingPath(issue models.Issue) string {
	kind := "Issue"
	if issue.IsPull {
		kind = "PR"
	}
	return fmt.Sprintf("%s #%d: %s", kind, issue.Number, issue.Title)
}

// systemic reports whether an error should abort the whole run instead
// of skipping one item.
func systemic(err error) bool {
	return errors.Is(err, models.ErrRateLimited) ||
		errors.Is(err, models.ErrStorage) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
