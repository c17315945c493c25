// Package github wraps GitHub's REST API behind the small set of
// operations ingestion needs. All calls go through a shared rate limiter
// so bulk indexing respects upstream quotas.
package github

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/reposcout/reposcout/internal/models"
)

const defaultTimeout = 30 * time.Second

// Client is a thin wrapper around go-github.
type Client struct {
	gh      *gh.Client
	limiter *RateLimiter
}

// NewClient returns a ready-to-use GitHub API client. token may be empty,
// but unauthenticated quotas are very low.
func NewClient(token string) *Client {
	hc := &http.Client{Timeout: defaultTimeout}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		hc = oauth2.NewClient(context.Background(), ts)
		hc.Timeout = defaultTimeout
	}

	return &Client{
		gh:      gh.NewClient(hc),
		limiter: NewRateLimiter(),
	}
}

// GetRepository fetches repository metadata: id, license and default branch.
func (c *Client) GetRepository(ctx context.Context, owner, name string) (models.RepoMeta, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return models.RepoMeta{}, err
	}

	repo, resp, err := c.gh.Repositories.Get(ctx, owner, name)
	if err != nil {
		return models.RepoMeta{}, fmt.Errorf("get repo %s/%s: %w", owner, name, err)
	}
	c.limiter.Update(resp)

	return models.RepoMeta{
		ID:            strconv.FormatInt(repo.GetID(), 10),
		Owner:         owner,
		Name:          name,
		License:       repo.GetLicense().GetSPDXID(),
		DefaultBranch: repo.GetDefaultBranch(),
	}, nil
}

// ListFilePaths walks the repository tree recursively and returns the
// paths of all blobs.
func (c *Client) ListFilePaths(ctx context.Context, owner, name, ref string) ([]string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	tree, resp, err := c.gh.Git.GetTree(ctx, owner, name, ref, true)
	if err != nil {
		return nil, fmt.Errorf("get tree %s/%s@%s: %w", owner, name, ref, err)
	}
	c.limiter.Update(resp)

	if tree.GetTruncated() {
		// GitHub caps recursive trees; the missing tail is skipped rather
		// than fetched subtree-by-subtree.
		log.Printf("[GitHub] tree for %s/%s truncated by GitHub", owner, name)
	}

	paths := make([]string, 0, len(tree.Entries))
	for _, entry := range tree.Entries {
		if entry.GetType() != "blob" || entry.GetPath() == "" {
			continue
		}
		paths = append(paths, entry.GetPath())
	}
	return paths, nil
}

// GetFileContent fetches and decodes one file. GitHub returns content
// base64-encoded; GetContent handles the decoding.
func (c *Client) GetFileContent(ctx context.Context, owner, name, path, ref string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	file, _, resp, err := c.gh.Repositories.GetContents(ctx, owner, name, path,
		&gh.RepositoryContentGetOptions{Ref: ref})
	if err != nil {
		return "", fmt.Errorf("get content %s: %w", path, err)
	}
	c.limiter.Update(resp)

	if file == nil {
		return "", fmt.Errorf("get content %s: not a file", path)
	}
	content, err := file.GetContent()
	if err != nil {
		return "", fmt.Errorf("decode content %s: %w", path, err)
	}
	return content, nil
}

// ListIssues fetches every issue and pull request of the repository,
// all states, following pagination.
func (c *Client) ListIssues(ctx context.Context, owner, name string) ([]models.Issue, error) {
	opts := &gh.IssueListByRepoOptions{
		State:       "all",
		ListOptions: gh.ListOptions{PerPage: 100},
	}

	var all []models.Issue
	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		issues, resp, err := c.gh.Issues.ListByRepo(ctx, owner, name, opts)
		if err != nil {
			return nil, fmt.Errorf("list issues %s/%s: %w", owner, name, err)
		}
		c.limiter.Update(resp)

		for _, is := range issues {
			all = append(all, models.Issue{
				Number: is.GetNumber(),
				Title:  is.GetTitle(),
				Body:   is.GetBody(),
				State:  is.GetState(),
				IsPull: is.IsPullRequest(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.ListOptions.Page = resp.NextPage
	}
	return all, nil
}

// ListCommitFiles returns the files changed by one commit.
func (c *Client) ListCommitFiles(ctx context.Context, owner, name, sha string) ([]models.CommitFile, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	commit, resp, err := c.gh.Repositories.GetCommit(ctx, owner, name, sha, nil)
	if err != nil {
		return nil, fmt.Errorf("get commit %s: %w", sha, err)
	}
	c.limiter.Update(resp)

	files := make([]models.CommitFile, 0, len(commit.Files))
	for _, f := range commit.Files {
		files = append(files, models.CommitFile{
			Path:   f.GetFilename(),
			Status: f.GetStatus(),
		})
	}
	return files, nil
}

// CheckQuota asks GitHub for the current core quota and fails with
// models.ErrRateLimited when the remaining share is critically low.
func (c *Client) CheckQuota(ctx context.Context) error {
	// Headers from earlier responses may already tell us the answer.
	if c.limiter.QuotaLow() {
		return fmt.Errorf("%w: %d requests left", models.ErrRateLimited, c.limiter.Remaining())
	}

	limits, _, err := c.gh.RateLimit.Get(ctx)
	if err != nil {
		return fmt.Errorf("get rate limit: %w", err)
	}

	core := limits.GetCore()
	if core != nil && float64(core.Remaining) < float64(core.Limit)*quotaFraction {
		return fmt.Errorf("%w: %d of %d requests left",
			models.ErrRateLimited, core.Remaining, core.Limit)
	}
	return nil
}
