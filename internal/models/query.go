package models

// AskRequest is the payload for POST /api/v1/ask.
type AskRequest struct {
	Query string `json:"query"`
}

// Source names where a piece of answer context came from.
type Source struct {
	Path       string  `json:"path"`
	License    string  `json:"license,omitempty"`
	Similarity float64 `json:"similarity"`
}

// Answer is the result of one retrieval-augmented generation call.
type Answer struct {
	Text    string   `json:"answer"`
	Sources []Source `json:"sources"`
}

// Issue captures the fields of a GitHub issue or pull request that
// ingestion cares about.
type Issue struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	State  string `json:"state"`
	IsPull bool   `json:"is_pull"`
}

// CommitFile is one file touched by a commit.
type CommitFile struct {
	Path   string `json:"path"`
	Status string `json:"status"` // "added", "modified", "removed", ...
}
