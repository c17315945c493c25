package models

// Webhook event types this service consumes.
const (
	EventPush        = "push"
	EventPullRequest = "pull_request"
	EventIssues      = "issues"
)

// WebhookEvent is the boiled-down form of an inbound GitHub webhook
// delivery: just the fields ingestion acts on.
type WebhookEvent struct {
	Type  string // push, pull_request or issues
	Owner string
	Repo  string

	// push
	CommitSHAs []string

	// pull_request / issues
	Action string // only "opened" and "edited" are processed
	Number int
	Title  string
	Body   string
}
