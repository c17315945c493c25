package handler

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "hunter2"

func newWebhookApp(secret string) *fiber.App {
	app := fiber.New()
	// The rejection paths below never reach the index service.
	NewWebhookHandler(nil, secret).Register(app)
	return app
}

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func deliver(t *testing.T, app *fiber.App, event, signature string, body []byte) int {
	t.Helper()
	req := httptest.NewRequest("POST", "/webhook/github", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if event != "" {
		req.Header.Set("X-GitHub-Event", event)
	}
	if signature != "" {
		req.Header.Set("X-Hub-Signature-256", signature)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestWebhookRejectsMissingSignature(t *testing.T) {
	app := newWebhookApp(testSecret)

	status := deliver(t, app, "push", "", []byte(`{}`))
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	app := newWebhookApp(testSecret)

	body := []byte(`{}`)
	status := deliver(t, app, "push", sign("wrong-secret", body), body)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestWebhookRejectsUnsupportedEvent(t *testing.T) {
	app := newWebhookApp(testSecret)

	body := []byte(`{"action":"completed"}`)
	status := deliver(t, app, "workflow_run", sign(testSecret, body), body)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestWebhookParsesPushPayload(t *testing.T) {
	h := NewWebhookHandler(nil, "")

	body := []byte(`{
		"repository": {"name": "hello-world", "owner": {"login": "octocat"}},
		"commits": [{"id": "abc123"}, {"id": "def456"}]
	}`)

	event, err := h.parse("push", body)
	require.NoError(t, err)
	assert.Equal(t, "octocat", event.Owner)
	assert.Equal(t, "hello-world", event.Repo)
	assert.Equal(t, []string{"abc123", "def456"}, event.CommitSHAs)
}

func TestWebhookParsesIssuePayload(t *testing.T) {
	h := NewWebhookHandler(nil, "")

	body := []byte(`{
		"action": "opened",
		"repository": {"name": "hello-world", "owner": {"login": "octocat"}},
		"issue": {"number": 7, "title": "It is broken", "body": "Steps to reproduce follow."}
	}`)

	event, err := h.parse("issues", body)
	require.NoError(t, err)
	assert.Equal(t, "opened", event.Action)
	assert.Equal(t, 7, event.Number)
	assert.Equal(t, "It is broken", event.Title)
	assert.Equal(t, "Steps to reproduce follow.", event.Body)
}
