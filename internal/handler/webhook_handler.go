package handler

import (
	"log"

	"github.com/gofiber/fiber/v2"
	gh "github.com/google/go-github/v80/github"

	"github.com/reposcout/reposcout/internal/models"
	"github.com/reposcout/reposcout/internal/service"
)

// WebhookHandler receives GitHub webhook deliveries and forwards the
// events the indexer cares about. Unsupported event types are rejected
// with 400 so a misconfigured webhook shows up in GitHub's delivery log.
type WebhookHandler struct {
	svc    *service.IndexService
	secret string
}

func NewWebhookHandler(svc *service.IndexService, secret string) *WebhookHandler {
	return &WebhookHandler{svc: svc, secret: secret}
}

// Register mounts POST /webhook/github directly on the app, outside the
// versioned API group.
func (h *WebhookHandler) Register(r fiber.Router) {
	r.Post("/webhook/github", h.receive)
}

func (h *WebhookHandler) receive(c *fiber.Ctx) error {
	body := c.Body()

	if h.secret != "" {
		sig := c.Get("X-Hub-Signature-256")
		if sig == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing signature")
		}
		if err := gh.ValidateSignature(sig, body, []byte(h.secret)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid signature")
		}
	}

	eventType := c.Get("X-GitHub-Event")
	event, err := h.parse(eventType, body)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := h.svc.ProcessEvent(c.UserContext(), event); err != nil {
		log.Printf("[Webhook] processing %s event failed: %v", eventType, err)
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{"status": "processed"})
}

// parse maps the raw delivery onto the internal event model.
func (h *WebhookHandler) parse(eventType string, body []byte) (models.WebhookEvent, error) {
	payload, err := gh.ParseWebHook(eventType, body)
	if err != nil {
		return models.WebhookEvent{}, fiber.NewError(fiber.StatusBadRequest, "malformed payload")
	}

	switch e := payload.(type) {
	case *gh.PushEvent:
		ev := models.WebhookEvent{
			Type:  models.EventPush,
			Owner: e.GetRepo().GetOwner().GetLogin(),
			Repo:  e.GetRepo().GetName(),
		}
		for _, commit := range e.Commits {
			ev.CommitSHAs = append(ev.CommitSHAs, commit.GetID())
		}
		return ev, nil

	case *gh.PullRequestEvent:
		pr := e.GetPullRequest()
		return models.WebhookEvent{
			Type:   models.EventPullRequest,
			Owner:  e.GetRepo().GetOwner().GetLogin(),
			Repo:   e.GetRepo().GetName(),
			Action: e.GetAction(),
			Number: pr.GetNumber(),
			Title:  pr.GetTitle(),
			Body:   pr.GetBody(),
		}, nil

	case *gh.IssuesEvent:
		issue := e.GetIssue()
		return models.WebhookEvent{
			Type:   models.EventIssues,
			Owner:  e.GetRepo().GetOwner().GetLogin(),
			Repo:   e.GetRepo().GetName(),
			Action: e.GetAction(),
			Number: issue.GetNumber(),
			Title:  issue.GetTitle(),
			Body:   issue.GetBody(),
		}, nil

	default:
		return models.WebhookEvent{}, fiber.NewError(fiber.StatusBadRequest, "unsupported event type: "+eventType)
	}
}
