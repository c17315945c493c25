package handler

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/reposcout/reposcout/internal/models"
	"github.com/reposcout/reposcout/internal/service"
)

// AskHandler wires HTTP → RAGService.
type AskHandler struct {
	svc *service.RAGService
}

// NewAskHandler returns a handler instance.
func NewAskHandler(svc *service.RAGService) *AskHandler {
	return &AskHandler{svc: svc}
}

// Register mounts POST /ask on the given router group.
func (h *AskHandler) Register(r fiber.Router) {
	r.Post("/ask", h.ask)
}

// ask handles POST /ask  { "query": "..." }
func (h *AskHandler) ask(c *fiber.Ctx) error {
	var req models.AskRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
	}
	if req.Query == "" {
		return fiber.NewError(fiber.StatusBadRequest, "query is required")
	}

	answer, err := h.svc.Answer(c.UserContext(), req.Query)
	if err != nil {
		// The caller always gets an explicit error, never a silently
		// empty answer.
		log.Printf("[Ask] answering failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(answer)
}
