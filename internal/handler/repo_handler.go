package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/reposcout/reposcout/internal/service"
)

// RepoHandler exposes read access to the indexed-repository catalog.
type RepoHandler struct {
	repos service.RepoStore
}

func NewRepoHandler(repos service.RepoStore) *RepoHandler {
	return &RepoHandler{repos: repos}
}

// Register mounts GET /repositories on the given router group.
func (h *RepoHandler) Register(r fiber.Router) {
	r.Get("/repositories", h.list)
}

func (h *RepoHandler) list(c *fiber.Ctx) error {
	repos, err := h.repos.List(c.UserContext())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{"repositories": repos})
}
