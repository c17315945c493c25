package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/reposcout/reposcout/internal/service"
)

func RegisterRoutes(app *fiber.App,
	ragSvc *service.RAGService,
	indexSvc *service.IndexService,
	repos service.RepoStore,
	db *sql.DB,
	webhookSecret string,
) {

	NewWebhookHandler(indexSvc, webhookSecret).Register(app)
	NewHealthHandler(db).Register(app)

	v1 := app.Group("/api/v1")
	NewAskHandler(ragSvc).Register(v1)
	NewRepoHandler(repos).Register(v1)
}
