// Package handlers exposes the Notion façade over HTTP.
package handlers

import (
	json "github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/khoward/notionbridge/internal/notion"
)

// NewApp assembles the fiber application with all façade routes.
func NewApp(client *notion.Client, databaseID string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:     "Notion Integration API",
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "https://chat.openai.com, http://localhost:8000, http://localhost:3000",
		AllowCredentials: true,
	}))

	app.Get("/", HomeHandler())
	app.Get("/notion/databases", DatabasesHandler(client))
	app.Get("/notion/pages", PagesHandler(client, databaseID))
	app.Get("/notion/page/:id", PageHandler(client))
	app.Post("/notion/query", QueryHandler(client, databaseID))
	app.Post("/notion/test-database", TestDatabaseHandler(client, databaseID))
	app.Get("/notion/test-pagination", TestPaginationHandler(client, databaseID))

	return app
}

// internalError collapses any remote or service failure into the
// façade's 500 envelope, forwarding the underlying message verbatim.
func internalError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"detail": err.Error(),
	})
}
