package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// HomeHandler returns the capability listing for the API root.
func HomeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Notion Integration API",
			"endpoints": fiber.Map{
				"GET /notion/databases":      "List all accessible databases",
				"GET /notion/pages":          "Query pages in the configured database",
				"GET /notion/page/{page_id}": "Get specific page content",
				"POST /notion/query":         "Query database with filters",
			},
		})
	}
}
