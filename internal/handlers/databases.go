package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/khoward/notionbridge/internal/notion"
)

// DatabasesHandler lists every database the integration can reach.
func DatabasesHandler(client *notion.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		results, err := client.SearchDatabases(ctx)
		if err != nil {
			return internalError(c, err)
		}

		return c.JSON(results)
	}
}
