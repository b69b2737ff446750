package handlers

import (
	"context"

	json "github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"

	"github.com/khoward/notionbridge/internal/notion"
)

type queryRequest struct {
	Filter json.RawMessage `json:"filter"`
	Sorts  json.RawMessage `json:"sorts"`
}

// QueryHandler forwards a caller-supplied filter and sort to the
// database and returns the results unflattened.
func QueryHandler(client *notion.Client, databaseID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		var req queryRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"detail": "invalid request body",
				})
			}
		}

		result, err := client.QueryDatabase(ctx, databaseID, notion.Query{
			Filter: rawOrNil(req.Filter),
			Sorts:  rawOrNil(req.Sorts),
		})
		if err != nil {
			return internalError(c, err)
		}

		return c.JSON(result.Results)
	}
}

// rawOrNil drops absent or explicit-null raw fields so they are omitted
// from the remote query body.
func rawOrNil(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return raw
}
