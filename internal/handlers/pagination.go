package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/khoward/notionbridge/internal/notion"
)

const (
	testPageSize = 10
	testRoundCap = 10
	defaultSize  = 10
)

type paginationParams struct {
	StartCursor string `json:"start_cursor"`
	PageSize    int    `json:"page_size"`
}

// TestDatabaseHandler returns one page of the configured database with
// flattened properties, wrapped in a list envelope.
func TestDatabaseHandler(client *notion.Client, databaseID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		params := paginationParams{PageSize: defaultSize}
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&params); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"detail": "invalid request body",
				})
			}
		}
		if params.PageSize <= 0 {
			params.PageSize = defaultSize
		}

		result, err := client.QueryDatabase(ctx, databaseID, notion.Query{
			StartCursor: params.StartCursor,
			PageSize:    params.PageSize,
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":       err.Error(),
				"message":     "Failed to access Notion database",
				"database_id": databaseID,
			})
		}

		results := make([]notion.FlattenedPage, 0, len(result.Results))
		for _, page := range result.Results {
			results = append(results, notion.FlattenPage(page))
		}

		return c.JSON(fiber.Map{
			"object":      "list",
			"results":     results,
			"has_more":    result.HasMore,
			"next_cursor": result.NextCursor,
			"type":        "page",
		})
	}
}

// TestPaginationHandler walks the configured database ten records at a
// time, flattening as it goes and stopping after ten rounds at most.
func TestPaginationHandler(client *notion.Client, databaseID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		pages := make([]notion.FlattenedPage, 0)
		cursor := ""
		rounds := 0

		for rounds < testRoundCap {
			result, err := client.QueryDatabase(ctx, databaseID, notion.Query{
				StartCursor: cursor,
				PageSize:    testPageSize,
			})
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   err.Error(),
					"message": "Failed to test pagination",
				})
			}

			for _, page := range result.Results {
				pages = append(pages, notion.FlattenPage(page))
			}
			rounds++

			if !result.HasMore || result.NextCursor == nil {
				break
			}
			cursor = *result.NextCursor
		}

		return c.JSON(fiber.Map{
			"total_pages_fetched": len(pages),
			"pagination_rounds":   rounds,
			"pages":               pages,
		})
	}
}
