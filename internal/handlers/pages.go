package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/khoward/notionbridge/internal/model"
	"github.com/khoward/notionbridge/internal/notion"
)

// contentBlockKinds are the block types rendered into page content.
// Everything else is silently dropped.
var contentBlockKinds = map[string]bool{
	"paragraph":          true,
	"heading_1":          true,
	"heading_2":          true,
	"heading_3":          true,
	"bulleted_list_item": true,
}

// PagesHandler lists pages from the configured database with their raw
// property bags. Flattening is deliberately left to the test-database
// endpoint.
func PagesHandler(client *notion.Client, databaseID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		result, err := client.QueryDatabase(ctx, databaseID, notion.Query{})
		if err != nil {
			return internalError(c, err)
		}

		pages := make([]fiber.Map, 0, len(result.Results))
		for _, page := range result.Results {
			pages = append(pages, fiber.Map{
				"id":         page.ID,
				"url":        page.URL,
				"properties": page.Properties,
			})
		}

		return c.JSON(pages)
	}
}

// PageHandler returns a page's metadata plus its text content, filtered
// to the supported block kinds.
func PageHandler(client *notion.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()
		pageID := c.Params("id")

		metadata, err := client.RetrievePageRaw(ctx, pageID)
		if err != nil {
			return internalError(c, err)
		}

		blocks, err := client.ListBlockChildren(ctx, pageID)
		if err != nil {
			return internalError(c, err)
		}

		content := make([]fiber.Map, 0, len(blocks.Results))
		for _, block := range blocks.Results {
			if !contentBlockKinds[block.Type] {
				continue
			}
			content = append(content, fiber.Map{
				"type":    block.Type,
				"content": model.PlainText(block.RichTextRuns()),
			})
		}

		return c.JSON(fiber.Map{
			"metadata": metadata,
			"content":  content,
		})
	}
}
