package inventory

import (
	"context"
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/khoward/notionbridge/internal/notion"
)

// semiConsumableFilter selects the records the batch renders codes for.
var semiConsumableFilter = json.RawMessage(`{"property":"Category","multi_select":{"contains":"Semi-consumable"}}`)

// Stats tracks one batch run.
type Stats struct {
	TotalItems  int
	UniqueItems int
	Generated   int
	Failed      int
}

// Generator orchestrates the QR batch: fetch the schema, query the
// database, group by item name, render one code per group.
type Generator struct {
	client     *notion.Client
	renderer   *Renderer
	databaseID string
	log        *zap.SugaredLogger
}

// NewGenerator creates a Generator.
func NewGenerator(client *notion.Client, renderer *Renderer, databaseID string, log *zap.SugaredLogger) *Generator {
	return &Generator{
		client:     client,
		renderer:   renderer,
		databaseID: databaseID,
		log:        log,
	}
}

// Run executes the batch. Schema retrieval and the initial query are
// fatal; per-item failures are logged and skipped.
func (g *Generator) Run(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	if err := os.MkdirAll(g.renderer.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	g.log.Info("Retrieving database schema...")
	db, err := g.client.RetrieveDatabase(ctx, g.databaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve database schema: %w", err)
	}
	g.log.Infow("Database schema", "name", db.Name(), "properties", db.PropertyTypes())

	g.log.Info("Querying database for semi-consumable items...")
	pages, rounds, err := g.client.QueryAll(ctx, g.databaseID, semiConsumableFilter, notion.MaxPageSize, notion.DefaultMaxRounds)
	if err != nil {
		return nil, fmt.Errorf("failed to query database: %w", err)
	}
	g.log.Infow("Query complete", "items", len(pages), "rounds", rounds)

	stats.TotalItems = len(pages)
	groups := GroupByName(pages, g.log)
	stats.UniqueItems = len(groups)

	for name, group := range groups {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		first := group.Members[0]
		g.log.Infow("Processing item",
			"name", name,
			"instances", len(group.Members),
			"total_quantity", group.TotalQuantity,
		)

		path, err := g.renderer.Render(first, name)
		if err != nil {
			g.log.Errorw("Failed to generate QR code", "name", name, "error", err)
			stats.Failed++
			continue
		}

		g.log.Infow("Generated QR code", "name", name, "file", path)
		stats.Generated++
	}

	// Collapsed items are worth calling out: their single code stands in
	// for several records.
	for name, group := range groups {
		if len(group.Members) > 1 {
			g.log.Infow("Collapsed item",
				"name", name,
				"instances", len(group.Members),
				"total_quantity", group.TotalQuantity,
			)
		}
	}

	return stats, nil
}

// PrintSummary logs end-of-run statistics.
func (g *Generator) PrintSummary(stats *Stats) {
	g.log.Info("=== QR Generation Summary ===")
	g.log.Infof("Total items found: %d", stats.TotalItems)
	g.log.Infof("Unique items:      %d", stats.UniqueItems)
	g.log.Infof("QR codes written:  %d", stats.Generated)
	g.log.Infof("Failed:            %d", stats.Failed)
}
