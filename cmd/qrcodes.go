package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/khoward/notionbridge/internal/config"
	"github.com/khoward/notionbridge/internal/inventory"
	"github.com/khoward/notionbridge/internal/logger"
	"github.com/khoward/notionbridge/internal/notion"
)

var qrOutputDir string

var qrCmd = &cobra.Command{
	Use:   "qrcodes",
	Short: "Generate QR codes for semi-consumable inventory items",
	Long: `Generate one QR code per unique semi-consumable item in the configured
database. Records sharing an item name collapse into a single code, with
their quantities summed. Each image encodes the item's Notion page URL.

Examples:
  # Write QR codes into ./qr_codes
  ./notionbridge qrcodes

  # Write into a custom directory
  ./notionbridge qrcodes --output /srv/labels`,
	Run: runQRCodes,
}

func init() {
	rootCmd.AddCommand(qrCmd)
	qrCmd.Flags().StringVarP(&qrOutputDir, "output", "o", "qr_codes", "Directory to write QR images into")
}

func runQRCodes(cmd *cobra.Command, args []string) {
	log := logger.New("info")
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Workspace == "" {
		log.Fatal("NOTION_WORKSPACE environment variable is required")
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("Received interrupt signal, shutting down...")
		cancel()
	}()

	client := notion.NewClient(cfg.Token)
	renderer := &inventory.Renderer{OutputDir: qrOutputDir}
	generator := inventory.NewGenerator(client, renderer, cfg.DatabaseID, log)

	stats, err := generator.Run(ctx)
	if err != nil {
		if ctx.Err() != nil {
			log.Info("Run cancelled")
			os.Exit(1)
		}
		log.Fatalf("QR generation failed: %v", err)
	}

	generator.PrintSummary(stats)
	if stats.Failed > 0 {
		os.Exit(1)
	}
}
