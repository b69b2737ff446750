package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khoward/notionbridge/internal/config"
	"github.com/khoward/notionbridge/internal/handlers"
	"github.com/khoward/notionbridge/internal/logger"
	"github.com/khoward/notionbridge/internal/notion"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Notion integration API server",
	Long:  `Start the HTTP server exposing the configured Notion database: page listings, content retrieval, filtered queries and pagination helpers.`,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.New("info")
		defer log.Sync()

		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// Flag wins over the PORT environment variable when set.
		if servePort != 0 {
			cfg.Port = servePort
		}

		client := notion.NewClient(cfg.Token)
		app := handlers.NewApp(client, cfg.DatabaseID)

		log.Infof("Starting server on :%d", cfg.Port)
		if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to run the server on (overrides PORT)")
}
