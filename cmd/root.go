package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "notionbridge",
	Short: "Notion workspace bridge",
	Long:  `Bridge a Notion inventory database: serve a JSON API over it and batch-generate QR codes for its items.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
