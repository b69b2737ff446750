// Package config loads the process-wide settings from the environment.
package config

import (
	"fmt"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config holds the credentials and target database, read once at
// startup and injected into every component. It is never mutated after
// Load.
type Config struct {
	Token      string `env:"NOTION_TOKEN,required"`
	DatabaseID string `env:"NOTION_DATABASE_ID,required"`
	Workspace  string `env:"NOTION_WORKSPACE"`
	Port       int    `env:"PORT,default=8000"`
}

// Load reads a .env file when one is present, then decodes the
// environment. Workspace is optional here; the QR batch command checks
// it separately because only the renderer needs it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return &cfg, nil
}
