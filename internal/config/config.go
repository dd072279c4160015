// Package config resolves runtime settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config carries the storage collaborator settings for the CLI.
type Config struct {
	// DatabasePath is the SQLite file holding forms and responses.
	DatabasePath string `env:"FORMBUILDER_DB" envDefault:"formbuilder.db"`
	// BlobDir is the directory file uploads are written under.
	BlobDir string `env:"FORMBUILDER_BLOB_DIR" envDefault:"uploads-data"`
	// BlobBaseURL prefixes stored blob paths to build public URLs.
	BlobBaseURL string `env:"FORMBUILDER_BLOB_BASE_URL" envDefault:"http://localhost:8080/files"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse environment: %w", err)
	}
	return cfg, nil
}
