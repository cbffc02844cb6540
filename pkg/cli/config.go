package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/mizutamari/keepsake/pkg/adapter"
	"github.com/mizutamari/keepsake/pkg/repository"
)

// config holds configuration values
type config struct {
	// Store
	dataDir string

	// Logging
	logLevel string

	// AI client
	geminiAPIKey   string
	geminiProject  string
	geminiLocation string
	model          string
}

// globalFlags returns common flags used across commands with destination config
func globalFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "data-dir",
			Aliases:     []string{"d"},
			Usage:       "Directory holding the local page store",
			Sources:     cli.EnvVars("KEEPSAKE_DATA_DIR"),
			Destination: &cfg.dataDir,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars("KEEPSAKE_LOG_LEVEL"),
			Destination: &cfg.logLevel,
		},
	}
}

// llmFlags returns flags for AI-related configuration with destination config
func llmFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gemini-api-key",
			Usage:       "Gemini API key",
			Sources:     cli.EnvVars("GEMINI_API_KEY"),
			Destination: &cfg.geminiAPIKey,
		},
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "Google Cloud project ID for Vertex AI",
			Sources:     cli.EnvVars("GEMINI_PROJECT_ID"),
			Destination: &cfg.geminiProject,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for Vertex AI",
			Value:       "us-central1",
			Sources:     cli.EnvVars("GEMINI_LOCATION"),
			Destination: &cfg.geminiLocation,
		},
		&cli.StringFlag{
			Name:        "model",
			Usage:       "Generative model name",
			Sources:     cli.EnvVars("KEEPSAKE_MODEL"),
			Destination: &cfg.model,
		},
	}
}

// storePath resolves the SQLite store location, defaulting to
// ~/.keepsake/keepsake.db
func (cfg *config) storePath() (string, error) {
	dir := cfg.dataDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", goerr.Wrap(err, "failed to resolve home directory")
		}
		dir = filepath.Join(home, ".keepsake")
	}
	return filepath.Join(dir, "keepsake.db"), nil
}

// newRepository creates a new repository instance
func (cfg *config) newRepository() (repository.Repository, error) {
	path, err := cfg.storePath()
	if err != nil {
		return nil, err
	}

	repo, err := repository.NewSQLite(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open page store")
	}
	return repo, nil
}

// newGemini creates an AI client, or returns nil when no credential is
// configured. Callers treat a nil client as "AI disabled" and degrade.
func (cfg *config) newGemini(ctx context.Context) (adapter.Gemini, error) {
	var opts []adapter.GeminiOption
	if cfg.model != "" {
		opts = append(opts, adapter.WithGenerativeModel(cfg.model))
	}

	switch {
	case cfg.geminiAPIKey != "":
		return adapter.NewGemini(ctx, cfg.geminiAPIKey, opts...)
	case cfg.geminiProject != "":
		return adapter.NewGeminiVertex(ctx, cfg.geminiProject, cfg.geminiLocation, opts...)
	default:
		return nil, nil
	}
}
