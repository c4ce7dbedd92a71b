package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Load reads config from the given file, falling back to built-in defaults on
// any problem, then applies environment variable overrides. A missing file is
// created with defaults; a file below the current config version is stamped
// and rewritten. Load never fails startup: the worst case is defaults.
func Load(path string, logger *slog.Logger) Config {
	cfg := loadFile(path, logger)

	if err := env.Parse(&cfg); err != nil {
		logger.Warn("failed to parse config overrides from environment",
			slog.String("error", err.Error()))
	}

	return cfg
}

func loadFile(path string, logger *slog.Logger) Config {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err := Save(path, cfg); err != nil {
				logger.Warn("failed to write default config", slog.String("error", err.Error()))
			} else {
				logger.Info("created default config", slog.String("path", path))
			}
			return cfg
		}
		logger.Warn("failed to read config, using defaults", slog.String("error", err.Error()))
		return cfg
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		logger.Warn("malformed config, using defaults", slog.String("error", err.Error()))
		return Default()
	}

	if cfg.ConfigVersion < CurrentConfigVersion {
		cfg.ConfigVersion = CurrentConfigVersion
		if err := Save(path, cfg); err != nil {
			logger.Warn("failed to rewrite migrated config", slog.String("error", err.Error()))
		} else {
			logger.Info("config migrated", slog.Int("version", CurrentConfigVersion))
		}
	}

	return cfg
}

// Save writes the config as JSON, creating parent directories as needed
func Save(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
