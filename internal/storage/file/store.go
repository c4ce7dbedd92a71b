package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hytaletravelers/playerstats/internal/model"
	"github.com/hytaletravelers/playerstats/internal/storage"
)

// Store persists snapshots as a JSON file containing an ordered list of
// versioned player records.
type Store struct {
	path   string
	logger *slog.Logger
}

// New creates a file-backed snapshot store writing to the given path
func New(path string, logger *slog.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger,
	}
}

// Ensure Store implements the interface
var _ storage.Store = (*Store)(nil)

// Load reads the snapshot file. A missing file is an empty snapshot.
// Entries that fail to decode or carry an invalid identity are skipped
// individually so one bad record never loses the rest.
func (s *Store) Load(_ context.Context) ([]model.PersistedPlayer, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading snapshot file: %w", err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, false, fmt.Errorf("parsing snapshot file: %w", err)
	}

	players := make([]model.PersistedPlayer, 0, len(raw))
	migrated := false
	for _, entry := range raw {
		var p model.PersistedPlayer
		if err := json.Unmarshal(entry, &p); err != nil {
			s.logger.Warn("skipping corrupt player entry", slog.String("error", err.Error()))
			continue
		}
		if p.UUID == "" {
			s.logger.Warn("skipping player entry with no uuid")
			continue
		}
		if p.NeedsMigration() {
			migrated = true
		}
		players = append(players, p)
	}

	return players, migrated, nil
}

// Save writes the full snapshot, creating parent directories as needed
func (s *Store) Save(_ context.Context, players []model.PersistedPlayer) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating snapshot directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(players, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing snapshot file: %w", err)
	}
	return nil
}

// Close is a no-op for the file backend
func (s *Store) Close() error {
	return nil
}
