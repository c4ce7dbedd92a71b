package storage

import (
	"context"

	"github.com/hytaletravelers/playerstats/internal/model"
)

// Store defines the interface for durable snapshot persistence
type Store interface {
	// Load returns the persisted player records. A missing snapshot yields an
	// empty result, not an error. Individually corrupt entries are skipped;
	// migrated reports whether any surviving entry predates the current
	// schema version and should be re-saved.
	Load(ctx context.Context) (players []model.PersistedPlayer, migrated bool, err error)

	// Save writes the full list of player records, replacing any previous
	// snapshot.
	Save(ctx context.Context, players []model.PersistedPlayer) error

	// Close releases any underlying resources
	Close() error
}
