package memory

import (
	"context"
	"sync"

	"github.com/hytaletravelers/playerstats/internal/model"
	"github.com/hytaletravelers/playerstats/internal/storage"
)

// Store is an in-memory snapshot backend used for tests and
// ephemeral deployments
type Store struct {
	mu      sync.Mutex
	players []model.PersistedPlayer
	saved   bool
}

var _ storage.Store = (*Store)(nil)

// New creates an empty in-memory store
func New() *Store {
	return &Store{}
}

// Load returns the last saved snapshot, or an empty slice if nothing
// has been saved yet
func (s *Store) Load(_ context.Context) ([]model.PersistedPlayer, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.saved {
		return nil, false, nil
	}

	out := make([]model.PersistedPlayer, len(s.players))
	copy(out, s.players)
	return out, false, nil
}

// Save replaces the stored snapshot
func (s *Store) Save(_ context.Context, players []model.PersistedPlayer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.players = make([]model.PersistedPlayer, len(players))
	copy(s.players, players)
	s.saved = true
	return nil
}

// Close is a no-op for the in-memory store
func (s *Store) Close() error {
	return nil
}
