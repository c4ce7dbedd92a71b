package stats

import (
	"context"
	"log/slog"

	"github.com/hytaletravelers/playerstats/internal/dependencies/clock"
	"github.com/hytaletravelers/playerstats/internal/metrics"
	"github.com/hytaletravelers/playerstats/internal/model"
	"github.com/hytaletravelers/playerstats/internal/storage"
)

// Persistence bridges the stat store and a snapshot backend.
// It owns the load-at-startup and save-on-checkpoint behavior; the in-memory
// store remains authoritative whenever a save fails.
type Persistence struct {
	store   *Store
	backend storage.Store
	clk     clock.Clock
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewPersistence creates a persistence gateway over the given backend
func NewPersistence(store *Store, backend storage.Store, clk clock.Clock, m *metrics.Metrics, logger *slog.Logger) *Persistence {
	return &Persistence{
		store:   store,
		backend: backend,
		clk:     clk,
		metrics: m,
		logger:  logger,
	}
}

// Load rebuilds the store from the persisted snapshot. An unreadable snapshot
// starts the store empty rather than failing startup; individually corrupt
// entries were already skipped by the backend. If any surviving entry needed
// migration, the snapshot is immediately re-saved with the current version
// stamped.
func (p *Persistence) Load(ctx context.Context) {
	players, migrated, err := p.backend.Load(ctx)
	if err != nil {
		p.logger.Warn("failed to load player data, starting empty",
			slog.String("error", err.Error()))
		return
	}

	loaded := 0
	for i := range players {
		rec, err := players[i].Restore()
		if err != nil {
			p.logger.Warn("skipping corrupt player entry",
				slog.String("uuid", players[i].UUID),
				slog.String("error", err.Error()))
			continue
		}
		p.store.RestoreRecord(rec)
		loaded++
	}

	p.logger.Info("loaded player data", slog.Int("players", loaded))

	if migrated {
		p.Save(ctx)
		p.logger.Info("migrated player records to current format",
			slog.Int("version", model.CurrentSnapshotVersion))
	}
}

// Save persists the current store state. Open sessions are folded into the
// stored playtime at conversion time; the sessions themselves stay open in
// the store. Failures are logged and the previous on-disk state is kept.
func (p *Persistence) Save(ctx context.Context) error {
	p.metrics.SnapshotSaves.Inc()

	now := p.clk.Now()
	snapshot := p.store.Snapshot()

	players := make([]model.PersistedPlayer, 0, len(snapshot))
	for i := range snapshot {
		players = append(players, model.PersistPlayer(&snapshot[i], now))
	}

	if err := p.backend.Save(ctx, players); err != nil {
		p.metrics.SnapshotFailures.Inc()
		p.logger.Warn("failed to save player data", slog.String("error", err.Error()))
		return err
	}

	p.logger.Debug("saved player data", slog.Int("players", len(players)))
	return nil
}
