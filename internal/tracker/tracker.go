package tracker

import (
	"context"
	"log/slog"

	"github.com/hytaletravelers/playerstats/internal/dependencies/clock"
	"github.com/hytaletravelers/playerstats/internal/events"
	"github.com/hytaletravelers/playerstats/internal/metrics"
	"github.com/hytaletravelers/playerstats/internal/model"
	"github.com/hytaletravelers/playerstats/internal/stats"
)

// Notifier receives event-driven notification triggers
type Notifier interface {
	OnPlayerJoin(username string)
	OnPlayerLeave(username, sessionTime string)
	OnPlayerDeath(username, cause string)
	OnPlayerKill(killer, victim string)
}

// Persister saves the store state at tracking checkpoints
type Persister interface {
	Save(ctx context.Context) error
}

// Tracker translates host game events into stat store mutations and
// notification triggers. Errors in persistence or notification never
// propagate back into the event path.
type Tracker struct {
	store       *stats.Store
	persistence Persister
	notifier    Notifier
	clk         clock.Clock
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

// New creates a tracker over the given collaborators
func New(store *stats.Store, persistence Persister, notifier Notifier, clk clock.Clock, m *metrics.Metrics, logger *slog.Logger) *Tracker {
	return &Tracker{
		store:       store,
		persistence: persistence,
		notifier:    notifier,
		clk:         clk,
		metrics:     m,
		logger:      logger,
	}
}

// Register subscribes the tracker's handlers to the event source
func (t *Tracker) Register(src events.Source) {
	src.Subscribe(model.EventPlayerConnect, t.handleConnect)
	src.Subscribe(model.EventPlayerDisconnect, t.handleDisconnect)
	src.Subscribe(model.EventDamage, t.handleDamage)
	src.Subscribe(model.EventDeath, t.handleDeath)
	src.Subscribe(model.EventBlockPlace, t.handleBlockPlace)
	src.Subscribe(model.EventBlockBreak, t.handleBlockBreak)
	t.logger.Info("player tracking enabled")
}

func (t *Tracker) handleConnect(e model.GameEvent) {
	t.metrics.EventsProcessed.WithLabelValues(string(e.Type)).Inc()

	rec := t.store.Connect(e.PlayerID, e.Username)
	t.logger.Info("player joined",
		slog.String("player", rec.Username),
		slog.String("total", rec.FormattedPlaytime(t.clk.Now())))

	t.notifier.OnPlayerJoin(rec.Username)
}

func (t *Tracker) handleDisconnect(e model.GameEvent) {
	t.metrics.EventsProcessed.WithLabelValues(string(e.Type)).Inc()

	rec, ok := t.store.Get(e.PlayerID)
	if !ok {
		return
	}

	sessionTime := rec.FormattedSessionTime(t.clk.Now())
	if _, closed := t.store.Disconnect(e.PlayerID); !closed {
		return
	}

	rec, _ = t.store.Get(e.PlayerID)
	t.logger.Info("player left",
		slog.String("player", rec.Username),
		slog.String("total", rec.FormattedPlaytime(t.clk.Now())))

	_ = t.persistence.Save(context.Background())
	t.notifier.OnPlayerLeave(rec.Username, sessionTime)
}

// handleDamage accumulates damage for the attacker and detects kills:
// the hit is lethal when the amount covers the victim's remaining health.
func (t *Tracker) handleDamage(e model.GameEvent) {
	t.metrics.EventsProcessed.WithLabelValues(string(e.Type)).Inc()

	payload, ok := e.Payload.(model.DamagePayload)
	if !ok {
		return
	}

	var killedPlayer bool
	var attacker string
	tracked := t.store.Mutate(e.PlayerID, func(r *model.StatRecord) {
		r.DamageDealt += payload.Amount

		if payload.Amount >= payload.VictimHealth {
			if payload.VictimIsPlayer {
				r.PlayerKills++
				killedPlayer = true
			} else {
				r.MobKills++
			}
		}
		attacker = r.Username
	})
	if !tracked {
		return
	}

	if killedPlayer && payload.VictimName != "" {
		t.notifier.OnPlayerKill(attacker, payload.VictimName)
	}
}

// handleDeath fires on the victim side, independently of kill detection on
// the attacker side; no correlation between the two is attempted.
func (t *Tracker) handleDeath(e model.GameEvent) {
	t.metrics.EventsProcessed.WithLabelValues(string(e.Type)).Inc()

	var username string
	var deaths int
	if !t.store.Mutate(e.PlayerID, func(r *model.StatRecord) {
		r.DeathCount++
		username = r.Username
		deaths = r.DeathCount
	}) {
		// Not a tracked player
		return
	}

	t.logger.Info("player died",
		slog.String("player", username),
		slog.Int("deaths", deaths))
	t.notifier.OnPlayerDeath(username, "")
}

func (t *Tracker) handleBlockPlace(e model.GameEvent) {
	t.metrics.EventsProcessed.WithLabelValues(string(e.Type)).Inc()
	t.store.Mutate(e.PlayerID, func(r *model.StatRecord) {
		r.BlocksPlaced++
	})
}

func (t *Tracker) handleBlockBreak(e model.GameEvent) {
	t.metrics.EventsProcessed.WithLabelValues(string(e.Type)).Inc()
	t.store.Mutate(e.PlayerID, func(r *model.StatRecord) {
		r.BlocksBroken++
	})
}
