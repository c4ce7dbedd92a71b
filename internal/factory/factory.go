package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/hytaletravelers/playerstats/internal/config"
	"github.com/hytaletravelers/playerstats/internal/dependencies/clock"
	"github.com/hytaletravelers/playerstats/internal/dispatch"
	"github.com/hytaletravelers/playerstats/internal/events"
	"github.com/hytaletravelers/playerstats/internal/metrics"
	"github.com/hytaletravelers/playerstats/internal/push"
	"github.com/hytaletravelers/playerstats/internal/stats"
	"github.com/hytaletravelers/playerstats/internal/storage"
	"github.com/hytaletravelers/playerstats/internal/storage/file"
	"github.com/hytaletravelers/playerstats/internal/storage/memory"
	redisstorage "github.com/hytaletravelers/playerstats/internal/storage/redis"
	"github.com/hytaletravelers/playerstats/internal/tracker"
	"github.com/hytaletravelers/playerstats/internal/webhook"
)

// Storage type constants
const (
	StorageTypeFile   = "file"
	StorageTypeRedis  = "redis"
	StorageTypeMemory = "memory"
)

const shutdownGrace = 5 * time.Second

// App contains all wired application components
type App struct {
	Config config.Config

	// Persistence
	Backend     storage.Store
	Store       *stats.Store
	Persistence *stats.Persistence

	// External dependencies
	Clock clock.Clock

	// Event pipeline
	Bus     *events.Bus
	Tracker *tracker.Tracker

	// Dispatchers
	Push    *push.Dispatcher
	Webhook *webhook.Dispatcher

	Metrics *metrics.Metrics
	Logger  *slog.Logger

	pushLoop   *dispatch.Loop
	digestLoop *dispatch.Loop
}

// New creates a new application with all dependencies wired
func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var backend storage.Store
	switch cfg.StorageType {
	case "", StorageTypeFile:
		backend = file.New(cfg.DataFile, logger)
	case StorageTypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		redisBackend, err := redisstorage.New(redisCfg, logger)
		if err != nil {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		backend = redisBackend
	case StorageTypeMemory:
		backend = memory.New()
	default:
		return nil, errors.New("invalid STORAGE_TYPE: must be 'file', 'redis' or 'memory'")
	}

	return newWithDependencies(backend, clock.New(), cfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(backend storage.Store, clk clock.Clock, cfg config.Config, logger *slog.Logger) *App {
	m := metrics.New()

	store := stats.NewStore(clk)
	persistence := stats.NewPersistence(store, backend, clk, m, logger)

	webhookDispatcher := webhook.NewDispatcher(store, clk, cfg, m, logger)
	pushDispatcher := push.NewDispatcher(store, clk, cfg, m, logger)

	bus := events.NewBus()
	trk := tracker.New(store, persistence, webhookDispatcher, clk, m, logger)
	trk.Register(bus)

	return &App{
		Config:      cfg,
		Backend:     backend,
		Store:       store,
		Persistence: persistence,
		Clock:       clk,
		Bus:         bus,
		Tracker:     trk,
		Push:        pushDispatcher,
		Webhook:     webhookDispatcher,
		Metrics:     m,
		Logger:      logger,
	}
}

// Start loads persisted player data and begins the background dispatchers
func (a *App) Start(ctx context.Context) error {
	a.Persistence.Load(ctx)

	a.Webhook.Start()

	if a.Config.PushEnabled {
		a.pushLoop = a.Push.Loop()
		if a.pushLoop != nil {
			a.pushLoop.Start()
		}
	}

	a.digestLoop = a.Webhook.DigestLoop()
	if a.digestLoop != nil {
		a.digestLoop.Start()
	}

	return nil
}

// Shutdown stops the background dispatchers and saves a final snapshot.
// Open sessions are folded into the saved playtime without being closed,
// so an in-flight restart does not zero anyone's session.
func (a *App) Shutdown(ctx context.Context) error {
	if a.pushLoop != nil {
		a.pushLoop.Stop(shutdownGrace)
	}
	if a.digestLoop != nil {
		a.digestLoop.Stop(shutdownGrace)
	}
	a.Webhook.Stop(shutdownGrace)

	var errs []error
	if err := a.Persistence.Save(ctx); err != nil {
		errs = append(errs, fmt.Errorf("final save: %w", err))
	}
	if err := a.Backend.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing storage: %w", err))
	}
	return errors.Join(errs...)
}
