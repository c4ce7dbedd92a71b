package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"

	"github.com/hytaletravelers/playerstats/internal/model"
	"github.com/hytaletravelers/playerstats/internal/storage"
)

// Store is a Redis-backed snapshot store. The full player list is kept as a
// single JSON value so loads and saves stay atomic from Redis's point of view.
type Store struct {
	client *redis.Client
	cfg    Config
	logger *slog.Logger
}

// New creates a Redis snapshot store, retrying the initial ping with
// exponential backoff so a slow-starting Redis does not fail startup.
func New(cfg Config, logger *slog.Logger) (*Store, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	ping := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return client.Ping(ctx).Err()
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), cfg.ConnectRetries)
	if err := backoff.Retry(ping, policy); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return &Store{
		client: client,
		cfg:    cfg,
		logger: logger,
	}, nil
}

// NewWithClient creates a Redis store around an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config, logger *slog.Logger) *Store {
	return &Store{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// Ensure Store implements the interface
var _ storage.Store = (*Store)(nil)

// Load reads the snapshot value. A missing key is an empty snapshot.
func (s *Store) Load(ctx context.Context) ([]model.PersistedPlayer, bool, error) {
	data, err := s.client.Get(ctx, s.cfg.Key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading snapshot key: %w", err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, false, fmt.Errorf("parsing snapshot value: %w", err)
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

// Save writes the full snapshot value
func (s *Store) Save(ctx context.Context, players []model.PersistedPlayer) error {
	data, err := json.Marshal(players)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := s.client.Set(ctx, s.cfg.Key, data, 0).Err(); err != nil {
		return fmt.Errorf("writing snapshot key: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}
