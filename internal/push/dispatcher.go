package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hytaletravelers/playerstats/internal/api/response"
	"github.com/hytaletravelers/playerstats/internal/config"
	"github.com/hytaletravelers/playerstats/internal/dependencies/clock"
	"github.com/hytaletravelers/playerstats/internal/dispatch"
	"github.com/hytaletravelers/playerstats/internal/metrics"
	"github.com/hytaletravelers/playerstats/internal/model"
	"github.com/hytaletravelers/playerstats/internal/stats"
)

const (
	// warmupDelay is the fixed delay before the first push tick
	warmupDelay = 5 * time.Second

	// maxRedirects bounds how many redirect hops one tick will follow
	maxRedirects = 5

	userAgent = "playerstats/1.0"
)

// Payload is the remote sync body. Stats and player entries reuse the local
// API shapes.
type Payload struct {
	Stats       response.Aggregate     `json:"stats"`
	Players     []response.PlayerEntry `json:"players"`
	LastUpdated int64                  `json:"lastUpdated"`
	ServerName  string                 `json:"serverName,omitempty"`
	Public      bool                   `json:"publicListing"`
}

// Dispatcher periodically serializes a full snapshot and POSTs it to the
// configured endpoint. Each tick is independent: a failed tick is logged and
// abandoned, and the next attempt is the next scheduled tick.
type Dispatcher struct {
	store         *stats.Store
	clk           clock.Clock
	client        *http.Client
	logger        *slog.Logger
	metrics       *metrics.Metrics
	url           string
	interval      time.Duration
	serverName    string
	publicListing bool
}

// NewDispatcher creates a remote sync dispatcher from config
func NewDispatcher(store *stats.Store, clk clock.Clock, cfg config.Config, m *metrics.Metrics, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		store: store,
		clk:   clk,
		client: &http.Client{
			Timeout: 10 * time.Second,
			// Redirects are followed manually so the hop bound is enforced
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		logger:        logger,
		metrics:       m,
		url:           cfg.PushURL,
		interval:      time.Duration(cfg.PushIntervalSeconds) * time.Second,
		serverName:    cfg.ServerName,
		publicListing: cfg.PublicListing,
	}
}

// Loop returns the dispatcher's schedule driver, or nil when no destination
// URL is configured (logged once, never ticks).
func (d *Dispatcher) Loop() *dispatch.Loop {
	if d.url == "" {
		d.logger.Warn("push enabled but no push url configured, remote sync disabled")
		return nil
	}

	d.logger.Info("remote sync started",
		slog.String("url", d.url),
		slog.Duration("interval", d.interval))
	return dispatch.NewLoop("push", warmupDelay, d.interval, d.Tick, d.logger)
}

// BuildPayload assembles the aggregate payload from a store snapshot
func (d *Dispatcher) BuildPayload(snapshot []model.StatRecord, now time.Time) Payload {
	return Payload{
		Stats:       response.AggregateOf(snapshot, now),
		Players:     response.PlayerList(snapshot, now),
		LastUpdated: now.UnixMilli(),
		ServerName:  d.serverName,
		Public:      d.publicListing,
	}
}

// Tick runs one push attempt
func (d *Dispatcher) Tick(ctx context.Context) {
	d.metrics.PushTicks.Inc()

	now := d.clk.Now()
	payload := d.BuildPayload(d.store.Snapshot(), now)

	body, err := json.Marshal(payload)
	if err != nil {
		d.metrics.PushFailures.Inc()
		d.logger.Warn("failed to encode push payload", slog.String("error", err.Error()))
		return
	}

	if err := d.post(ctx, body); err != nil {
		d.metrics.PushFailures.Inc()
		d.logger.Warn("push failed", slog.String("error", err.Error()))
		return
	}

	d.logger.Debug("data pushed", slog.Int("players", len(payload.Players)))
}

// post sends the payload, following up to maxRedirects redirect hops
func (d *Dispatcher) post(ctx context.Context, body []byte) error {
	url := d.url
	for hop := 0; ; hop++ {
		if hop > maxRedirects {
			return fmt.Errorf("too many redirects (%d)", hop)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("building push request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", userAgent)

		resp, err := d.client.Do(req)
		if err != nil {
			return fmt.Errorf("sending push request: %w", err)
		}
		resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusMovedPermanently, http.StatusFound,
			http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
			loc := resp.Header.Get("Location")
			if loc == "" {
				return fmt.Errorf("redirect without location (status %d)", resp.StatusCode)
			}
			d.logger.Info("following redirect", slog.String("location", loc))
			url = loc
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("push rejected with status %d", resp.StatusCode)
		}
		return nil
	}
}
