package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hytaletravelers/playerstats/internal/config"
	"github.com/hytaletravelers/playerstats/internal/dependencies/clock"
	"github.com/hytaletravelers/playerstats/internal/dispatch"
	"github.com/hytaletravelers/playerstats/internal/metrics"
	"github.com/hytaletravelers/playerstats/internal/stats"
)

const (
	statsPageBase = "https://hytaletravelers.com/stats/"
	brandingName  = "Powered by PlayerStats"
	brandingURL   = "https://www.curseforge.com/hytale/mods/player-logger"

	// queueSize bounds pending messages; the event path never blocks on
	// delivery, so overflow drops the message instead
	queueSize = 64
)

// Dispatcher delivers event-triggered and daily-scheduled webhook messages.
// Messages are enqueued and posted by a single worker goroutine so calling
// event paths never block on network I/O. A failed message is logged and
// never blocks subsequent messages.
type Dispatcher struct {
	store   *stats.Store
	clk     clock.Clock
	client  *http.Client
	logger  *slog.Logger
	metrics *metrics.Metrics
	cfg     config.Config

	serverName string
	queue      chan Message
	stopCh     chan struct{}
	doneCh     chan struct{}
}

// NewDispatcher creates a webhook dispatcher from config
func NewDispatcher(store *stats.Store, clk clock.Clock, cfg config.Config, m *metrics.Metrics, logger *slog.Logger) *Dispatcher {
	serverName := cfg.ServerName
	if serverName == "" {
		serverName = "Server"
	}

	return &Dispatcher{
		store:      store,
		clk:        clk,
		client:     &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
		metrics:    m,
		cfg:        cfg,
		serverName: serverName,
		queue:      make(chan Message, queueSize),
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// Enabled reports whether any delivery can happen at all
func (d *Dispatcher) Enabled() bool {
	return d.cfg.WebhookEnabled && d.cfg.WebhookURL != ""
}

// Start launches the delivery worker. A disabled dispatcher starts nothing.
func (d *Dispatcher) Start() {
	if !d.Enabled() {
		close(d.doneCh)
		return
	}

	d.logger.Info("webhook notifications enabled")
	go d.deliverLoop()
}

// Stop drains the worker, allowing the given grace period for an in-flight
// delivery to finish.
func (d *Dispatcher) Stop(grace time.Duration) {
	close(d.stopCh)
	select {
	case <-d.doneCh:
	case <-time.After(grace):
	}
}

func (d *Dispatcher) deliverLoop() {
	defer close(d.doneCh)
	for {
		select {
		case <-d.stopCh:
			d.drainQueue()
			return
		case msg := <-d.queue:
			d.deliver(msg)
		}
	}
}

// drainQueue attempts delivery of anything still queued at shutdown.
// Stop's grace period bounds how long this gets to run.
func (d *Dispatcher) drainQueue() {
	for {
		select {
		case msg := <-d.queue:
			d.deliver(msg)
		default:
			return
		}
	}
}

func (d *Dispatcher) deliver(msg Message) {
	if err := d.post(context.Background(), msg); err != nil {
		d.metrics.WebhookFailures.Inc()
		d.logger.Warn("failed to send webhook", slog.String("error", err.Error()))
		return
	}
	d.metrics.WebhookDeliveries.Inc()
}

// enqueue submits a message for async delivery without ever blocking
func (d *Dispatcher) enqueue(msg Message) {
	select {
	case d.queue <- msg:
	default:
		d.metrics.WebhookDropped.Inc()
		d.logger.Warn("webhook queue full, dropping message")
	}
}

// DigestLoop returns the daily digest schedule driver, or nil when the
// digest (or the whole dispatcher) is disabled.
func (d *Dispatcher) DigestLoop() *dispatch.Loop {
	if !d.Enabled() || !d.cfg.WebhookDailyLeaderboard {
		return nil
	}

	now := d.clk.Now()
	next := dispatch.NextDailyRun(now, d.cfg.WebhookDailyLeaderboardHour)
	d.logger.Info("daily leaderboard scheduled",
		slog.Int("hour", d.cfg.WebhookDailyLeaderboardHour),
		slog.Time("next", next))

	return dispatch.NewLoop("digest", next.Sub(now), 24*time.Hour, d.SendDailyDigest, d.logger)
}

// OnPlayerJoin sends a join notification if that event type is enabled
func (d *Dispatcher) OnPlayerJoin(username string) {
	if !d.Enabled() || !d.cfg.WebhookPlayerJoin {
		return
	}
	d.enqueue(Message{Embeds: []Embed{d.embed(username+" Joined", ColorGreen)}})
}

// OnPlayerLeave sends a leave notification carrying the closed session length
func (d *Dispatcher) OnPlayerLeave(username, sessionTime string) {
	if !d.Enabled() || !d.cfg.WebhookPlayerLeave {
		return
	}
	e := d.embed(username+" Left", ColorOrange)
	if sessionTime != "" {
		e.Description = "Session: " + sessionTime
	}
	d.enqueue(Message{Embeds: []Embed{e}})
}

// OnPlayerDeath sends a death notification with an optional cause
func (d *Dispatcher) OnPlayerDeath(username, cause string) {
	if !d.Enabled() || !d.cfg.WebhookPlayerDeath {
		return
	}
	e := d.embed(username+" Died", ColorRed)
	if cause != "" {
		e.Description = "Cause: " + cause
	}
	d.enqueue(Message{Embeds: []Embed{e}})
}

// OnPlayerKill sends a notification for a PvP kill
func (d *Dispatcher) OnPlayerKill(killer, victim string) {
	if !d.Enabled() || !d.cfg.WebhookPlayerKill {
		return
	}
	d.enqueue(Message{Embeds: []Embed{d.embed(killer+" killed "+victim, ColorPurple)}})
}

// SendDailyDigest builds and enqueues the daily leaderboard summary.
// An empty store sends nothing.
func (d *Dispatcher) SendDailyDigest(_ context.Context) {
	if !d.Enabled() || !d.cfg.WebhookDailyLeaderboard {
		return
	}

	snapshot := d.store.Snapshot()
	if len(snapshot) == 0 {
		return
	}

	now := d.clk.Now()
	e := d.embed("Daily Leaderboard", ColorBlue)
	e.Description = BuildDigestDescription(snapshot, now)
	e.Fields = []Field{
		{Name: "Total Players", Value: strconv.Itoa(len(snapshot)), Inline: true},
		{Name: "Online Now", Value: strconv.Itoa(d.store.OnlineCount()), Inline: true},
	}
	d.enqueue(Message{Embeds: []Embed{e}})
}

// embed builds the common embed scaffolding: title, stats-page link,
// timestamp, footer and optional branding.
func (d *Dispatcher) embed(title string, color int) Embed {
	e := Embed{
		Title:     title,
		URL:       statsPageBase + strings.ReplaceAll(d.serverName, " ", "%20"),
		Color:     color,
		Timestamp: d.clk.Now().UTC().Format(time.RFC3339),
		Footer:    &Footer{Text: d.serverName},
	}
	if d.cfg.WebhookShowBranding {
		e.Author = &Author{Name: brandingName, URL: brandingURL}
	}
	return e
}

func (d *Dispatcher) post(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encoding webhook message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending webhook request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook rejected with status %d", resp.StatusCode)
	}
	return nil
}
