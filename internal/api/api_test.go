package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/hytaletravelers/playerstats/internal/dependencies/mocks"
	"github.com/hytaletravelers/playerstats/internal/events"
	"github.com/hytaletravelers/playerstats/internal/metrics"
	"github.com/hytaletravelers/playerstats/internal/model"
	"github.com/hytaletravelers/playerstats/internal/stats"
	"github.com/hytaletravelers/playerstats/internal/storage/memory"
	"github.com/hytaletravelers/playerstats/internal/tracker"
)

const (
	aliceUUID = "2f5a1b7c-0000-4000-8000-000000000001"
	bobUUID   = "2f5a1b7c-0000-4000-8000-000000000002"
)

// noopNotifier satisfies the tracker without any delivery
type noopNotifier struct{}

func (noopNotifier) OnPlayerJoin(string)          {}
func (noopNotifier) OnPlayerLeave(string, string) {}
func (noopNotifier) OnPlayerDeath(string, string) {}
func (noopNotifier) OnPlayerKill(string, string)  {}

type APISuite struct {
	suite.Suite
	clock  *mocks.MockClock
	store  *stats.Store
	server *httptest.Server
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	s.store = stats.NewStore(s.clock)

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	m := metrics.New()
	persistence := stats.NewPersistence(s.store, memory.New(), s.clock, m, logger)

	bus := events.NewBus()
	trk := tracker.New(s.store, persistence, noopNotifier{}, s.clock, m, logger)
	trk.Register(bus)

	router := NewRouter(RouterConfig{
		Logger:      logger,
		Store:       s.store,
		Persistence: persistence,
		Publisher:   bus,
		Clock:       s.clock,
		Metrics:     m.Handler(),
	})
	s.server = httptest.NewServer(router)
}

func (s *APISuite) TearDownTest() {
	s.server.Close()
}

func (s *APISuite) request(method, path string, body any) *http.Response {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, s.server.URL+path, reader)
	s.Require().NoError(err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.server.Client().Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *APISuite) decode(resp *http.Response, out any) {
	defer resp.Body.Close()
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(out))
}

func (s *APISuite) seedPlayer(uuid, name string, mutate func(*model.StatRecord)) {
	s.store.GetOrCreate(model.PlayerID(uuid), name)
	if mutate != nil {
		s.store.Mutate(model.PlayerID(uuid), mutate)
	}
}

func (s *APISuite) TestHealth() {
	resp := s.request(http.MethodGet, "/health", nil)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	s.JSONEq(`{"status":"ok"}`, string(body))
}

func (s *APISuite) TestListPlayersEmpty() {
	resp := s.request(http.MethodGet, "/api/players", nil)

	s.Equal(http.StatusOK, resp.StatusCode)
	var players []map[string]any
	s.decode(resp, &players)
	s.Empty(players)
}

func (s *APISuite) TestListPlayersSortedByPlaytime() {
	s.seedPlayer(aliceUUID, "alice", func(r *model.StatRecord) {
		r.CumulativePlaytimeSeconds = 100
	})
	s.seedPlayer(bobUUID, "bob", func(r *model.StatRecord) {
		r.CumulativePlaytimeSeconds = 200
	})

	resp := s.request(http.MethodGet, "/api/players", nil)

	var players []struct {
		UUID              string `json:"uuid"`
		Username          string `json:"username"`
		PlaytimeSeconds   int64  `json:"playtimeSeconds"`
		PlaytimeFormatted string `json:"playtimeFormatted"`
		Online            bool   `json:"online"`
	}
	s.decode(resp, &players)

	s.Require().Len(players, 2)
	s.Equal("bob", players[0].Username)
	s.Equal("alice", players[1].Username)
	s.Equal(int64(200), players[0].PlaytimeSeconds)
	s.Equal("0h 3m 20s", players[0].PlaytimeFormatted)
	s.False(players[0].Online)
}

func (s *APISuite) TestStatsSumsPlayers() {
	s.seedPlayer(aliceUUID, "alice", func(r *model.StatRecord) {
		r.PlayerKills = 2
		r.DeathCount = 1
		r.CumulativePlaytimeSeconds = 50
	})
	s.seedPlayer(bobUUID, "bob", func(r *model.StatRecord) {
		r.PlayerKills = 3
		r.MobKills = 4
		r.CumulativePlaytimeSeconds = 70
	})

	resp := s.request(http.MethodGet, "/api/stats", nil)

	var agg struct {
		TotalPlayers         int   `json:"totalPlayers"`
		OnlinePlayers        int   `json:"onlinePlayers"`
		TotalPlaytimeSeconds int64 `json:"totalPlaytimeSeconds"`
		TotalPlayerKills     int   `json:"totalPlayerKills"`
		TotalMobKills        int   `json:"totalMobKills"`
		TotalDeaths          int   `json:"totalDeaths"`
	}
	s.decode(resp, &agg)

	s.Equal(2, agg.TotalPlayers)
	s.Equal(0, agg.OnlinePlayers)
	s.Equal(int64(120), agg.TotalPlaytimeSeconds)
	s.Equal(5, agg.TotalPlayerKills)
	s.Equal(4, agg.TotalMobKills)
	s.Equal(1, agg.TotalDeaths)
}

func (s *APISuite) TestIngestConnectTracksPlayer() {
	resp := s.request(http.MethodPost, "/ingest/events", map[string]any{
		"type":     "player_connect",
		"uuid":     aliceUUID,
		"username": "alice",
	})
	resp.Body.Close()
	s.Equal(http.StatusAccepted, resp.StatusCode)

	rec, ok := s.store.Get(model.PlayerID(aliceUUID))
	s.Require().True(ok)
	s.True(rec.Online())
	s.Equal("alice", rec.Username)
}

func (s *APISuite) TestIngestDamageEvent() {
	s.request(http.MethodPost, "/ingest/events", map[string]any{
		"type":     "player_connect",
		"uuid":     aliceUUID,
		"username": "alice",
	}).Body.Close()

	resp := s.request(http.MethodPost, "/ingest/events", map[string]any{
		"type": "damage",
		"uuid": aliceUUID,
		"damage": map[string]any{
			"amount":         12.0,
			"victimHealth":   10.0,
			"victimIsPlayer": true,
			"victimName":     "bob",
		},
	})
	resp.Body.Close()
	s.Equal(http.StatusAccepted, resp.StatusCode)

	rec, _ := s.store.Get(model.PlayerID(aliceUUID))
	s.Equal(12.0, rec.DamageDealt)
	s.Equal(1, rec.PlayerKills)
}

func (s *APISuite) TestIngestRejectsUnknownType() {
	resp := s.request(http.MethodPost, "/ingest/events", map[string]any{
		"type": "teleport",
		"uuid": aliceUUID,
	})
	resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *APISuite) TestIngestRejectsBadUUID() {
	resp := s.request(http.MethodPost, "/ingest/events", map[string]any{
		"type": "player_connect",
		"uuid": "not-a-uuid",
	})
	resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *APISuite) TestIngestDamageRequiresDetails() {
	resp := s.request(http.MethodPost, "/ingest/events", map[string]any{
		"type": "damage",
		"uuid": aliceUUID,
	})
	resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *APISuite) TestRemovePlayer() {
	s.seedPlayer(aliceUUID, "alice", nil)

	resp := s.request(http.MethodDelete, "/admin/players/alice", nil)
	resp.Body.Close()
	s.Equal(http.StatusNoContent, resp.StatusCode)
	s.Zero(s.store.Count())

	// Second removal reports the player missing
	resp = s.request(http.MethodDelete, "/admin/players/alice", nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)

	var errResp struct {
		Error string `json:"error"`
	}
	s.decode(resp, &errResp)
	s.Equal("Player not found", errResp.Error)
}

func (s *APISuite) TestResetPlayerCategory() {
	s.seedPlayer(aliceUUID, "alice", func(r *model.StatRecord) {
		r.PlayerKills = 5
		r.BlocksPlaced = 3
	})

	resp := s.request(http.MethodPost, "/admin/players/alice/reset", map[string]string{
		"category": "combat",
	})

	s.Equal(http.StatusOK, resp.StatusCode)
	var result struct {
		PlayersReset int    `json:"playersReset"`
		Category     string `json:"category"`
	}
	s.decode(resp, &result)
	s.Equal(1, result.PlayersReset)
	s.Equal("COMBAT", result.Category)

	rec, _ := s.store.Get(model.PlayerID(aliceUUID))
	s.Zero(rec.PlayerKills)
	s.Equal(3, rec.BlocksPlaced)
}

func (s *APISuite) TestResetPlayerUnknownCategory() {
	s.seedPlayer(aliceUUID, "alice", nil)

	resp := s.request(http.MethodPost, "/admin/players/alice/reset", map[string]string{
		"category": "bogus",
	})
	resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *APISuite) TestResetAllDefaultsToAll() {
	s.seedPlayer(aliceUUID, "alice", func(r *model.StatRecord) { r.DeathCount = 2 })
	s.seedPlayer(bobUUID, "bob", func(r *model.StatRecord) { r.DeathCount = 4 })

	resp := s.request(http.MethodPost, "/admin/reset", nil)

	s.Equal(http.StatusOK, resp.StatusCode)
	var result struct {
		PlayersReset int    `json:"playersReset"`
		Category     string `json:"category"`
	}
	s.decode(resp, &result)
	s.Equal(2, result.PlayersReset)
	s.Equal("ALL", result.Category)

	for _, rec := range s.store.Snapshot() {
		s.Zero(rec.DeathCount)
	}
	s.Equal(2, s.store.Count())
}

func (s *APISuite) TestWipe() {
	s.seedPlayer(aliceUUID, "alice", nil)
	s.seedPlayer(bobUUID, "bob", nil)

	resp := s.request(http.MethodPost, "/admin/wipe", nil)

	s.Equal(http.StatusOK, resp.StatusCode)
	var result struct {
		PlayersRemoved int `json:"playersRemoved"`
	}
	s.decode(resp, &result)
	s.Equal(2, result.PlayersRemoved)
	s.Zero(s.store.Count())
}

func (s *APISuite) TestListCategories() {
	resp := s.request(http.MethodGet, "/admin/categories", nil)

	s.Equal(http.StatusOK, resp.StatusCode)
	var categories []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	s.decode(resp, &categories)

	s.Len(categories, 7)
	s.Equal("ALL", categories[0].Name)
	s.NotEmpty(categories[0].Description)
}

func (s *APISuite) TestMethodNotAllowedBody() {
	resp := s.request(http.MethodGet, "/admin/wipe", nil)
	defer resp.Body.Close()

	s.Equal(http.StatusMethodNotAllowed, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	s.Equal(`{"error":"Method not allowed"}`, string(body))
}

func (s *APISuite) TestUnknownPathIs404() {
	resp := s.request(http.MethodGet, "/nope", nil)
	defer resp.Body.Close()

	s.Equal(http.StatusNotFound, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	s.Equal(`{"error":"Not found"}`, string(body))
}

func (s *APISuite) TestCORSHeaderOnReads() {
	resp := s.request(http.MethodGet, "/api/players", nil)
	resp.Body.Close()

	s.Equal("*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func (s *APISuite) TestMetricsEndpoint() {
	resp := s.request(http.MethodGet, "/metrics", nil)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	s.Contains(string(body), "go_goroutines")
}
