package handler

import (
	"net/http"

	"github.com/hytaletravelers/playerstats/internal/api/response"
	"github.com/hytaletravelers/playerstats/internal/dependencies/clock"
	"github.com/hytaletravelers/playerstats/internal/stats"
)

// StatsHandler handles the public read-only stats endpoints
type StatsHandler struct {
	store *stats.Store
	clk   clock.Clock
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(store *stats.Store, clk clock.Clock) *StatsHandler {
	return &StatsHandler{
		store: store,
		clk:   clk,
	}
}

// ListPlayers handles GET /api/players
func (h *StatsHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	snapshot := h.store.Snapshot()
	response.JSON(w, http.StatusOK, response.PlayerList(snapshot, h.clk.Now()))
}

// GetStats handles GET /api/stats
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	snapshot := h.store.Snapshot()
	response.JSON(w, http.StatusOK, response.AggregateOf(snapshot, h.clk.Now()))
}
