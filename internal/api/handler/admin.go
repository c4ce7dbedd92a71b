package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hytaletravelers/playerstats/internal/api/request"
	"github.com/hytaletravelers/playerstats/internal/api/response"
	"github.com/hytaletravelers/playerstats/internal/model"
	"github.com/hytaletravelers/playerstats/internal/stats"
)

// Saver persists the store state after an admin mutation
type Saver interface {
	Save(ctx context.Context) error
}

// AdminHandler handles the administrative stat management endpoints
type AdminHandler struct {
	store       *stats.Store
	persistence Saver
	logger      *slog.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(store *stats.Store, persistence Saver, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		store:       store,
		persistence: persistence,
		logger:      logger,
	}
}

// RemovePlayer handles DELETE /admin/players/{name}
func (h *AdminHandler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	rec, ok := h.store.GetByUsername(name)
	if !ok {
		WriteError(w, model.ErrPlayerNotFound)
		return
	}

	h.store.Remove(rec.ID)
	h.save(r.Context())

	h.logger.Info("player removed",
		slog.String("player", rec.Username),
		slog.String("uuid", string(rec.ID)))

	response.NoContent(w)
}

// ResetPlayer handles POST /admin/players/{name}/reset
func (h *AdminHandler) ResetPlayer(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	category, err := decodeCategory(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	rec, ok := h.store.GetByUsername(name)
	if !ok {
		WriteError(w, model.ErrPlayerNotFound)
		return
	}

	if err := h.store.ResetOne(rec.ID, category); err != nil {
		WriteError(w, err)
		return
	}
	h.save(r.Context())

	h.logger.Info("player stats reset",
		slog.String("player", rec.Username),
		slog.String("category", string(category)))

	response.JSON(w, http.StatusOK, response.ResetResult{
		PlayersReset: 1,
		Category:     string(category),
	})
}

// ResetAll handles POST /admin/reset
func (h *AdminHandler) ResetAll(w http.ResponseWriter, r *http.Request) {
	category, err := decodeCategory(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	count, err := h.store.ResetAll(category)
	if err != nil {
		WriteError(w, err)
		return
	}
	h.save(r.Context())

	h.logger.Info("all player stats reset",
		slog.Int("players", count),
		slog.String("category", string(category)))

	response.JSON(w, http.StatusOK, response.ResetResult{
		PlayersReset: count,
		Category:     string(category),
	})
}

// Wipe handles POST /admin/wipe
func (h *AdminHandler) Wipe(w http.ResponseWriter, r *http.Request) {
	count := h.store.WipeAll()
	h.save(r.Context())

	h.logger.Info("all player records wiped", slog.Int("players", count))

	response.JSON(w, http.StatusOK, response.WipeResult{PlayersRemoved: count})
}

// ListCategories handles GET /admin/categories
func (h *AdminHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories := model.Categories()
	out := make([]response.CategoryEntry, 0, len(categories))
	for _, c := range categories {
		out = append(out, response.CategoryEntry{
			Name:        string(c),
			Description: c.Description(),
		})
	}
	response.JSON(w, http.StatusOK, out)
}

// decodeCategory reads the reset request body; an absent body or empty
// category means a full reset.
func decodeCategory(r *http.Request) (model.Category, error) {
	var req request.ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return "", NewInvalidRequestError("invalid request body")
	}

	if req.Category == "" {
		return model.CategoryAll, nil
	}
	return model.ParseCategory(req.Category)
}

func (h *AdminHandler) save(ctx context.Context) {
	if err := h.persistence.Save(ctx); err != nil {
		h.logger.Error("failed to save player data", slog.Any("error", err))
	}
}
