package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hytaletravelers/playerstats/internal/api/apierr"
	"github.com/hytaletravelers/playerstats/internal/api/handler"
	"github.com/hytaletravelers/playerstats/internal/dependencies/clock"
	"github.com/hytaletravelers/playerstats/internal/middleware"
	"github.com/hytaletravelers/playerstats/internal/stats"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger      *slog.Logger
	Store       *stats.Store
	Persistence handler.Saver
	Publisher   handler.Publisher
	Clock       clock.Clock
	Metrics     http.Handler
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	statsHandler := handler.NewStatsHandler(cfg.Store, cfg.Clock)
	ingestHandler := handler.NewIngestHandler(cfg.Publisher, cfg.Clock)
	adminHandler := handler.NewAdminHandler(cfg.Store, cfg.Persistence, cfg.Logger)

	r.Use(middleware.Recovery(cfg.Logger, panicHandler))
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.CORS())

	r.NotFoundHandler = applyCORS(http.HandlerFunc(notFoundHandler))
	r.MethodNotAllowedHandler = applyCORS(http.HandlerFunc(methodNotAllowedHandler))

	// Public read endpoints
	r.HandleFunc("/api/players", statsHandler.ListPlayers).Methods(http.MethodGet)
	r.HandleFunc("/api/stats", statsHandler.GetStats).Methods(http.MethodGet)

	// Host event ingestion
	r.HandleFunc("/ingest/events", ingestHandler.Ingest).Methods(http.MethodPost)

	// Administrative endpoints
	admin := r.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/players/{name}", adminHandler.RemovePlayer).Methods(http.MethodDelete)
	admin.HandleFunc("/players/{name}/reset", adminHandler.ResetPlayer).Methods(http.MethodPost)
	admin.HandleFunc("/reset", adminHandler.ResetAll).Methods(http.MethodPost)
	admin.HandleFunc("/wipe", adminHandler.Wipe).Methods(http.MethodPost)
	admin.HandleFunc("/categories", adminHandler.ListCategories).Methods(http.MethodGet)

	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics).Methods(http.MethodGet)
	}

	return r
}

// applyCORS wraps mux's special handlers, which bypass router middleware
func applyCORS(next http.Handler) http.Handler {
	return middleware.CORS()(next)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(`{"error":"Not found"}`))
}

func methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	apierr.WriteMethodNotAllowed(w)
}

func panicHandler(w http.ResponseWriter, r *http.Request, err any) {
	apierr.WriteError(w, apierr.NewInternalError())
}
