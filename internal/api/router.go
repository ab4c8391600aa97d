package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jc-27901/reversed-minesweeper/internal/api/handler"
	apimiddleware "github.com/jc-27901/reversed-minesweeper/internal/api/middleware"
	"github.com/jc-27901/reversed-minesweeper/internal/middleware"
	"github.com/jc-27901/reversed-minesweeper/internal/model"
	"github.com/jc-27901/reversed-minesweeper/internal/services/game"
	"github.com/jc-27901/reversed-minesweeper/internal/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController *game.Controller
	HubManager     *sse.HubManager

	// GameDefaults seeds game creation requests that omit parameters.
	// The zero value falls back to the built-in defaults.
	GameDefaults model.GameConfig
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	defaults := cfg.GameDefaults
	if defaults == (model.GameConfig{}) {
		defaults = model.DefaultGameConfig()
	}

	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.HubManager, defaults)

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Game routes
	api.HandleFunc("/games", gameHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/games", gameHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", gameHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", gameHandler.Teardown).Methods(http.MethodDelete)
	api.HandleFunc("/games/{id}/place", gameHandler.Place).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/events", gameHandler.Events).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
