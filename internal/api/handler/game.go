package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/jc-27901/reversed-minesweeper/internal/api/request"
	"github.com/jc-27901/reversed-minesweeper/internal/api/response"
	"github.com/jc-27901/reversed-minesweeper/internal/model"
	"github.com/jc-27901/reversed-minesweeper/internal/services/game"
	"github.com/jc-27901/reversed-minesweeper/internal/sse"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	controller *game.Controller
	hubManager *sse.HubManager
	defaults   model.GameConfig
}

// NewGameHandler creates a new game handler. Creation requests fall
// back to the given defaults for any parameter they omit.
func NewGameHandler(controller *game.Controller, hubManager *sse.HubManager, defaults model.GameConfig) *GameHandler {
	return &GameHandler{
		controller: controller,
		hubManager: hubManager,
		defaults:   defaults,
	}
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, NewInvalidRequestError("Invalid JSON body"))
		return
	}

	cfg := h.defaults
	if req.BoardSize != 0 {
		cfg.BoardSize = req.BoardSize
	}
	if req.BombCount != 0 {
		cfg.BombCount = req.BombCount
	}
	if req.PieceCount != 0 {
		cfg.PieceCount = req.PieceCount
	}
	if req.DetonationIntervalMS != 0 {
		cfg.DetonationInterval = time.Duration(req.DetonationIntervalMS) * time.Millisecond
	}

	snap, err := h.controller.CreateGame(r.Context(), cfg, req.Seed)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameStateFromSnapshot(snap))
}

// List handles GET /api/v1/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.controller.ListGames(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	result := make([]response.GameSummary, 0, len(summaries))
	for _, s := range summaries {
		result = append(result, response.GameSummaryFromModel(s))
	}
	response.JSON(w, http.StatusOK, result)
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	snap, err := h.controller.GetSnapshot(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameStateFromSnapshot(snap))
}

// Place handles POST /api/v1/games/{id}/place
func (h *GameHandler) Place(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	var req request.PlacePieceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid JSON body"))
		return
	}
	if req.PieceID == "" {
		WriteError(w, NewInvalidRequestError("piece_id is required"))
		return
	}

	target := model.Position{X: req.X, Y: req.Y}
	if err := h.controller.PlacePiece(r.Context(), id, model.PieceID(req.PieceID), target); err != nil {
		WriteError(w, err)
		return
	}

	snap, err := h.controller.GetSnapshot(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlaceResult{
		Accepted: true,
		Game:     response.GameStateFromSnapshot(snap),
	})
}

// Teardown handles DELETE /api/v1/games/{id}
func (h *GameHandler) Teardown(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	if err := h.controller.TeardownGame(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Events handles GET /api/v1/games/{id}/events (SSE stream)
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	// Verify the game exists before holding a stream open
	if _, err := h.controller.GetSnapshot(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	hub := h.hubManager.GetOrCreateHub(id)
	sse.ServeSSE(w, r, hub)
}
