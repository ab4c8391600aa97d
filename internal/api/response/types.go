package response

import (
	"time"

	"github.com/jc-27901/reversed-minesweeper/internal/model"
)

// Cell is the API representation of one board square
type Cell struct {
	HasBomb  bool `json:"has_bomb"`
	HasPiece bool `json:"has_piece"`
}

// Piece is the API representation of a movable piece
type Piece struct {
	ID string `json:"id"`
	X  int    `json:"x"`
	Y  int    `json:"y"`
}

// GameState is the full game snapshot returned to clients
type GameState struct {
	ID                   string    `json:"id"`
	BoardSize            int       `json:"board_size"`
	Cells                [][]Cell  `json:"cells"`
	Pieces               []Piece   `json:"pieces"`
	LiveBombs            int       `json:"live_bombs"`
	DiscoveredCount      int       `json:"discovered_count"`
	DetonatedCount       int       `json:"detonated_count"`
	Over                 bool      `json:"over"`
	DetonationIntervalMS int       `json:"detonation_interval_ms"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// GameStateFromSnapshot converts a model snapshot to the API shape
func GameStateFromSnapshot(snap *model.Snapshot) GameState {
	cells := make([][]Cell, snap.Board.Size)
	for y := 0; y < snap.Board.Size; y++ {
		cells[y] = make([]Cell, snap.Board.Size)
		for x := 0; x < snap.Board.Size; x++ {
			c := snap.Board.Cells[y][x]
			cells[y][x] = Cell{HasBomb: c.HasBomb, HasPiece: c.HasPiece}
		}
	}

	pieces := make([]Piece, 0, len(snap.Pieces))
	for _, p := range snap.Pieces {
		pieces = append(pieces, Piece{
			ID: string(p.ID),
			X:  p.Position.X,
			Y:  p.Position.Y,
		})
	}

	return GameState{
		ID:                   string(snap.ID),
		BoardSize:            snap.Board.Size,
		Cells:                cells,
		Pieces:               pieces,
		LiveBombs:            snap.LiveBombs,
		DiscoveredCount:      snap.DiscoveredCount,
		DetonatedCount:       snap.DetonatedCount,
		Over:                 snap.Over,
		DetonationIntervalMS: int(snap.Config.DetonationInterval.Milliseconds()),
		CreatedAt:            snap.CreatedAt,
		UpdatedAt:            snap.UpdatedAt,
	}
}

// GameSummary is the listing representation of a game
type GameSummary struct {
	ID              string    `json:"id"`
	BoardSize       int       `json:"board_size"`
	LiveBombs       int       `json:"live_bombs"`
	DiscoveredCount int       `json:"discovered_count"`
	DetonatedCount  int       `json:"detonated_count"`
	Over            bool      `json:"over"`
	CreatedAt       time.Time `json:"created_at"`
}

// GameSummaryFromModel converts a model summary to the API shape
func GameSummaryFromModel(s model.GameSummary) GameSummary {
	return GameSummary{
		ID:              string(s.ID),
		BoardSize:       s.BoardSize,
		LiveBombs:       s.LiveBombs,
		DiscoveredCount: s.DiscoveredCount,
		DetonatedCount:  s.DetonatedCount,
		Over:            s.Over,
		CreatedAt:       s.CreatedAt,
	}
}

// PlaceResult is the response for a placement request
type PlaceResult struct {
	Accepted bool      `json:"accepted"`
	Game     GameState `json:"game"`
}
