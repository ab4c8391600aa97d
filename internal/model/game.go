package model

import "time"

// GameID uniquely identifies a game
type GameID string

// Default configuration values
const (
	DefaultBoardSize          = 10
	DefaultBombCount          = 15
	DefaultPieceCount         = 20
	DefaultDetonationInterval = 10 * time.Second

	// MaxDensityPercent caps bomb+piece density so the rejection-sampling
	// initializer cannot spin for a pathological configuration.
	MaxDensityPercent = 90
)

// GameConfig holds the parameters for a new game
type GameConfig struct {
	BoardSize          int           `json:"board_size"`
	BombCount          int           `json:"bomb_count"`
	PieceCount         int           `json:"piece_count"`
	DetonationInterval time.Duration `json:"detonation_interval"`
}

// DefaultGameConfig returns the standard game parameters
func DefaultGameConfig() GameConfig {
	return GameConfig{
		BoardSize:          DefaultBoardSize,
		BombCount:          DefaultBombCount,
		PieceCount:         DefaultPieceCount,
		DetonationInterval: DefaultDetonationInterval,
	}
}

// Validate checks that the configuration can produce a playable board
func (c GameConfig) Validate() error {
	if c.BoardSize <= 0 {
		return ErrInvalidBoardSize
	}
	if c.BombCount <= 0 || c.PieceCount <= 0 {
		return ErrInvalidCounts
	}
	if c.DetonationInterval <= 0 {
		return ErrInvalidInterval
	}
	capacity := c.BoardSize * c.BoardSize
	if c.BombCount+c.PieceCount > capacity*MaxDensityPercent/100 {
		return ErrBoardTooDense
	}
	return nil
}

// Game is the aggregate state for a single reversed-minesweeper game.
// It is owned by a single engine and must only be mutated under the
// engine's lock.
type Game struct {
	ID     GameID
	Config GameConfig

	Board  *Board
	Pieces map[PieceID]*Piece
	Bombs  *BombSet

	DiscoveredCount int
	DetonatedCount  int
	Over            bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LiveBombCount returns the number of undiscovered, undetonated bombs
func (g *Game) LiveBombCount() int {
	return g.Bombs.Len()
}

// PieceList returns the pieces in map iteration order; callers needing a
// stable order should sort by ID.
func (g *Game) PieceList() []*Piece {
	result := make([]*Piece, 0, len(g.Pieces))
	for _, p := range g.Pieces {
		result = append(result, p)
	}
	return result
}

// Snapshot is a read-only copy of game state for rendering.
// Mutating a snapshot has no effect on the live game.
type Snapshot struct {
	ID              GameID     `json:"id"`
	Config          GameConfig `json:"config"`
	Board           *Board     `json:"board"`
	Pieces          []Piece    `json:"pieces"`
	LiveBombs       int        `json:"live_bombs"`
	DiscoveredCount int        `json:"discovered_count"`
	DetonatedCount  int        `json:"detonated_count"`
	Over            bool       `json:"over"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// GameSummary is a lightweight record of a game for listings
type GameSummary struct {
	ID              GameID    `json:"id"`
	BoardSize       int       `json:"board_size"`
	LiveBombs       int       `json:"live_bombs"`
	DiscoveredCount int       `json:"discovered_count"`
	DetonatedCount  int       `json:"detonated_count"`
	Over            bool      `json:"over"`
	CreatedAt       time.Time `json:"created_at"`
}
