package request

// CreateGameRequest is the request body for creating a game.
// Zero-valued fields fall back to the defaults; a non-nil seed makes
// the board layout and detonation order reproducible.
type CreateGameRequest struct {
	BoardSize            int     `json:"board_size,omitempty"`
	BombCount            int     `json:"bomb_count,omitempty"`
	PieceCount           int     `json:"piece_count,omitempty"`
	DetonationIntervalMS int     `json:"detonation_interval_ms,omitempty"`
	Seed                 *uint64 `json:"seed,omitempty"`
}

// PlacePieceRequest is the request body for placing a piece
type PlacePieceRequest struct {
	PieceID string `json:"piece_id"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
}
