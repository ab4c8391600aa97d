package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventGameCreated    EventType = "game_created"
	EventPieceMoved     EventType = "piece_moved"
	EventBombDiscovered EventType = "bomb_discovered"
	EventBombDetonated  EventType = "bomb_detonated"
	EventGameOver       EventType = "game_over"
	EventGameAbandoned  EventType = "game_abandoned"
)

// Event is the base structure for all events
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	GameID    GameID    `json:"game_id"`
	Payload   any       `json:"payload,omitempty"`
}

// GameCreatedPayload contains data for game created events
type GameCreatedPayload struct {
	BoardSize  int `json:"board_size"`
	BombCount  int `json:"bomb_count"`
	PieceCount int `json:"piece_count"`
}

// PieceMovedPayload contains data for piece moved events
type PieceMovedPayload struct {
	PieceID PieceID  `json:"piece_id"`
	From    Position `json:"from"`
	To      Position `json:"to"`
}

// BombDiscoveredPayload contains data for bomb discovered events
type BombDiscoveredPayload struct {
	Position        Position `json:"position"`
	PieceID         PieceID  `json:"piece_id"`
	DiscoveredCount int      `json:"discovered_count"`
	RemainingBombs  int      `json:"remaining_bombs"`
}

// BombDetonatedPayload contains data for bomb detonated events
type BombDetonatedPayload struct {
	Position       Position `json:"position"`
	DetonatedCount int      `json:"detonated_count"`
	RemainingBombs int      `json:"remaining_bombs"`
}

// GameOverPayload contains data for game over events
type GameOverPayload struct {
	DiscoveredCount int `json:"discovered_count"`
	DetonatedCount  int `json:"detonated_count"`
}
