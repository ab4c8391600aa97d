package model

import "errors"

// Common errors used across the application
var (
	// Configuration errors (fatal at initialization)
	ErrInvalidBoardSize = errors.New("board size must be positive")
	ErrInvalidCounts    = errors.New("bomb and piece counts must be positive")
	ErrInvalidInterval  = errors.New("detonation interval must be positive")
	ErrBoardTooDense    = errors.New("bomb and piece counts exceed board density cap")

	// Placement errors (always recovered locally)
	ErrOutOfBounds   = errors.New("target position is out of bounds")
	ErrCellOccupied  = errors.New("target cell already holds a piece")
	ErrPieceNotFound = errors.New("piece not found")
	ErrGameOver      = errors.New("game is over")

	// Game errors
	ErrGameNotFound = errors.New("game not found")
)
