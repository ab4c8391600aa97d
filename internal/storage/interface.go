package storage

import (
	"context"

	"github.com/jc-27901/reversed-minesweeper/internal/model"
)

// Storage defines the interface for snapshot persistence.
// The live engine owns game state; storage only holds the latest
// read-only snapshot of each game for listing and rendering.
type Storage interface {
	SaveSnapshot(ctx context.Context, snap *model.Snapshot) error
	GetSnapshot(ctx context.Context, id model.GameID) (*model.Snapshot, error)
	DeleteSnapshot(ctx context.Context, id model.GameID) error
	ListSnapshots(ctx context.Context) ([]*model.Snapshot, error)
}
