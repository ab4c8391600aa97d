package board

import (
	"fmt"
	"log/slog"

	"github.com/jc-27901/reversed-minesweeper/internal/dependencies/random"
	"github.com/jc-27901/reversed-minesweeper/internal/model"
)

// Service generates and validates game boards
type Service struct {
	logger *slog.Logger
}

// New creates a new BoardService
func New(logger *slog.Logger) *Service {
	return &Service{
		logger: logger,
	}
}

// Layout is a freshly generated board with its bombs and pieces placed
type Layout struct {
	Board  *model.Board
	Pieces map[model.PieceID]*model.Piece
	Bombs  *model.BombSet
}

// Generate produces a board for the given configuration. Bombs and
// pieces land on distinct cells drawn uniformly at random.
//
// Placement is rejection sampling: draw a coordinate, retry on
// collision. Not bounded in theory, but the density cap enforced by
// cfg.Validate keeps the expected number of retries small.
func (s *Service) Generate(cfg model.GameConfig, rnd random.Random) (*Layout, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := model.NewBoard(cfg.BoardSize)
	bombs := model.NewBombSet()

	for bombs.Len() < cfg.BombCount {
		pos := s.drawPosition(cfg.BoardSize, rnd)
		if b.At(pos).HasBomb {
			continue
		}
		b.At(pos).HasBomb = true
		bombs.Add(pos)
	}

	pieces := make(map[model.PieceID]*model.Piece, cfg.PieceCount)
	placed := 0
	for placed < cfg.PieceCount {
		pos := s.drawPosition(cfg.BoardSize, rnd)
		cell := b.At(pos)
		if cell.HasBomb || cell.HasPiece {
			continue
		}
		cell.HasPiece = true
		placed++
		id := model.PieceID(fmt.Sprintf("piece-%d", placed))
		pieces[id] = &model.Piece{ID: id, Position: pos}
	}

	s.logger.Debug("board generated",
		slog.Int("size", cfg.BoardSize),
		slog.Int("bombs", bombs.Len()),
		slog.Int("pieces", len(pieces)),
	)

	return &Layout{
		Board:  b,
		Pieces: pieces,
		Bombs:  bombs,
	}, nil
}

// ValidatePlacement checks that a target cell can receive a piece
func (s *Service) ValidatePlacement(b *model.Board, pos model.Position) error {
	if !b.IsValidPosition(pos) {
		return model.ErrOutOfBounds
	}
	if b.At(pos).HasPiece {
		return model.ErrCellOccupied
	}
	return nil
}

func (s *Service) drawPosition(size int, rnd random.Random) model.Position {
	return model.Position{
		X: rnd.Intn(size),
		Y: rnd.Intn(size),
	}
}
