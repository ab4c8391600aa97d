package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/jc-27901/reversed-minesweeper/internal/model"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// Test: complete game flow from creation to a detonation loss
func (s *IntegrationSuite) TestCompleteGameDetonationFlow() {
	cfg := model.GameConfig{
		BoardSize:          5,
		BombCount:          2,
		PieceCount:         2,
		DetonationInterval: time.Second,
	}

	var events []model.Event
	s.app.GameController.Subscribe(func(ev model.Event) { events = append(events, ev) })

	seed := uint64(7)
	snap, err := s.app.GameController.CreateGame(s.ctx, cfg, &seed)
	s.Require().NoError(err)
	s.Equal(2, snap.LiveBombs)

	// The detonation timer is registered with the mock scheduler
	s.Require().Len(s.app.MockScheduler.Tasks(), 1)
	s.Equal(time.Second, s.app.MockScheduler.Tasks()[0].Interval)

	// Two intervals elapse; both bombs detonate and the game ends
	s.app.MockScheduler.Fire()
	s.app.MockScheduler.Fire()

	final, err := s.app.GameController.GetSnapshot(s.ctx, snap.ID)
	s.Require().NoError(err)
	s.True(final.Over)
	s.Equal(2, final.DetonatedCount)
	s.Equal(0, final.LiveBombs)

	types := make([]model.EventType, 0, len(events))
	for _, ev := range events {
		types = append(types, ev.Type)
	}
	s.Equal([]model.EventType{
		model.EventGameCreated,
		model.EventBombDetonated,
		model.EventBombDetonated,
		model.EventGameOver,
	}, types)
}

// Test: complete game flow from creation to a discovery win
func (s *IntegrationSuite) TestCompleteGameDiscoveryFlow() {
	cfg := model.GameConfig{
		BoardSize:          5,
		BombCount:          2,
		PieceCount:         2,
		DetonationInterval: time.Second,
	}

	seed := uint64(7)
	snap, err := s.app.GameController.CreateGame(s.ctx, cfg, &seed)
	s.Require().NoError(err)

	pieceID := snap.Pieces[0].ID
	for {
		current, err := s.app.GameController.GetSnapshot(s.ctx, snap.ID)
		s.Require().NoError(err)
		if current.Over {
			break
		}

		target, ok := bombCell(current)
		s.Require().True(ok, "live game must still have a bomb on the board")
		s.Require().NoError(s.app.GameController.PlacePiece(s.ctx, snap.ID, pieceID, target))
	}

	final, err := s.app.GameController.GetSnapshot(s.ctx, snap.ID)
	s.Require().NoError(err)
	s.True(final.Over)
	s.Equal(2, final.DiscoveredCount)
	s.Equal(0, final.DetonatedCount)

	// The timer is cancelled; further intervals change nothing
	s.True(s.app.MockScheduler.Tasks()[0].Cancelled())
	s.app.MockScheduler.Fire()
	after, err := s.app.GameController.GetSnapshot(s.ctx, snap.ID)
	s.Require().NoError(err)
	s.Equal(0, after.DetonatedCount)
}

// Test: state persists through teardown and remains readable
func (s *IntegrationSuite) TestTeardownKeepsSnapshotReadable() {
	cfg := model.GameConfig{
		BoardSize:          5,
		BombCount:          2,
		PieceCount:         2,
		DetonationInterval: time.Second,
	}

	seed := uint64(3)
	snap, err := s.app.GameController.CreateGame(s.ctx, cfg, &seed)
	s.Require().NoError(err)

	s.app.MockScheduler.Fire()
	s.Require().NoError(s.app.GameController.TeardownGame(s.ctx, snap.ID))

	final, err := s.app.GameController.GetSnapshot(s.ctx, snap.ID)
	s.Require().NoError(err)
	s.True(final.Over)
	s.Equal(1, final.DetonatedCount)

	games, err := s.app.GameController.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 1)
	s.True(games[0].Over)
}

// bombCell returns a board position still holding a live bomb
func bombCell(snap *model.Snapshot) (model.Position, bool) {
	for y := 0; y < snap.Board.Size; y++ {
		for x := 0; x < snap.Board.Size; x++ {
			pos := model.Position{X: x, Y: y}
			cell := snap.Board.At(pos)
			if cell.HasBomb && !cell.HasPiece {
				return pos, true
			}
		}
	}
	return model.Position{}, false
}
