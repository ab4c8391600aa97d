package game

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/jc-27901/reversed-minesweeper/internal/dependencies/mocks"
	"github.com/jc-27901/reversed-minesweeper/internal/dependencies/random"
	"github.com/jc-27901/reversed-minesweeper/internal/model"
	"github.com/jc-27901/reversed-minesweeper/internal/services/board"
	"github.com/jc-27901/reversed-minesweeper/internal/testutil"
)

type EngineSuite struct {
	suite.Suite
	boardService *board.Service
	clock        *mocks.MockClock
	random       *mocks.MockRandom
	scheduler    *mocks.MockScheduler
	events       []model.Event

	// engine is a 5x5 fixture with bombs at (0,0) and (1,0) and
	// pieces piece-1 at (2,2) and piece-2 at (3,3).
	engine *Engine
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	s.boardService = board.New(testutil.NopLogger())
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.scheduler = mocks.NewMockScheduler()
	s.events = nil

	// Bomb draws (0,0) and (1,0), then piece draws (2,2) and (3,3)
	s.random.QueueIntn(0, 0, 1, 0, 2, 2, 3, 3)

	cfg := model.GameConfig{
		BoardSize:          5,
		BombCount:          2,
		PieceCount:         2,
		DetonationInterval: time.Second,
	}

	engine, err := NewEngine("GAME1", cfg, s.boardService, s.clock, s.random, s.scheduler, s.captureEvent, testutil.NopLogger())
	s.Require().NoError(err)
	s.engine = engine
}

func (s *EngineSuite) captureEvent(ev model.Event) {
	s.events = append(s.events, ev)
}

func (s *EngineSuite) eventTypes() []model.EventType {
	types := make([]model.EventType, 0, len(s.events))
	for _, ev := range s.events {
		types = append(types, ev.Type)
	}
	return types
}

// NewEngine tests

func (s *EngineSuite) TestNewEngineRejectsInvalidConfig() {
	cfg := model.GameConfig{
		BoardSize:          3,
		BombCount:          5,
		PieceCount:         5,
		DetonationInterval: time.Second,
	}

	engine, err := NewEngine("BAD1", cfg, s.boardService, s.clock, s.random, s.scheduler, nil, testutil.NopLogger())
	s.ErrorIs(err, model.ErrBoardTooDense)
	s.Nil(engine)
	s.Empty(s.scheduler.Tasks(), "no timer may be scheduled for a rejected config")
}

func (s *EngineSuite) TestSnapshotReflectsInitialLayout() {
	snap := s.engine.Snapshot()

	s.Equal(model.GameID("GAME1"), snap.ID)
	s.Equal(2, snap.LiveBombs)
	s.Equal(0, snap.DiscoveredCount)
	s.Equal(0, snap.DetonatedCount)
	s.False(snap.Over)

	s.Require().Len(snap.Pieces, 2)
	s.Equal(model.PieceID("piece-1"), snap.Pieces[0].ID)
	s.Equal(model.Position{X: 2, Y: 2}, snap.Pieces[0].Position)
	s.Equal(model.PieceID("piece-2"), snap.Pieces[1].ID)
	s.Equal(model.Position{X: 3, Y: 3}, snap.Pieces[1].Position)

	s.True(snap.Board.At(model.Position{X: 0, Y: 0}).HasBomb)
	s.True(snap.Board.At(model.Position{X: 1, Y: 0}).HasBomb)
}

func (s *EngineSuite) TestSnapshotIsACopy() {
	snap := s.engine.Snapshot()
	snap.Board.At(model.Position{X: 2, Y: 2}).HasPiece = false
	snap.Pieces[0].Position = model.Position{X: 4, Y: 4}

	fresh := s.engine.Snapshot()
	s.True(fresh.Board.At(model.Position{X: 2, Y: 2}).HasPiece)
	s.Equal(model.Position{X: 2, Y: 2}, fresh.Pieces[0].Position)
}

// PlacePiece tests

func (s *EngineSuite) TestPlacePieceMovesToEmptyCell() {
	err := s.engine.PlacePiece("piece-1", model.Position{X: 2, Y: 3})
	s.Require().NoError(err)

	snap := s.engine.Snapshot()
	s.Equal(model.Position{X: 2, Y: 3}, snap.Pieces[0].Position)
	s.False(snap.Board.At(model.Position{X: 2, Y: 2}).HasPiece)
	s.True(snap.Board.At(model.Position{X: 2, Y: 3}).HasPiece)

	s.Require().Len(s.events, 1)
	s.Equal(model.EventPieceMoved, s.events[0].Type)
	payload := s.events[0].Payload.(model.PieceMovedPayload)
	s.Equal(model.PieceID("piece-1"), payload.PieceID)
	s.Equal(model.Position{X: 2, Y: 2}, payload.From)
	s.Equal(model.Position{X: 2, Y: 3}, payload.To)
}

func (s *EngineSuite) TestPlacePieceOutOfBoundsFails() {
	for _, target := range []model.Position{
		{X: 5, Y: 0},
		{X: 0, Y: 5},
		{X: -1, Y: 2},
		{X: 2, Y: -1},
	} {
		err := s.engine.PlacePiece("piece-1", target)
		s.ErrorIs(err, model.ErrOutOfBounds, "target %v", target)
	}

	snap := s.engine.Snapshot()
	s.Equal(model.Position{X: 2, Y: 2}, snap.Pieces[0].Position, "failed placements must not move the piece")
	s.Empty(s.events, "failed placements must not emit events")
}

func (s *EngineSuite) TestPlacePieceOntoOccupiedCellFails() {
	err := s.engine.PlacePiece("piece-1", model.Position{X: 3, Y: 3})
	s.ErrorIs(err, model.ErrCellOccupied)

	snap := s.engine.Snapshot()
	s.Equal(model.Position{X: 2, Y: 2}, snap.Pieces[0].Position)
	s.Equal(model.Position{X: 3, Y: 3}, snap.Pieces[1].Position)
	s.Empty(s.events)
}

func (s *EngineSuite) TestPlacePieceOntoOwnCellIsNoOp() {
	err := s.engine.PlacePiece("piece-1", model.Position{X: 2, Y: 2})
	s.Require().NoError(err)

	snap := s.engine.Snapshot()
	s.Equal(model.Position{X: 2, Y: 2}, snap.Pieces[0].Position)
	s.True(snap.Board.At(model.Position{X: 2, Y: 2}).HasPiece)
	s.Empty(s.events, "own-cell placement is silent")
}

func (s *EngineSuite) TestPlacePieceUnknownPieceFails() {
	err := s.engine.PlacePiece("piece-99", model.Position{X: 0, Y: 4})
	s.ErrorIs(err, model.ErrPieceNotFound)
	s.Empty(s.events)
}

func (s *EngineSuite) TestPlacePieceAlwaysMovesFromCurrentPosition() {
	s.Require().NoError(s.engine.PlacePiece("piece-1", model.Position{X: 0, Y: 4}))

	// The vacated cell is free for another piece
	s.Require().NoError(s.engine.PlacePiece("piece-2", model.Position{X: 2, Y: 2}))

	// And piece-1 moves from where it is now, not where it started
	s.Require().NoError(s.engine.PlacePiece("piece-1", model.Position{X: 1, Y: 4}))

	snap := s.engine.Snapshot()
	s.Equal(model.Position{X: 1, Y: 4}, snap.Pieces[0].Position)
	s.Equal(model.Position{X: 2, Y: 2}, snap.Pieces[1].Position)
	s.False(snap.Board.At(model.Position{X: 0, Y: 4}).HasPiece)
}

func (s *EngineSuite) TestPlacePieceOntoBombDiscoversIt() {
	err := s.engine.PlacePiece("piece-1", model.Position{X: 0, Y: 0})
	s.Require().NoError(err)

	snap := s.engine.Snapshot()
	s.Equal(1, snap.DiscoveredCount)
	s.Equal(1, snap.LiveBombs)
	s.False(snap.Over)
	s.False(snap.Board.At(model.Position{X: 0, Y: 0}).HasBomb)
	s.True(snap.Board.At(model.Position{X: 0, Y: 0}).HasPiece, "the piece stays on the discovered cell")

	s.Equal([]model.EventType{model.EventPieceMoved, model.EventBombDiscovered}, s.eventTypes())
	payload := s.events[1].Payload.(model.BombDiscoveredPayload)
	s.Equal(model.Position{X: 0, Y: 0}, payload.Position)
	s.Equal(model.PieceID("piece-1"), payload.PieceID)
	s.Equal(1, payload.DiscoveredCount)
	s.Equal(1, payload.RemainingBombs)
}

func (s *EngineSuite) TestDiscoveringLastBombEndsGame() {
	s.engine.Start()
	s.Require().NoError(s.engine.PlacePiece("piece-1", model.Position{X: 0, Y: 0}))
	s.Require().NoError(s.engine.PlacePiece("piece-1", model.Position{X: 1, Y: 0}))

	snap := s.engine.Snapshot()
	s.True(snap.Over)
	s.Equal(2, snap.DiscoveredCount)
	s.Equal(0, snap.LiveBombs)

	s.Equal([]model.EventType{
		model.EventPieceMoved, model.EventBombDiscovered,
		model.EventPieceMoved, model.EventBombDiscovered,
		model.EventGameOver,
	}, s.eventTypes())

	payload := s.events[4].Payload.(model.GameOverPayload)
	s.Equal(2, payload.DiscoveredCount)
	s.Equal(0, payload.DetonatedCount)

	s.Require().Len(s.scheduler.Tasks(), 1)
	s.True(s.scheduler.Tasks()[0].Cancelled(), "game over must cancel the detonation timer")
}

func (s *EngineSuite) TestPlacePieceAfterGameOverFails() {
	s.Require().NoError(s.engine.PlacePiece("piece-1", model.Position{X: 0, Y: 0}))
	s.Require().NoError(s.engine.PlacePiece("piece-1", model.Position{X: 1, Y: 0}))

	err := s.engine.PlacePiece("piece-2", model.Position{X: 4, Y: 4})
	s.ErrorIs(err, model.ErrGameOver)

	snap := s.engine.Snapshot()
	s.Equal(model.Position{X: 3, Y: 3}, snap.Pieces[1].Position)
}

// Detonation tests

func (s *EngineSuite) TestStartSchedulesTimerOnce() {
	s.engine.Start()
	s.engine.Start()

	s.Require().Len(s.scheduler.Tasks(), 1)
	s.Equal(time.Second, s.scheduler.Tasks()[0].Interval)
}

func (s *EngineSuite) TestDetonationRemovesRandomBomb() {
	s.engine.Start()
	s.random.QueueIntn(1) // pick the bomb at index 1: (1,0)
	s.scheduler.Fire()

	snap := s.engine.Snapshot()
	s.Equal(1, snap.DetonatedCount)
	s.Equal(1, snap.LiveBombs)
	s.False(snap.Over)
	s.False(snap.Board.At(model.Position{X: 1, Y: 0}).HasBomb)
	s.True(snap.Board.At(model.Position{X: 0, Y: 0}).HasBomb)

	s.Require().Len(s.events, 1)
	s.Equal(model.EventBombDetonated, s.events[0].Type)
	payload := s.events[0].Payload.(model.BombDetonatedPayload)
	s.Equal(model.Position{X: 1, Y: 0}, payload.Position)
	s.Equal(1, payload.DetonatedCount)
	s.Equal(1, payload.RemainingBombs)
}

func (s *EngineSuite) TestDetonatingLastBombEndsGame() {
	s.engine.Start()
	s.random.QueueIntn(0, 0)
	s.scheduler.Fire()
	s.scheduler.Fire()

	snap := s.engine.Snapshot()
	s.True(snap.Over)
	s.Equal(2, snap.DetonatedCount)
	s.Equal(0, snap.LiveBombs)

	s.Equal([]model.EventType{
		model.EventBombDetonated,
		model.EventBombDetonated,
		model.EventGameOver,
	}, s.eventTypes())

	s.True(s.scheduler.Tasks()[0].Cancelled())

	// A straggling fire after cancellation does nothing
	s.scheduler.Fire()
	s.Len(s.events, 3)
}

func (s *EngineSuite) TestTickAfterGameOverIsNoOp() {
	s.Require().NoError(s.engine.PlacePiece("piece-1", model.Position{X: 0, Y: 0}))
	s.Require().NoError(s.engine.PlacePiece("piece-1", model.Position{X: 1, Y: 0}))
	before := len(s.events)

	// A tick already in flight when the game ended must not mutate
	// anything or emit a second game-over
	s.engine.tick()

	s.Len(s.events, before)
	snap := s.engine.Snapshot()
	s.Equal(0, snap.DetonatedCount)
}

func (s *EngineSuite) TestDetonationRacingDiscoveryResolvesToOneWinner() {
	s.engine.Start()

	// Discover the bomb at (0,0), then let a tick target the remaining
	// bomb. Each bomb is consumed exactly once.
	s.Require().NoError(s.engine.PlacePiece("piece-1", model.Position{X: 0, Y: 0}))
	s.random.QueueIntn(0)
	s.scheduler.Fire()

	snap := s.engine.Snapshot()
	s.True(snap.Over)
	s.Equal(1, snap.DiscoveredCount)
	s.Equal(1, snap.DetonatedCount)
	s.Equal(0, snap.LiveBombs)
}

// Teardown tests

func (s *EngineSuite) TestTeardownCancelsTimerWithoutGameOverEvent() {
	s.engine.Start()
	s.engine.Teardown()

	s.True(s.scheduler.Tasks()[0].Cancelled())
	s.True(s.engine.Snapshot().Over)
	s.Empty(s.events, "teardown is not a game outcome")
}

func (s *EngineSuite) TestTeardownIsIdempotent() {
	s.engine.Start()
	s.engine.Teardown()
	s.engine.Teardown()

	s.True(s.engine.Snapshot().Over)
	s.Empty(s.events)
}

func (s *EngineSuite) TestTeardownAfterGameOverKeepsFinalState() {
	s.Require().NoError(s.engine.PlacePiece("piece-1", model.Position{X: 0, Y: 0}))
	s.Require().NoError(s.engine.PlacePiece("piece-1", model.Position{X: 1, Y: 0}))
	s.engine.Teardown()

	snap := s.engine.Snapshot()
	s.True(snap.Over)
	s.Equal(2, snap.DiscoveredCount)
}

// Full-game scenarios

func (s *EngineSuite) TestFullGameAllBombsDetonate() {
	cfg := model.DefaultGameConfig()
	sched := mocks.NewMockScheduler()

	var events []model.Event
	engine, err := NewEngine("FULL1", cfg, s.boardService, s.clock,
		random.NewSeeded(11), sched,
		func(ev model.Event) { events = append(events, ev) },
		testutil.NopLogger())
	s.Require().NoError(err)
	engine.Start()

	for i := 0; i < cfg.BombCount; i++ {
		sched.Fire()
	}

	snap := engine.Snapshot()
	s.True(snap.Over)
	s.Equal(cfg.BombCount, snap.DetonatedCount)
	s.Equal(0, snap.DiscoveredCount)
	s.Equal(0, snap.LiveBombs)

	gameOvers := 0
	for _, ev := range events {
		if ev.Type == model.EventGameOver {
			gameOvers++
		}
	}
	s.Equal(1, gameOvers)

	// One more interval elapsing changes nothing
	sched.Fire()
	s.Equal(cfg.BombCount, engine.Snapshot().DetonatedCount)
}

func (s *EngineSuite) TestFullGameAllBombsDiscovered() {
	for _, size := range []int{10, 15, 20} {
		s.Run(fmt.Sprintf("size_%d", size), func() {
			cfg := model.GameConfig{
				BoardSize:          size,
				BombCount:          15,
				PieceCount:         20,
				DetonationInterval: 10 * time.Second,
			}

			var events []model.Event
			engine, err := NewEngine("FULL2", cfg, s.boardService, s.clock,
				random.NewSeeded(uint64(size)), mocks.NewMockScheduler(),
				func(ev model.Event) { events = append(events, ev) },
				testutil.NopLogger())
			s.Require().NoError(err)
			engine.Start()

			// Walk a single piece over every bomb on the board
			for _, pos := range engine.game.Bombs.Positions() {
				s.Require().NoError(engine.PlacePiece("piece-1", pos))
			}

			snap := engine.Snapshot()
			s.True(snap.Over)
			s.Equal(15, snap.DiscoveredCount)
			s.Equal(0, snap.DetonatedCount)
			s.Equal(0, snap.LiveBombs)
			s.Equal(model.EventGameOver, events[len(events)-1].Type)
		})
	}
}

func (s *EngineSuite) TestBombAccountingStaysBalanced() {
	cfg := model.DefaultGameConfig()
	sched := mocks.NewMockScheduler()

	engine, err := NewEngine("FULL3", cfg, s.boardService, s.clock,
		random.NewSeeded(23), sched, nil, testutil.NopLogger())
	s.Require().NoError(err)
	engine.Start()

	check := func() {
		snap := engine.Snapshot()
		s.Equal(cfg.BombCount, snap.DiscoveredCount+snap.DetonatedCount+snap.LiveBombs)
	}

	check()
	for !engine.Snapshot().Over {
		// Alternate a detonation with a discovery attempt
		sched.Fire()
		check()

		snap := engine.Snapshot()
		if snap.Over {
			break
		}
		for _, pos := range engine.game.Bombs.Positions() {
			if !snap.Board.At(pos).HasPiece {
				s.Require().NoError(engine.PlacePiece("piece-1", pos))
				break
			}
		}
		check()
	}

	final := engine.Snapshot()
	s.Equal(0, final.LiveBombs)
	s.Equal(cfg.BombCount, final.DiscoveredCount+final.DetonatedCount)
}
