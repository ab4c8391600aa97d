package game

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/jc-27901/reversed-minesweeper/internal/dependencies/clock"
	"github.com/jc-27901/reversed-minesweeper/internal/dependencies/random"
	"github.com/jc-27901/reversed-minesweeper/internal/dependencies/scheduler"
	"github.com/jc-27901/reversed-minesweeper/internal/model"
	"github.com/jc-27901/reversed-minesweeper/internal/services/board"
)

// EventSink receives engine events. Sinks are invoked outside the
// engine lock, so they may safely call back into the engine.
type EventSink func(model.Event)

// Engine is the state machine for a single game. The periodic
// detonation timer and placement requests are both external triggers
// into the same non-reentrant state; a single mutex serializes them,
// so a placement and a detonation racing over the same bomb resolve
// to exactly one winner.
type Engine struct {
	mu   sync.Mutex
	game *model.Game
	task scheduler.Task

	boardService *board.Service
	clock        clock.Clock
	random       random.Random
	scheduler    scheduler.Scheduler
	sink         EventSink
	logger       *slog.Logger
}

// NewEngine creates an engine with a freshly generated board.
// Configuration errors are fatal: no engine is returned and no timer
// is started. The detonation timer does not run until Start is called.
func NewEngine(
	id model.GameID,
	cfg model.GameConfig,
	boardService *board.Service,
	clk clock.Clock,
	rnd random.Random,
	sched scheduler.Scheduler,
	sink EventSink,
	logger *slog.Logger,
) (*Engine, error) {
	layout, err := boardService.Generate(cfg, rnd)
	if err != nil {
		return nil, err
	}

	now := clk.Now()
	g := &model.Game{
		ID:        id,
		Config:    cfg,
		Board:     layout.Board,
		Pieces:    layout.Pieces,
		Bombs:     layout.Bombs,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if sink == nil {
		sink = func(model.Event) {}
	}

	return &Engine{
		game:         g,
		boardService: boardService,
		clock:        clk,
		random:       rnd,
		scheduler:    sched,
		sink:         sink,
		logger:       logger.With(slog.String("game_id", string(id))),
	}, nil
}

// ID returns the game's identifier
func (e *Engine) ID() model.GameID {
	return e.game.ID
}

// Start schedules the detonation timer. Idempotent; a no-op once the
// game is over.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.task != nil || e.game.Over {
		return
	}
	e.task = e.scheduler.Every(e.game.Config.DetonationInterval, e.tick)
	e.logger.Info("detonation timer started",
		slog.Duration("interval", e.game.Config.DetonationInterval),
	)
}

// PlacePiece moves the identified piece to the target cell.
//
// The piece is looked up by identity on every call; a caller's cached
// position is never trusted. Placing a piece onto its own current cell
// is a no-op success. All failures are reported as sentinel errors
// with no state mutated.
func (e *Engine) PlacePiece(id model.PieceID, target model.Position) error {
	e.mu.Lock()

	if e.game.Over {
		e.mu.Unlock()
		return model.ErrGameOver
	}

	piece, ok := e.game.Pieces[id]
	if !ok {
		e.mu.Unlock()
		return model.ErrPieceNotFound
	}

	if !e.game.Board.IsValidPosition(target) {
		e.mu.Unlock()
		return model.ErrOutOfBounds
	}

	if piece.Position == target {
		e.mu.Unlock()
		return nil
	}

	if err := e.boardService.ValidatePlacement(e.game.Board, target); err != nil {
		e.mu.Unlock()
		return err
	}

	events := e.moveLocked(piece, target)
	e.mu.Unlock()

	e.emit(events)
	return nil
}

// moveLocked applies an already-validated move and returns the events
// to emit once the lock is released.
func (e *Engine) moveLocked(piece *model.Piece, target model.Position) []model.Event {
	from := piece.Position
	e.game.Board.At(from).HasPiece = false
	e.game.Board.At(target).HasPiece = true
	piece.Position = target
	e.game.UpdatedAt = e.clock.Now()

	events := []model.Event{e.eventLocked(model.EventPieceMoved, model.PieceMovedPayload{
		PieceID: piece.ID,
		From:    from,
		To:      target,
	})}

	cell := e.game.Board.At(target)
	if cell.HasBomb {
		cell.HasBomb = false
		e.game.Bombs.Remove(target)
		e.game.DiscoveredCount++

		e.logger.Info("bomb discovered",
			slog.Int("x", target.X),
			slog.Int("y", target.Y),
			slog.Int("discovered", e.game.DiscoveredCount),
			slog.Int("remaining", e.game.Bombs.Len()),
		)

		events = append(events, e.eventLocked(model.EventBombDiscovered, model.BombDiscoveredPayload{
			Position:        target,
			PieceID:         piece.ID,
			DiscoveredCount: e.game.DiscoveredCount,
			RemainingBombs:  e.game.Bombs.Len(),
		}))

		if e.game.Bombs.Len() == 0 {
			events = append(events, e.gameOverLocked()...)
		}
	}

	return events
}

// tick fires on the detonation interval and removes one live bomb
// chosen uniformly at random.
func (e *Engine) tick() {
	e.mu.Lock()
	events := e.detonateLocked()
	e.mu.Unlock()
	e.emit(events)
}

func (e *Engine) detonateLocked() []model.Event {
	if e.game.Over {
		return nil
	}

	if e.game.Bombs.Len() == 0 {
		return e.gameOverLocked()
	}

	idx := e.random.Intn(e.game.Bombs.Len())
	pos := e.game.Bombs.At(idx)
	e.game.Bombs.Remove(pos)
	e.game.Board.At(pos).HasBomb = false
	e.game.DetonatedCount++
	e.game.UpdatedAt = e.clock.Now()

	e.logger.Info("bomb detonated",
		slog.Int("x", pos.X),
		slog.Int("y", pos.Y),
		slog.Int("detonated", e.game.DetonatedCount),
		slog.Int("remaining", e.game.Bombs.Len()),
	)

	events := []model.Event{e.eventLocked(model.EventBombDetonated, model.BombDetonatedPayload{
		Position:       pos,
		DetonatedCount: e.game.DetonatedCount,
		RemainingBombs: e.game.Bombs.Len(),
	})}

	if e.game.Bombs.Len() == 0 {
		events = append(events, e.gameOverLocked()...)
	}

	return events
}

// gameOverLocked performs the one-way transition to the terminal
// state. Cancelling the task here is safe even when called from
// within the task's own callback.
func (e *Engine) gameOverLocked() []model.Event {
	if e.game.Over {
		return nil
	}

	e.game.Over = true
	e.game.UpdatedAt = e.clock.Now()
	if e.task != nil {
		e.task.Cancel()
	}

	e.logger.Info("game over",
		slog.Int("discovered", e.game.DiscoveredCount),
		slog.Int("detonated", e.game.DetonatedCount),
	)

	return []model.Event{e.eventLocked(model.EventGameOver, model.GameOverPayload{
		DiscoveredCount: e.game.DiscoveredCount,
		DetonatedCount:  e.game.DetonatedCount,
	})}
}

// Teardown cancels the timer and closes the engine without emitting a
// game-over event. Idempotent and callable at any time; the final
// state remains inspectable through Snapshot.
func (e *Engine) Teardown() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.task != nil {
		e.task.Cancel()
		e.task = nil
	}
	if !e.game.Over {
		e.game.Over = true
		e.game.UpdatedAt = e.clock.Now()
	}
}

// Snapshot returns a deep copy of game state for rendering
func (e *Engine) Snapshot() *model.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	pieces := make([]model.Piece, 0, len(e.game.Pieces))
	for _, p := range e.game.Pieces {
		pieces = append(pieces, *p)
	}
	sort.Slice(pieces, func(i, j int) bool {
		return pieces[i].ID < pieces[j].ID
	})

	return &model.Snapshot{
		ID:              e.game.ID,
		Config:          e.game.Config,
		Board:           e.game.Board.Clone(),
		Pieces:          pieces,
		LiveBombs:       e.game.Bombs.Len(),
		DiscoveredCount: e.game.DiscoveredCount,
		DetonatedCount:  e.game.DetonatedCount,
		Over:            e.game.Over,
		CreatedAt:       e.game.CreatedAt,
		UpdatedAt:       e.game.UpdatedAt,
	}
}

func (e *Engine) eventLocked(t model.EventType, payload any) model.Event {
	return model.Event{
		Type:      t,
		Timestamp: e.clock.Now(),
		GameID:    e.game.ID,
		Payload:   payload,
	}
}

func (e *Engine) emit(events []model.Event) {
	for _, ev := range events {
		e.sink(ev)
	}
}
