package game

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/jc-27901/reversed-minesweeper/internal/dependencies/clock"
	"github.com/jc-27901/reversed-minesweeper/internal/dependencies/random"
	"github.com/jc-27901/reversed-minesweeper/internal/dependencies/scheduler"
	"github.com/jc-27901/reversed-minesweeper/internal/model"
	"github.com/jc-27901/reversed-minesweeper/internal/services/board"
	"github.com/jc-27901/reversed-minesweeper/internal/storage"
)

const gameIDLength = 12
const gameIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Controller manages the set of live game engines. It persists a
// snapshot after every mutation and fans engine events out to
// subscribers (the SSE layer, loggers, tests).
type Controller struct {
	mu      sync.RWMutex
	engines map[model.GameID]*Engine
	sinks   []EventSink

	storage      storage.Storage
	boardService *board.Service
	clock        clock.Clock
	random       random.Random
	scheduler    scheduler.Scheduler
	logger       *slog.Logger
}

// NewController creates a new game Controller
func NewController(
	store storage.Storage,
	boardService *board.Service,
	clk clock.Clock,
	rnd random.Random,
	sched scheduler.Scheduler,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		engines:      make(map[model.GameID]*Engine),
		storage:      store,
		boardService: boardService,
		clock:        clk,
		random:       rnd,
		scheduler:    sched,
		logger:       logger,
	}
}

// Subscribe registers a sink for events from every game. Must be
// called before the games whose events the sink should see are
// created.
func (c *Controller) Subscribe(sink EventSink) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sinks = append(c.sinks, sink)
}

// CreateGame initializes a new game and starts its detonation timer.
// A non-nil seed makes the board layout and detonation order
// reproducible.
func (c *Controller) CreateGame(ctx context.Context, cfg model.GameConfig, seed *uint64) (*model.Snapshot, error) {
	id := model.GameID(c.random.String(gameIDLength, gameIDAlphabet))

	rnd := c.random
	if seed != nil {
		rnd = random.NewSeeded(*seed)
	}

	engine, err := NewEngine(id, cfg, c.boardService, c.clock, rnd, c.scheduler, c.handleEvent, c.logger)
	if err != nil {
		c.logger.Error("failed to create game",
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.mu.Lock()
	c.engines[id] = engine
	c.mu.Unlock()

	snap := engine.Snapshot()
	if err := c.storage.SaveSnapshot(ctx, snap); err != nil {
		c.mu.Lock()
		delete(c.engines, id)
		c.mu.Unlock()
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(id)),
		slog.Int("board_size", cfg.BoardSize),
		slog.Int("bomb_count", cfg.BombCount),
		slog.Int("piece_count", cfg.PieceCount),
	)

	c.publish(model.Event{
		Type:      model.EventGameCreated,
		Timestamp: c.clock.Now(),
		GameID:    id,
		Payload: model.GameCreatedPayload{
			BoardSize:  cfg.BoardSize,
			BombCount:  cfg.BombCount,
			PieceCount: cfg.PieceCount,
		},
	})

	engine.Start()
	return snap, nil
}

// PlacePiece forwards a placement request to the identified game
func (c *Controller) PlacePiece(ctx context.Context, gameID model.GameID, pieceID model.PieceID, target model.Position) error {
	engine, err := c.engine(gameID)
	if err != nil {
		return err
	}

	if err := engine.PlacePiece(pieceID, target); err != nil {
		return err
	}

	// The no-op own-cell placement emits no events, so persist here
	// rather than relying on the event path alone.
	return c.storage.SaveSnapshot(ctx, engine.Snapshot())
}

// GetSnapshot returns the current state of a game. Live games are
// read from their engine; finished, torn-down games fall back to the
// stored snapshot.
func (c *Controller) GetSnapshot(ctx context.Context, gameID model.GameID) (*model.Snapshot, error) {
	if engine, err := c.engine(gameID); err == nil {
		return engine.Snapshot(), nil
	}
	return c.storage.GetSnapshot(ctx, gameID)
}

// ListGames returns summaries of all known games, newest first
func (c *Controller) ListGames(ctx context.Context) ([]model.GameSummary, error) {
	snaps, err := c.storage.ListSnapshots(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.GameSummary, 0, len(snaps))
	for _, snap := range snaps {
		summaries = append(summaries, model.GameSummary{
			ID:              snap.ID,
			BoardSize:       snap.Config.BoardSize,
			LiveBombs:       snap.LiveBombs,
			DiscoveredCount: snap.DiscoveredCount,
			DetonatedCount:  snap.DetonatedCount,
			Over:            snap.Over,
			CreatedAt:       snap.CreatedAt,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	return summaries, nil
}

// TeardownGame cancels a game's timer and releases its engine. The
// final snapshot stays in storage. Idempotent: tearing down an
// already-released game succeeds.
func (c *Controller) TeardownGame(ctx context.Context, gameID model.GameID) error {
	c.mu.Lock()
	engine, ok := c.engines[gameID]
	delete(c.engines, gameID)
	c.mu.Unlock()

	if !ok {
		// Engine already released; verify the game ever existed
		if _, err := c.storage.GetSnapshot(ctx, gameID); err != nil {
			return err
		}
		return nil
	}

	engine.Teardown()

	if err := c.storage.SaveSnapshot(ctx, engine.Snapshot()); err != nil {
		return err
	}

	c.logger.Info("game torn down", slog.String("game_id", string(gameID)))

	c.publish(model.Event{
		Type:      model.EventGameAbandoned,
		Timestamp: c.clock.Now(),
		GameID:    gameID,
	})
	return nil
}

// TeardownAll releases every live engine; used at server shutdown
func (c *Controller) TeardownAll(ctx context.Context) {
	c.mu.Lock()
	engines := make([]*Engine, 0, len(c.engines))
	for id, engine := range c.engines {
		engines = append(engines, engine)
		delete(c.engines, id)
	}
	c.mu.Unlock()

	for _, engine := range engines {
		engine.Teardown()
		if err := c.storage.SaveSnapshot(ctx, engine.Snapshot()); err != nil {
			c.logger.Warn("failed to persist snapshot during shutdown",
				slog.String("game_id", string(engine.ID())),
				slog.String("error", err.Error()),
			)
		}
	}
}

func (c *Controller) engine(gameID model.GameID) (*Engine, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	engine, ok := c.engines[gameID]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return engine, nil
}

// handleEvent is the sink wired into every engine. It persists the
// latest snapshot and republishes the event to subscribers.
func (c *Controller) handleEvent(ev model.Event) {
	if engine, err := c.engine(ev.GameID); err == nil {
		if err := c.storage.SaveSnapshot(context.Background(), engine.Snapshot()); err != nil {
			c.logger.Warn("failed to persist snapshot",
				slog.String("game_id", string(ev.GameID)),
				slog.String("error", err.Error()),
			)
		}
	}
	c.publish(ev)
}

func (c *Controller) publish(ev model.Event) {
	c.mu.RLock()
	sinks := make([]EventSink, len(c.sinks))
	copy(sinks, c.sinks)
	c.mu.RUnlock()

	for _, sink := range sinks {
		sink(ev)
	}
}
