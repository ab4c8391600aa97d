package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/jc-27901/reversed-minesweeper/internal/config"
	"github.com/jc-27901/reversed-minesweeper/internal/dependencies/clock"
	"github.com/jc-27901/reversed-minesweeper/internal/dependencies/random"
	"github.com/jc-27901/reversed-minesweeper/internal/dependencies/scheduler"
	"github.com/jc-27901/reversed-minesweeper/internal/services/board"
	"github.com/jc-27901/reversed-minesweeper/internal/services/game"
	"github.com/jc-27901/reversed-minesweeper/internal/sse"
	"github.com/jc-27901/reversed-minesweeper/internal/storage"
	"github.com/jc-27901/reversed-minesweeper/internal/storage/memory"
	redisstorage "github.com/jc-27901/reversed-minesweeper/internal/storage/redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock     clock.Clock
	Random    random.Random
	Scheduler scheduler.Scheduler

	// Services
	BoardService   *board.Service
	GameController *game.Controller
	HubManager     *sse.HubManager
	Broadcaster    *sse.Broadcaster
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = config.StorageTypeMemory
	}

	switch storageType {
	case config.StorageTypeMemory:
		store = memory.New()
	case config.StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()
	rnd := random.New()
	sched := scheduler.New()

	return newWithDependencies(store, clk, rnd, sched, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	sched scheduler.Scheduler,
	logger *slog.Logger,
) *App {
	boardService := board.New(logger)
	gameController := game.NewController(store, boardService, clk, rnd, sched, logger)
	hubManager := sse.NewHubManager(logger)
	broadcaster := sse.NewBroadcaster(hubManager, logger)

	// Engine events flow to SSE clients through the broadcaster
	gameController.Subscribe(broadcaster.HandleEvent)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		Scheduler:      sched,
		BoardService:   boardService,
		GameController: gameController,
		HubManager:     hubManager,
		Broadcaster:    broadcaster,
	}
}
