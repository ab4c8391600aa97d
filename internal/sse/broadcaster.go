package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/jc-27901/reversed-minesweeper/internal/model"
)

// Broadcaster forwards engine events to the SSE clients of the
// affected game as JSON-encoded SSE messages. It is registered as an
// event sink on the game controller.
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// HandleEvent encodes the event and broadcasts it to the game's hub.
// Events for games with no connected clients are dropped silently.
func (b *Broadcaster) HandleEvent(ev model.Event) {
	hub := b.hubManager.GetHub(ev.GameID)
	if hub == nil {
		return
	}

	data, err := json.Marshal(ev)
	if err != nil {
		b.logger.Error("sse failed to encode event",
			slog.String("game_id", string(ev.GameID)),
			slog.String("type", string(ev.Type)),
			slog.Any("error", err))
		return
	}

	hub.BroadcastEvent(string(ev.Type), string(data))

	// A torn-down game will produce no further events; release its hub
	if ev.Type == model.EventGameAbandoned {
		b.hubManager.RemoveHub(ev.GameID)
	}
}
