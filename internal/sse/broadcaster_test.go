package sse

import (
	"strings"
	"testing"
	"time"

	"github.com/jc-27901/reversed-minesweeper/internal/model"
	"github.com/jc-27901/reversed-minesweeper/internal/testutil"
)

func TestBroadcaster_HandleEventReachesClients(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	hub := manager.GetOrCreateHub("GAME00000001")
	client := NewClient(hub, "127.0.0.1:50001")
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	broadcaster.HandleEvent(model.Event{
		Type:      model.EventBombDetonated,
		Timestamp: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		GameID:    "GAME00000001",
		Payload: model.BombDetonatedPayload{
			Position:       model.Position{X: 3, Y: 4},
			DetonatedCount: 1,
			RemainingBombs: 14,
		},
	})

	select {
	case msg := <-client.send:
		msgStr := string(msg)
		if !strings.Contains(msgStr, "event: bomb_detonated") {
			t.Errorf("message does not contain event name: %s", msgStr)
		}
		if !strings.Contains(msgStr, `"remaining_bombs":14`) {
			t.Errorf("message does not contain payload: %s", msgStr)
		}
		if !strings.Contains(msgStr, `"game_id":"GAME00000001"`) {
			t.Errorf("message does not contain game id: %s", msgStr)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("client did not receive message")
	}

	manager.RemoveHub("GAME00000001")
}

func TestBroadcaster_EventForOtherGameIsNotDelivered(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	hub := manager.GetOrCreateHub("GAME00000001")
	client := NewClient(hub, "127.0.0.1:50001")
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	broadcaster.HandleEvent(model.Event{
		Type:   model.EventPieceMoved,
		GameID: "GAME00000002",
	})

	select {
	case msg := <-client.send:
		t.Errorf("client received a message for another game: %s", string(msg))
	case <-time.After(50 * time.Millisecond):
	}

	manager.RemoveHub("GAME00000001")
}

func TestBroadcaster_GameAbandonedReleasesHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	manager.GetOrCreateHub("GAME00000001")

	broadcaster.HandleEvent(model.Event{
		Type:   model.EventGameAbandoned,
		GameID: "GAME00000001",
	})

	if hub := manager.GetHub("GAME00000001"); hub != nil {
		t.Error("hub still registered after game was abandoned")
	}
}

func TestBroadcaster_NoHubDoesNotPanic(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	broadcaster.HandleEvent(model.Event{
		Type:   model.EventGameOver,
		GameID: "NOEXIST",
	})
}
