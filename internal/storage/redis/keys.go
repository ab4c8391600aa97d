package redis

import (
	"fmt"

	"github.com/jc-27901/reversed-minesweeper/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "rms"

// snapshotKey returns the Redis key for a game snapshot
func snapshotKey(id model.GameID) string {
	return fmt.Sprintf("%s:snapshot:%s", keyPrefix, id)
}

// gameIndexKey returns the Redis key for the SET of known game IDs
func gameIndexKey() string {
	return fmt.Sprintf("%s:idx:games", keyPrefix)
}
