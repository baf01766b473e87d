// Package store persists game sessions. Two implementations share the Store
// interface: an in-process map for development and tests, and Postgres for
// real deployments. The engine never touches the store; callers load a
// record, run a turn, and save it back with a compare-and-swap on the turn
// counter.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/Anthonytesla02/AxelTycoon/internal/game"
)

var (
	ErrNotFound = errors.New("game not found")
	// ErrTurnConflict means another writer advanced the game between load
	// and save. The caller should reload and retry.
	ErrTurnConflict = errors.New("game turn conflict")
)

// Record is one saved game session. Turn and Seed are duplicated out of
// GameData so lookups and the CAS check never need to parse the state blob.
type Record struct {
	ID         string         `json:"id"`
	PlayerName string         `json:"playerName"`
	Turn       int            `json:"turn"`
	Seed       string         `json:"seed"`
	GameData   game.GameState `json:"gameData"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

type Store interface {
	// Create assigns the record a fresh id and stores it.
	Create(ctx context.Context, playerName string, state game.GameState) (*Record, error)
	Get(ctx context.Context, id string) (*Record, error)
	// GetByPlayer returns the most recently created game for the player.
	GetByPlayer(ctx context.Context, playerName string) (*Record, error)
	// Update saves state for the game, requiring that the stored turn is
	// exactly one behind state.Turn; otherwise ErrTurnConflict.
	Update(ctx context.Context, id string, state game.GameState) (*Record, error)
	Delete(ctx context.Context, id string) error
	// List returns all records ordered by creation time, newest first.
	List(ctx context.Context) ([]*Record, error)

	Close()
}
