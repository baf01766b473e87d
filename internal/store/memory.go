package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Anthonytesla02/AxelTycoon/internal/game"
)

// Memory is the in-process Store. Records are deep-copied on the way in and
// out so callers can never mutate stored state through a shared slice.
type Memory struct {
	mu    sync.RWMutex
	games map[string]*Record
}

func NewMemory() *Memory {
	return &Memory{games: make(map[string]*Record)}
}

func (m *Memory) Create(_ context.Context, playerName string, state game.GameState) (*Record, error) {
	now := time.Now().UTC()
	rec := &Record{
		ID:         uuid.NewString(),
		PlayerName: playerName,
		Turn:       state.Turn,
		Seed:       state.Seed,
		GameData:   state,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	stored, err := cloneRecord(rec)
	if err != nil {
		return nil, err
	}
	m.games[rec.ID] = stored
	return rec, nil
}

func (m *Memory) Get(_ context.Context, id string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneRecord(rec)
}

func (m *Memory) GetByPlayer(_ context.Context, playerName string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var latest *Record
	for _, rec := range m.games {
		if rec.PlayerName != playerName {
			continue
		}
		if latest == nil || rec.CreatedAt.After(latest.CreatedAt) {
			latest = rec
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	return cloneRecord(latest)
}

func (m *Memory) Update(_ context.Context, id string, state game.GameState) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	if rec.Turn != state.Turn-1 {
		return nil, fmt.Errorf("%w: stored turn %d, incoming turn %d", ErrTurnConflict, rec.Turn, state.Turn)
	}
	rec.Turn = state.Turn
	rec.Seed = state.Seed
	rec.GameData = state
	rec.UpdatedAt = time.Now().UTC()

	// Re-clone so the stored copy stops aliasing the caller's slices.
	stored, err := cloneRecord(rec)
	if err != nil {
		return nil, err
	}
	m.games[id] = stored
	return cloneRecord(stored)
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; !ok {
		return ErrNotFound
	}
	delete(m.games, id)
	return nil
}

func (m *Memory) List(_ context.Context) ([]*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Record, 0, len(m.games))
	for _, rec := range m.games {
		clone, err := cloneRecord(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) Close() {}

func cloneRecord(rec *Record) (*Record, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("clone record: %w", err)
	}
	var out Record
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("clone record: %w", err)
	}
	return &out, nil
}
