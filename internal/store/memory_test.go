package store

import (
	"context"
	"errors"
	"testing"

	"github.com/Anthonytesla02/AxelTycoon/internal/game"
)

func testState(seed string, turn int) game.GameState {
	return game.GameState{
		Turn:   turn,
		Seed:   seed,
		Player: game.Player{Name: "axel", Cash: 100000},
		Assets: game.InitializeAssets(seed),
	}
}

func TestMemoryCreateAndGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	rec, err := m.Create(ctx, "axel", testState("s1", 0))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.ID == "" || rec.PlayerName != "axel" || rec.Turn != 0 || rec.Seed != "s1" {
		t.Fatalf("record = %+v", rec)
	}

	got, err := m.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.GameData.Player.Cash != 100000 {
		t.Fatalf("cash = %v", got.GameData.Player.Cash)
	}

	if _, err := m.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get missing: %v, want ErrNotFound", err)
	}
}

func TestMemoryGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	rec, err := m.Create(ctx, "axel", testState("s1", 0))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	first, _ := m.Get(ctx, rec.ID)
	first.GameData.Assets[0].CurrentPrice = -1

	second, _ := m.Get(ctx, rec.ID)
	if second.GameData.Assets[0].CurrentPrice == -1 {
		t.Fatal("mutation through a returned record reached the store")
	}
}

func TestMemoryUpdateTurnCAS(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	rec, err := m.Create(ctx, "axel", testState("s1", 0))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := m.Update(ctx, rec.ID, testState("s1", 1)); err != nil {
		t.Fatalf("Update turn 0->1: %v", err)
	}
	// Replaying the same turn must conflict.
	if _, err := m.Update(ctx, rec.ID, testState("s1", 1)); !errors.Is(err, ErrTurnConflict) {
		t.Fatalf("replayed update: %v, want ErrTurnConflict", err)
	}
	// Skipping a turn must conflict too.
	if _, err := m.Update(ctx, rec.ID, testState("s1", 3)); !errors.Is(err, ErrTurnConflict) {
		t.Fatalf("skipping update: %v, want ErrTurnConflict", err)
	}
	if _, err := m.Update(ctx, "missing", testState("s1", 1)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update missing: %v, want ErrNotFound", err)
	}

	got, err := m.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Turn != 1 {
		t.Fatalf("turn = %d, want 1", got.Turn)
	}
}

func TestMemoryGetByPlayerPicksNewest(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	if _, err := m.Create(ctx, "axel", testState("old", 0)); err != nil {
		t.Fatal(err)
	}
	newer, err := m.Create(ctx, "axel", testState("new", 0))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Create(ctx, "rival", testState("other", 0)); err != nil {
		t.Fatal(err)
	}

	got, err := m.GetByPlayer(ctx, "axel")
	if err != nil {
		t.Fatalf("GetByPlayer: %v", err)
	}
	if got.ID != newer.ID {
		t.Fatalf("got %s, want newest %s", got.ID, newer.ID)
	}
	if _, err := m.GetByPlayer(ctx, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetByPlayer nobody: %v, want ErrNotFound", err)
	}
}

func TestMemoryDeleteAndList(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	a, _ := m.Create(ctx, "axel", testState("a", 0))
	b, _ := m.Create(ctx, "beth", testState("b", 0))

	all, err := m.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("list = %d records, want 2", len(all))
	}

	if err := m.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := m.Delete(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: %v, want ErrNotFound", err)
	}

	all, _ = m.List(ctx)
	if len(all) != 1 || all[0].ID != b.ID {
		t.Fatalf("after delete list = %+v", all)
	}
}
