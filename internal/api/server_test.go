package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Anthonytesla02/AxelTycoon/internal/config"
	"github.com/Anthonytesla02/AxelTycoon/internal/game"
	"github.com/Anthonytesla02/AxelTycoon/internal/store"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.APIConfig{DefaultPlayer: "Axel"}
	srv := New(cfg, nil, game.NewEngine(nil, nil), store.NewMemory())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, in any, out any) int {
	t.Helper()
	var body bytes.Buffer
	if in != nil {
		if err := json.NewEncoder(&body).Encode(in); err != nil {
			t.Fatal(err)
		}
	}
	req, err := http.NewRequest(method, url, &body)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s: %v", method, url, err)
		}
	}
	return resp.StatusCode
}

func TestGameLifecycle(t *testing.T) {
	ts := testServer(t)

	var created store.Record
	status := doJSON(t, http.MethodPost, ts.URL+"/v1/games",
		map[string]any{"playerName": "axel", "seed": "api-seed"}, &created)
	if status != http.StatusCreated {
		t.Fatalf("create status = %d", status)
	}
	if created.ID == "" || created.Turn != 0 || created.Seed != "api-seed" {
		t.Fatalf("created = %+v", created)
	}
	if created.GameData.Player.Cash != 100000 {
		t.Fatalf("starting cash = %v", created.GameData.Player.Cash)
	}

	var turnOut struct {
		Game   store.Record    `json:"game"`
		Report game.TurnReport `json:"report"`
	}
	status = doJSON(t, http.MethodPost, ts.URL+"/v1/games/"+created.ID+"/turn",
		map[string]any{"action": map[string]any{"type": "invest", "target": "TECH001", "amount": 1000}},
		&turnOut)
	if status != http.StatusOK {
		t.Fatalf("turn status = %d", status)
	}
	if turnOut.Game.Turn != 1 || turnOut.Report.Turn != 1 {
		t.Fatalf("turn = %d / report %d, want 1", turnOut.Game.Turn, turnOut.Report.Turn)
	}
	if !turnOut.Report.Player.Applied {
		t.Fatalf("invest rejected: %s", turnOut.Report.Player.Reason)
	}

	var fetched store.Record
	if status := doJSON(t, http.MethodGet, ts.URL+"/v1/games/"+created.ID, nil, &fetched); status != http.StatusOK {
		t.Fatalf("get status = %d", status)
	}
	if fetched.GameData.Player.Cash != 99000 {
		t.Fatalf("persisted cash = %v, want 99000", fetched.GameData.Player.Cash)
	}

	var byPlayer store.Record
	if status := doJSON(t, http.MethodGet, ts.URL+"/v1/games/player/axel", nil, &byPlayer); status != http.StatusOK {
		t.Fatalf("get by player status = %d", status)
	}
	if byPlayer.ID != created.ID {
		t.Fatalf("by player id = %s, want %s", byPlayer.ID, created.ID)
	}

	var list struct {
		Games []store.Record `json:"games"`
	}
	if status := doJSON(t, http.MethodGet, ts.URL+"/v1/games", nil, &list); status != http.StatusOK {
		t.Fatalf("list status = %d", status)
	}
	if len(list.Games) != 1 {
		t.Fatalf("list = %d games, want 1", len(list.Games))
	}

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/v1/games/"+created.ID, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}

	if status := doJSON(t, http.MethodGet, ts.URL+"/v1/games/"+created.ID, nil, nil); status != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", status)
	}
}

func TestTurnErrorMapping(t *testing.T) {
	ts := testServer(t)

	var created store.Record
	doJSON(t, http.MethodPost, ts.URL+"/v1/games", map[string]any{"playerName": "axel"}, &created)

	// Reserved action types map to 400 and the turn does not advance.
	status := doJSON(t, http.MethodPost, ts.URL+"/v1/games/"+created.ID+"/turn",
		map[string]any{"action": map[string]any{"type": "hire"}}, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("reserved action status = %d, want 400", status)
	}

	var fetched store.Record
	doJSON(t, http.MethodGet, ts.URL+"/v1/games/"+created.ID, nil, &fetched)
	if fetched.Turn != 0 {
		t.Fatalf("turn advanced to %d on a rejected action", fetched.Turn)
	}

	status = doJSON(t, http.MethodPost, ts.URL+"/v1/games/missing/turn",
		map[string]any{"action": map[string]any{"type": "influence"}}, nil)
	if status != http.StatusNotFound {
		t.Fatalf("missing game status = %d, want 404", status)
	}

	// Unknown body fields are rejected.
	status = doJSON(t, http.MethodPost, ts.URL+"/v1/games",
		map[string]any{"player": "axel"}, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("unknown field status = %d, want 400", status)
	}
}
