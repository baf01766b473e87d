package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Anthonytesla02/AxelTycoon/internal/game"
	"github.com/Anthonytesla02/AxelTycoon/internal/store"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// TurnResponse pairs the saved game with the turn's diagnostic report.
type TurnResponse struct {
	Game   store.Record    `json:"game"`
	Report game.TurnReport `json:"report"`
}

func (c *Client) NewGame(ctx context.Context, playerName, seed string) (store.Record, error) {
	var out store.Record
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/games", map[string]any{
		"playerName": playerName,
		"seed":       seed,
	}, &out)
	return out, err
}

func (c *Client) Game(ctx context.Context, id string) (store.Record, error) {
	var out store.Record
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/games/"+url.PathEscape(id), nil, &out)
	return out, err
}

func (c *Client) GameByPlayer(ctx context.Context, playerName string) (store.Record, error) {
	var out store.Record
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/games/player/"+url.PathEscape(playerName), nil, &out)
	return out, err
}

func (c *Client) Games(ctx context.Context) ([]store.Record, error) {
	var out struct {
		Games []store.Record `json:"games"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/games", nil, &out)
	return out.Games, err
}

func (c *Client) Turn(ctx context.Context, id string, action game.Action) (TurnResponse, error) {
	var out TurnResponse
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/games/"+url.PathEscape(id)+"/turn", map[string]any{
		"action": action,
	}, &out)
	return out, err
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.jsonRequest(ctx, http.MethodDelete, "/v1/games/"+url.PathEscape(id), nil, nil)
}

func (c *Client) jsonRequest(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("api status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
