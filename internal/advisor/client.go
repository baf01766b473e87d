// Package advisor is the Mistral-backed narrative layer: it picks rival
// actions in character and writes the turn's news copy. The whole package is
// optional; a nil *Client disables it and the engine falls back to its local
// deterministic policies.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	defaultAPIURL = "https://api.mistral.ai/v1/chat/completions"
	defaultModel  = "mistral-large-latest"
)

// Client wraps the Mistral chat-completions API.
type Client struct {
	apiKey     string
	model      string
	apiURL     string
	httpClient *http.Client
	log        *slog.Logger
}

// New creates a Mistral client. Returns nil if apiKey is empty, which
// disables advisor features entirely.
func New(apiKey, model string, logger *slog.Logger) *Client {
	if apiKey == "" {
		return nil
	}
	if model == "" {
		model = defaultModel
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		apiKey: apiKey,
		model:  model,
		apiURL: defaultAPIURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: logger,
	}
}

// Enabled reports whether the client is configured. Safe on a nil receiver.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// completeJSON sends one system+user exchange in json_object mode and
// unmarshals the reply into out.
func (c *Client) completeJSON(ctx context.Context, system, user string, out any) error {
	if !c.Enabled() {
		return fmt.Errorf("advisor not configured")
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		ResponseFormat: responseFormat{Type: "json_object"},
	})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mistral call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mistral error %d: %s", resp.StatusCode, string(respBody))
	}

	var chat chatResponse
	if err := json.Unmarshal(respBody, &chat); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return fmt.Errorf("empty response")
	}

	c.log.Debug("mistral call",
		"model", c.model,
		"prompt_tokens", chat.Usage.PromptTokens,
		"completion_tokens", chat.Usage.CompletionTokens,
	)

	if err := json.Unmarshal([]byte(chat.Choices[0].Message.Content), out); err != nil {
		return fmt.Errorf("parse model output: %w", err)
	}
	return nil
}
