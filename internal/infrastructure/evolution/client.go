// Package evolution sends WhatsApp messages through a user-hosted Evolution
// API instance.
package evolution

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"meusaldo/internal/domain/settings"
)

const defaultTimeout = 30 * time.Second

// Client implements reminder.Messenger against the Evolution API. The server
// URL, instance and key come from each user's settings, so one client serves
// every user.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a new Evolution API client.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// NewClientWithHTTP creates a client using the given HTTP client. Used by
// tests and for instrumented transports.
func NewClientWithHTTP(httpClient *http.Client) *Client {
	return &Client{httpClient: httpClient}
}

type sendTextRequest struct {
	Number string `json:"number"`
	Text   string `json:"text"`
}

// SendText posts a text message to POST {serverUrl}/message/sendText/{instance}
// authenticated with the instance API key.
func (c *Client) SendText(ctx context.Context, cfg settings.EvolutionSettings, number, text string) error {
	if !cfg.IsConfigured() {
		return fmt.Errorf("evolution api settings are incomplete")
	}

	url := fmt.Sprintf("%s/message/sendText/%s", strings.TrimSuffix(cfg.ServerURL, "/"), cfg.InstanceName)
	body, err := json.Marshal(sendTextRequest{Number: number, Text: text})
	if err != nil {
		return fmt.Errorf("failed to encode sendText request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build sendText request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call evolution api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("evolution api returned %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}
