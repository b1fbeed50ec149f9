package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Generator produces text for a request. Implementations make exactly one
// attempt; a failed call is reported to the caller and never retried.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// ErrEmptyResponse is returned when the provider answered without text.
var ErrEmptyResponse = errors.New("ai: empty response")

// Client calls the internal ai-service.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "http://ai-service:8000"
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: &http.Client{Timeout: timeout}}
}

type generateRequest struct {
	System      string  `json:"system"`
	Input       string  `json:"input"`
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	Text  string `json:"text"`
	Error string `json:"error"`
}

// Generate posts the request to /v1/generate and returns the cleaned text.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	b, err := json.Marshal(generateRequest{
		System:      SystemPrompt(req.Kind),
		Input:       req.input(),
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/generate", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("ai-service request failed: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}

	var out generateResponse
	decodeErr := json.Unmarshal(respBytes, &out)

	if resp.StatusCode != http.StatusOK {
		if decodeErr == nil && out.Error != "" {
			return "", fmt.Errorf("ai-service returned %d: %s", resp.StatusCode, out.Error)
		}
		return "", fmt.Errorf("ai-service returned non-200 status: %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("ai-service returned invalid json: %w", decodeErr)
	}
	if out.Error != "" {
		return "", fmt.Errorf("ai-service error: %s", out.Error)
	}

	text := cleanOutput(req.Kind, out.Text)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
