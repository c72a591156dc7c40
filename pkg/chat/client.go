package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/anonygrammer69/Menelogium/internal/config"
	log "github.com/sirupsen/logrus"
)

var ErrNotConfigured = fmt.Errorf("assistant is not configured")
var ErrUpstreamFailed = fmt.Errorf("assistant request failed")

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type ClientImpl struct {
	cfg        config.OpenAI
	httpClient *http.Client
}

func NewClient(cfg config.OpenAI, httpClient *http.Client) *ClientImpl {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &ClientImpl{
		cfg:        cfg,
		httpClient: httpClient,
	}
}

// Complete sends the prompt to the chat completions endpoint and returns the
// first choice with surrounding whitespace trimmed.
func (c *ClientImpl) Complete(ctx context.Context, prompt string) (string, error) {
	if c.cfg.APIKey == "" {
		log.Debug("no assistant API key configured, rejecting request")
		return "", ErrNotConfigured
	}

	body, err := json.Marshal(completionRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		MaxTokens: c.cfg.MaxTokens,
	})
	if err != nil {
		log.Errorf("Failed to encode request: %v", err)
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		log.Errorf("Failed to create request: %v", err)
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("Failed to execute request: %v", err)
		return "", fmt.Errorf("%w: %v", ErrUpstreamFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("%w: non-OK status: %d", ErrUpstreamFailed, resp.StatusCode)
		log.Error(err)
		return "", err
	}

	var response completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		log.Errorf("Failed to decode response: %v", err)
		return "", fmt.Errorf("%w: %v", ErrUpstreamFailed, err)
	}
	if len(response.Choices) == 0 {
		err := fmt.Errorf("%w: response contained no choices", ErrUpstreamFailed)
		log.Error(err)
		return "", err
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}
