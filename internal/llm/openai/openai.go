package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/movieprompt/movieprompt/internal/config"
	"github.com/movieprompt/movieprompt/internal/llm"
)

// ErrNoAPIKey is returned when the endpoint carries no API key.
var ErrNoAPIKey = errors.New("OPENAI_API_KEY is not set")

// Client asks an OpenAI compatible chat completions endpoint for recommendations.
type Client struct {
	endpoint   config.Endpoint
	httpClient *http.Client
	logger     *slog.Logger
}

// New returns an OpenAI backend for endpoint. Nil httpClient and logger fall back to defaults.
func New(endpoint config.Endpoint, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{endpoint: endpoint, httpClient: httpClient, logger: logger}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []llm.Message `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message      llm.Message `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// Complete sends the system framing and the prompt as a two-message chat.
func (c *Client) Complete(ctx context.Context, req llm.Request) (string, error) {
	if c.endpoint.APIKey == "" {
		return "", ErrNoAPIKey
	}
	model := req.ModelOr(c.endpoint.Model)
	url := strings.TrimRight(c.endpoint.BaseURL, "/") + "/chat/completions"
	header := http.Header{"Authorization": {"Bearer " + c.endpoint.APIKey}}

	c.logger.Debug("Sending recommendation request", "provider", llm.OpenAI, "model", model, "prompt_bytes", len(req.Prompt))

	var resp chatResponse
	err := llm.PostJSON(ctx, c.httpClient, llm.OpenAI, url, header, chatRequest{
		Model:       model,
		Messages:    llm.Messages(req),
		Temperature: req.Temperature,
	}, &resp)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from %s model %s", llm.OpenAI, model)
	}
	choice := resp.Choices[0]
	if choice.FinishReason == "length" {
		c.logger.Warn("Recommendation truncated", "provider", llm.OpenAI, "model", model)
	}
	c.logger.Info("Recommendation received", "provider", llm.OpenAI, "model", model,
		"prompt_tokens", resp.Usage.PromptTokens, "completion_tokens", resp.Usage.CompletionTokens)
	return strings.TrimSpace(choice.Message.Content), nil
}
