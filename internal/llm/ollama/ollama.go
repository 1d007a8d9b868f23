package ollama

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/movieprompt/movieprompt/internal/config"
	"github.com/movieprompt/movieprompt/internal/llm"
)

// Client asks a local Ollama server for recommendations through /api/chat.
type Client struct {
	endpoint   config.Endpoint
	httpClient *http.Client
	logger     *slog.Logger
}

// New returns an Ollama backend for endpoint. Nil httpClient and logger fall back to defaults.
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
	Model    string        `json:"model"`
	Messages []llm.Message `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  chatOptions   `json:"options"`
}

type chatOptions struct {
	Temperature float64 `json:"temperature"`
}

type chatResponse struct {
	Message         llm.Message `json:"message"`
	Done            bool        `json:"done"`
	PromptEvalCount int         `json:"prompt_eval_count"`
	EvalCount       int         `json:"eval_count"`
}

// Complete sends the system framing and the prompt as one non-streaming chat.
func (c *Client) Complete(ctx context.Context, req llm.Request) (string, error) {
	model := req.ModelOr(c.endpoint.Model)
	url := strings.TrimRight(c.endpoint.BaseURL, "/") + "/api/chat"

	c.logger.Debug("Sending recommendation request", "provider", llm.Ollama, "model", model, "prompt_bytes", len(req.Prompt))

	var resp chatResponse
	err := llm.PostJSON(ctx, c.httpClient, llm.Ollama, url, nil, chatRequest{
		Model:    model,
		Messages: llm.Messages(req),
		Options:  chatOptions{Temperature: req.Temperature},
	}, &resp)
	if err != nil {
		return "", err
	}

	answer := strings.TrimSpace(resp.Message.Content)
	if answer == "" {
		return "", fmt.Errorf("empty recommendation from %s model %s", llm.Ollama, model)
	}
	c.logger.Info("Recommendation received", "provider", llm.Ollama, "model", model,
		"prompt_tokens", resp.PromptEvalCount, "completion_tokens", resp.EvalCount)
	return answer, nil
}
