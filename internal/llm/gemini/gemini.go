package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/movieprompt/movieprompt/internal/config"
	"github.com/movieprompt/movieprompt/internal/llm"
	"google.golang.org/api/option"
)

// ErrNoAPIKey is returned when the endpoint carries no API key.
var ErrNoAPIKey = errors.New("GEMINI_API_KEY is not set")

// Client asks Google Gemini for recommendations.
type Client struct {
	endpoint config.Endpoint
	logger   *slog.Logger
}

// New returns a Gemini backend for endpoint. A nil logger falls back to slog.Default().
func New(endpoint config.Endpoint, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{endpoint: endpoint, logger: logger}
}

// Complete sends the prompt with the framing as system instruction.
func (c *Client) Complete(ctx context.Context, req llm.Request) (string, error) {
	if c.endpoint.APIKey == "" {
		return "", ErrNoAPIKey
	}

	opts := []option.ClientOption{option.WithAPIKey(c.endpoint.APIKey)}
	if c.endpoint.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(c.endpoint.BaseURL))
	}
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	name := req.ModelOr(c.endpoint.Model)
	model := client.GenerativeModel(name)
	configure(model, req)

	c.logger.Debug("Sending recommendation request", "provider", llm.Gemini, "model", name, "prompt_bytes", len(req.Prompt))

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	answer, err := responseText(resp)
	if err != nil {
		return "", err
	}
	attrs := []any{"provider", llm.Gemini, "model", name}
	if u := resp.UsageMetadata; u != nil {
		attrs = append(attrs, "prompt_tokens", u.PromptTokenCount, "completion_tokens", u.CandidatesTokenCount)
	}
	c.logger.Info("Recommendation received", attrs...)
	return answer, nil
}

// configure applies the request's sampling and system framing to model.
func configure(model *genai.GenerativeModel, req llm.Request) {
	model.SetTemperature(float32(req.Temperature))
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.SystemText())}}
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned from %s", llm.Gemini)
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return "", fmt.Errorf("empty content returned from %s", llm.Gemini)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	answer := strings.TrimSpace(sb.String())
	if answer == "" {
		return "", fmt.Errorf("no text in %s response", llm.Gemini)
	}
	return answer, nil
}
