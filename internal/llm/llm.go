// Package llm sends a rendered recommendation prompt to a chat model.
// Every backend receives the same transcript: SystemPrompt (or Request.System) as the
// system turn and the resolved prompt artifact as the user turn.
package llm

import (
	"context"
	"fmt"
)

// SystemPrompt frames the model as the recommender the prompt artifact describes.
const SystemPrompt = `你是一名专业的电影推荐助手。用户消息是一份已填写的电影推荐任务说明（Markdown，包在 <xaiArtifact> 标签内）。
请严格按照其中“输出要求”和“推荐逻辑”作答：只输出推荐结果，不要复述任务说明。
若“用户偏好”或“推荐场景”仍是 {user_preferences} / {recommendation_scenario} 占位符，视为未提供。`

// Provider names accepted by the CLI.
const (
	Ollama = "ollama"
	OpenAI = "openai"
	Gemini = "gemini"
)

// Request is a single recommendation request.
type Request struct {
	Model       string // empty uses the backend's configured model
	Temperature float64
	System      string // empty uses SystemPrompt
	Prompt      string // the resolved prompt artifact
}

// Provider defines the interface for an LLM backend that answers a rendered prompt
type Provider interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SystemText returns the system turn for req.
func (r Request) SystemText() string {
	if r.System == "" {
		return SystemPrompt
	}
	return r.System
}

// ModelOr returns r.Model, or def when the request leaves it empty.
func (r Request) ModelOr(def string) string {
	if r.Model == "" {
		return def
	}
	return r.Model
}

// Messages returns the chat transcript for req.
func Messages(req Request) []Message {
	return []Message{
		{Role: "system", Content: req.SystemText()},
		{Role: "user", Content: req.Prompt},
	}
}

// StatusError reports a non-2xx response from a backend.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Provider, e.StatusCode, e.Body)
}
