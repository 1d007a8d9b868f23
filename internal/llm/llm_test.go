package llm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessages(t *testing.T) {
	msgs := Messages(Request{Prompt: "<xaiArtifact>...</xaiArtifact>"})
	require.Len(t, msgs, 2)
	assert.Equal(t, Message{Role: "system", Content: SystemPrompt}, msgs[0])
	assert.Equal(t, Message{Role: "user", Content: "<xaiArtifact>...</xaiArtifact>"}, msgs[1])

	msgs = Messages(Request{System: "只推荐动画", Prompt: "p"})
	assert.Equal(t, "只推荐动画", msgs[0].Content)
}

func TestModelOr(t *testing.T) {
	assert.Equal(t, "gpt-4o", Request{}.ModelOr("gpt-4o"))
	assert.Equal(t, "llama3", Request{Model: "llama3"}.ModelOr("gpt-4o"))
}

func TestPostJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"answer": "好"}`))
	}))
	defer srv.Close()

	var out struct {
		Answer string `json:"answer"`
	}
	header := http.Header{"Authorization": {"Bearer k"}}
	require.NoError(t, PostJSON(context.Background(), srv.Client(), "test", srv.URL, header, map[string]string{"q": "x"}, &out))
	assert.Equal(t, "好", out.Answer)
}

func TestPostJSONStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	err := PostJSON(context.Background(), srv.Client(), "ollama", srv.URL, nil, struct{}{}, &struct{}{})
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "ollama", se.Provider)
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Equal(t, "model not found", se.Body)
}
