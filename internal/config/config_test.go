package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"MAOYAN_BASE_URL", "MAOYAN_USER_AGENT", "MAOYAN_TIMEOUT", "PROMPT_OUTPUT"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("Expected %s, got %s", DefaultBaseURL, cfg.BaseURL)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Expected %v, got %v", DefaultTimeout, cfg.Timeout)
	}
	if cfg.OutputPath != DefaultOutputPath {
		t.Errorf("Expected %s, got %s", DefaultOutputPath, cfg.OutputPath)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MAOYAN_BASE_URL", "http://localhost:9999/maoyan")
	t.Setenv("MAOYAN_USER_AGENT", "test-agent")
	t.Setenv("MAOYAN_TIMEOUT", "5")
	t.Setenv("PROMPT_OUTPUT", "out/prompt.md")

	cfg := Load()
	if cfg.BaseURL != "http://localhost:9999/maoyan" {
		t.Errorf("Unexpected base URL %s", cfg.BaseURL)
	}
	if cfg.UserAgent != "test-agent" {
		t.Errorf("Unexpected user agent %s", cfg.UserAgent)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Expected 5s, got %v", cfg.Timeout)
	}
	if cfg.OutputPath != "out/prompt.md" {
		t.Errorf("Unexpected output path %s", cfg.OutputPath)
	}
}

func TestLoadIgnoresBadTimeout(t *testing.T) {
	t.Setenv("MAOYAN_TIMEOUT", "soon")
	if got := Load().Timeout; got != DefaultTimeout {
		t.Errorf("Expected default timeout, got %v", got)
	}
}

func TestLoadLLM(t *testing.T) {
	for _, k := range []string{"LLM_TIMEOUT", "OLLAMA_URL", "OLLAMA_MODEL", "OPENAI_BASE_URL", "OPENAI_MODEL", "GEMINI_MODEL", "GEMINI_API_KEY"} {
		t.Setenv(k, "")
	}
	t.Setenv("OLLAMA_HOST", "http://gpu-box:11434")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	llm := Load().LLM
	if llm.Timeout != DefaultLLMTimeout {
		t.Errorf("Expected %v, got %v", DefaultLLMTimeout, llm.Timeout)
	}
	if llm.Ollama.BaseURL != "http://gpu-box:11434" {
		t.Errorf("Expected OLLAMA_HOST fallback, got %s", llm.Ollama.BaseURL)
	}
	if llm.Ollama.Model != DefaultOllamaModel || llm.OpenAI.Model != DefaultOpenAIModel || llm.Gemini.Model != DefaultGeminiModel {
		t.Errorf("Unexpected default models: %+v", llm)
	}
	if llm.OpenAI.BaseURL != DefaultOpenAIBaseURL || llm.OpenAI.APIKey != "sk-test" {
		t.Errorf("Unexpected OpenAI endpoint: %+v", llm.OpenAI)
	}
	if llm.Gemini.APIKey != "" {
		t.Errorf("Expected no Gemini key, got %q", llm.Gemini.APIKey)
	}

	t.Setenv("OLLAMA_URL", "http://localhost:8080")
	t.Setenv("OLLAMA_MODEL", "llama3")
	t.Setenv("LLM_TIMEOUT", "10")
	llm = Load().LLM
	if llm.Ollama.BaseURL != "http://localhost:8080" || llm.Ollama.Model != "llama3" {
		t.Errorf("Expected OLLAMA_URL and OLLAMA_MODEL to win, got %+v", llm.Ollama)
	}
	if llm.Timeout != 10*time.Second {
		t.Errorf("Expected 10s, got %v", llm.Timeout)
	}
}
