package config

import (
	"os"
	"strconv"
	"time"
)

const (
	DefaultBaseURL    = "https://apis.netstart.cn/maoyan"
	DefaultUserAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/128.0.0.0 Safari/537.36"
	DefaultTimeout    = 30 * time.Second
	DefaultOutputPath = "movie_recommendation_prompt.md"

	DefaultLLMTimeout    = 120 * time.Second
	DefaultOllamaURL     = "http://localhost:11434"
	DefaultOllamaModel   = "qwen2.5:14b"
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultOpenAIModel   = "gpt-4o"
	DefaultGeminiModel   = "gemini-1.5-flash"
)

// Config holds settings read from the environment (and .env through godotenv).
type Config struct {
	// Movie API
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// Output
	OutputPath string

	LLM LLM
}

// LLM holds the recommendation backends' settings.
type LLM struct {
	Timeout time.Duration
	Ollama  Endpoint
	OpenAI  Endpoint
	Gemini  Endpoint
}

// Endpoint is where one backend lives and which model it runs by default.
type Endpoint struct {
	BaseURL string
	APIKey  string
	Model   string
}

// Load reads configuration from environment variables or falls back to defaults
func Load() Config {
	return Config{
		BaseURL:    getEnv("MAOYAN_BASE_URL", DefaultBaseURL),
		UserAgent:  getEnv("MAOYAN_USER_AGENT", DefaultUserAgent),
		Timeout:    time.Duration(getEnvInt("MAOYAN_TIMEOUT", int(DefaultTimeout/time.Second))) * time.Second,
		OutputPath: getEnv("PROMPT_OUTPUT", DefaultOutputPath),
		LLM: LLM{
			Timeout: time.Duration(getEnvInt("LLM_TIMEOUT", int(DefaultLLMTimeout/time.Second))) * time.Second,
			Ollama: Endpoint{
				BaseURL: getEnv("OLLAMA_URL", getEnv("OLLAMA_HOST", DefaultOllamaURL)),
				Model:   getEnv("OLLAMA_MODEL", DefaultOllamaModel),
			},
			OpenAI: Endpoint{
				BaseURL: getEnv("OPENAI_BASE_URL", DefaultOpenAIBaseURL),
				APIKey:  os.Getenv("OPENAI_API_KEY"),
				Model:   getEnv("OPENAI_MODEL", DefaultOpenAIModel),
			},
			Gemini: Endpoint{
				BaseURL: os.Getenv("GEMINI_BASE_URL"),
				APIKey:  os.Getenv("GEMINI_API_KEY"),
				Model:   getEnv("GEMINI_MODEL", DefaultGeminiModel),
			},
		},
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	return defaultVal
}
