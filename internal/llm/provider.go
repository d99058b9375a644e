package llm

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	openRouterBaseURL = "https://openrouter.ai/api/v1"
	openAIBaseURL     = "https://api.openai.com/v1"
	ollamaBaseURL     = "http://localhost:11434/v1"
)

// NewClient builds a completion client for cfg.Provider. A missing API key
// is not an error: the client is returned and every call falls back.
func NewClient(cfg Config, log *zap.Logger) (*Client, error) {
	if log == nil {
		log = zap.NewNop()
	}
	cfg = cfg.withDefaults()
	provider := strings.ToLower(cfg.Provider)

	var chat Chatter
	switch provider {
	case "", "openrouter":
		provider = "openrouter"
		cfg.BaseURL = orDefault(cfg.BaseURL, openRouterBaseURL)
		cfg.Model = orDefault(cfg.Model, "anthropic/claude-3-haiku")
		cfg.Referer = orDefault(cfg.Referer, DefaultReferer)
		cfg.Title = orDefault(cfg.Title, DefaultTitle)
		chat = NewOpenAIClient(cfg)
	case "openai":
		cfg.BaseURL = orDefault(cfg.BaseURL, openAIBaseURL)
		cfg.Model = orDefault(cfg.Model, "gpt-4o-mini")
		chat = NewOpenAIClient(cfg)
	case "ollama":
		cfg.BaseURL = orDefault(cfg.BaseURL, ollamaBaseURL)
		cfg.Model = orDefault(cfg.Model, "llama3.1")
		cfg.APIKey = orDefault(cfg.APIKey, "ollama")
		chat = NewOpenAIClient(cfg)
	case "anthropic":
		cfg.Model = orDefault(cfg.Model, "claude-3-haiku-20240307")
		chat = NewAnthropicClient(cfg)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", cfg.Provider)
	}

	return &Client{
		provider: provider,
		model:    cfg.Model,
		hasKey:   strings.TrimSpace(cfg.APIKey) != "",
		timeout:  cfg.Timeout,
		chat:     chat,
		log:      log.With(zap.String("component", "llm")),
	}, nil
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}
