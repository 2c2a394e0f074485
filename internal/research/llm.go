package research

import (
	"context"
	"fmt"
	"strings"
)

// LLM completes a single system + user exchange.
type LLM interface {
	Name() string
	Complete(ctx context.Context, system, user string) (string, error)
}

// Temperature keeps reports close to the source figures.
const Temperature = 0.2

// LLMConfig selects and configures a backend.
type LLMConfig struct {
	Provider string // deepseek, gemini
	APIKey   string
	Model    string
	BaseURL  string
}

// NewLLM builds the backend named by cfg.Provider.
func NewLLM(ctx context.Context, cfg LLMConfig) (LLM, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llm api key is required for provider %q", cfg.Provider)
	}
	switch strings.ToLower(cfg.Provider) {
	case "", "deepseek":
		return NewDeepSeekLLM(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	case "gemini":
		return NewGeminiLLM(ctx, cfg.APIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
