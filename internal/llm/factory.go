package llm

import (
	"fmt"
	"strings"

	"accountabot/internal/config"
)

// geminiOpenAIBaseURL is Google's OpenAI-compatible endpoint, which lets
// the same client implementation serve both providers.
const geminiOpenAIBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

// Factory creates LLM clients with consistent logic
type Factory struct {
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	GeminiAPIKey  string
	GeminiModel   string
}

func NewFactory(cfg *config.Config) *Factory {
	return &Factory{
		OpenAIAPIKey:  cfg.OpenAIAPIKey,
		OpenAIBaseURL: cfg.OpenAIBaseURL,
		OpenAIModel:   cfg.OpenAIModel,
		GeminiAPIKey:  cfg.GeminiAPIKey,
		GeminiModel:   cfg.GeminiModel,
	}
}

func (f *Factory) CreateClient(provider string) (Client, error) {
	switch config.LLMProvider(strings.ToLower(provider)) {
	case config.ProviderOpenAI:
		return NewOpenAI(f.OpenAIAPIKey, f.OpenAIBaseURL, f.OpenAIModel), nil
	case config.ProviderGemini:
		return NewOpenAI(f.GeminiAPIKey, geminiOpenAIBaseURL, f.GeminiModel), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", provider)
	}
}
