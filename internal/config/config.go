package config

import (
	"log"

	"github.com/caarlos0/env/v6"
)

type LLMProvider string

const (
	ProviderOpenAI LLMProvider = "openai"
	ProviderGemini LLMProvider = "gemini"
)

type Config struct {
	// The single number allowed to talk to the bot, e.g. "15551234567".
	AuthorizedNumber string `env:"AUTHORIZED_USER_NUMBER,required"`

	// WhatsApp session store
	SessionDBPath string `env:"SESSION_DB_PATH" envDefault:"data/whatsapp-session.db"`

	// LLM settings
	LLMProvider   LLMProvider `env:"LLM_PROVIDER" envDefault:"gemini"`
	OpenAIAPIKey  string      `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string      `env:"OPENAI_BASE_URL"`
	OpenAIModel   string      `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	GeminiAPIKey  string      `env:"GEMINI_API_KEY"`
	GeminiModel   string      `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`

	// Plaid
	PlaidClientID    string `env:"PLAID_CLIENT_ID"`
	PlaidSecret      string `env:"PLAID_SECRET"`
	PlaidEnv         string `env:"PLAID_ENV" envDefault:"sandbox"`
	PlaidAccessToken string `env:"PLAID_ACCESS_TOKEN"`

	// Gmail
	GmailCredentialsPath string `env:"GMAIL_CREDENTIALS_PATH" envDefault:"data/gmail-credentials.json"`
	GmailTokenPath       string `env:"GMAIL_TOKEN_PATH" envDefault:"data/gmail-token.json"`

	// Monitoring thresholds
	SpendingAlertThreshold float64 `env:"SPENDING_ALERT_THRESHOLD" envDefault:"100"`
	UnnecessaryCategories  string  `env:"UNNECESSARY_SPENDING_CATEGORIES"`
	MaxSocialMediaHours    float64 `env:"MAX_SOCIAL_MEDIA_HOURS_PER_DAY" envDefault:"2"`

	// Storage
	ActivityFilePath string `env:"ACTIVITY_FILE_PATH" envDefault:"data/activities.json"`
	StyleFilePath    string `env:"STYLE_FILE_PATH" envDefault:"data/user-style.json"`

	// Keep-alive HTTP server (required by some hosting platforms)
	HTTPPort string `env:"PORT" envDefault:"3000"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}
