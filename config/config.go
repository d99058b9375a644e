package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	LLMProvider    string        `env:"LLM_PROVIDER" envDefault:"openrouter"` // openrouter, openai, ollama, anthropic
	OpenRouterKey  string        `env:"OPENROUTER_API_KEY"`
	OpenAIKey      string        `env:"OPENAI_API_KEY"`
	AnthropicKey   string        `env:"ANTHROPIC_API_KEY"`
	LLMModel       string        `env:"LLM_MODEL"`
	LLMBaseURL     string        `env:"LLM_BASE_URL"`
	LLMTimeout     time.Duration `env:"LLM_TIMEOUT" envDefault:"30s"`
	LenientHeaders bool          `env:"LENIENT_HEADERS" envDefault:"false"`
	DatabasePath   string        `env:"DATABASE_PATH" envDefault:"./jot.db"`
	HTTPAddr       string        `env:"HTTP_ADDR" envDefault:":8080"`
	LogMode        string        `env:"LOG_MODE" envDefault:"development"`
	Users          string        `env:"JOT_USERS"` // user:Display Name:password;...
	SessionDays    int           `env:"AUTH_SESSION_DAYS" envDefault:"30"`
	DiscordWebhook string        `env:"DISCORD_WEBHOOK_URL"`
	CheckInCron    string        `env:"CHECK_IN_CRON" envDefault:"0 8 * * *"`
}

// Load reads ~/.jot/config and ./.env (if present) into the process
// environment and parses it. Variables already set in the environment win.
func Load() (*Config, error) {
	_ = godotenv.Load(ConfigFile()) // ignore error if no config
	_ = godotenv.Load()             // ignore error if no .env

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}

// APIKey returns the credential for the configured provider.
func (c *Config) APIKey() string {
	switch strings.ToLower(c.LLMProvider) {
	case "openai":
		return c.OpenAIKey
	case "anthropic":
		return c.AnthropicKey
	case "ollama":
		return "ollama"
	default:
		return c.OpenRouterKey
	}
}

// User is a login seeded from JOT_USERS.
type User struct {
	Username string
	Name     string
	Password string
}

// ParseUsers splits JOT_USERS. An empty value yields the demo account.
func (c *Config) ParseUsers() ([]User, error) {
	if strings.TrimSpace(c.Users) == "" {
		return []User{{Username: "demo_user", Name: "Demo User", Password: "demo123"}}, nil
	}
	var users []User
	for _, raw := range strings.Split(c.Users, ";") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		parts := strings.SplitN(raw, ":", 3)
		if len(parts) != 3 || parts[0] == "" || parts[2] == "" {
			return nil, fmt.Errorf("invalid JOT_USERS entry %q: want username:name:password", raw)
		}
		users = append(users, User{Username: parts[0], Name: parts[1], Password: parts[2]})
	}
	return users, nil
}

func ConfigDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".jot")
}

func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config")
}
