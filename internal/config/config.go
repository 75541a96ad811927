package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string `env:"PORT" envDefault:"5000"`
	Env  string `env:"ENV" envDefault:"development"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Persistence
	PersistChats bool   `env:"PERSIST_CHATS" envDefault:"true"`
	DatabaseURL  string `env:"DATABASE_URL"`

	// Redis (optional, enables the record feed)
	RedisURL string `env:"REDIS_URL"`

	// Gemini AI
	GeminiAPIKey string `env:"GEMINI_API_KEY,required,notEmpty"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`

	// Frontend
	FrontendURL string `env:"FRONTEND_URL" envDefault:"*"`
}

// ClientConfig is what the terminal front-end needs to reach the relay.
type ClientConfig struct {
	BackendURL string `env:"BACKEND_URL,required,notEmpty"`
}

// ConfigurationError reports a missing or unusable setting. It is never retried.
type ConfigurationError struct {
	Key string
	Err error
}

func (e *ConfigurationError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("required environment variable %s is not set", e.Key)
	}
	return fmt.Sprintf("invalid configuration: %v", e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, configurationError(err)
	}

	if cfg.PersistChats && cfg.DatabaseURL == "" {
		return nil, &ConfigurationError{Key: "DATABASE_URL"}
	}

	return &cfg, nil
}

func LoadClient() (*ClientConfig, error) {
	godotenv.Load()

	var cfg ClientConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, configurationError(err)
	}
	return &cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func configurationError(err error) error {
	var agg env.AggregateError
	if !errors.As(err, &agg) {
		return &ConfigurationError{Err: err}
	}

	for _, e := range agg.Errors {
		var notSet env.EnvVarIsNotSetError
		if errors.As(e, &notSet) {
			return &ConfigurationError{Key: notSet.Key, Err: err}
		}
		var empty env.EmptyEnvVarError
		if errors.As(e, &empty) {
			return &ConfigurationError{Key: empty.Key, Err: err}
		}
	}

	return &ConfigurationError{Err: err}
}
