package config

import (
	"errors"
	"os"
	"testing"
)

func setServerEnv(t *testing.T, vars map[string]string) {
	t.Helper()
	for _, key := range []string{"PORT", "ENV", "LOG_LEVEL", "PERSIST_CHATS", "DATABASE_URL", "REDIS_URL", "GEMINI_API_KEY", "GEMINI_MODEL", "FRONTEND_URL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setServerEnv(t, map[string]string{
		"GEMINI_API_KEY": "key-123",
		"DATABASE_URL":   "postgres://localhost/talky",
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"port", cfg.Port, "5000"},
		{"env", cfg.Env, "development"},
		{"log level", cfg.LogLevel, "info"},
		{"model", cfg.GeminiModel, "gemini-1.5-flash"},
		{"frontend", cfg.FrontendURL, "*"},
		{"api key", cfg.GeminiAPIKey, "key-123"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, tc.got)
			}
		})
	}

	if !cfg.PersistChats {
		t.Error("Expected persistence to be enabled by default")
	}
	if cfg.Addr() != ":5000" {
		t.Errorf("Expected addr ':5000', got %q", cfg.Addr())
	}
}

func TestLoad_UsesEnvValues(t *testing.T) {
	setServerEnv(t, map[string]string{
		"GEMINI_API_KEY": "key-123",
		"PORT":           "9090",
		"PERSIST_CHATS":  "false",
		"GEMINI_MODEL":   "gemini-2.0-flash",
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("Expected port '9090', got %q", cfg.Port)
	}
	if cfg.PersistChats {
		t.Error("Expected persistence to be disabled")
	}
	if cfg.GeminiModel != "gemini-2.0-flash" {
		t.Errorf("Expected model 'gemini-2.0-flash', got %q", cfg.GeminiModel)
	}
}

func TestLoad_MissingAPIKey(t *testing.T) {
	setServerEnv(t, map[string]string{
		"DATABASE_URL": "postgres://localhost/talky",
	})

	_, err := Load()
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Expected ConfigurationError, got %v", err)
	}
	if cfgErr.Key != "GEMINI_API_KEY" {
		t.Errorf("Expected key GEMINI_API_KEY, got %q", cfgErr.Key)
	}
}

func TestLoad_PersistenceRequiresDatabaseURL(t *testing.T) {
	setServerEnv(t, map[string]string{
		"GEMINI_API_KEY": "key-123",
	})

	_, err := Load()
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Expected ConfigurationError, got %v", err)
	}
	if cfgErr.Key != "DATABASE_URL" {
		t.Errorf("Expected key DATABASE_URL, got %q", cfgErr.Key)
	}
}

func TestLoadClient(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://localhost:5000")

	cfg, err := LoadClient()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BackendURL != "http://localhost:5000" {
		t.Errorf("Expected backend URL, got %q", cfg.BackendURL)
	}
}

func TestLoadClient_MissingBackendURL(t *testing.T) {
	t.Setenv("BACKEND_URL", "")

	_, err := LoadClient()
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Expected ConfigurationError, got %v", err)
	}
	if cfgErr.Key != "BACKEND_URL" {
		t.Errorf("Expected key BACKEND_URL, got %q", cfgErr.Key)
	}
}
