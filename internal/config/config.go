package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Response format modes understood by CHAT_RESPONSE_FORMAT.
const (
	ResponseFormatNone       = ""
	ResponseFormatJSONObject = "json_object"
	ResponseFormatJSONSchema = "json_schema"
)

// Config holds the environment driven configuration for the nutrition bot.
// It is built once at startup and shared read-only by every handler.
type Config struct {
	// HTTP Server
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"nutrition-bot"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"HTTP_PORT" envDefault:"5000"`
	MetricsPort     int           `env:"METRICS_PORT" envDefault:"9091"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Observability / Logging
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat     string `env:"LOG_FORMAT" envDefault:"console"`
	EnableTracing bool   `env:"ENABLE_TRACING" envDefault:"false"`
	OTLPEndpoint  string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	LogPIILevel   string `env:"LOG_PII_LEVEL" envDefault:"hashed"`

	// Chat completion provider
	OpenAIAPIKey       string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL      string        `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	ChatModel          string        `env:"CHAT_MODEL" envDefault:"gpt-4o-mini"`
	ChatTextTimeout    time.Duration `env:"CHAT_TEXT_TIMEOUT" envDefault:"120s"`
	ChatVisionTimeout  time.Duration `env:"CHAT_VISION_TIMEOUT" envDefault:"180s"`
	ChatResponseFormat string        `env:"CHAT_RESPONSE_FORMAT" envDefault:""`
	PromptsFile        string        `env:"PROMPTS_FILE"`

	// Google Sheets ledger
	SheetID                  string `env:"SHEET_ID"`
	GoogleServiceAccountJSON string `env:"GOOGLE_SERVICE_ACCOUNT_JSON"`
	SheetRange               string `env:"SHEET_RANGE" envDefault:"A1"`
}

// Load parses environment variables into Config.
//
// Configuration Loading Order (highest to lowest priority):
// 1. Environment variables
// 2. .env file (if present, loaded by the server entrypoint)
// 3. Default values from struct tags
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	cfg.LogPIILevel = strings.ToLower(strings.TrimSpace(cfg.LogPIILevel))
	cfg.ChatResponseFormat = strings.ToLower(strings.TrimSpace(cfg.ChatResponseFormat))
	cfg.OpenAIBaseURL = strings.TrimRight(strings.TrimSpace(cfg.OpenAIBaseURL), "/")
	cfg.SheetID = strings.TrimSpace(cfg.SheetID)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be console or json, got %q", c.LogFormat)
	}

	switch c.LogPIILevel {
	case "none", "hashed", "full":
	default:
		return fmt.Errorf("LOG_PII_LEVEL must be none, hashed or full, got %q", c.LogPIILevel)
	}

	switch c.ChatResponseFormat {
	case ResponseFormatNone, ResponseFormatJSONObject, ResponseFormatJSONSchema:
	default:
		return fmt.Errorf("CHAT_RESPONSE_FORMAT must be empty, %s or %s, got %q",
			ResponseFormatJSONObject, ResponseFormatJSONSchema, c.ChatResponseFormat)
	}

	if _, err := url.ParseRequestURI(c.OpenAIBaseURL); err != nil {
		return fmt.Errorf("invalid OPENAI_BASE_URL: %w", err)
	}

	if c.ChatTextTimeout <= 0 || c.ChatVisionTimeout <= 0 {
		return fmt.Errorf("CHAT_TEXT_TIMEOUT and CHAT_VISION_TIMEOUT must be positive")
	}

	if strings.TrimSpace(c.ChatModel) == "" {
		return fmt.Errorf("CHAT_MODEL must not be empty")
	}

	if c.EnableTracing && strings.TrimSpace(c.OTLPEndpoint) == "" {
		return fmt.Errorf("OTEL_EXPORTER_OTLP_ENDPOINT is required when ENABLE_TRACING is true")
	}

	return nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// MetricsAddr returns the metrics listen address, or "" when disabled.
func (c *Config) MetricsAddr() string {
	if c.MetricsPort <= 0 {
		return ""
	}
	return fmt.Sprintf(":%d", c.MetricsPort)
}

// SheetsConfigured reports whether both ledger settings are present.
func (c *Config) SheetsConfigured() bool {
	return c.SheetID != "" && strings.TrimSpace(c.GoogleServiceAccountJSON) != ""
}
