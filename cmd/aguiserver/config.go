package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the server configuration loaded from environment variables.
type Config struct {
	// Server
	Port     string
	LogLevel string // debug, info, warn, error

	// Provider selection
	Provider string
	Model    string

	// API Keys
	AnthropicKey string
	OpenAIKey    string
	GoogleKey    string

	// Run config
	MaxTokens int
	Timeout   time.Duration

	// Tool progress reporting
	HeartbeatInterval time.Duration

	// Session lifecycle
	SessionTimeout time.Duration
	SessionSweep   time.Duration
	MaxSessions    int

	// Optional MCP tool server (stdio transport)
	MCPCommand string
	MCPArgs    []string
}

// LoadConfig loads configuration from environment variables.
// It loads a .env file if present (silent fail if not found).
func LoadConfig() (*Config, error) {
	godotenv.Load() // Load .env file if present

	cfg := &Config{
		Port:              getEnvOrDefault("AGUI_PORT", "8080"),
		LogLevel:          getEnvOrDefault("AGUI_LOG_LEVEL", "info"),
		Provider:          os.Getenv("AGUI_PROVIDER"),
		Model:             os.Getenv("AGUI_MODEL"),
		AnthropicKey:      os.Getenv("ANTHROPIC_API_KEY"),
		OpenAIKey:         os.Getenv("OPENAI_API_KEY"),
		GoogleKey:         os.Getenv("GOOGLE_API_KEY"),
		MaxTokens:         getEnvIntOrDefault("AGUI_MAX_TOKENS", 4096),
		Timeout:           getEnvDurationOrDefault("AGUI_TIMEOUT", 2*time.Minute),
		HeartbeatInterval: getEnvDurationOrDefault("AGUI_HEARTBEAT_INTERVAL", 10*time.Second),
		SessionTimeout:    getEnvDurationOrDefault("AGUI_SESSION_TIMEOUT", 20*time.Minute),
		SessionSweep:      getEnvDurationOrDefault("AGUI_SESSION_SWEEP", 5*time.Minute),
		MaxSessions:       getEnvIntOrDefault("AGUI_MAX_SESSIONS", 100),
		MCPCommand:        os.Getenv("AGUI_MCP_COMMAND"),
	}
	if args := os.Getenv("AGUI_MCP_ARGS"); args != "" {
		cfg.MCPArgs = strings.Fields(args)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Provider == "" {
		return fmt.Errorf("AGUI_PROVIDER is required (anthropic, openai, or google)")
	}

	switch c.Provider {
	case "anthropic":
		if c.AnthropicKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required for anthropic provider")
		}
	case "openai":
		if c.OpenAIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for openai provider")
		}
	case "google":
		if c.GoogleKey == "" {
			return fmt.Errorf("GOOGLE_API_KEY is required for google provider")
		}
	default:
		return fmt.Errorf("unknown provider: %s (must be anthropic, openai, or google)", c.Provider)
	}

	if c.HeartbeatInterval <= 0 {
		return fmt.Errorf("AGUI_HEARTBEAT_INTERVAL must be positive")
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
