package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Log      LogConfig
	Market   MarketConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string
	Pretty bool
}

// MarketConfig holds quote source configuration
type MarketConfig struct {
	// Source is "mock" or "yahoo".
	Source string
	// RefreshSchedule is a cron spec for the quote refresh job. Empty disables it.
	RefreshSchedule string
	// FetchConcurrency bounds parallel quote requests.
	FetchConcurrency int
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	concurrency, err := strconv.Atoi(getEnv("QUOTE_FETCH_CONCURRENCY", "4"))
	if err != nil || concurrency < 1 {
		return nil, fmt.Errorf("invalid QUOTE_FETCH_CONCURRENCY: %q", os.Getenv("QUOTE_FETCH_CONCURRENCY"))
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5000"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/portfolio_dashboard.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173,http://localhost")),
		},
		Log: LogConfig{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Pretty: getEnv("LOG_PRETTY", "false") == "true",
		},
		Market: MarketConfig{
			Source:           strings.ToLower(getEnv("QUOTE_SOURCE", "mock")),
			RefreshSchedule:  os.Getenv("QUOTE_REFRESH_SCHEDULE"),
			FetchConcurrency: concurrency,
		},
	}

	switch config.Market.Source {
	case "mock", "yahoo":
	default:
		return nil, fmt.Errorf("invalid QUOTE_SOURCE %q: expected mock or yahoo", config.Market.Source)
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
