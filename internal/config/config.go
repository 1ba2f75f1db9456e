package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Market    MarketConfig
	Telegram  TelegramConfig
	Scheduler SchedulerConfig
	SecretKey string // fernet key for encrypting stored credentials
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

// MarketConfig holds the endpoints and timeout for the board price source.
// SearchURL receives the fund's display symbol as a query parameter and
// returns the delimited instrument records; PriceURL receives the resolved
// instrument key appended as a path segment. PricePath is the JSON path of
// the closing price field inside the price response body.
type MarketConfig struct {
	SearchURL string
	PriceURL  string
	PricePath string
	Timeout   time.Duration
}

// TelegramConfig holds the alert channel credentials.
// An empty bot token or zero chat ID disables alert dispatch.
type TelegramConfig struct {
	BotToken string
	ChatID   int64
}

// SchedulerConfig holds the symbol cache refresh schedule.
type SchedulerConfig struct {
	SymbolRefreshSpec string
	Enabled           bool
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	chatID, err := getEnvInt64("NAV_ADMIN_CHAT_ID", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid NAV_ADMIN_CHAT_ID: %w", err)
	}

	timeoutSec, err := getEnvInt64("MARKET_TIMEOUT_SECONDS", 30)
	if err != nil {
		return nil, fmt.Errorf("invalid MARKET_TIMEOUT_SECONDS: %w", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/nav_reconciler.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Market: MarketConfig{
			SearchURL: getEnv("MARKET_SEARCH_URL", "http://old.tsetmc.com/tsev2/data/search.aspx"),
			PriceURL:  getEnv("MARKET_PRICE_URL", "http://cdn.tsetmc.com/api/ClosingPrice/GetClosingPriceInfo"),
			PricePath: getEnv("MARKET_PRICE_PATH", "$.closingPriceInfo.pDrCotVal"),
			Timeout:   time.Duration(timeoutSec) * time.Second,
		},
		Telegram: TelegramConfig{
			BotToken: getEnv("NAV_BOT_TOKEN", ""),
			ChatID:   chatID,
		},
		Scheduler: SchedulerConfig{
			SymbolRefreshSpec: getEnv("SYMBOL_REFRESH_SPEC", "@every 6h"),
			Enabled:           getEnv("SYMBOL_REFRESH_ENABLED", "true") == "true",
		},
		SecretKey: getEnv("NAV_SECRET_KEY", ""),
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

// getEnvInt64 gets an integer environment variable or returns a default value.
func getEnvInt64(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	return strconv.ParseInt(value, 10, 64)
}
