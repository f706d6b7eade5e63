package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DBDriver    string // "sqlite" or "postgres"
	DBPath      string // sqlite file path
	DatabaseURL string // postgres DSN, required when DBDriver is "postgres"

	// Market data
	AlphaVantageAPIKey   string
	AllowSyntheticQuotes bool
	QuoteRefreshInterval time.Duration
	QuoteStaleAfter      time.Duration
	RequestTimeout       time.Duration
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Database
		DBDriver:    getEnv("DB_DRIVER", "sqlite"),
		DBPath:      getEnv("DB_PATH", "papertrade.db"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		// Market data
		AlphaVantageAPIKey: os.Getenv("ALPHA_VANTAGE_API_KEY"),
	}

	switch config.DBDriver {
	case "sqlite":
	case "postgres":
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when DB_DRIVER is postgres")
		}
	default:
		return nil, fmt.Errorf("invalid DB_DRIVER %q: must be sqlite or postgres", config.DBDriver)
	}

	synthetic, err := parseBool(getEnv("ALLOW_SYNTHETIC_QUOTES", defaultSynthetic(config.Env)))
	if err != nil {
		return nil, fmt.Errorf("invalid ALLOW_SYNTHETIC_QUOTES value: %w", err)
	}
	config.AllowSyntheticQuotes = synthetic

	// A missing quote-API key is a fatal configuration error unless the
	// synthetic development fallback is explicitly allowed.
	if config.AlphaVantageAPIKey == "" && !config.AllowSyntheticQuotes {
		return nil, fmt.Errorf("ALPHA_VANTAGE_API_KEY is required (set ALLOW_SYNTHETIC_QUOTES=true for synthetic development data)")
	}

	if config.QuoteRefreshInterval, err = parseDuration("QUOTE_REFRESH_INTERVAL", time.Minute); err != nil {
		return nil, err
	}
	if config.QuoteStaleAfter, err = parseDuration("QUOTE_STALE_AFTER", 30*time.Second); err != nil {
		return nil, err
	}
	if config.RequestTimeout, err = parseDuration("REQUEST_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// defaultSynthetic enables the synthetic quote fallback by default outside production.
func defaultSynthetic(env string) string {
	if env == "production" {
		return "false"
	}
	return "true"
}

func parseDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %v", key, d)
	}
	return d, nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("must be true, false, 1, or 0, got %q", s)
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
