package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the configuration for the application.
type Config struct {
	DatabasePath  string
	MealtyBaseURL string

	// Telegram Config (required for the bot binary, optional for the CLI)
	TelegramBotToken   string
	TelegramWebhookURL string

	// Solver Config
	SolveTimeLimit time.Duration
}

const (
	defaultDatabasePath   = "data/products.db"
	defaultMealtyBaseURL  = "https://www.mealty.ru/"
	defaultSolveTimeLimit = 10 * time.Second
)

// NewFromEnv creates a new Config object from environment variables.
// A .env file in the working directory is loaded first if present.
func NewFromEnv() (*Config, error) {
	_ = godotenv.Load()

	databasePath := os.Getenv("DATABASE_PATH")
	if databasePath == "" {
		databasePath = defaultDatabasePath
	}

	mealtyBaseURL := os.Getenv("MEALTY_BASE_URL")
	if mealtyBaseURL == "" {
		mealtyBaseURL = defaultMealtyBaseURL
	}

	solveTimeLimit := defaultSolveTimeLimit
	if v := os.Getenv("SOLVE_TIME_LIMIT_SECONDS"); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil || seconds <= 0 {
			return nil, fmt.Errorf("invalid SOLVE_TIME_LIMIT_SECONDS value %q", v)
		}
		solveTimeLimit = time.Duration(seconds) * time.Second
	}

	return &Config{
		DatabasePath:       databasePath,
		MealtyBaseURL:      mealtyBaseURL,
		TelegramBotToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL: os.Getenv("TELEGRAM_WEBHOOK_URL"),
		SolveTimeLimit:     solveTimeLimit,
	}, nil
}

// RequireTelegram validates that the Telegram settings are present and the
// webhook URL is well-formed.
func (c *Config) RequireTelegram() error {
	if c.TelegramBotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable not set")
	}
	if c.TelegramWebhookURL == "" {
		return fmt.Errorf("TELEGRAM_WEBHOOK_URL environment variable not set")
	}
	u, err := url.ParseRequestURI(c.TelegramWebhookURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid TELEGRAM_WEBHOOK_URL %q", c.TelegramWebhookURL)
	}
	return nil
}
