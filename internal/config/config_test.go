package config

import (
	"testing"
	"time"
)

func TestNewFromEnv(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("DATABASE_PATH", "")
		t.Setenv("MEALTY_BASE_URL", "")
		t.Setenv("SOLVE_TIME_LIMIT_SECONDS", "")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.DatabasePath != "data/products.db" {
			t.Errorf("Expected default DatabasePath, got '%s'", cfg.DatabasePath)
		}
		if cfg.MealtyBaseURL != "https://www.mealty.ru/" {
			t.Errorf("Expected default MealtyBaseURL, got '%s'", cfg.MealtyBaseURL)
		}
		if cfg.SolveTimeLimit != 10*time.Second {
			t.Errorf("Expected default SolveTimeLimit of 10s, got %v", cfg.SolveTimeLimit)
		}
	})

	t.Run("Overrides", func(t *testing.T) {
		t.Setenv("DATABASE_PATH", "/tmp/test.db")
		t.Setenv("MEALTY_BASE_URL", "http://mealty.test/")
		t.Setenv("SOLVE_TIME_LIMIT_SECONDS", "3")
		t.Setenv("TELEGRAM_BOT_TOKEN", "token")
		t.Setenv("TELEGRAM_WEBHOOK_URL", "https://bot.test/webhook")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.DatabasePath != "/tmp/test.db" {
			t.Errorf("Expected DatabasePath '/tmp/test.db', got '%s'", cfg.DatabasePath)
		}
		if cfg.SolveTimeLimit != 3*time.Second {
			t.Errorf("Expected SolveTimeLimit of 3s, got %v", cfg.SolveTimeLimit)
		}
		if err := cfg.RequireTelegram(); err != nil {
			t.Errorf("Expected telegram config to be valid, got %v", err)
		}
	})

	t.Run("InvalidTimeLimit", func(t *testing.T) {
		t.Setenv("SOLVE_TIME_LIMIT_SECONDS", "abc")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for invalid SOLVE_TIME_LIMIT_SECONDS, got nil")
		}
	})

	t.Run("MissingTelegramToken", func(t *testing.T) {
		t.Setenv("TELEGRAM_BOT_TOKEN", "")
		t.Setenv("TELEGRAM_WEBHOOK_URL", "https://bot.test/webhook")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if err := cfg.RequireTelegram(); err == nil {
			t.Fatal("Expected an error for missing TELEGRAM_BOT_TOKEN, got nil")
		}
	})

	t.Run("MalformedWebhookURL", func(t *testing.T) {
		t.Setenv("TELEGRAM_BOT_TOKEN", "token")

		for _, raw := range []string{"not a url", "bot.test/webhook", "https://"} {
			t.Setenv("TELEGRAM_WEBHOOK_URL", raw)

			cfg, err := NewFromEnv()
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if err := cfg.RequireTelegram(); err == nil {
				t.Errorf("Expected an error for webhook URL %q, got nil", raw)
			}
		}
	})
}
