package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	AppEnv      string `env:"APP_ENV" default:"development"`
	Port        string `env:"PORT" default:"4000"`
	DatabaseURL string `env:"DATABASE_URL"`
	RedisURL    string `env:"REDIS_URL"`

	JWTSecret   string        `env:"JWT_SECRET"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" default:"24h"`
	AdminUser   string        `env:"ADMIN_USERNAME"`
	AdminPass   string        `env:"ADMIN_PASSWORD"`

	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	LoginRateLimit  int           `env:"LOGIN_RATE_LIMIT" default:"10"`
	LoginRateWindow time.Duration `env:"LOGIN_RATE_WINDOW" default:"1m"`

	CatalogCacheTTL time.Duration `env:"CATALOG_CACHE_TTL" default:"5m"`

	SendGridAPIKey   string `env:"SENDGRID_API_KEY"`
	NotifyFromEmail  string `env:"NOTIFY_FROM_EMAIL"`
	NotifyToEmail    string `env:"NOTIFY_TO_EMAIL"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	required := map[string]string{
		"DATABASE_URL": cfg.DatabaseURL,
		"REDIS_URL":    cfg.RedisURL,
		"JWT_SECRET":   cfg.JWTSecret,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%s is required", name)
		}
	}

	if len(cfg.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters, got %d", len(cfg.JWTSecret))
	}

	// Admin seeding: both or neither
	if (cfg.AdminUser == "") != (cfg.AdminPass == "") {
		return fmt.Errorf("ADMIN_USERNAME and ADMIN_PASSWORD must be set together")
	}

	// Email notification: all three or none
	emailVars := []string{cfg.SendGridAPIKey, cfg.NotifyFromEmail, cfg.NotifyToEmail}
	set := 0
	for _, v := range emailVars {
		if v != "" {
			set++
		}
	}
	if set != 0 && set != len(emailVars) {
		return fmt.Errorf("SENDGRID_API_KEY, NOTIFY_FROM_EMAIL, and NOTIFY_TO_EMAIL must be set together")
	}

	if cfg.LoginRateLimit <= 0 {
		return fmt.Errorf("LOGIN_RATE_LIMIT must be positive, got %d", cfg.LoginRateLimit)
	}

	return nil
}
