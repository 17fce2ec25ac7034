// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the back-office API.
// Required values fail Load, so a misconfigured process never starts.
type Config struct {
	Env        string `env:"ENV" envDefault:"development"`
	ServerPort int    `env:"SERVER_PORT" envDefault:"3001"`

	DatabaseURL string `env:"DATABASE_URL,required"`

	// JWTSecret signs session credentials. With TokenCompatLegacy set the
	// server falls back to the historic unsigned token encoding instead.
	JWTSecret         string `env:"JWT_SECRET,required"`
	TokenCompatLegacy bool   `env:"TOKEN_COMPAT_LEGACY" envDefault:"false"`

	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`

	Google GoogleConfig

	// WahaAPIKey is reserved for the future WAHA gateway integration.
	WahaAPIKey string `env:"WAHA_API_KEY"`
}

// GoogleConfig holds the Google Sheets integration settings.
type GoogleConfig struct {
	ClientID     string `env:"GOOGLE_CLIENT_ID,required"`
	ClientSecret string `env:"GOOGLE_CLIENT_SECRET,required"`
	SheetID      string `env:"GOOGLE_SHEET_ID,required"`
}

// IsProduction returns true when running in production mode.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables. In dev mode a
// local .env file is loaded first.
func Load() (Config, error) {
	if os.Getenv("ENV") == "dev" {
		_ = godotenv.Load()
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
