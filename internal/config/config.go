package config

import (
	"errors"

	"github.com/spf13/viper"
)

// Config holds the application configuration. It is built once at startup and
// injected into the constructors that need it; there is no ambient global state.
type Config struct {
	ServerPort    int
	DatabasePath  string
	JWTSecret     string
	AllowedOrigin string
}

// ErrMissingJWTSecret is returned when no signing secret is configured. There
// is deliberately no fallback value: starting with a guessable secret would
// make every issued token forgeable.
var ErrMissingJWTSecret = errors.New("config: JWT_SECRET must be set")

// Load reads configuration from environment variables, applying defaults for
// everything except the JWT secret, which is required.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", 8080)
	v.SetDefault("DATABASE_PATH", "./bugtrack.db")
	v.SetDefault("ALLOWED_ORIGIN", "http://localhost:3000")

	cfg := &Config{
		ServerPort:    v.GetInt("PORT"),
		DatabasePath:  v.GetString("DATABASE_PATH"),
		JWTSecret:     v.GetString("JWT_SECRET"),
		AllowedOrigin: v.GetString("ALLOWED_ORIGIN"),
	}

	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}
	return cfg, nil
}
