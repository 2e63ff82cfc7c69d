package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL     string
	JWTSecret       string
	JWTTTL          time.Duration
	StripeSecretKey string
	Port            string
	UploadDir       string
}

// Load reads configuration from the environment, with .env as a fallback for
// local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		Port:            envOrDefault("PORT", "8080"),
		UploadDir:       envOrDefault("UPLOAD_DIR", "./uploads"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}

	ttl, err := time.ParseDuration(envOrDefault("JWT_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("JWT_TTL is not a valid duration: %w", err)
	}
	cfg.JWTTTL = ttl

	return cfg, nil
}

func envOrDefault(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}
