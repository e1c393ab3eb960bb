package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// MailerConfig holds email delivery settings.
type MailerConfig struct {
	Provider        string
	FromAddress     string
	FromName        string
	SESRegion       string
	AccessKeyID     string
	SecretAccessKey string
}

// Config holds all configuration for the application
type Config struct {
	DatabaseURL    string
	Environment    string
	Port           string
	AllowedOrigins []string
	Mailer         MailerConfig
}

// Load loads configuration from environment variables.
// It attempts to load from a .env file when not in production.
// DatabaseURL deliberately has no default: the connection cache treats
// an empty URL as a configuration error at first connection attempt.
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production the .env file usually does not exist; system
	// environment variables are the source of truth there.
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment: env,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Port:        os.Getenv("PORT"),
		Mailer: MailerConfig{
			Provider:        os.Getenv("EMAIL_PROVIDER"),
			FromAddress:     os.Getenv("EMAIL_FROM_ADDRESS"),
			FromName:        os.Getenv("EMAIL_FROM_NAME"),
			SESRegion:       os.Getenv("AWS_SES_REGION"),
			AccessKeyID:     os.Getenv("AWS_SES_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SES_SECRET_ACCESS_KEY"),
		},
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Mailer.SESRegion == "" {
		cfg.Mailer.SESRegion = "us-east-1"
	}

	if raw := os.Getenv("CORS_ALLOWED_ORIGINS"); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	return cfg, nil
}
