// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	ServerPort string
	GinMode    string
	LogLevel   string

	JWTSecret string
	TokenTTL  time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string

	// AppBaseURL is the public base URL embedded in password reset links.
	AppBaseURL string
}

// Load reads configuration from the environment, applying defaults for
// everything except the JWT secret, which must be set explicitly.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("DB_USER", "taskboard")
	v.SetDefault("DB_PASSWORD", "taskboard")
	v.SetDefault("DB_NAME", "taskboard")

	v.SetDefault("SERVER_PORT", "8000")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("TOKEN_TTL", "1h")

	v.SetDefault("SMTP_HOST", "localhost")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USER", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("MAIL_FROM", "no-reply@taskboard.local")

	v.SetDefault("APP_BASE_URL", "http://localhost:8000")

	if v.GetString("JWT_SECRET") == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	ttl, err := time.ParseDuration(v.GetString("TOKEN_TTL"))
	if err != nil {
		return nil, errors.New("TOKEN_TTL must be a valid duration")
	}

	switch v.GetString("DB_DRIVER") {
	case "mysql", "postgres":
	default:
		return nil, errors.New("DB_DRIVER must be mysql or postgres")
	}

	return &Config{
		DBDriver:     v.GetString("DB_DRIVER"),
		DBHost:       v.GetString("DB_HOST"),
		DBPort:       v.GetString("DB_PORT"),
		DBUser:       v.GetString("DB_USER"),
		DBPassword:   v.GetString("DB_PASSWORD"),
		DBName:       v.GetString("DB_NAME"),
		ServerPort:   v.GetString("SERVER_PORT"),
		GinMode:      v.GetString("GIN_MODE"),
		LogLevel:     v.GetString("LOG_LEVEL"),
		JWTSecret:    v.GetString("JWT_SECRET"),
		TokenTTL:     ttl,
		SMTPHost:     v.GetString("SMTP_HOST"),
		SMTPPort:     v.GetInt("SMTP_PORT"),
		SMTPUser:     v.GetString("SMTP_USER"),
		SMTPPassword: v.GetString("SMTP_PASSWORD"),
		MailFrom:     v.GetString("MAIL_FROM"),
		AppBaseURL:   v.GetString("APP_BASE_URL"),
	}, nil
}
