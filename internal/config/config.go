package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// ErrDatabaseURLMissing is returned by Validate when DATABASE_URL is unset.
var ErrDatabaseURLMissing = errors.New("DATABASE_URL is not set")

type (
	Config struct {
		HTTP
		Global
		Database
		Ratings
		Auth
		UI
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		URL string // sqlite path, sqlite://, postgres:// or mysql:// DSN
	}
	Ratings struct {
		Key     string // Goodreads developer key
		BaseURL string
		Timeout time.Duration
	}
	Auth struct {
		SessionSecret   string
		SessionLifetime time.Duration
		BcryptCost      int
		SecureCookies   bool // Set to false for local dev without HTTPS

		// Login throttling
		MaxLoginAttempts int           // Failed attempts before lockout; 0 disables throttling
		RateLimitWindow  time.Duration // Time window for counting attempts
		LockoutDuration  time.Duration // How long to lock out
	}
	UI struct {
		TemplatesPath string // Empty means handlers answer with JSON
		StaticPath    string
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_url", "")

	v.SetDefault("goodreads_key", "")
	v.SetDefault("goodreads_base_url", DefaultRatingsBaseURL)
	v.SetDefault("goodreads_timeout", "5s")

	// Auth defaults
	v.SetDefault("auth_session_secret", "")      // Auto-generated if empty
	v.SetDefault("auth_session_lifetime", "24h") // 24 hours
	v.SetDefault("auth_bcrypt_cost", 12)         // bcrypt cost factor
	v.SetDefault("auth_secure_cookies", true)    // HTTPS-only cookies
	v.SetDefault("auth_max_login_attempts", 5)
	v.SetDefault("auth_rate_limit_window", "15m")
	v.SetDefault("auth_lockout_duration", "30m")

	v.SetDefault("templates_path", "")
	v.SetDefault("static_path", "./static")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			URL: v.GetString("DATABASE_URL"),
		},
		Ratings: Ratings{
			Key:     v.GetString("GOODREADS_KEY"),
			BaseURL: v.GetString("GOODREADS_BASE_URL"),
			Timeout: v.GetDuration("GOODREADS_TIMEOUT"),
		},
		Auth: Auth{
			SessionSecret:   v.GetString("AUTH_SESSION_SECRET"),
			SessionLifetime: v.GetDuration("AUTH_SESSION_LIFETIME"),
			BcryptCost:      v.GetInt("AUTH_BCRYPT_COST"),
			SecureCookies:   v.GetBool("AUTH_SECURE_COOKIES"),

			MaxLoginAttempts: v.GetInt("AUTH_MAX_LOGIN_ATTEMPTS"),
			RateLimitWindow:  v.GetDuration("AUTH_RATE_LIMIT_WINDOW"),
			LockoutDuration:  v.GetDuration("AUTH_LOCKOUT_DURATION"),
		},
		UI: UI{
			TemplatesPath: v.GetString("TEMPLATES_PATH"),
			StaticPath:    v.GetString("STATIC_PATH"),
		},
	}
}

// Validate reports configuration the server cannot start without.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return ErrDatabaseURLMissing
	}
	return nil
}
