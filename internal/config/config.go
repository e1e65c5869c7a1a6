// Package config loads process settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config validation errors
var (
	// ErrMissingDatabaseURL is returned when DATABASE_URL is empty
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")
	// ErrWeakSessionSecret is returned when SESSION_SECRET is shorter than MinSessionSecretLen
	ErrWeakSessionSecret = errors.New("SESSION_SECRET is too short")
	// ErrInvalidPort is returned when Port is empty or not numeric
	ErrInvalidPort = errors.New("PORT must be a number")
	// ErrInvalidRateLimit is returned when the request budget or window is not positive
	ErrInvalidRateLimit = errors.New("rate limit must be positive")
	// ErrInvalidUploadLimit is returned when MaxUploadMB is not positive
	ErrInvalidUploadLimit = errors.New("MAX_UPLOAD_MB must be positive")
)

// MinSessionSecretLen is the minimum key length accepted for cookie signing.
const MinSessionSecretLen = 32

// Config holds the server configuration.
type Config struct {
	// DatabaseURL is the PostgreSQL connection string.
	DatabaseURL string

	// Port the HTTP server listens on.
	Port string

	// SessionSecret signs the session cookie.
	SessionSecret string

	// MediaRoot is where uploaded post images are written and served from.
	MediaRoot string

	// StaticDir holds CSS and other static assets.
	StaticDir string

	// LogLevel is one of debug, info, warn, error.
	LogLevel slog.Level

	// IndexCacheTTL is how long the index page snapshot is reused. 0 disables the cache.
	IndexCacheTTL time.Duration

	// RateLimitRequests per RateLimitWindow per client IP.
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// MaxUploadMB caps the multipart body of the post form.
	MaxUploadMB int

	// ImageMaxWidth is the width uploaded images are downscaled to. 0 keeps the original size.
	ImageMaxWidth int

	// SecureCookies marks the session cookie Secure (HTTPS only).
	SecureCookies bool
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		DatabaseURL:       "",
		Port:              "8000",
		MediaRoot:         "media",
		StaticDir:         "static",
		LogLevel:          slog.LevelInfo,
		IndexCacheTTL:     20 * time.Second,
		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
		MaxUploadMB:       5,
		ImageMaxWidth:     960,
		SecureCookies:     false,
	}
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return ErrMissingDatabaseURL
	}
	if len(c.SessionSecret) < MinSessionSecretLen {
		return fmt.Errorf("%w: need at least %d bytes, got %d", ErrWeakSessionSecret, MinSessionSecretLen, len(c.SessionSecret))
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("%w: got %q", ErrInvalidPort, c.Port)
	}
	if c.RateLimitRequests <= 0 || c.RateLimitWindow <= 0 {
		return fmt.Errorf("%w: got %d per %v", ErrInvalidRateLimit, c.RateLimitRequests, c.RateLimitWindow)
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidUploadLimit, c.MaxUploadMB)
	}
	return nil
}

// MaxUploadBytes returns MaxUploadMB in bytes
func (c Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// FromEnv creates a Config from environment variables.
// Uses defaults for any missing or malformed values.
//
// Environment variables:
//   - DATABASE_URL: PostgreSQL connection string (required)
//   - PORT: listen port (default: 8000)
//   - SESSION_SECRET: cookie signing key, at least 32 bytes (required)
//   - MEDIA_ROOT: upload directory (default: "media")
//   - STATIC_DIR: static asset directory (default: "static")
//   - LOG_LEVEL: debug, info, warn or error (default: info)
//   - INDEX_CACHE_SECONDS: index page cache lifetime, 0 to disable (default: 20)
//   - RATE_LIMIT_REQUESTS: requests per window per IP (default: 100)
//   - RATE_LIMIT_WINDOW_SECONDS: rate limit window (default: 60)
//   - MAX_UPLOAD_MB: max post form size (default: 5)
//   - IMAGE_MAX_WIDTH: downscale width for uploads, 0 to keep size (default: 960)
//   - SECURE_COOKIES: "true"/"1" to send the session cookie over HTTPS only (default: false)
func FromEnv() Config {
	cfg := DefaultConfig()

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.SessionSecret = os.Getenv("SESSION_SECRET")

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("MEDIA_ROOT"); v != "" {
		cfg.MediaRoot = v
	}
	if v := os.Getenv("STATIC_DIR"); v != "" {
		cfg.StaticDir = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(strings.ToUpper(v))); err == nil {
			cfg.LogLevel = level
		} else {
			slog.Warn("[CONFIG] invalid LOG_LEVEL value, using default", "value", v, "default", cfg.LogLevel)
		}
	}

	if n, ok := intFromEnv("INDEX_CACHE_SECONDS", int(cfg.IndexCacheTTL.Seconds()), 0); ok {
		cfg.IndexCacheTTL = time.Duration(n) * time.Second
	}
	if n, ok := intFromEnv("RATE_LIMIT_REQUESTS", cfg.RateLimitRequests, 1); ok {
		cfg.RateLimitRequests = n
	}
	if n, ok := intFromEnv("RATE_LIMIT_WINDOW_SECONDS", int(cfg.RateLimitWindow.Seconds()), 1); ok {
		cfg.RateLimitWindow = time.Duration(n) * time.Second
	}
	if n, ok := intFromEnv("MAX_UPLOAD_MB", cfg.MaxUploadMB, 1); ok {
		cfg.MaxUploadMB = n
	}
	if n, ok := intFromEnv("IMAGE_MAX_WIDTH", cfg.ImageMaxWidth, 0); ok {
		cfg.ImageMaxWidth = n
	}

	if v := os.Getenv("SECURE_COOKIES"); v != "" {
		cfg.SecureCookies = v == "true" || v == "1"
	}

	return cfg
}

// intFromEnv parses an integer variable that must be at least floor.
// Returns ok=false when the variable is unset or invalid; invalid values are logged.
func intFromEnv(key string, def, floor int) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < floor {
		slog.Warn("[CONFIG] invalid "+key+" value, using default",
			"value", v,
			"default", def,
			"error", err,
		)
		return 0, false
	}
	return n, true
}
