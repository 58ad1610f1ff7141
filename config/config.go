// Package config loads application settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Auth modes for the catalog credential
const (
	AuthAPIKey = "api_key"
	AuthBearer = "bearer"
)

// Config holds runtime settings
type Config struct {
	TMDBAPIKey              string
	TMDBAuthMode            string
	TMDBBaseURL             string
	TMDBLanguage            string
	ListenAddr              string
	LogLevel                string
	RequestTimeout          time.Duration
	TrendingRefreshInterval time.Duration
	ExactYear               bool
}

// Load reads an optional .env file and then the process environment. The
// returned error only reports a .env file that exists but cannot be parsed;
// a missing file is not an error.
func Load(files ...string) (*Config, error) {
	var loadErr error
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		loadErr = fmt.Errorf("load env file: %w", err)
	}

	apiKey := env("TMDB_API_KEY", "")
	cfg := &Config{
		TMDBAPIKey:              apiKey,
		TMDBAuthMode:            strings.ToLower(env("TMDB_AUTH_MODE", defaultAuthMode(apiKey))),
		TMDBBaseURL:             env("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		TMDBLanguage:            env("TMDB_LANGUAGE", "en-US"),
		ListenAddr:              env("LISTEN_ADDR", ":8080"),
		LogLevel:                env("LOG_LEVEL", "info"),
		RequestTimeout:          envDuration("REQUEST_TIMEOUT", 15*time.Second),
		TrendingRefreshInterval: envDuration("TRENDING_REFRESH_INTERVAL", 30*time.Minute),
		ExactYear:               envBool("EXACT_YEAR", true),
	}
	return cfg, loadErr
}

// Validate reports settings the application cannot start without
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.TMDBAPIKey) == "" {
		errs = append(errs, errors.New("TMDB_API_KEY environment variable is required"))
	}
	if c.TMDBAuthMode != AuthAPIKey && c.TMDBAuthMode != AuthBearer {
		errs = append(errs, fmt.Errorf("TMDB_AUTH_MODE must be %q or %q, got %q", AuthAPIKey, AuthBearer, c.TMDBAuthMode))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("REQUEST_TIMEOUT must be positive"))
	}
	if c.TrendingRefreshInterval <= 0 {
		errs = append(errs, errors.New("TRENDING_REFRESH_INTERVAL must be positive"))
	}
	return errors.Join(errs...)
}

// UseBearer reports whether the credential is sent as a bearer token
func (c *Config) UseBearer() bool {
	return c.TMDBAuthMode == AuthBearer
}

// TMDB v4 read access tokens are JWTs; v3 keys are bare hex strings.
func defaultAuthMode(credential string) string {
	if strings.Count(credential, ".") == 2 {
		return AuthBearer
	}
	return AuthAPIKey
}

func env(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// envDuration accepts Go durations or a bare number of seconds. Unparseable
// values yield zero so Validate can report them.
func envDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return 0
}

func envBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return fallback
}
