package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Catalogue CatalogueConfig
	Cache     CacheConfig
	Sessions  SessionConfig
	Janitor   JanitorConfig
	Contact   ContactConfig
	CORS      CORSConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// CatalogueConfig contains options for the remote skip catalogue API.
type CatalogueConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// CacheConfig controls the catalogue result cache.
type CacheConfig struct {
	TTLMinutes int
}

// SessionConfig controls per-session browse state.
type SessionConfig struct {
	IdleMinutes int
}

// JanitorConfig holds scheduler-related settings.
type JanitorConfig struct {
	CronSchedule string
}

// ContactConfig holds the static contact details shown to users.
type ContactConfig struct {
	Phone string
	Email string
}

// CORSConfig lists origins allowed to call the browse API.
type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	timeoutSeconds, err := getenvInt("CATALOGUE_TIMEOUT_SECONDS", 15)
	if err != nil {
		return nil, err
	}
	ttlMinutes, err := getenvInt("CACHE_TTL_MINUTES", 15)
	if err != nil {
		return nil, err
	}
	idleMinutes, err := getenvInt("SESSION_IDLE_MINUTES", 30)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Catalogue: CatalogueConfig{
			BaseURL:        getenvWithDefault("CATALOGUE_BASE_URL", "https://app.wewantwaste.co.uk"),
			TimeoutSeconds: timeoutSeconds,
		},
		Cache: CacheConfig{
			TTLMinutes: ttlMinutes,
		},
		Sessions: SessionConfig{
			IdleMinutes: idleMinutes,
		},
		Janitor: JanitorConfig{
			CronSchedule: getenvWithDefault("JANITOR_CRON_SCHEDULE", "*/10 * * * *"),
		},
		Contact: ContactConfig{
			Phone: getenvWithDefault("CONTACT_PHONE", "0800 808 5475"),
			Email: getenvWithDefault("CONTACT_EMAIL", "hello@skiphire.example"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getenvWithDefault("CORS_ALLOWED_ORIGINS", "*")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.Catalogue.BaseURL == "" {
		return errors.New("CATALOGUE_BASE_URL must be provided")
	}

	if c.Catalogue.TimeoutSeconds <= 0 {
		return errors.New("CATALOGUE_TIMEOUT_SECONDS must be positive")
	}

	if c.Cache.TTLMinutes <= 0 {
		return errors.New("CACHE_TTL_MINUTES must be positive")
	}

	if c.Sessions.IdleMinutes <= 0 {
		return errors.New("SESSION_IDLE_MINUTES must be positive")
	}

	if c.Janitor.CronSchedule == "" {
		return errors.New("JANITOR_CRON_SCHEDULE must be provided")
	}

	if len(c.CORS.AllowedOrigins) == 0 {
		return errors.New("CORS_ALLOWED_ORIGINS must not be empty")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
