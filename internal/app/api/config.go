package api

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

// Config carries environment-driven settings for the order-flow API process.
type Config struct {
	Port            string
	RestaurantURL   string
	GeocodeURL      string
	UpstreamTimeout time.Duration
	AllowedOrigins  []string
	// SessionIdle is how long an untouched cart or checkout flow is kept.
	SessionIdle time.Duration
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:           envDefault("PORT", "8080"),
		RestaurantURL:  envDefault("RESTAURANT_URL", "http://localhost:8081"),
		GeocodeURL:     strings.TrimSpace(os.Getenv("GEOCODE_URL")),
		AllowedOrigins: splitCSV(envDefault("CORS_ALLOWED_ORIGINS", "*")),
	}
	if _, err := url.ParseRequestURI(cfg.RestaurantURL); err != nil {
		return Config{}, fmt.Errorf("RESTAURANT_URL must be an absolute URL: %w", err)
	}
	if cfg.GeocodeURL != "" {
		if _, err := url.ParseRequestURI(cfg.GeocodeURL); err != nil {
			return Config{}, fmt.Errorf("GEOCODE_URL must be an absolute URL: %w", err)
		}
	}
	timeout, err := time.ParseDuration(envDefault("UPSTREAM_TIMEOUT", "10s"))
	if err != nil || timeout <= 0 {
		return Config{}, fmt.Errorf("UPSTREAM_TIMEOUT must be a positive duration")
	}
	cfg.UpstreamTimeout = timeout
	idle, err := time.ParseDuration(envDefault("SESSION_IDLE_TIMEOUT", "2h"))
	if err != nil || idle <= 0 {
		return Config{}, fmt.Errorf("SESSION_IDLE_TIMEOUT must be a positive duration")
	}
	cfg.SessionIdle = idle
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
