package restaurant

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.temporal.io/sdk/client"

	platformpostgres "github.com/Apurer/go-gin-order-flow/internal/platform/postgres"
	platformtemporal "github.com/Apurer/go-gin-order-flow/internal/platform/temporal"
)

// Config carries environment-driven settings for the restaurant backend and its worker.
type Config struct {
	Port           string
	Postgres       platformpostgres.Config
	Temporal       platformtemporal.Config
	KafkaBrokers   string
	OrderTopic     string
	DeliveryWindow time.Duration
	SeedMenu       bool
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:     envDefault("PORT", "8081"),
		Postgres: platformpostgres.ConfigFromEnv(),
		Temporal: platformtemporal.Config{
			Address:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
			Namespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
			Disabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		},
		KafkaBrokers: strings.TrimSpace(os.Getenv("KAFKA_BROKERS")),
		OrderTopic:   envDefault("ORDER_EVENTS_TOPIC", "orders.placed"),
		SeedMenu:     !isFalsy(os.Getenv("MENU_SEED")),
	}
	window, err := time.ParseDuration(envDefault("DELIVERY_WINDOW", "45m"))
	if err != nil || window <= 0 {
		return Config{}, fmt.Errorf("DELIVERY_WINDOW must be a positive duration")
	}
	cfg.DeliveryWindow = window
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}

func isFalsy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "0" || value == "false" || value == "no"
}
