package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	menupostgres "github.com/Apurer/go-gin-order-flow/internal/domains/menu/adapters/persistence/postgres"
	menuapp "github.com/Apurer/go-gin-order-flow/internal/domains/menu/application"
	menudomain "github.com/Apurer/go-gin-order-flow/internal/domains/menu/domain"
	"github.com/Apurer/go-gin-order-flow/internal/platform/migrations"
	platformpostgres "github.com/Apurer/go-gin-order-flow/internal/platform/postgres"
)

// migrate applies the restaurant schema and seeds the default menu into an empty table.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.Open(ctx, platformpostgres.ConfigFromEnv(), logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot migrate")
	}

	if err := migrations.Run(db); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}
	seeded, err := menuapp.NewService(menupostgres.NewRepository(db)).Seed(ctx, menudomain.DefaultMenu())
	if err != nil {
		log.Fatalf("failed to seed menu: %v", err)
	}
	log.Printf("migration completed, %d pizzas seeded", seeded)
}
