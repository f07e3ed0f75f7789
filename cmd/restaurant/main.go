package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Apurer/go-gin-order-flow/internal/app/restaurant"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := restaurant.Run(ctx); err != nil {
		log.Fatalf("restaurant API failed: %v", err)
	}
}
