package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-order-flow/internal/app/restaurant"
	orderapp "github.com/Apurer/go-gin-order-flow/internal/domains/order/application"
	orderactivities "github.com/Apurer/go-gin-order-flow/internal/durable/temporal/activities/orders"
	orderworkflows "github.com/Apurer/go-gin-order-flow/internal/durable/temporal/workflows/orders"
	platformobservability "github.com/Apurer/go-gin-order-flow/internal/platform/observability"
	platformtemporal "github.com/Apurer/go-gin-order-flow/internal/platform/temporal"
)

func main() {
	ctx := context.Background()
	const serviceName = "restaurant-worker"
	cfg, err := restaurant.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	stores, err := restaurant.OpenStores(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open restaurant stores", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer stores.Close()

	// The event is published by its own activity, so persisting never announces.
	persist := orderapp.NewService(
		stores.Orders,
		orderapp.WithLogger(logger),
		orderapp.WithDeliveryWindow(cfg.DeliveryWindow),
	)
	activities := orderactivities.NewActivities(persist, stores.Orders, stores.Publisher)

	temporalClient, err := platformtemporal.Dial(cfg.Temporal, instruments, "temporal-worker")
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderPlacementTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderPlacementWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderPlacementWorkflowName})
	w.RegisterActivityWithOptions(activities.PersistOrder, activity.RegisterOptions{Name: orderactivities.PersistOrderActivityName})
	w.RegisterActivityWithOptions(activities.PublishOrderPlaced, activity.RegisterOptions{Name: orderactivities.PublishOrderPlacedActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderPlacementTaskQueue), slog.String("namespace", cfg.Temporal.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
