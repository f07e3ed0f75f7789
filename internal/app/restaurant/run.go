package restaurant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"

	orderflowserver "github.com/Apurer/go-gin-order-flow/go"
	menumemory "github.com/Apurer/go-gin-order-flow/internal/domains/menu/adapters/memory"
	menupostgres "github.com/Apurer/go-gin-order-flow/internal/domains/menu/adapters/persistence/postgres"
	menuapp "github.com/Apurer/go-gin-order-flow/internal/domains/menu/application"
	menudomain "github.com/Apurer/go-gin-order-flow/internal/domains/menu/domain"
	menuports "github.com/Apurer/go-gin-order-flow/internal/domains/menu/ports"
	kafkapub "github.com/Apurer/go-gin-order-flow/internal/domains/order/adapters/events/kafka"
	ordermemory "github.com/Apurer/go-gin-order-flow/internal/domains/order/adapters/memory"
	orderobs "github.com/Apurer/go-gin-order-flow/internal/domains/order/adapters/observability"
	orderpostgres "github.com/Apurer/go-gin-order-flow/internal/domains/order/adapters/persistence/postgres"
	orderworkflows "github.com/Apurer/go-gin-order-flow/internal/domains/order/adapters/workflows"
	orderapp "github.com/Apurer/go-gin-order-flow/internal/domains/order/application"
	orderports "github.com/Apurer/go-gin-order-flow/internal/domains/order/ports"
	"github.com/Apurer/go-gin-order-flow/internal/platform/httpserver"
	platformkafka "github.com/Apurer/go-gin-order-flow/internal/platform/kafka"
	platformmetrics "github.com/Apurer/go-gin-order-flow/internal/platform/metrics"
	"github.com/Apurer/go-gin-order-flow/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-order-flow/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-order-flow/internal/platform/postgres"
	platformtemporal "github.com/Apurer/go-gin-order-flow/internal/platform/temporal"
)

const serviceName = "restaurant-api"

// Stores bundles the repositories and event publisher shared by the backend and its worker.
type Stores struct {
	Orders      orderports.Repository
	Idempotency orderports.IdempotencyStore
	Menu        menuports.Repository
	Publisher   orderports.EventPublisher
	close       []func()
}

// Close releases the database connection and the Kafka writer.
func (s *Stores) Close() {
	for i := len(s.close) - 1; i >= 0; i-- {
		s.close[i]()
	}
}

// OpenStores selects Postgres when configured and reachable, in-memory repositories otherwise.
// Events go to Kafka when brokers are configured and are dropped otherwise.
func OpenStores(ctx context.Context, cfg Config, logger *slog.Logger) (*Stores, error) {
	stores := &Stores{
		Orders:      ordermemory.NewRepository(),
		Idempotency: ordermemory.NewIdempotencyStore(),
		Menu:        menumemory.NewRepository(),
		Publisher:   orderports.NoopPublisher{},
	}
	db, cleanup := platformpostgres.Open(ctx, cfg.Postgres, logger)
	if db != nil {
		if err := migrations.Run(db); err != nil {
			cleanup()
			return nil, fmt.Errorf("failed to migrate restaurant schema: %w", err)
		}
		stores.Orders = orderpostgres.NewRepository(db)
		stores.Idempotency = orderpostgres.NewIdempotencyStore(db)
		stores.Menu = menupostgres.NewRepository(db)
		stores.close = append(stores.close, cleanup)
		logger.Info("restaurant repositories configured with postgres")
	}
	if kafka := platformkafka.NewClient(cfg.KafkaBrokers); kafka.Enabled() {
		writer := kafka.NewWriter(cfg.OrderTopic)
		stores.Publisher = kafkapub.NewPublisher(writer)
		stores.close = append(stores.close, func() {
			if err := writer.Close(); err != nil {
				logger.Warn("failed to close kafka writer", slog.String("error", err.Error()))
			}
		})
		logger.Info("order events published to kafka", slog.String("topic", cfg.OrderTopic))
	} else {
		logger.Warn("KAFKA_BROKERS not set, order events are not published")
	}
	return stores, nil
}

// Run boots the restaurant backend: menu, order placement and lookup.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	stores, err := OpenStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer stores.Close()

	temporalClient, err := platformtemporal.Dial(cfg.Temporal, instruments, "temporal-client")
	if err != nil {
		logger.Warn("Temporal workflows unavailable, placing orders inline", slog.String("error", err.Error()))
		temporalClient = nil
	} else {
		defer temporalClient.Close()
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.Temporal.Namespace))
	}

	router, err := NewRouter(ctx, cfg, instruments, stores, temporalClient)
	if err != nil {
		return err
	}
	if err := httpserver.Serve(ctx, logger, ":"+cfg.Port, router); err != nil {
		logger.Error("restaurant API server exited", slog.String("error", err.Error()))
		return err
	}
	return nil
}

// NewRouter assembles the restaurant backend. A nil Temporal client places orders inline.
func NewRouter(ctx context.Context, cfg Config, instruments *platformobservability.Instruments, stores *Stores, temporalClient client.Client) (*gin.Engine, error) {
	if stores == nil {
		return nil, errors.New("restaurant stores not configured")
	}
	logger := instruments.Logger

	catalog := menuapp.NewService(stores.Menu)
	if cfg.SeedMenu {
		seeded, err := catalog.Seed(ctx, menudomain.DefaultMenu())
		if err != nil {
			return nil, fmt.Errorf("failed to seed menu: %w", err)
		}
		if seeded > 0 {
			logger.Info("menu seeded", slog.Int("pizzas", seeded))
		}
	}

	orders := orderobs.New(
		orderapp.NewService(
			stores.Orders,
			orderapp.WithEventPublisher(stores.Publisher),
			orderapp.WithIdempotencyStore(stores.Idempotency),
			orderapp.WithLogger(logger),
			orderapp.WithDeliveryWindow(cfg.DeliveryWindow),
		),
		orderobs.WithLogger(logger),
		orderobs.WithTracer(instruments.Tracer("internal.order.service")),
		orderobs.WithMeter(instruments.Meter("internal.order.service")),
	)
	var workflows orderports.WorkflowOrchestrator = orderworkflows.NewInlineOrderWorkflows(orders)
	if temporalClient != nil {
		workflows = orderworkflows.NewTemporalOrderWorkflows(temporalClient)
	}

	metrics := platformmetrics.NewServerMetrics("restaurant")
	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware(serviceName), metrics.Middleware())
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/healthz", httpserver.Health)

	handlers := orderflowserver.RestaurantHandleFunctions{
		RestaurantAPI: orderflowserver.NewRestaurantAPI(catalog, orders, workflows),
	}
	return orderflowserver.NewRestaurantRouterWithGinEngine(router, handlers), nil
}
