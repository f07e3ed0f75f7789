package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	orderflowserver "github.com/Apurer/go-gin-order-flow/go"
	restaurantclient "github.com/Apurer/go-gin-order-flow/internal/clients/http/restaurant"
	"github.com/Apurer/go-gin-order-flow/internal/domains/address/adapters/device"
	"github.com/Apurer/go-gin-order-flow/internal/domains/address/adapters/external/geocode"
	addressapp "github.com/Apurer/go-gin-order-flow/internal/domains/address/application"
	cartmemory "github.com/Apurer/go-gin-order-flow/internal/domains/cart/adapters/memory"
	checkoutmemory "github.com/Apurer/go-gin-order-flow/internal/domains/checkout/adapters/memory"
	checkoutapp "github.com/Apurer/go-gin-order-flow/internal/domains/checkout/application"
	menurestaurant "github.com/Apurer/go-gin-order-flow/internal/domains/menu/adapters/external/restaurant"
	orderrestaurant "github.com/Apurer/go-gin-order-flow/internal/domains/order/adapters/external/restaurant"
	orderobs "github.com/Apurer/go-gin-order-flow/internal/domains/order/adapters/observability"
	"github.com/Apurer/go-gin-order-flow/internal/platform/httpserver"
	platformmetrics "github.com/Apurer/go-gin-order-flow/internal/platform/metrics"
	platformobservability "github.com/Apurer/go-gin-order-flow/internal/platform/observability"
	"github.com/Apurer/go-gin-order-flow/internal/shared/idempotency"
)

const serviceName = "orderflow-api"

// Run boots the order-flow HTTP API with observability and the restaurant collaborator wired.
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

	router, err := NewRouter(ctx, cfg, instruments)
	if err != nil {
		return err
	}
	if err := httpserver.Serve(ctx, logger, ":"+cfg.Port, router); err != nil {
		logger.Error("order-flow API server exited", slog.String("error", err.Error()))
		return err
	}
	return nil
}

// NewRouter assembles the order-flow API from its configuration. Idle sessions
// are swept until ctx ends.
func NewRouter(ctx context.Context, cfg Config, instruments *platformobservability.Instruments) (*gin.Engine, error) {
	logger := instruments.Logger
	httpClient := &http.Client{Timeout: cfg.UpstreamTimeout}

	restaurant, err := restaurantclient.NewClient(cfg.RestaurantURL, httpClient)
	if err != nil {
		return nil, err
	}
	geocoder, err := geocode.NewClient(cfg.GeocodeURL, httpClient)
	if err != nil {
		return nil, err
	}
	orders := orderobs.New(
		orderrestaurant.NewGateway(restaurant),
		orderobs.WithLogger(logger),
		orderobs.WithTracer(instruments.Tracer("internal.order.restaurant")),
		orderobs.WithMeter(instruments.Meter("internal.order.restaurant")),
	)
	carts := cartmemory.NewRegistry()
	flows := checkoutmemory.NewFlows(func(flowID, sessionID string) *checkoutapp.Flow {
		store := carts.ForSession(sessionID)
		resolver := addressapp.NewResolver(device.Reported{}, geocoder)
		pipeline := checkoutapp.NewPipeline(orders, store, checkoutapp.WithPipelineLogger(logger))
		return checkoutapp.NewFlow(flowID, store, resolver, pipeline)
	})
	if cfg.SessionIdle > 0 {
		go sweepSessions(ctx, logger, sweepInterval(cfg.SessionIdle), cfg.SessionIdle, flows, carts)
	}

	handlers := orderflowserver.ApiHandleFunctions{
		CartAPI:     orderflowserver.NewCartAPI(carts),
		CheckoutAPI: orderflowserver.NewCheckoutAPI(flows, carts, orders),
		MenuAPI:     orderflowserver.NewMenuAPI(menurestaurant.NewCatalog(restaurant)),
		OrderAPI:    orderflowserver.NewOrderAPI(orders),
	}

	metrics := platformmetrics.NewServerMetrics("api")
	router := gin.New()
	router.Use(
		gin.Recovery(),
		otelgin.Middleware(serviceName),
		metrics.Middleware(),
		corsMiddleware(cfg.AllowedOrigins),
	)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/healthz", httpserver.Health)
	logger.Info("order-flow API configured", slog.String("restaurant", cfg.RestaurantURL))
	return orderflowserver.NewRouterWithGinEngine(router, handlers), nil
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", idempotency.Header, orderflowserver.SessionHeader},
		ExposeHeaders: []string{"Location", orderflowserver.SessionHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}
