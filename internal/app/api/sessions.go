package api

import (
	"context"
	"log/slog"
	"time"

	cartmemory "github.com/Apurer/go-gin-order-flow/internal/domains/cart/adapters/memory"
	checkoutmemory "github.com/Apurer/go-gin-order-flow/internal/domains/checkout/adapters/memory"
)

// sweepSessions drops idle checkout flows and carts every interval until ctx
// ends. A cart stays while its session still has an open flow.
func sweepSessions(ctx context.Context, logger *slog.Logger, interval, idle time.Duration, flows *checkoutmemory.Flows, carts *cartmemory.Registry) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			evictIdle(logger, idle, flows, carts)
		}
	}
}

func evictIdle(logger *slog.Logger, idle time.Duration, flows *checkoutmemory.Flows, carts *cartmemory.Registry) {
	droppedFlows := flows.Evict(idle)
	droppedCarts := carts.Evict(idle, flows.HasSession)
	if droppedFlows+droppedCarts > 0 {
		logger.Debug("evicted idle sessions",
			slog.Int("flows", droppedFlows),
			slog.Int("carts", droppedCarts),
			slog.Int("remaining", carts.Len()))
	}
}

func sweepInterval(idle time.Duration) time.Duration {
	return min(max(idle/4, time.Second), 5*time.Minute)
}
