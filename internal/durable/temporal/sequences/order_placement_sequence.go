package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	orderdomain "github.com/Apurer/go-gin-order-flow/internal/domains/order/domain"
	orderactivities "github.com/Apurer/go-gin-order-flow/internal/durable/temporal/activities/orders"
)

// RunOrderPlacementSequence persists the order and then announces it.
// The order is returned even when publishing gives up; the event can be replayed from storage.
func RunOrderPlacementSequence(ctx workflow.Context, draft orderdomain.Draft) (*orderdomain.PlacedOrder, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order placement sequence started", "customer", draft.Customer)

	persistCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	})
	var order orderdomain.PlacedOrder
	if err := workflow.ExecuteActivity(persistCtx, orderactivities.PersistOrderActivityName, draft).Get(ctx, &order); err != nil {
		logger.Error("order placement sequence failed", "error", err)
		return nil, err
	}

	publishCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		HeartbeatTimeout:    10 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    30 * time.Second,
			MaximumAttempts:    10,
		},
	})
	if err := workflow.ExecuteActivity(publishCtx, orderactivities.PublishOrderPlacedActivityName, order.ID).Get(ctx, nil); err != nil {
		logger.Warn("order placed event not published", "orderId", order.ID, "error", err)
	}
	logger.Info("order placement sequence completed", "orderId", order.ID)
	return &order, nil
}
