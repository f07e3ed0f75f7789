package orders

import (
	"context"
	"errors"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	orderapplication "github.com/Apurer/go-gin-order-flow/internal/domains/order/application"
	orderdomain "github.com/Apurer/go-gin-order-flow/internal/domains/order/domain"
	orderports "github.com/Apurer/go-gin-order-flow/internal/domains/order/ports"
)

const (
	// PersistOrderActivityName places and stores the order without announcing it.
	PersistOrderActivityName = "orders.activities.PersistOrder"
	// PublishOrderPlacedActivityName announces an already stored order.
	PublishOrderPlacedActivityName = "orders.activities.PublishOrderPlaced"
	// InvalidOrderErrorType marks drafts the restaurant refuses; retrying cannot help.
	InvalidOrderErrorType = "InvalidOrderInput"
)

// Activities groups activities that operate on the order bounded context.
type Activities struct {
	persist   orderports.OrderCreator
	repo      orderports.Repository
	publisher orderports.EventPublisher
}

// NewActivities wires the order collaborators into the Temporal activities bundle.
// persist should be built without an event publisher so the event is only sent by PublishOrderPlaced.
func NewActivities(persist orderports.OrderCreator, repo orderports.Repository, publisher orderports.EventPublisher) *Activities {
	return &Activities{persist: persist, repo: repo, publisher: publisher}
}

// PersistOrder places the draft and returns the stored order.
func (a *Activities) PersistOrder(ctx context.Context, draft orderdomain.Draft) (*orderdomain.PlacedOrder, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.persist == nil {
		logger.Error("order persist activity not initialized")
		return nil, errors.New("order persist activity not initialized")
	}
	logger.Info("PersistOrder activity started", "customer", draft.Customer, "items", draft.Cart.TotalQuantity())
	order, err := a.persist.CreateOrder(ctx, draft)
	if err != nil {
		logger.Error("PersistOrder activity failed", "error", err)
		if errors.Is(err, orderapplication.ErrInvalidInput) {
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), InvalidOrderErrorType, err)
		}
		return nil, err
	}
	logger.Info("PersistOrder activity completed", "orderId", order.ID)
	return order, nil
}

// PublishOrderPlaced loads a stored order and emits its placed event once.
func (a *Activities) PublishOrderPlaced(ctx context.Context, orderID string) error {
	logger := activity.GetLogger(ctx)
	if a == nil {
		logger.Error("order publish activity not initialized", "orderId", orderID)
		return errors.New("order publish activity not initialized")
	}
	if a.publisher == nil {
		logger.Info("event publisher not configured; skipping", "orderId", orderID)
		return nil
	}
	if a.repo == nil {
		logger.Error("order repository not configured for publish", "orderId", orderID)
		return errors.New("order repository not configured for publish")
	}

	var hb publishHeartbeat
	if activity.HasHeartbeatDetails(ctx) {
		_ = activity.GetHeartbeatDetails(ctx, &hb)
	}
	if hb.Completed {
		logger.Info("PublishOrderPlaced already completed in prior attempt; skipping", "orderId", orderID)
		return nil
	}

	projection, err := a.repo.GetByID(ctx, orderID)
	if err != nil {
		logger.Error("PublishOrderPlaced failed to load order", "orderId", orderID, "error", err)
		return err
	}
	if projection == nil || projection.Entity == nil {
		return errors.New("order projection missing for publish")
	}
	event := orderdomain.NewOrderPlaced(projection.Entity, projection.Metadata.CreatedAt)
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if err := a.publisher.Publish(ctx, event); err != nil {
		logger.Error("PublishOrderPlaced failed", "orderId", orderID, "error", err)
		return err
	}
	activity.RecordHeartbeat(ctx, publishHeartbeat{Completed: true})
	logger.Info("PublishOrderPlaced activity completed", "orderId", orderID)
	return nil
}

type publishHeartbeat struct {
	Completed bool
}
