package ports

import (
	"context"
	"errors"
	"time"
)

// ErrIdempotencyConflict indicates the same key was used with a different draft or order.
var ErrIdempotencyConflict = errors.New("idempotency conflict")

// ErrIdempotencyInProgress indicates another placement holds the key and has not finished yet.
var ErrIdempotencyInProgress = errors.New("idempotent placement in progress")

// IdempotencyRecord captures the association between a client-supplied key and the placed order.
// OrderID stays empty while the placement that reserved the key is running.
type IdempotencyRecord struct {
	Key         string
	RequestHash string
	OrderID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Pending reports whether the placement holding the key has not completed.
func (r IdempotencyRecord) Pending() bool { return r.OrderID == "" }

// IdempotencyStore persists idempotency keys so retried placements replay the stored order.
// A key is reserved before the order is placed, completed with the order id once it is
// saved, and released when placement fails.
type IdempotencyStore interface {
	// Get returns the stored record for the key, or nil when unknown.
	Get(ctx context.Context, key string) (*IdempotencyRecord, error)
	// Reserve claims the key for a placement. It returns nil when the caller now holds the key,
	// or the stored record when the key was already taken. A stored record with a different
	// hash is returned together with ErrIdempotencyConflict.
	Reserve(ctx context.Context, key, requestHash string) (*IdempotencyRecord, error)
	// Complete binds a reserved key to the placed order.
	Complete(ctx context.Context, key, orderID string) error
	// Release drops a reservation that never produced an order. Completed keys are kept.
	Release(ctx context.Context, key string) error
}
