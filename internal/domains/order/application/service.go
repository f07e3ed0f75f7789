package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-order-flow/internal/domains/order/domain"
	"github.com/Apurer/go-gin-order-flow/internal/domains/order/ports"
	"github.com/Apurer/go-gin-order-flow/internal/shared/idempotency"
)

// Service orchestrates order placement on the restaurant side.
type Service struct {
	repo      ports.Repository
	publisher ports.EventPublisher
	keys      ports.IdempotencyStore
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string
	window    time.Duration
}

type Option func(*Service)

func WithEventPublisher(p ports.EventPublisher) Option {
	return func(s *Service) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithIdempotencyStore makes placements carrying an idempotency key replay the stored order.
func WithIdempotencyStore(store ports.IdempotencyStore) Option {
	return func(s *Service) {
		s.keys = store
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithDeliveryWindow sets the delivery estimate of a regular order.
func WithDeliveryWindow(window time.Duration) Option {
	return func(s *Service) {
		if window > 0 {
			s.window = window
		}
	}
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		publisher: ports.NoopPublisher{},
		now:       time.Now,
		newID:     NewOrderID,
		window:    domain.DefaultDeliveryWindow,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// NewOrderID returns a short, human friendly order number.
func NewOrderID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// CreateOrder places the draft, persists it and announces it.
// A publish failure is logged; the order is already placed at that point.
// When ctx carries an idempotency key, the key is reserved before placing so a
// concurrent duplicate fails with ErrIdempotencyInProgress, and a repeated draft
// returns the order placed for it.
func (s *Service) CreateOrder(ctx context.Context, draft domain.Draft) (*domain.PlacedOrder, error) {
	if s.repo == nil {
		return nil, errors.New("order repository not configured")
	}
	key := idempotency.KeyFrom(ctx)
	if key == "" || s.keys == nil {
		return s.place(ctx, draft)
	}
	fingerprint, err := FingerprintDraft(draft)
	if err != nil {
		return nil, err
	}
	replayed, err := s.reserve(ctx, key, fingerprint)
	if err != nil || replayed != nil {
		return replayed, err
	}

	order, err := s.place(ctx, draft)
	if err != nil {
		if relErr := s.keys.Release(context.WithoutCancel(ctx), key); relErr != nil {
			s.warn(ctx, "failed to release idempotency key", slog.String("error", relErr.Error()))
		}
		return nil, err
	}
	if err := s.keys.Complete(ctx, key, order.ID); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *Service) place(ctx context.Context, draft domain.Draft) (*domain.PlacedOrder, error) {
	placedAt := s.now()
	order, err := domain.Place(s.newID(), draft, placedAt, s.window)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return nil, mapError(err)
	}
	if err := s.publisher.Publish(ctx, domain.NewOrderPlaced(saved.Entity, placedAt)); err != nil {
		s.warn(ctx, "failed to publish order placed event",
			slog.String("order.id", saved.Entity.ID), slog.String("error", err.Error()))
	}
	return saved.Entity, nil
}

// reserve claims key for this placement. It returns the stored order when the
// key already completed with the same draft.
func (s *Service) reserve(ctx context.Context, key, fingerprint string) (*domain.PlacedOrder, error) {
	record, err := s.keys.Reserve(ctx, key, fingerprint)
	if errors.Is(err, ports.ErrIdempotencyConflict) {
		return nil, fmt.Errorf("%w: key %q was used for a different order", ports.ErrIdempotencyConflict, key)
	}
	if err != nil || record == nil {
		return nil, err
	}
	if record.Pending() {
		return nil, fmt.Errorf("%w: key %q", ports.ErrIdempotencyInProgress, key)
	}
	found, err := s.repo.GetByID(ctx, record.OrderID)
	if err != nil {
		return nil, err
	}
	return found.Entity, nil
}

func (s *Service) warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
	}
}

// GetOrder loads a placed order.
func (s *Service) GetOrder(ctx context.Context, id string) (*domain.PlacedOrder, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, mapError(domain.ErrInvalidOrderID)
	}
	found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return found.Entity, nil
}

var _ ports.Service = (*Service)(nil)
