package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	orderdomain "github.com/Apurer/go-gin-order-flow/internal/domains/order/domain"
	orderports "github.com/Apurer/go-gin-order-flow/internal/domains/order/ports"
)

const tracerName = "github.com/Apurer/go-gin-order-flow/internal/domains/order/adapters/observability/service"

// Service decorates the order service with tracing, logging, and metrics.
type Service struct {
	inner   orderports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core order service.
func New(inner orderports.Service, opts ...Option) orderports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) CreateOrder(ctx context.Context, draft orderdomain.Draft) (*orderdomain.PlacedOrder, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CreateOrder",
		trace.WithAttributes(
			attribute.Bool("order.priority", draft.Priority),
			attribute.Int("order.items", draft.Cart.TotalQuantity()),
			attribute.Bool("order.has_position", draft.Position != nil),
		))
	defer span.End()

	s.logInfo(ctx, "creating order", slog.Bool("order.priority", draft.Priority), slog.Int("order.items", draft.Cart.TotalQuantity()))
	result, err := s.inner.CreateOrder(ctx, draft)
	if err != nil {
		s.metrics.recordFailed(ctx)
		return nil, s.handleError(ctx, span, err, "failed to create order")
	}
	span.SetAttributes(attribute.String("order.id", result.ID))
	s.metrics.recordPlaced(ctx, result.Priority)
	s.logInfo(ctx, "order created", slog.String("order.id", result.ID), slog.String("order.total", result.Total().StringFixed(2)))
	return result, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (*orderdomain.PlacedOrder, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetOrder", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	s.logInfo(ctx, "loading order", slog.String("order.id", id))
	result, err := s.inner.GetOrder(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("order.id", id))
	}
	s.logInfo(ctx, "order loaded", slog.String("order.id", result.ID), slog.String("status", string(result.Status)))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	ordersPlaced metric.Int64Counter
	ordersFailed metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersPlaced, _ := m.Int64Counter("order.service.orders_placed", metric.WithDescription("Number of orders placed"))
	ordersFailed, _ := m.Int64Counter("order.service.orders_failed", metric.WithDescription("Number of order placements that failed"))
	return serviceMetrics{ordersPlaced: ordersPlaced, ordersFailed: ordersFailed}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, priority bool) {
	if m.ordersPlaced != nil {
		m.ordersPlaced.Add(ctx, 1, metric.WithAttributes(attribute.Bool("order.priority", priority)))
	}
}

func (m serviceMetrics) recordFailed(ctx context.Context) {
	if m.ordersFailed != nil {
		m.ordersFailed.Add(ctx, 1)
	}
}

var _ orderports.Service = (*Service)(nil)
