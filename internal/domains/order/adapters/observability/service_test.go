package observability

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	orderdomain "github.com/Apurer/go-gin-order-flow/internal/domains/order/domain"
)

type stubService struct {
	err error
}

func (s stubService) CreateOrder(_ context.Context, draft orderdomain.Draft) (*orderdomain.PlacedOrder, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &orderdomain.PlacedOrder{ID: "OBS00001", Priority: draft.Priority}, nil
}

func (s stubService) GetOrder(_ context.Context, id string) (*orderdomain.PlacedOrder, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &orderdomain.PlacedOrder{ID: id}, nil
}

func TestService_RecordsSpansAndLogs(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	var logs bytes.Buffer

	svc := New(stubService{},
		WithTracer(provider.Tracer("test")),
		WithLogger(slog.New(slog.NewJSONHandler(&logs, nil))),
	)
	order, err := svc.CreateOrder(context.Background(), orderdomain.Draft{Priority: true})
	require.NoError(t, err)
	require.Equal(t, "OBS00001", order.ID)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, "OrderService.CreateOrder", spans[0].Name())
	require.Contains(t, logs.String(), "order created")
}

func TestService_PropagatesErrors(t *testing.T) {
	boom := errors.New("restaurant unavailable")
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	var logs bytes.Buffer

	svc := New(stubService{err: boom},
		WithTracer(provider.Tracer("test")),
		WithLogger(slog.New(slog.NewJSONHandler(&logs, nil))),
	)
	_, err := svc.GetOrder(context.Background(), "X")
	require.ErrorIs(t, err, boom)
	require.Len(t, recorder.Ended(), 1)
	require.Contains(t, logs.String(), "restaurant unavailable")
}
