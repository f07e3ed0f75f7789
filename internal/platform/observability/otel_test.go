package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestLogLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, logLevel("debug"))
	require.Equal(t, slog.LevelWarn, logLevel(" WARN "))
	require.Equal(t, slog.LevelInfo, logLevel(""))
	require.Equal(t, slog.LevelInfo, logLevel("chatty"))
}

func TestSampleRatio(t *testing.T) {
	require.InDelta(t, 0.25, sampleRatio("0.25"), 1e-9)
	require.InDelta(t, 0.0, sampleRatio("0"), 1e-9)
	require.InDelta(t, 1.0, sampleRatio(""), 1e-9)
	require.InDelta(t, 1.0, sampleRatio("1.5"), 1e-9)
	require.InDelta(t, 1.0, sampleRatio("half"), 1e-9)
}

func TestSettingsFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "TEXT")
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "0")
	t.Setenv("OTEL_TRACES_SAMPLE_RATIO", "0.1")

	settings := SettingsFromEnv("orderflow-api")
	require.Equal(t, "orderflow-api", settings.ServiceName)
	require.Equal(t, "local", settings.Environment)
	require.Equal(t, slog.LevelDebug, settings.LogLevel)
	require.Equal(t, "text", settings.LogFormat)
	require.False(t, settings.OTLPInsecure)
	require.InDelta(t, 0.1, settings.SampleRatio, 1e-9)
}

func TestNewLogger_StampsTraceIDs(t *testing.T) {
	var out bytes.Buffer
	logger := NewLogger(&out, Settings{ServiceName: "restaurant", LogLevel: slog.LevelInfo})

	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.With(slog.String("order.id", "ORDER001")).InfoContext(ctx, "order placed")

	var record map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &record))
	require.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", record["trace_id"])
	require.Equal(t, "00f067aa0ba902b7", record["span_id"])
	require.Equal(t, "restaurant", record["service"])
	require.Equal(t, "ORDER001", record["order.id"])
}

func TestNewLogger_NoSpanNoTraceFields(t *testing.T) {
	var out bytes.Buffer
	NewLogger(&out, Settings{LogFormat: "json"}).Info("menu seeded")

	var record map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &record))
	require.NotContains(t, record, "trace_id")
}

func TestInstruments_NilFallbacks(t *testing.T) {
	var instruments *Instruments
	require.NotNil(t, instruments.Tracer("test"))
	require.NotNil(t, instruments.Meter("test"))
}
