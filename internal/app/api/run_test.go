package api

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	platformobservability "github.com/Apurer/go-gin-order-flow/internal/platform/observability"
)

func testInstruments() *platformobservability.Instruments {
	return &platformobservability.Instruments{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func TestNewRouter_ServesProbesAndMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router, err := NewRouter(t.Context(), Config{
		Port:            "0",
		RestaurantURL:   "http://restaurant.invalid",
		UpstreamTimeout: time.Second,
		AllowedOrigins:  []string{"https://shop.example"},
	}, testInstruments())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), "orderflow_api_http_requests_total"))
}

func TestNewRouter_CORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router, err := NewRouter(t.Context(), Config{
		RestaurantURL:   "http://restaurant.invalid",
		UpstreamTimeout: time.Second,
		AllowedOrigins:  []string{"https://shop.example"},
	}, testInstruments())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodOptions, "/flows", nil)
	req.Header.Set("Origin", "https://shop.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "https://shop.example", rec.Header().Get("Access-Control-Allow-Origin"))
}
