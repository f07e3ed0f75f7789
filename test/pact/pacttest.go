//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

const (
	ProviderName = "restaurant-api"
	ConsumerName = "orderflow-api"

	StateMenuSeeded   = "the default menu is served"
	StateOrdersEmpty  = "no orders are stored"
	StateOrderExists  = "order PACT0042 exists"
	StateOrderMissing = "no order with id MISSING1"
)

const (
	ExistingOrderID = "PACT0042"
	MissingOrderID  = "MISSING1"
)

// PlacedAt is the provider clock used for every placed order.
var PlacedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the order-flow consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleCart is a single line of two Mediterranean pizzas.
func ExampleCart() []map[string]any {
	return []map[string]any{{
		"pizzaId":    12,
		"name":       "Mediterranean",
		"quantity":   2,
		"unitPrice":  16,
		"totalPrice": 32,
	}}
}

// ExampleOrderPayload is the order the consumer places in its contract.
func ExampleOrderPayload() map[string]any {
	return map[string]any{
		"customer": "Jonas",
		"phone":    "123456789",
		"address":  "Rambla 1, Barcelona",
		"priority": true,
		"position": "41.39,2.17",
		"cart":     ExampleCart(),
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
