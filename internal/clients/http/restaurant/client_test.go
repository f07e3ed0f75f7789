package restaurant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ordermapper "github.com/Apurer/go-gin-order-flow/internal/domains/order/adapters/http/mapper"
	"github.com/Apurer/go-gin-order-flow/internal/shared/idempotency"
)

func TestCreateOrder_SendsPayloadAndKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/order", r.URL.Path)
		assert.Equal(t, "flow-1", r.Header.Get(idempotency.Header))
		var payload ordermapper.CreateOrder
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Ana", payload.Customer)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"status":"success","data":{"id":"ABCD1234","customer":"Ana","cart":[],"orderPrice":24,"priorityPrice":0}}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, srv.Client())
	require.NoError(t, err)

	ctx := idempotency.WithKey(context.Background(), "flow-1")
	order, err := client.CreateOrder(ctx, ordermapper.CreateOrder{Customer: "Ana", Address: "Main", Cart: json.RawMessage(`[]`)})
	require.NoError(t, err)
	require.Equal(t, "ABCD1234", order.ID)
	require.Equal(t, json.Number("24"), order.OrderPrice)
}

func TestGetOrder_EscapesPathAndMapsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/order/A%20B", r.URL.EscapedPath())
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status":"fail","message":"Couldn't find order #A B"}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, srv.Client())
	require.NoError(t, err)
	_, err = client.GetOrder(context.Background(), "A B")
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorContains(t, err, "Couldn't find order")
}

func TestCreateOrder_RejectedAndServerErrors(t *testing.T) {
	status := http.StatusBadRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"title":"invalid order input"}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, srv.Client())
	require.NoError(t, err)
	_, err = client.CreateOrder(context.Background(), ordermapper.CreateOrder{})
	require.ErrorIs(t, err, ErrRejected)

	status = http.StatusInternalServerError
	_, err = client.CreateOrder(context.Background(), ordermapper.CreateOrder{})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrRejected)
}

func TestGetMenu(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/base/api/menu", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"success","data":[{"id":1,"name":"Margherita","unitPrice":12,"imageUrl":"","ingredients":["tomato"],"soldOut":false}]}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL+"/base", srv.Client())
	require.NoError(t, err)
	menu, err := client.GetMenu(context.Background())
	require.NoError(t, err)
	require.Len(t, menu, 1)
	require.Equal(t, "Margherita", menu[0].Name)
}

func TestNewClient_RequiresURL(t *testing.T) {
	_, err := NewClient(" ", nil)
	require.Error(t, err)
}
