package restaurant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oapi-codegen/runtime"

	menumapper "github.com/Apurer/go-gin-order-flow/internal/domains/menu/adapters/http/mapper"
	ordermapper "github.com/Apurer/go-gin-order-flow/internal/domains/order/adapters/http/mapper"
	"github.com/Apurer/go-gin-order-flow/internal/shared/idempotency"
)

var (
	// ErrNotFound is returned when the restaurant has no resource for the identifier.
	ErrNotFound = errors.New("restaurant resource not found")
	// ErrRejected is returned when the restaurant refuses the request as invalid.
	ErrRejected = errors.New("restaurant rejected the request")
)

// Client talks to the restaurant backend API.
type Client struct {
	server     *url.URL
	httpClient *http.Client
}

// RequestOption configures a single call.
type RequestOption func(*requestOptions)

type requestOptions struct {
	idempotencyKey string
}

// WithIdempotencyKey sets the Idempotency-Key header for the request.
func WithIdempotencyKey(key string) RequestOption {
	return func(opts *requestOptions) {
		opts.idempotencyKey = strings.TrimSpace(key)
	}
}

// NewClient instantiates the restaurant client with sane defaults.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("restaurant base URL is required")
	}
	server, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("parse restaurant base URL: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{server: server, httpClient: httpClient}, nil
}

// CreateOrder posts the order payload and returns the placed order.
// The idempotency key attached to ctx is forwarded unless overridden.
func (c *Client) CreateOrder(ctx context.Context, payload ordermapper.CreateOrder, optFns ...RequestOption) (*ordermapper.Order, error) {
	if c == nil || c.httpClient == nil {
		return nil, errors.New("restaurant client not configured")
	}
	opts := requestOptions{idempotencyKey: idempotency.KeyFrom(ctx)}
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}
	req, err := newCreateOrderRequest(ctx, c.server, payload)
	if err != nil {
		return nil, err
	}
	if opts.idempotencyKey != "" {
		req.Header.Set(idempotency.Header, opts.idempotencyKey)
	}
	var out ordermapper.Envelope[ordermapper.Order]
	if err := c.do(req, http.StatusCreated, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// GetOrder fetches a placed order by id.
func (c *Client) GetOrder(ctx context.Context, id string) (*ordermapper.Order, error) {
	if c == nil || c.httpClient == nil {
		return nil, errors.New("restaurant client not configured")
	}
	req, err := newGetOrderRequest(ctx, c.server, id)
	if err != nil {
		return nil, err
	}
	var out ordermapper.Envelope[ordermapper.Order]
	if err := c.do(req, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// GetMenu fetches the current menu.
func (c *Client) GetMenu(ctx context.Context) ([]menumapper.Pizza, error) {
	if c == nil || c.httpClient == nil {
		return nil, errors.New("restaurant client not configured")
	}
	target, err := c.server.Parse("api/menu")
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	var out ordermapper.Envelope[[]menumapper.Pizza]
	if err := c.do(req, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) do(req *http.Request, expected int, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call restaurant API: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read restaurant response: %w", err)
	}
	status := resp.StatusCode
	switch {
	case status == expected:
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode restaurant response: %w", err)
		}
		return nil
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, errorMessage(body, resp.Status))
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", ErrRejected, errorMessage(body, resp.Status))
	case status >= http.StatusBadRequest:
		return fmt.Errorf("restaurant API error: %s", errorMessage(body, resp.Status))
	default:
		return fmt.Errorf("restaurant API unexpected status: %s", resp.Status)
	}
}

func newCreateOrderRequest(ctx context.Context, server *url.URL, payload ordermapper.CreateOrder) (*http.Request, error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	target, err := server.Parse("api/order")
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func newGetOrderRequest(ctx context.Context, server *url.URL, id string) (*http.Request, error) {
	pathParam, err := runtime.StyleParamWithLocation("simple", false, "id", runtime.ParamLocationPath, id)
	if err != nil {
		return nil, err
	}
	target, err := server.Parse("api/order/" + pathParam)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

type errorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Title   string `json:"title"`
	Detail  string `json:"detail"`
}

func errorMessage(body []byte, fallback string) string {
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fallback
	}
	for _, candidate := range []string{parsed.Message, parsed.Detail, parsed.Title} {
		if msg := strings.TrimSpace(candidate); msg != "" {
			return msg
		}
	}
	return fallback
}
