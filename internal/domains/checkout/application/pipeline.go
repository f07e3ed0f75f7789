package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	cartports "github.com/Apurer/go-gin-order-flow/internal/domains/cart/ports"
	"github.com/Apurer/go-gin-order-flow/internal/domains/checkout/ports"
	orderdomain "github.com/Apurer/go-gin-order-flow/internal/domains/order/domain"
	orderports "github.com/Apurer/go-gin-order-flow/internal/domains/order/ports"
)

var (
	// ErrEmptyCart is returned when a submission carries no cart lines. No order is created.
	ErrEmptyCart = errors.New("cannot place an order with an empty cart")
	// ErrOrderCreation wraps failures of the order-creation collaborator.
	ErrOrderCreation = errors.New("order creation failed")
)

// Outcome is the result of one submit attempt. Either Errors is non-empty or Order is set.
type Outcome struct {
	Errors   orderdomain.ValidationErrors
	Order    *orderdomain.PlacedOrder
	Redirect string
}

// Accepted reports whether the order was created.
func (o *Outcome) Accepted() bool {
	return o != nil && o.Order != nil
}

// Pipeline runs parse, validate, create, clear cart and navigate for a single submission.
type Pipeline struct {
	creator orderports.OrderCreator
	cart    cartports.Store
	logger  *slog.Logger
}

type PipelineOption func(*Pipeline)

func WithPipelineLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPipeline wires the order-creation collaborator and the cart cleared on success.
func NewPipeline(creator orderports.OrderCreator, cart cartports.Store, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		creator: creator,
		cart:    cart,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// finalizer applies the success transition. It may refuse, in which case neither
// the cart nor the navigation is touched.
type finalizer func(apply func()) error

func applyNow(apply func()) error {
	apply()
	return nil
}

// Submit processes a raw submission. Validation failures are returned in the outcome
// with a nil error; collaborator failures are returned as errors and leave the cart intact.
func (p *Pipeline) Submit(ctx context.Context, raw orderdomain.RawForm, nav ports.Navigator) (*Outcome, error) {
	return p.submit(ctx, raw, nav, applyNow)
}

func (p *Pipeline) submit(ctx context.Context, raw orderdomain.RawForm, nav ports.Navigator, finalize finalizer) (*Outcome, error) {
	if p.creator == nil || p.cart == nil {
		return nil, errors.New("submission pipeline not configured")
	}
	form, err := orderdomain.ParseForm(raw)
	if err != nil {
		return nil, err
	}
	if form.Cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	draft := orderdomain.ComposeForm(form)
	if errs := orderdomain.Validate(draft); !errs.Empty() {
		p.logger.LogAttrs(ctx, slog.LevelInfo, "order submission rejected", slog.Any("fields", errs.Fields()))
		return &Outcome{Errors: errs}, nil
	}

	order, err := p.creator.CreateOrder(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOrderCreation, err)
	}
	if order == nil || order.ID == "" {
		return nil, fmt.Errorf("%w: collaborator returned no order id", ErrOrderCreation)
	}

	outcome := &Outcome{Order: order, Redirect: ports.OrderDetailPath(order.ID)}
	if err := finalize(func() {
		p.cart.Clear()
		if nav != nil {
			nav.ToOrder(order.ID)
		}
	}); err != nil {
		return outcome, err
	}
	p.logger.LogAttrs(ctx, slog.LevelInfo, "order submitted", slog.String("order.id", order.ID))
	return outcome, nil
}
