package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	addressapp "github.com/Apurer/go-gin-order-flow/internal/domains/address/application"
	addressdomain "github.com/Apurer/go-gin-order-flow/internal/domains/address/domain"
	cartdomain "github.com/Apurer/go-gin-order-flow/internal/domains/cart/domain"
	cartports "github.com/Apurer/go-gin-order-flow/internal/domains/cart/ports"
	"github.com/Apurer/go-gin-order-flow/internal/domains/checkout/ports"
	orderdomain "github.com/Apurer/go-gin-order-flow/internal/domains/order/domain"
)

// Phase is the single busy flag shared by both suspension points of a flow.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseResolving  Phase = "resolving"
	PhaseSubmitting Phase = "submitting"
)

const (
	LabelSubmit     = "Order now"
	LabelSubmitting = "Placing order..."
)

var (
	// ErrFlowBusy is returned when an address resolution or submission is already in flight.
	ErrFlowBusy = errors.New("checkout flow is busy")
	// ErrFlowAbandoned is returned once the flow was torn down.
	ErrFlowAbandoned = errors.New("checkout flow was abandoned")
)

// AbandonedError reports a submission that completed after the flow was torn down.
// The order exists but the cart was not cleared and no navigation happened.
type AbandonedError struct {
	OrderID string
}

func (e *AbandonedError) Error() string {
	return fmt.Sprintf("%s: order %s placed after tear-down", ErrFlowAbandoned, e.OrderID)
}

func (e *AbandonedError) Unwrap() error { return ErrFlowAbandoned }

// Controls is the enabled state of the order page controls.
type Controls struct {
	Phase          Phase
	ResolveEnabled bool
	SubmitEnabled  bool
	SubmitLabel    string
}

// FormView holds the presented fields the flow fills in.
type FormView struct {
	Address      string
	AddressError string
	Resolution   addressdomain.Status
	Cart         string
	Position     string
	CartTotal    string
	PriorityCost string
}

// Flow is one visit of the order page.
type Flow struct {
	id       string
	cart     cartports.Store
	resolver *addressapp.Resolver
	pipeline *Pipeline

	mu        sync.Mutex
	phase     Phase
	abandoned bool
}

// NewFlow enters the order page: the resolver starts over from idle.
func NewFlow(id string, cart cartports.Store, resolver *addressapp.Resolver, pipeline *Pipeline) *Flow {
	resolver.Reset()
	return &Flow{
		id:       id,
		cart:     cart,
		resolver: resolver,
		pipeline: pipeline,
		phase:    PhaseIdle,
	}
}

func (f *Flow) ID() string { return f.id }

// Controls reports which controls are enabled.
func (f *Flow) Controls() Controls {
	f.mu.Lock()
	defer f.mu.Unlock()
	idle := f.phase == PhaseIdle && !f.abandoned
	label := LabelSubmit
	if f.phase == PhaseSubmitting {
		label = LabelSubmitting
	}
	return Controls{
		Phase:          f.phase,
		ResolveEnabled: idle && f.resolver.CanResolve(),
		SubmitEnabled:  idle,
		SubmitLabel:    label,
	}
}

// Resolution returns the latest address resolution.
func (f *Flow) Resolution() addressdomain.Resolution {
	return f.resolver.Snapshot()
}

// Form renders the fields the flow pre-fills from the latest cart and resolution.
func (f *Flow) Form() (FormView, error) {
	items := f.cart.Items()
	encoded, err := cartdomain.Encode(items)
	if err != nil {
		return FormView{}, err
	}
	res := f.resolver.Snapshot()
	total := items.TotalPrice()
	pricing := orderdomain.PriceFor(total, true)
	return FormView{
		Address:      res.Address,
		AddressError: res.Error,
		Resolution:   res.Status,
		Cart:         encoded,
		Position:     res.Position.String(),
		CartTotal:    total.StringFixed(2),
		PriorityCost: pricing.PrioritySurcharge.StringFixed(2),
	}, nil
}

// ResolveAddress runs one address resolution. Resolution failures are reported in the
// returned snapshot together with the error.
func (f *Flow) ResolveAddress(ctx context.Context) (addressdomain.Resolution, error) {
	if err := f.acquire(PhaseResolving); err != nil {
		return f.resolver.Snapshot(), err
	}
	defer f.release()

	res, err := f.resolver.Resolve(ctx)
	if errors.Is(err, addressapp.ErrResolutionDiscarded) {
		return res, fmt.Errorf("%w: %w", ErrFlowAbandoned, err)
	}
	return res, err
}

// Submit places the order from the visible fields plus the cart and resolution as they are now.
func (f *Flow) Submit(ctx context.Context, visible orderdomain.RawForm, nav ports.Navigator) (*Outcome, error) {
	if err := f.acquire(PhaseSubmitting); err != nil {
		return nil, err
	}
	defer f.release()

	raw, err := f.rawForm(visible)
	if err != nil {
		return nil, err
	}
	outcome, err := f.pipeline.submit(ctx, raw, nav, f.finalize)
	var abandoned *AbandonedError
	if errors.As(err, &abandoned) && outcome != nil {
		abandoned.OrderID = outcome.Order.ID
	}
	return outcome, err
}

// Abandon tears the flow down. Results arriving afterwards are dropped.
func (f *Flow) Abandon() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.abandoned = true
	f.resolver.Reset()
}

func (f *Flow) rawForm(visible orderdomain.RawForm) (orderdomain.RawForm, error) {
	raw := orderdomain.RawForm{}
	for key, value := range visible {
		raw[key] = value
	}
	encoded, err := cartdomain.Encode(f.cart.Items())
	if err != nil {
		return nil, err
	}
	res := f.resolver.Snapshot()
	raw[orderdomain.FieldCart] = encoded
	raw[orderdomain.FieldPosition] = res.Position.String()
	if raw[orderdomain.FieldAddress] == "" && res.Address != "" {
		raw[orderdomain.FieldAddress] = res.Address
	}
	return raw, nil
}

func (f *Flow) finalize(apply func()) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.abandoned {
		return &AbandonedError{}
	}
	apply()
	return nil
}

func (f *Flow) acquire(phase Phase) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.abandoned {
		return ErrFlowAbandoned
	}
	if f.phase != PhaseIdle {
		return ErrFlowBusy
	}
	f.phase = phase
	return nil
}

func (f *Flow) release() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.phase = PhaseIdle
}
