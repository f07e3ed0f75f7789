package mapper

import (
	"fmt"
	"net/url"

	"github.com/Apurer/go-gin-order-flow/internal/domains/checkout/application"
	orderdomain "github.com/Apurer/go-gin-order-flow/internal/domains/order/domain"
)

// Submission carries the visible order form fields of a JSON client.
type Submission struct {
	Customer string `json:"customer"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Priority bool   `json:"priority"`
}

// Controls mirrors the enabled state of the order page controls.
type Controls struct {
	Phase          string `json:"phase"`
	ResolveEnabled bool   `json:"resolveEnabled"`
	SubmitEnabled  bool   `json:"submitEnabled"`
	SubmitLabel    string `json:"submitLabel"`
}

// Form holds the fields pre-filled by the flow.
type Form struct {
	Address      string `json:"address"`
	AddressError string `json:"addressError,omitempty"`
	Resolution   string `json:"resolution"`
	Cart         string `json:"cart"`
	Position     string `json:"position"`
	CartTotal    string `json:"cartTotal"`
	PriorityCost string `json:"priorityCost"`
}

// Flow is the state of one order page visit.
type Flow struct {
	ID       string   `json:"id"`
	Controls Controls `json:"controls"`
	Form     Form     `json:"form"`
}

// Result reports an accepted submission.
type Result struct {
	OrderID  string `json:"orderId"`
	Location string `json:"location"`
}

// ToRawForm converts a JSON submission. Priority is sent as the checkbox marker.
func ToRawForm(s Submission) orderdomain.RawForm {
	raw := orderdomain.RawForm{
		orderdomain.FieldCustomer: s.Customer,
		orderdomain.FieldPhone:    s.Phone,
		orderdomain.FieldAddress:  s.Address,
	}
	if s.Priority {
		raw[orderdomain.FieldPriority] = orderdomain.PriorityMarker
	}
	return raw
}

// FromValues converts an urlencoded form post. Repeated fields are rejected.
func FromValues(values url.Values) (orderdomain.RawForm, error) {
	raw := make(orderdomain.RawForm, len(values))
	for key, vals := range values {
		if len(vals) != 1 {
			return nil, fmt.Errorf("%w: field %s repeated", orderdomain.ErrMalformedSubmission, key)
		}
		raw[key] = vals[0]
	}
	return raw, nil
}

// FromFlow renders the flow state.
func FromFlow(flow *application.Flow) (Flow, error) {
	view, err := flow.Form()
	if err != nil {
		return Flow{}, err
	}
	controls := flow.Controls()
	return Flow{
		ID: flow.ID(),
		Controls: Controls{
			Phase:          string(controls.Phase),
			ResolveEnabled: controls.ResolveEnabled,
			SubmitEnabled:  controls.SubmitEnabled,
			SubmitLabel:    controls.SubmitLabel,
		},
		Form: Form{
			Address:      view.Address,
			AddressError: view.AddressError,
			Resolution:   string(view.Resolution),
			Cart:         view.Cart,
			Position:     view.Position,
			CartTotal:    view.CartTotal,
			PriorityCost: view.PriorityCost,
		},
	}, nil
}
