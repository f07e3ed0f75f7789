package orderflowserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-gin-order-flow/internal/domains/address/adapters/device"
	addressapp "github.com/Apurer/go-gin-order-flow/internal/domains/address/application"
	addressdomain "github.com/Apurer/go-gin-order-flow/internal/domains/address/domain"
	cartports "github.com/Apurer/go-gin-order-flow/internal/domains/cart/ports"
	checkouthttpmapper "github.com/Apurer/go-gin-order-flow/internal/domains/checkout/adapters/http/mapper"
	checkoutmemory "github.com/Apurer/go-gin-order-flow/internal/domains/checkout/adapters/memory"
	"github.com/Apurer/go-gin-order-flow/internal/domains/checkout/adapters/navigation"
	checkoutapp "github.com/Apurer/go-gin-order-flow/internal/domains/checkout/application"
	orderports "github.com/Apurer/go-gin-order-flow/internal/domains/order/ports"
)

// CheckoutAPI drives the order page: flows, address resolution and submission.
type CheckoutAPI struct {
	flows    *checkoutmemory.Flows
	sessions cartports.Sessions
	creator  orderports.OrderCreator
}

// NewCheckoutAPI wires the checkout handlers.
func NewCheckoutAPI(flows *checkoutmemory.Flows, sessions cartports.Sessions, creator orderports.OrderCreator) CheckoutAPI {
	return CheckoutAPI{flows: flows, sessions: sessions, creator: creator}
}

// ReportedPosition is the device position sent with an address resolution.
type ReportedPosition struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Post /flows
// Enters the order page
func (api *CheckoutAPI) OpenFlow(c *gin.Context) {
	flow := api.flows.Open(sessionID(c))
	api.respondFlow(c, http.StatusCreated, flow)
}

// Get /flows/:flowId
// Returns the controls and pre-filled fields of the order page
func (api *CheckoutAPI) GetFlow(c *gin.Context) {
	flow, ok := api.lookupFlow(c)
	if !ok {
		return
	}
	api.respondFlow(c, http.StatusOK, flow)
}

// Post /flows/:flowId/address
// Resolves the delivery address from the device position
func (api *CheckoutAPI) ResolveAddress(c *gin.Context) {
	flow, ok := api.lookupFlow(c)
	if !ok {
		return
	}
	var payload ReportedPosition
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			apiResponder.RespondStatus(c, http.StatusBadRequest, err)
			return
		}
	}
	ctx := c.Request.Context()
	if payload.Latitude != nil && payload.Longitude != nil {
		ctx = device.WithReportedPosition(ctx, addressdomain.Coordinates{
			Latitude:  *payload.Latitude,
			Longitude: *payload.Longitude,
		})
	}
	_, err := flow.ResolveAddress(ctx)
	if err != nil && !errors.Is(err, addressapp.ErrResolutionFailed) {
		apiResponder.RespondError(c, err)
		return
	}
	api.respondFlow(c, http.StatusOK, flow)
}

// Post /flows/:flowId/submit
// Places the order from the visible fields and the latest cart and address
func (api *CheckoutAPI) SubmitFlow(c *gin.Context) {
	flow, ok := api.lookupFlow(c)
	if !ok {
		return
	}
	var payload checkouthttpmapper.Submission
	if err := c.ShouldBindJSON(&payload); err != nil {
		apiResponder.RespondStatus(c, http.StatusBadRequest, err)
		return
	}
	withIdempotencyKey(c)
	nav := &navigation.Recorder{}
	outcome, err := flow.Submit(c.Request.Context(), checkouthttpmapper.ToRawForm(payload), nav)
	if err != nil {
		apiResponder.RespondError(c, err)
		return
	}
	if !outcome.Accepted() {
		apiResponder.ValidationFailed(c, outcome.Errors)
		return
	}
	c.Header("Location", nav.Location)
	c.JSON(http.StatusCreated, checkouthttpmapper.Result{OrderID: nav.OrderID, Location: nav.Location})
}

// Delete /flows/:flowId
// Leaves the order page. Pending results are discarded
func (api *CheckoutAPI) CloseFlow(c *gin.Context) {
	if !api.flows.Close(c.Param("flowId"), sessionID(c)) {
		apiResponder.NotFound(c, "flow", c.Param("flowId"))
		return
	}
	c.Status(http.StatusNoContent)
}

// Post /order/new
// Places an order from a form post carrying the hidden cart and position fields
func (api *CheckoutAPI) PlaceOrder(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		apiResponder.RespondStatus(c, http.StatusBadRequest, err)
		return
	}
	raw, err := checkouthttpmapper.FromValues(c.Request.PostForm)
	if err != nil {
		apiResponder.RespondError(c, err)
		return
	}
	withIdempotencyKey(c)
	pipeline := checkoutapp.NewPipeline(api.creator, api.sessions.ForSession(sessionID(c)))
	outcome, err := pipeline.Submit(c.Request.Context(), raw, navigation.NewRedirector(c))
	if err != nil {
		apiResponder.RespondError(c, err)
		return
	}
	if !outcome.Accepted() {
		apiResponder.ValidationFailed(c, outcome.Errors)
	}
}

func (api *CheckoutAPI) lookupFlow(c *gin.Context) (*checkoutapp.Flow, bool) {
	id := c.Param("flowId")
	flow, ok := api.flows.Get(id, sessionID(c))
	if !ok {
		apiResponder.NotFound(c, "flow", id)
		return nil, false
	}
	return flow, true
}

func (api *CheckoutAPI) respondFlow(c *gin.Context, status int, flow *checkoutapp.Flow) {
	out, err := checkouthttpmapper.FromFlow(flow)
	if err != nil {
		apiResponder.RespondStatus(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(status, out)
}
