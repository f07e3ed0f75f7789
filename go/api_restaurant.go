package orderflowserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	menuhttpmapper "github.com/Apurer/go-gin-order-flow/internal/domains/menu/adapters/http/mapper"
	menuports "github.com/Apurer/go-gin-order-flow/internal/domains/menu/ports"
	orderhttpmapper "github.com/Apurer/go-gin-order-flow/internal/domains/order/adapters/http/mapper"
	orderdomain "github.com/Apurer/go-gin-order-flow/internal/domains/order/domain"
	orderports "github.com/Apurer/go-gin-order-flow/internal/domains/order/ports"
)

// RestaurantAPI is the restaurant backend: menu, order creation and lookup.
type RestaurantAPI struct {
	catalog   menuports.Catalog
	orders    orderports.Service
	workflows orderports.WorkflowOrchestrator
}

// NewRestaurantAPI wires the restaurant handlers. Orders are created through the
// workflow orchestrator when one is configured.
func NewRestaurantAPI(catalog menuports.Catalog, orders orderports.Service, workflows orderports.WorkflowOrchestrator) RestaurantAPI {
	return RestaurantAPI{catalog: catalog, orders: orders, workflows: workflows}
}

// Get /api/menu
// Lists the menu
func (api *RestaurantAPI) ListMenu(c *gin.Context) {
	pizzas, err := api.catalog.Menu(c.Request.Context())
	if err != nil {
		restaurantResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.Success(menuhttpmapper.FromDomainMenu(pizzas)))
}

// Post /api/order
// Creates an order and estimates its delivery
func (api *RestaurantAPI) CreateOrder(c *gin.Context) {
	var payload orderhttpmapper.CreateOrder
	if err := c.ShouldBindJSON(&payload); err != nil {
		restaurantResponder.RespondStatus(c, http.StatusBadRequest, err)
		return
	}
	draft, err := orderhttpmapper.ToDomainDraft(payload)
	if err != nil {
		restaurantResponder.RespondStatus(c, http.StatusBadRequest, err)
		return
	}
	withIdempotencyKey(c)
	order, err := api.createOrder(c.Request.Context(), draft)
	if err != nil {
		restaurantResponder.RespondError(c, err)
		return
	}
	out, err := orderhttpmapper.FromDomainOrder(order)
	if err != nil {
		restaurantResponder.RespondStatus(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusCreated, orderhttpmapper.Success(out))
}

func (api *RestaurantAPI) createOrder(ctx context.Context, draft orderdomain.Draft) (*orderdomain.PlacedOrder, error) {
	if api.workflows != nil {
		return api.workflows.CreateOrder(ctx, draft)
	}
	return api.orders.CreateOrder(ctx, draft)
}

// Get /api/order/:id
// Looks an order up by id
func (api *RestaurantAPI) LookupOrder(c *gin.Context) {
	order, err := api.orders.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		restaurantResponder.RespondError(c, err)
		return
	}
	out, err := orderhttpmapper.FromDomainOrder(order)
	if err != nil {
		restaurantResponder.RespondStatus(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.Success(out))
}
