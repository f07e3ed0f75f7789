package orderflowserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-gin-order-flow/internal/domains/checkout/adapters/navigation"
	orderhttpmapper "github.com/Apurer/go-gin-order-flow/internal/domains/order/adapters/http/mapper"
	orderports "github.com/Apurer/go-gin-order-flow/internal/domains/order/ports"
)

// OrderAPI serves placed orders.
type OrderAPI struct {
	reader orderports.OrderReader
}

// NewOrderAPI creates an OrderAPI backed by the reader.
func NewOrderAPI(reader orderports.OrderReader) OrderAPI {
	return OrderAPI{reader: reader}
}

// Get /order/:orderId
// Returns the order detail view
func (api *OrderAPI) GetOrder(c *gin.Context) {
	order, err := api.reader.GetOrder(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		apiResponder.RespondError(c, err)
		return
	}
	out, err := orderhttpmapper.FromDomainOrder(order)
	if err != nil {
		apiResponder.RespondStatus(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Get /order/search
// Navigates to the order typed in the search box
func (api *OrderAPI) SearchOrder(c *gin.Context) {
	if !navigation.SearchOrder(navigation.NewRedirector(c), c.Query("q")) {
		c.Status(http.StatusNoContent)
	}
}
