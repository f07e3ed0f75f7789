package orderflowserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	menuhttpmapper "github.com/Apurer/go-gin-order-flow/internal/domains/menu/adapters/http/mapper"
	menuports "github.com/Apurer/go-gin-order-flow/internal/domains/menu/ports"
)

// MenuAPI serves the pizza menu.
type MenuAPI struct {
	catalog menuports.Catalog
}

// NewMenuAPI creates a MenuAPI backed by the catalog.
func NewMenuAPI(catalog menuports.Catalog) MenuAPI {
	return MenuAPI{catalog: catalog}
}

// Get /menu
// Lists the pizzas on the menu
func (api *MenuAPI) GetMenu(c *gin.Context) {
	pizzas, err := api.catalog.Menu(c.Request.Context())
	if err != nil {
		apiResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, menuhttpmapper.FromDomainMenu(pizzas))
}
