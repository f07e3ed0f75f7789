package orderflowserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	carthttpmapper "github.com/Apurer/go-gin-order-flow/internal/domains/cart/adapters/http/mapper"
	cartdomain "github.com/Apurer/go-gin-order-flow/internal/domains/cart/domain"
	cartports "github.com/Apurer/go-gin-order-flow/internal/domains/cart/ports"
)

// CartAPI exposes the session cart.
type CartAPI struct {
	sessions cartports.Sessions
}

// NewCartAPI creates a CartAPI over the per-session cart stores.
func NewCartAPI(sessions cartports.Sessions) CartAPI {
	return CartAPI{sessions: sessions}
}

// Get /cart
// Returns the session cart with its totals. Reading never starts a session
func (api *CartAPI) GetCart(c *gin.Context) {
	cart := cartdomain.Cart{}
	if id, ok := requestSession(c); ok {
		if store, found := api.sessions.Lookup(id); found {
			cart = store.Items()
		}
	}
	c.JSON(http.StatusOK, carthttpmapper.FromDomainCart(cart))
}

// Post /cart/items
// Adds a pizza to the cart
func (api *CartAPI) AddCartItem(c *gin.Context) {
	var payload carthttpmapper.AddItem
	if err := c.ShouldBindJSON(&payload); err != nil {
		apiResponder.RespondStatus(c, http.StatusBadRequest, err)
		return
	}
	item, err := carthttpmapper.ToDomainItem(payload)
	if err != nil {
		apiResponder.RespondError(c, err)
		return
	}
	store := api.sessions.ForSession(sessionID(c))
	if err := store.AddItem(item); err != nil {
		apiResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, carthttpmapper.FromDomainCart(store.Items()))
}

// Patch /cart/items/:pizzaId
// Replaces the quantity of a line. Zero removes it
func (api *CartAPI) SetCartItemQuantity(c *gin.Context) {
	id, ok := parsePizzaID(c)
	if !ok {
		return
	}
	var payload carthttpmapper.SetQuantity
	if err := c.ShouldBindJSON(&payload); err != nil {
		apiResponder.RespondStatus(c, http.StatusBadRequest, err)
		return
	}
	store := api.sessions.ForSession(sessionID(c))
	store.SetQuantity(id, *payload.Quantity)
	c.JSON(http.StatusOK, carthttpmapper.FromDomainCart(store.Items()))
}

// Delete /cart/items/:pizzaId
// Removes a line from the cart
func (api *CartAPI) RemoveCartItem(c *gin.Context) {
	id, ok := parsePizzaID(c)
	if !ok {
		return
	}
	store := api.sessions.ForSession(sessionID(c))
	store.RemoveItem(id)
	c.JSON(http.StatusOK, carthttpmapper.FromDomainCart(store.Items()))
}

// Delete /cart
// Empties the cart
func (api *CartAPI) ClearCart(c *gin.Context) {
	api.sessions.ForSession(sessionID(c)).Clear()
	c.Status(http.StatusNoContent)
}

func parsePizzaID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("pizzaId"), 10, 64)
	if err != nil || id <= 0 {
		apiResponder.RespondStatus(c, http.StatusBadRequest, errors.New("pizzaId must be a positive integer"))
		return 0, false
	}
	return id, true
}
