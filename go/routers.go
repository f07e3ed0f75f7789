package orderflowserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// NewRouter returns a new router serving the order-flow API.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the order-flow routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	return registerRoutes(router, getRoutes(handleFunctions))
}

// NewRestaurantRouter returns a new router serving the restaurant backend API.
func NewRestaurantRouter(handleFunctions RestaurantHandleFunctions) *gin.Engine {
	return NewRestaurantRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRestaurantRouterWithGinEngine adds the restaurant routes to an existing gin engine.
func NewRestaurantRouterWithGinEngine(router *gin.Engine, handleFunctions RestaurantHandleFunctions) *gin.Engine {
	return registerRoutes(router, getRestaurantRoutes(handleFunctions))
}

func registerRoutes(router *gin.Engine, routes []Route) *gin.Engine {
	for _, route := range routes {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

// DefaultHandleFunc answers routes without a handler.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// ApiHandleFunctions groups the order-flow API handlers.
type ApiHandleFunctions struct {
	// Routes for the CartAPI part of the API
	CartAPI CartAPI
	// Routes for the CheckoutAPI part of the API
	CheckoutAPI CheckoutAPI
	// Routes for the MenuAPI part of the API
	MenuAPI MenuAPI
	// Routes for the OrderAPI part of the API
	OrderAPI OrderAPI
}

// RestaurantHandleFunctions groups the restaurant backend handlers.
type RestaurantHandleFunctions struct {
	RestaurantAPI RestaurantAPI
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"GetMenu",
			http.MethodGet,
			"/menu",
			handleFunctions.MenuAPI.GetMenu,
		},
		{
			"GetCart",
			http.MethodGet,
			"/cart",
			handleFunctions.CartAPI.GetCart,
		},
		{
			"ClearCart",
			http.MethodDelete,
			"/cart",
			handleFunctions.CartAPI.ClearCart,
		},
		{
			"AddCartItem",
			http.MethodPost,
			"/cart/items",
			handleFunctions.CartAPI.AddCartItem,
		},
		{
			"SetCartItemQuantity",
			http.MethodPatch,
			"/cart/items/:pizzaId",
			handleFunctions.CartAPI.SetCartItemQuantity,
		},
		{
			"RemoveCartItem",
			http.MethodDelete,
			"/cart/items/:pizzaId",
			handleFunctions.CartAPI.RemoveCartItem,
		},
		{
			"OpenFlow",
			http.MethodPost,
			"/flows",
			handleFunctions.CheckoutAPI.OpenFlow,
		},
		{
			"GetFlow",
			http.MethodGet,
			"/flows/:flowId",
			handleFunctions.CheckoutAPI.GetFlow,
		},
		{
			"ResolveAddress",
			http.MethodPost,
			"/flows/:flowId/address",
			handleFunctions.CheckoutAPI.ResolveAddress,
		},
		{
			"SubmitFlow",
			http.MethodPost,
			"/flows/:flowId/submit",
			handleFunctions.CheckoutAPI.SubmitFlow,
		},
		{
			"CloseFlow",
			http.MethodDelete,
			"/flows/:flowId",
			handleFunctions.CheckoutAPI.CloseFlow,
		},
		{
			"PlaceOrder",
			http.MethodPost,
			"/order/new",
			handleFunctions.CheckoutAPI.PlaceOrder,
		},
		{
			"SearchOrder",
			http.MethodGet,
			"/order/search",
			handleFunctions.OrderAPI.SearchOrder,
		},
		{
			"GetOrder",
			http.MethodGet,
			"/order/:orderId",
			handleFunctions.OrderAPI.GetOrder,
		},
	}
}

func getRestaurantRoutes(handleFunctions RestaurantHandleFunctions) []Route {
	return []Route{
		{
			"ListMenu",
			http.MethodGet,
			"/api/menu",
			handleFunctions.RestaurantAPI.ListMenu,
		},
		{
			"CreateOrder",
			http.MethodPost,
			"/api/order",
			handleFunctions.RestaurantAPI.CreateOrder,
		},
		{
			"LookupOrder",
			http.MethodGet,
			"/api/order/:id",
			handleFunctions.RestaurantAPI.LookupOrder,
		},
	}
}
