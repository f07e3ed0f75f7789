package navigation

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-gin-order-flow/internal/domains/checkout/ports"
)

var (
	_ ports.Navigator = (*Recorder)(nil)
	_ ports.Navigator = (*Redirector)(nil)
)

// Recorder remembers the navigation target so JSON responses can report it.
type Recorder struct {
	OrderID  string
	Location string
}

func (r *Recorder) ToOrder(orderID string) {
	r.OrderID = orderID
	r.Location = ports.OrderDetailPath(orderID)
}

// Navigated reports whether a target was recorded.
func (r *Recorder) Navigated() bool {
	return r.Location != ""
}

// Redirector answers the request with a See Other redirect to the target.
type Redirector struct {
	c *gin.Context
}

func NewRedirector(c *gin.Context) *Redirector {
	return &Redirector{c: c}
}

func (r *Redirector) ToOrder(orderID string) {
	r.c.Redirect(http.StatusSeeOther, ports.OrderDetailPath(orderID))
}

// SearchOrder navigates to the order typed in the search box. Blank queries do nothing.
func SearchOrder(nav ports.Navigator, query string) bool {
	query = strings.TrimSpace(query)
	if query == "" || nav == nil {
		return false
	}
	nav.ToOrder(query)
	return true
}
