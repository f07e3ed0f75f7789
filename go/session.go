package orderflowserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Apurer/go-gin-order-flow/internal/shared/idempotency"
)

const (
	// SessionHeader carries the shopping session of API clients.
	SessionHeader = "X-Cart-Session"
	// SessionCookie carries the shopping session of browsers.
	SessionCookie = "cart_session"

	sessionCookieMaxAge = 7 * 24 * 60 * 60
)

// sessionID returns the shopping session of the request, starting one when absent.
func sessionID(c *gin.Context) string {
	if id, ok := requestSession(c); ok {
		return id
	}
	id := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, id, sessionCookieMaxAge, "/", "", false, true)
	c.Header(SessionHeader, id)
	return id
}

// requestSession returns the session the client sent, if any.
func requestSession(c *gin.Context) (string, bool) {
	if id := strings.TrimSpace(c.GetHeader(SessionHeader)); id != "" {
		return id, true
	}
	if id, err := c.Cookie(SessionCookie); err == nil && strings.TrimSpace(id) != "" {
		return id, true
	}
	return "", false
}

// withIdempotencyKey copies the Idempotency-Key header into the request context.
func withIdempotencyKey(c *gin.Context) {
	if key := strings.TrimSpace(c.GetHeader(idempotency.Header)); key != "" {
		c.Request = c.Request.WithContext(idempotency.WithKey(c.Request.Context(), key))
	}
}
