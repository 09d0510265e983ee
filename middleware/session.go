package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionHeader = "X-Session-ID"
	SessionCookie = "bb_session"
	// ContextSessionID is the gin context key holding the cart session id.
	ContextSessionID = "sessionID"

	sessionCookieMaxAge = 30 * 24 * 60 * 60
)

// CartSessionMiddleware resolves the browser session from the X-Session-ID header or the
// bb_session cookie, minting one when neither is present.
func CartSessionMiddleware(secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" {
			if cookie, err := c.Cookie(SessionCookie); err == nil {
				id = cookie
			}
		}
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, id, sessionCookieMaxAge, "/", "", secureCookie, true)
		c.Header(SessionHeader, id)
		c.Set(ContextSessionID, id)
		c.Next()
	}
}
