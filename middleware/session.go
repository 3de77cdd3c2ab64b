package middleware

import (
	"net/http"

	"reviewdesk/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionMiddleware attaches a session id to the request, issuing one when the client
// sent none. Browser clients keep it in a cookie, API clients in the X-Session-ID header.
func SessionMiddleware(maxAge int) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(utils.SessionHeader)
		if sessionID == "" {
			if cookie, err := c.Cookie(utils.SessionCookieName); err == nil {
				sessionID = cookie
			}
		}
		if _, err := uuid.Parse(sessionID); err != nil {
			sessionID = uuid.New().String()
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(utils.SessionCookieName, sessionID, maxAge, "/", "", false, true)
		c.Header(utils.SessionHeader, sessionID)
		c.Set("sessionID", sessionID)
		c.Next()
	}
}

// CurrentSessionID returns the ID stored by SessionMiddleware.
func CurrentSessionID(c *gin.Context) string {
	return c.GetString("sessionID")
}
