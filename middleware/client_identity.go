package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ClientIDHeader = "X-Client-ID"
	ClientIDCookie = "fayano_client"
	clientIDKey    = "clientID"
	// one year
	clientCookieMaxAge = 365 * 24 * 60 * 60
)

// ClientIdentityMiddleware resolves the browser identity that scopes wizard
// sessions and the loyalty card. Unknown callers get a freshly minted id.
func ClientIdentityMiddleware(secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(ClientIDHeader))
		if !validClientID(id) {
			id, _ = c.Cookie(ClientIDCookie)
		}
		if !validClientID(id) {
			id = uuid.New().String()
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(ClientIDCookie, id, clientCookieMaxAge, "/", "", secureCookie, true)
		c.Header(ClientIDHeader, id)
		c.Set(clientIDKey, id)
		c.Next()
	}
}

func validClientID(id string) bool {
	if id == "" {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// ClientID returns the identity resolved by ClientIdentityMiddleware.
func ClientID(c *gin.Context) string {
	return c.GetString(clientIDKey)
}
