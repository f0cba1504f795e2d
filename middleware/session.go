package middleware

import (
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/FabioFebre/tienda-api/session"
)

// SessionKey is the gin context key the resolved session is stored under.
const SessionKey = "session"

// ResolveSession attaches the session state for the request's bearer token.
// It never aborts: a bad token resolves to an anonymous session, and routes
// that need more than that enforce it themselves.
func ResolveSession(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if token == "" {
		// Websocket clients cannot set headers, they pass the token in the
		// query string instead.
		token = c.Query("token")
	}
	c.Set(SessionKey, session.Resolve(token, os.Getenv("JWT_SECRET")))
	c.Next()
}

// GetSession returns the session resolved for this request, or an anonymous
// one if ResolveSession did not run.
func GetSession(c *gin.Context) session.State {
	if v, ok := c.Get(SessionKey); ok {
		if sess, ok := v.(session.State); ok {
			return sess
		}
	}
	return session.Guest("")
}
