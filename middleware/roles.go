package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FabioFebre/tienda-api/models"
)

// RequireLogin rejects requests whose session did not resolve to an
// authenticated user.
func RequireLogin(c *gin.Context) {
	sess := GetSession(c)
	if !sess.IsLoggedIn {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		c.Abort()
		return
	}
	c.Next()
}

// RequireStaff gates the admin back office. Admins and employees pass
// through unchanged; everyone else, customers included, is sent back to the
// login page.
func RequireStaff(c *gin.Context) {
	sess := GetSession(c)
	if !sess.IsLoggedIn || !models.IsStaff(sess.User.Role) {
		c.Redirect(http.StatusSeeOther, "/login")
		c.Abort()
		return
	}
	c.Next()
}
