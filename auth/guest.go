package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/FabioFebre/tienda-api/services/cart"
)

// POST /usuarios/guest
//
// Guests get no database row, only a signed token. The guest id inside it
// is what keys their cart in the local store.
func CreateGuestSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID := cart.GuestOwnerPrefix + generateRandomString(16)

		token, err := IssueGuestToken(guestID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"guest_id":   guestID,
			"token":      token,
			"expires_at": time.Now().Add(guestTokenTTL),
		})
	}
}

func newUserID() string {
	return uuid.NewString()
}
