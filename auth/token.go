package auth

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/FabioFebre/tienda-api/models"
)

const (
	userTokenTTL  = 7 * 24 * time.Hour
	guestTokenTTL = 24 * time.Hour
)

// IssueUserToken signs a session token for an authenticated account.
func IssueUserToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"name":    user.Name,
		"exp":     time.Now().Add(userTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// IssueGuestToken signs a short-lived token for an anonymous visitor. The
// guest id inside it keys the visitor's local cart.
func IssueGuestToken(guestID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": guestID,
		"role":    models.RoleGuest,
		"exp":     time.Now().Add(guestTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func generateRandomString(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "rand_guest"
	}
	return hex.EncodeToString(bytes)
}
