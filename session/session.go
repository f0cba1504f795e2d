package session

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"github.com/FabioFebre/tienda-api/models"
)

// Identity is the user attached to a session token.
type Identity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// State is the resolved session for one request. Guests are logged out but
// still carry an identity: the guest id keys their local cart.
type State struct {
	IsLoggedIn bool     `json:"is_logged_in"`
	User       Identity `json:"user"`
}

// Guest builds the anonymous session state for a guest id.
func Guest(guestID string) State {
	return State{User: Identity{ID: guestID, Role: models.RoleGuest}}
}

// Resolve parses a signed session token into a State. It never fails:
// a missing, malformed or expired token resolves to an anonymous session,
// so a broken token can degrade a visitor to guest but never block them.
func Resolve(tokenString, secret string) State {
	if tokenString == "" {
		return Guest("")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return Guest("")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Guest("")
	}

	id, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	name, _ := claims["name"].(string)
	if id == "" || role == "" {
		return Guest("")
	}
	if role == models.RoleGuest {
		return Guest(id)
	}

	return State{
		IsLoggedIn: true,
		User:       Identity{ID: id, Name: name, Role: role},
	}
}
