package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func TestResolveValidUserToken(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"user_id": "user-1",
		"role":    "customer",
		"name":    "Lucía",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	state := Resolve(token, testSecret)
	if !state.IsLoggedIn {
		t.Fatal("expected logged-in state")
	}
	if state.User.ID != "user-1" || state.User.Role != "customer" || state.User.Name != "Lucía" {
		t.Errorf("unexpected identity: %+v", state.User)
	}
}

func TestResolveGuestToken(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"user_id": "guest_abc",
		"role":    "guest",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	state := Resolve(token, testSecret)
	if state.IsLoggedIn {
		t.Error("guest token must not resolve to a logged-in state")
	}
	if state.User.ID != "guest_abc" {
		t.Errorf("guest id = %q, want guest_abc", state.User.ID)
	}
}

// Malformed or forged persisted state must fail open to guest, never error.
func TestResolveFailsOpenToGuest(t *testing.T) {
	cases := map[string]string{
		"empty":        "",
		"garbage":      "not-a-jwt-at-all",
		"wrong secret": signToken(t, jwt.MapClaims{"user_id": "u", "role": "admin", "exp": time.Now().Add(time.Hour).Unix()}, "other-secret"),
		"expired":      signToken(t, jwt.MapClaims{"user_id": "u", "role": "customer", "exp": time.Now().Add(-time.Hour).Unix()}, testSecret),
		"no claims":    signToken(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}, testSecret),
	}

	for name, token := range cases {
		state := Resolve(token, testSecret)
		if state.IsLoggedIn {
			t.Errorf("%s: resolved to logged-in, want anonymous", name)
		}
		if state.User.Role != "guest" {
			t.Errorf("%s: role = %q, want guest", name, state.User.Role)
		}
	}
}
