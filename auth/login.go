package auth

import (
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/FabioFebre/tienda-api/models"
	"github.com/FabioFebre/tienda-api/services/cart"
	"github.com/FabioFebre/tienda-api/session"
)

type LoginInput struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	GuestToken string `json:"guest_token"` // signed guest session; its cart is discarded
}

// guestIDFromToken extracts the guest id from a signed guest session token.
// The cart discard at login only trusts ids this server minted: a forged,
// expired or non-guest token yields no id and no guest cart is touched.
func guestIDFromToken(tokenString string) string {
	if tokenString == "" {
		return ""
	}
	state := session.Resolve(tokenString, os.Getenv("JWT_SECRET"))
	if state.IsLoggedIn {
		return ""
	}
	return state.User.ID
}

// POST /usuarios/login
//
// A successful login runs the anonymous→authenticated cart transition: the
// guest cart named in the request is discarded and the response carries the
// user's server cart as-is.
func Login(db *gorm.DB, rec *cart.Reconciler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var user models.User
		if err := db.Where("email = ?", input.Email).First(&user).Error; err != nil {
			// Same answer for unknown email and wrong password.
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		snap, err := rec.PromoteGuest(guestIDFromToken(input.GuestToken), user.ID)
		if err != nil {
			// The login itself succeeded; an unavailable cart must not fail it.
			log.Printf("⚠️ Cart transition failed for user %s: %v", user.ID, err)
			snap = cart.Snapshot{}
		}

		token, err := IssueUserToken(user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"user":    user,
			"token":   token,
			"cart": gin.H{
				"items": snap.Items,
				"total": snap.Total(),
			},
		})
	}
}

// POST /usuarios/
func Register(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required,min=8"`
			Name     string `json:"name" binding:"required"`
			Phone    string `json:"phone"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		user := models.User{
			ID:           newUserID(),
			Email:        input.Email,
			PasswordHash: string(hash),
			Name:         input.Name,
			Phone:        input.Phone,
			Role:         models.RoleCustomer,
		}
		user.Cart = models.Cart{UserID: user.ID}

		if err := db.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}

		token, err := IssueUserToken(user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
	}
}
