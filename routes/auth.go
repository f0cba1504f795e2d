package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/FabioFebre/tienda-api/auth"
	"github.com/FabioFebre/tienda-api/services/cart"
)

// SetupAuthRoutes registers registration, login, and guest sessions.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, rec *cart.Reconciler) {
	usuarios := r.Group("/usuarios")
	{
		usuarios.POST("/", auth.Register(db))
		usuarios.POST("/login", auth.Login(db, rec))
		usuarios.POST("/guest", auth.CreateGuestSession())
	}
}
