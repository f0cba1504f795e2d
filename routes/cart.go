package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/FabioFebre/tienda-api/controllers/cart"
	"github.com/FabioFebre/tienda-api/services/cart"
)

// SetupCartRoutes registers the canonical cart endpoints. One shape per
// operation; every client goes through these and nothing else.
func SetupCartRoutes(r *gin.Engine, db *gorm.DB, rec *cart.Reconciler, hub *cart.Hub) {
	carrito := r.Group("/carrito")
	{
		carrito.GET("/ws", cartControllers.CartEvents(hub))
		carrito.GET("/:userId", cartControllers.GetCart(rec))
		carrito.POST("/add", cartControllers.AddItem(db, rec))
		carrito.PUT("/:userId/actualizar/:itemId", cartControllers.UpdateQuantity(rec))
		carrito.DELETE("/item/:itemId", cartControllers.RemoveItem(rec))
		carrito.DELETE("/clear/:userId", cartControllers.ClearCart(rec))
	}
}
