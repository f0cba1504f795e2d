package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/FabioFebre/tienda-api/controllers/order"
	"github.com/FabioFebre/tienda-api/middleware"
	"github.com/FabioFebre/tienda-api/services/cart"
)

// SetupOrderRoutes registers the order lifecycle endpoints.
func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, rec *cart.Reconciler) {
	ordenes := r.Group("/ordenes")
	{
		ordenes.POST("", middleware.RequireLogin, orderControllers.PlaceOrder(db, rec))
		ordenes.GET("/usuario/:userId", middleware.RequireLogin, orderControllers.GetUserOrders(db))

		// Back-office order management
		ordenes.GET("", middleware.RequireStaff, orderControllers.GetAllOrders(db))
		ordenes.GET("/ws", middleware.RequireStaff, orderControllers.OrderEvents)
		ordenes.PUT("/estado/:id", middleware.RequireStaff, orderControllers.UpdateOrderStatus(db))
		ordenes.DELETE("/:id", middleware.RequireStaff, orderControllers.DeleteOrder(db))
	}
}
