package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminControllers "github.com/FabioFebre/tienda-api/controllers/admin"
	catalogControllers "github.com/FabioFebre/tienda-api/controllers/catalog"
	complaintControllers "github.com/FabioFebre/tienda-api/controllers/complaint"
	"github.com/FabioFebre/tienda-api/middleware"
)

// SetupAdminRoutes registers the back office. Admins and employees pass the
// gate; everyone else is redirected to /login.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.RequireStaff)
	{
		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/productos")
		{
			productAdmin.POST("", catalogControllers.CreateProduct(db))
			productAdmin.PUT("/:id", catalogControllers.UpdateProduct(db))
			productAdmin.DELETE("/:id", catalogControllers.DeleteProduct(db))
			productAdmin.GET("/export-excel", catalogControllers.ExportProductsToExcel(db))
		}

		// ─────────── Category Management ───────────
		categoryAdmin := adminGroup.Group("/categorias")
		{
			categoryAdmin.POST("", catalogControllers.CreateCategory(db))
			categoryAdmin.PUT("/:id", catalogControllers.UpdateCategory(db))
			categoryAdmin.DELETE("/:id", catalogControllers.DeleteCategory(db))
		}

		// ─────────── User Management ───────────
		adminGroup.GET("/usuarios", adminControllers.GetAllUsers(db))
		adminGroup.DELETE("/usuarios/:id", adminControllers.DeleteUser(db))

		// ─────────── Complaints ───────────
		adminGroup.GET("/reclamos", complaintControllers.GetAllComplaints(db))
		adminGroup.DELETE("/reclamos/:id", complaintControllers.DeleteComplaint(db))

		// ─────────── Sales Dashboard ───────────
		adminGroup.GET("/estadisticas/ventas", adminControllers.GetSalesStats(db))
	}
}
