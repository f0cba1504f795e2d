package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/FabioFebre/tienda-api/services/cart"
)

// SetupRoutes is the single entry-point that wires up every route group.
func SetupRoutes(r *gin.Engine, db *gorm.DB, rec *cart.Reconciler, hub *cart.Hub) {
	// Public storefront reads and auth (no session requirement)
	SetupCatalogRoutes(r, db)
	SetupAuthRoutes(r, db, rec)
	SetupComplaintRoutes(r, db)

	// Cart: guest or authenticated, decided per request by the reconciler
	SetupCartRoutes(r, db, rec, hub)

	// Orders (authenticated; staff for management)
	SetupOrderRoutes(r, db, rec)

	// Admin back office (staff only)
	SetupAdminRoutes(r, db)
}
