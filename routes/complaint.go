package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	complaintControllers "github.com/FabioFebre/tienda-api/controllers/complaint"
)

// SetupComplaintRoutes registers the public complaint endpoint; listing and
// deletion live under /admin.
func SetupComplaintRoutes(r *gin.Engine, db *gorm.DB) {
	r.POST("/reclamos", complaintControllers.CreateComplaint(db))
}
