package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	catalogControllers "github.com/FabioFebre/tienda-api/controllers/catalog"
)

// SetupCatalogRoutes registers the public catalog reads.
func SetupCatalogRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/categorias", catalogControllers.GetAllCategories(db))
	r.GET("/categorias/:id", catalogControllers.GetCategoryByID(db))

	r.GET("/productos", catalogControllers.GetProducts(db))
	r.GET("/productos/seleccionados", catalogControllers.GetFeaturedProducts(db))
	r.GET("/productos/:id", catalogControllers.GetProductByID(db))
}
