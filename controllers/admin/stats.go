package adminControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/FabioFebre/tienda-api/models"
)

// SalesPoint is one bucket of the back-office sales chart.
type SalesPoint struct {
	Month   string  `json:"month"` // YYYY-MM
	Orders  int64   `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// GET /admin/estadisticas/ventas (staff)
//
// Monthly order counts and revenue. Cancelled orders are excluded so the
// chart reflects realized sales.
func GetSalesStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var points []SalesPoint
		err := db.Model(&models.Order{}).
			Select("to_char(created_at, 'YYYY-MM') AS month, COUNT(*) AS orders, COALESCE(SUM(total_amount), 0) AS revenue").
			Where("status <> ?", models.OrderStatusCancelled).
			Group("month").
			Order("month").
			Scan(&points).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute sales stats"})
			return
		}

		var totals struct {
			Orders  int64   `json:"orders"`
			Revenue float64 `json:"revenue"`
		}
		for _, p := range points {
			totals.Orders += p.Orders
			totals.Revenue += p.Revenue
		}

		c.JSON(http.StatusOK, gin.H{"monthly": points, "totals": totals})
	}
}
