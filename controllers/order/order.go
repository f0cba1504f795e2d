package orderControllers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/FabioFebre/tienda-api/middleware"
	"github.com/FabioFebre/tienda-api/models"
	"github.com/FabioFebre/tienda-api/services/cart"
)

type PlaceOrderInput struct {
	PaymentMethod string `json:"payment_method" binding:"required"` // e.g. "card", "cod"
}

type UpdateStatusInput struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
}

func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch strings.ToLower(status) {
	case string(models.OrderStatusPending):
		return models.OrderStatusPending, nil
	case string(models.OrderStatusConfirmed):
		return models.OrderStatusConfirmed, nil
	case string(models.OrderStatusShipped):
		return models.OrderStatusShipped, nil
	case string(models.OrderStatusDelivered):
		return models.OrderStatusDelivered, nil
	case string(models.OrderStatusCancelled):
		return models.OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

func mapPaymentStatus(status string) (models.PaymentStatus, error) {
	switch strings.ToLower(status) {
	case string(models.PaymentStatusPending):
		return models.PaymentStatusPending, nil
	case string(models.PaymentStatusPaid):
		return models.PaymentStatusPaid, nil
	case string(models.PaymentStatusFailed):
		return models.PaymentStatusFailed, nil
	case string(models.PaymentStatusRefunded):
		return models.PaymentStatusRefunded, nil
	default:
		return "", errors.New("invalid payment status")
	}
}

func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// POST /ordenes
//
// Places an order from the authenticated user's server cart. Stock is
// deducted under row locks in one transaction; the cart is cleared (and the
// cart invalidation broadcast) only after the order committed.
func PlaceOrder(db *gorm.DB, rec *cart.Reconciler) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.GetSession(c)

		var input PlaceOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var userCart models.Cart
		if err := db.Preload("Items").Where("user_id = ?", sess.User.ID).First(&userCart).Error; err != nil || len(userCart.Items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			return
		}

		var order models.Order
		err := db.Transaction(func(tx *gorm.DB) error {
			total := decimal.Zero
			var orderItems []models.OrderItem

			for _, item := range userCart.Items {
				var product models.Product
				if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
					First(&product, "id = ?", item.ProductID).Error; err != nil {
					return err
				}
				if product.Stock < item.Quantity {
					return errors.New("insufficient stock for product: " + item.ProductName)
				}

				product.Stock -= item.Quantity
				if err := tx.Save(&product).Error; err != nil {
					return err
				}

				total = total.Add(decimal.NewFromFloat(item.UnitPrice).
					Mul(decimal.NewFromInt(int64(item.Quantity))))

				orderItems = append(orderItems, models.OrderItem{
					ProductID:    item.ProductID,
					ProductName:  item.ProductName,
					ProductImage: item.ProductImage,
					UnitPrice:    item.UnitPrice,
					Size:         item.Size,
					Color:        item.Color,
					Quantity:     item.Quantity,
				})
			}

			totalAmount, _ := total.Float64()
			order = models.Order{
				Reference:     generateOrderRef(),
				UserID:        sess.User.ID,
				Items:         orderItems,
				TotalAmount:   totalAmount,
				Status:        models.OrderStatusPending,
				PaymentStatus: models.PaymentStatusPending,
				PaymentMethod: input.PaymentMethod,
			}
			return tx.Create(&order).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		// Checkout clears the cart; the broadcast makes the user's other
		// tabs drop their badge count.
		if err := rec.Clear(sess); err != nil {
			log.Printf("⚠️ Failed to clear cart after order %s: %v", order.Reference, err)
		}
		broadcastNewOrder(order)

		c.JSON(http.StatusCreated, order)
	}
}

// GET /ordenes (staff)
func GetAllOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Preload("Items").Preload("User").
			Order("created_at desc").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /ordenes/usuario/:userId
func GetUserOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := c.Param("userId")
		sess := middleware.GetSession(c)
		if sess.User.ID != owner && !models.IsStaff(sess.User.Role) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not your orders"})
			return
		}

		var orders []models.Order
		if err := db.Preload("Items").Where("user_id = ?", owner).
			Order("created_at desc").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// PUT /ordenes/estado/:id (staff)
func UpdateOrderStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateStatusInput
		if err := c.ShouldBindJSON(&input); err != nil || (input.Status == "" && input.PaymentStatus == "") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status or payment_status is required"})
			return
		}

		var order models.Order
		if err := db.First(&order, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		updates := make(map[string]interface{})
		if input.Status != "" {
			status, err := mapOrderStatus(input.Status)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			updates["status"] = status
		}
		if input.PaymentStatus != "" {
			status, err := mapPaymentStatus(input.PaymentStatus)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			updates["payment_status"] = status
		}

		if err := db.Model(&order).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// DELETE /ordenes/:id (staff)
func DeleteOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.Order{}, c.Param("id"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
	}
}
