package cartControllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/FabioFebre/tienda-api/middleware"
	"github.com/FabioFebre/tienda-api/models"
	"github.com/FabioFebre/tienda-api/services/cart"
)

type AddItemInput struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// UpdateQuantityInput deliberately skips a min=1 binding: out-of-range
// quantities are clamped by the reconciler, not rejected.
type UpdateQuantityInput struct {
	Quantity int `json:"quantity"`
}

// cartResponse always recomputes the total; it is never read from storage.
func cartResponse(snap cart.Snapshot) gin.H {
	items := snap.Items
	if items == nil {
		items = []cart.Line{}
	}
	return gin.H{"items": items, "total": snap.Total()}
}

// ownsCart reports whether the session may touch the cart addressed in the
// URL. Staff can inspect any cart; everyone else only their own.
func ownsCart(c *gin.Context, owner string) bool {
	sess := middleware.GetSession(c)
	return sess.User.ID == owner || models.IsStaff(sess.User.Role)
}

// GET /carrito/:userId
func GetCart(rec *cart.Reconciler) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := c.Param("userId")
		if owner == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
			return
		}
		if !ownsCart(c, owner) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not your cart"})
			return
		}

		snap, err := rec.SnapshotFor(owner)
		if err != nil {
			// An unavailable cart renders as empty, it never breaks the page.
			log.Printf("⚠️ Failed to fetch cart for %s: %v", owner, err)
			c.JSON(http.StatusOK, cartResponse(cart.Snapshot{}))
			return
		}
		c.JSON(http.StatusOK, cartResponse(snap))
	}
}

// POST /carrito/add
func AddItem(db *gorm.DB, rec *cart.Reconciler) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.GetSession(c)
		if sess.User.ID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "A session is required, create a guest session first"})
			return
		}

		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		// Snapshot the product so the cart renders without a second lookup.
		var product models.Product
		if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}

		line, err := rec.AddItem(sess, cart.Line{
			ProductID:    product.ID,
			ProductName:  product.Name,
			ProductImage: product.Image,
			UnitPrice:    product.Price,
			Size:         input.Size,
			Color:        input.Color,
			Quantity:     input.Quantity,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			return
		}
		c.JSON(http.StatusCreated, line)
	}
}

// PUT /carrito/:userId/actualizar/:itemId
func UpdateQuantity(rec *cart.Reconciler) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := c.Param("userId")
		if !ownsCart(c, owner) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not your cart"})
			return
		}

		itemID, err := parseItemID(c.Param("itemId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid itemId"})
			return
		}

		var input UpdateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		// Quantities below 1 are clamped by the reconciler, not rejected.
		if err := rec.UpdateQuantityFor(owner, itemID, input.Quantity); err != nil {
			if errors.Is(err, cart.ErrItemNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item updated"})
	}
}

// DELETE /carrito/item/:itemId
func RemoveItem(rec *cart.Reconciler) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, err := parseItemID(c.Param("itemId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid itemId"})
			return
		}

		// The response is a fresh refetch, not the old cart minus one line.
		snap, err := rec.RemoveItem(middleware.GetSession(c), itemID)
		if err != nil {
			if errors.Is(err, cart.ErrItemNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		c.JSON(http.StatusOK, cartResponse(snap))
	}
}

// DELETE /carrito/clear/:userId
func ClearCart(rec *cart.Reconciler) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := c.Param("userId")
		if !ownsCart(c, owner) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not your cart"})
			return
		}

		if err := rec.ClearFor(owner); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

func parseItemID(param string) (uint, error) {
	id, err := strconv.ParseUint(param, 10, 64)
	return uint(id), err
}
