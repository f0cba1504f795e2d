package cartControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/FabioFebre/tienda-api/middleware"
	"github.com/FabioFebre/tienda-api/services/cart"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// GET /carrito/ws
//
// Each open tab holds one connection. When any tab mutates the cart, the
// hub pushes a cart_updated event here and the other tabs refetch.
func CartEvents(hub *cart.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.GetSession(c)
		if sess.User.ID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "A session is required"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		owner := sess.User.ID
		hub.Register(owner, conn)
		defer hub.Unregister(owner, conn)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}
}
