package routes

import (
	orderControllers "github.com/firesafetytn/storefront-api/controllers/order"
	"github.com/firesafetytn/storefront-api/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	orders := r.Group("/orders")
	{
		// Checkout. Works signed-in, as a guest, or anonymously (buy-now).
		orders.POST("/place", middleware.OptionalToken, orderControllers.PlaceOrderHandler(db))

		// Order confirmation lookup by id or ref
		orders.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))

		// websocket endpoint for real-time order updates
		orders.GET("/ws", orderControllers.OrderWebSocketHandler)
	}
}
