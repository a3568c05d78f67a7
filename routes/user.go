package routes

import (
	cartControllers "github.com/firesafetytn/storefront-api/controllers/cart"
	orderControllers "github.com/firesafetytn/storefront-api/controllers/order"
	userControllers "github.com/firesafetytn/storefront-api/controllers/user"
	"github.com/firesafetytn/storefront-api/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		// ──────────────── Profile ────────────────
		userGroup.GET("/", userControllers.GetUser(db))
		userGroup.PUT("/", userControllers.UpdateUser(db))

		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetUserCart(db))
			cartGroup.POST("/", cartControllers.AddCartItem(db))
			cartGroup.PUT("/:product_id", cartControllers.SetCartItemQuantity(db))
			cartGroup.DELETE("/:product_id", cartControllers.DeleteCartItem(db))
			cartGroup.DELETE("/", cartControllers.ClearUserCart(db))
		}

		// ──────────────── Order History ────────────────
		userGroup.GET("/orders", orderControllers.GetUserOrdersHandler(db))
	}
}

// SetupGuestRoutes registers the guest cart surface. Guest tokens pass the
// same JWT gate.
func SetupGuestRoutes(r *gin.Engine, db *gorm.DB) {
	guestGroup := r.Group("/guest")
	guestGroup.Use(middleware.ValidateToken)
	{
		cartGroup := guestGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetGuestCart(db))
			cartGroup.POST("/", cartControllers.AddGuestCartItem(db))
			cartGroup.DELETE("/:product_id", cartControllers.DeleteGuestCartItem(db))
			cartGroup.DELETE("/", cartControllers.ClearGuestCart(db))
		}
	}
}
