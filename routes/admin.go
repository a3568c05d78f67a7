package routes

import (
	analyticsControllers "github.com/firesafetytn/storefront-api/controllers/analytics"
	cartControllers "github.com/firesafetytn/storefront-api/controllers/cart"
	orderControllers "github.com/firesafetytn/storefront-api/controllers/order"
	productControllers "github.com/firesafetytn/storefront-api/controllers/product"
	settingsControllers "github.com/firesafetytn/storefront-api/controllers/settings"
	userControllers "github.com/firesafetytn/storefront-api/controllers/user"
	"github.com/firesafetytn/storefront-api/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers all "/admin/*" endpoints behind the auth gate.
// The gate is binary: any signed-in identity passes.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateToken)
	{
		// ─────────── Dashboard & Analytics ───────────
		adminGroup.GET("/dashboard", analyticsControllers.GetDashboard(db))
		adminGroup.GET("/analytics", analyticsControllers.GetAnalytics(db))

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.GET("", productControllers.GetProducts(db))
			productAdmin.POST("", productControllers.CreateProduct(db))
			productAdmin.PUT("/:id", productControllers.UpdateProduct(db))
			productAdmin.DELETE("/:id", productControllers.DeleteProduct(db))
			productAdmin.POST("/import-excel", productControllers.ImportProductsFromExcel(db))
			productAdmin.GET("/export-excel", productControllers.ExportProductsToExcel(db))
		}

		// ─────────── Category Management ───────────
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", productControllers.CreateCategory(db))
			categoryAdmin.GET("", productControllers.GetAllCategories(db))
			categoryAdmin.DELETE("/:id", productControllers.DeleteCategory(db))
		}

		// ─────────── Order Management ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(db))
			orderAdmin.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))
			orderAdmin.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))
			orderAdmin.PUT("/:orderID/payment-status", orderControllers.UpdatePaymentStatusHandler(db))
			orderAdmin.DELETE("/:orderID", orderControllers.DeleteOrderHandler(db))
		}

		// ─────────── Customers ───────────
		customerAdmin := adminGroup.Group("/customers")
		{
			customerAdmin.GET("", userControllers.GetAllCustomers(db))
			customerAdmin.GET("/:id", userControllers.GetCustomer(db))
		}
		adminGroup.GET("/user-cart/:user_id", cartControllers.GetAdminUserCart(db))

		// ─────────── Store Settings ───────────
		adminGroup.GET("/settings", settingsControllers.GetStoreSettings(db))
		adminGroup.PUT("/settings", settingsControllers.UpdateStoreSettings(db))
	}
}
