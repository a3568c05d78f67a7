package routes

import (
	productControllers "github.com/firesafetytn/storefront-api/controllers/product"
	settingsControllers "github.com/firesafetytn/storefront-api/controllers/settings"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupStoreRoutes registers the public storefront reads.
func SetupStoreRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/products", productControllers.GetProducts(db))
	r.GET("/products/:id", productControllers.GetProductByID(db))
	r.GET("/categories", productControllers.GetAllCategories(db))
	r.GET("/store", settingsControllers.GetStoreSettings(db))
}
