package productcontroller

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/firesafetytn/storefront-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DELETE /admin/products/:id
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var product models.Product
		if err := db.First(&product, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		// uploaded image files go with the product; external URLs are left alone
		if strings.HasPrefix(product.ImageURL, productPublicPath) {
			imagePath := filepath.Join(productUploadDir(), filepath.Base(product.ImageURL))
			_ = os.Remove(imagePath)
		}

		if err := db.Delete(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}
