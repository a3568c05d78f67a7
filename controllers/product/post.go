package productcontroller

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/firesafetytn/storefront-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const productPublicPath = "/uploads/products"

// UploadRoot is where product images land on disk; overridable for
// deployments that mount a dedicated volume.
func UploadRoot() string {
	if v := os.Getenv("UPLOAD_DIR"); v != "" {
		return v
	}
	return "uploads"
}

func productUploadDir() string {
	return filepath.Join(UploadRoot(), "products")
}

// saveProductImage stores an uploaded file under a timestamped name and
// returns its public URL.
func saveProductImage(c *gin.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(productUploadDir(), os.ModePerm); err != nil {
		return "", err
	}

	ext := filepath.Ext(file.Filename)
	base := strings.TrimSuffix(filepath.Base(file.Filename), ext)
	base = strings.ReplaceAll(base, " ", "_")
	filename := fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), base, ext)

	savePath := filepath.Join(productUploadDir(), filename)
	if err := c.SaveUploadedFile(file, savePath); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s", productPublicPath, filename), nil
}

// CreateProduct creates a new product from a multipart form. The image is
// either an uploaded file or an external URL passed through verbatim in
// image_url; neither is required.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.PostForm("name")
		priceStr := c.PostForm("price")
		if name == "" || priceStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and price are required"})
			return
		}

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}

		stock := 0
		if stockStr := c.PostForm("stock"); stockStr != "" {
			if stock, err = strconv.Atoi(stockStr); err != nil || stock < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock"})
				return
			}
		}

		imageURL := c.PostForm("image_url")
		if imageURL == "" {
			if url, err := saveProductImage(c); err == nil {
				imageURL = url
			}
		}

		product := models.Product{
			Name:        name,
			Description: c.PostForm("description"),
			Price:       price,
			Stock:       stock,
			Category:    c.PostForm("category"),
			ImageURL:    imageURL,
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}
