package settingsControllers

import (
	"net/http"

	"github.com/firesafetytn/storefront-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UpdateSettingsInput merges into the singleton row: nil fields stay as they
// were.
type UpdateSettingsInput struct {
	StoreName  *string `json:"storeName"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	GSTNumber  *string `json:"gstNumber"`
	CODEnabled *bool   `json:"codEnabled"`
}

// GET /store — public view of the store settings.
func GetStoreSettings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		settings, err := loadOrSeedSettings(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}

// PUT /admin/settings
func UpdateStoreSettings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		settings, err := loadOrSeedSettings(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
			return
		}

		var input UpdateSettingsInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if input.StoreName != nil {
			updates["store_name"] = *input.StoreName
		}
		if input.Phone != nil {
			updates["phone"] = *input.Phone
		}
		if input.Address != nil {
			updates["address"] = *input.Address
		}
		if input.GSTNumber != nil {
			updates["gst_number"] = *input.GSTNumber
		}
		if input.CODEnabled != nil {
			updates["cod_enabled"] = *input.CODEnabled
		}

		if len(updates) > 0 {
			if err := db.Model(&settings).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
				return
			}
		}

		if err := db.First(&settings).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}

// loadOrSeedSettings returns the singleton row, creating it with defaults on
// first access.
func loadOrSeedSettings(db *gorm.DB) (models.StoreSettings, error) {
	var settings models.StoreSettings
	err := db.First(&settings).Error
	if err == gorm.ErrRecordNotFound {
		settings = models.StoreSettings{
			StoreName:  "Fire Safety Tamil Nadu",
			CODEnabled: true,
		}
		err = db.Create(&settings).Error
	}
	return settings, err
}
