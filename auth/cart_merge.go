package auth

import (
	"time"

	"github.com/firesafetytn/storefront-api/models"
	"gorm.io/gorm"
)

// MergeGuestCartIntoUserCart folds a guest cart into the user cart at login:
// quantities of common products add up, other lines carry over, and the guest
// cart is deleted. Returns false when there was nothing to merge.
func MergeGuestCartIntoUserCart(db *gorm.DB, guestID, userID string) (bool, error) {
	merged := false

	err := db.Transaction(func(tx *gorm.DB) error {
		var guestCart models.GuestCart
		if err := tx.Preload("Items").
			Where("guest_id = ?", guestID).
			First(&guestCart).Error; err != nil {
			return nil // nothing to merge
		}
		if len(guestCart.Items) == 0 {
			return tx.Delete(&guestCart).Error
		}

		var userCart models.Cart
		err := tx.Where("user_id = ?", userID).First(&userCart).Error
		if err == gorm.ErrRecordNotFound {
			userCart = models.Cart{UserID: userID}
			if err := tx.Create(&userCart).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		for _, guestItem := range guestCart.Items {
			var userItem models.CartItem
			lookupErr := tx.Where("cart_id = ? AND product_id = ?",
				userCart.CartID, guestItem.ProductID).First(&userItem).Error

			switch {
			case lookupErr == nil:
				userItem.Quantity += guestItem.Quantity
				userItem.AddedAt = time.Now()
				if err := tx.Save(&userItem).Error; err != nil {
					return err
				}
			case lookupErr == gorm.ErrRecordNotFound:
				newItem := models.CartItem{
					CartID:       userCart.CartID,
					ProductID:    guestItem.ProductID,
					ProductName:  guestItem.ProductName,
					ProductImage: guestItem.ProductImage,
					ProductStock: guestItem.ProductStock,
					Price:        guestItem.Price,
					Quantity:     guestItem.Quantity,
					AddedAt:      time.Now(),
				}
				if err := tx.Create(&newItem).Error; err != nil {
					return err
				}
			default:
				return lookupErr
			}
		}

		if err := tx.Where("cart_id = ?", guestCart.CartID).
			Delete(&models.GuestCartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&guestCart).Error; err != nil {
			return err
		}

		merged = true
		return nil
	})

	return merged, err
}
