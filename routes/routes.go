package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry point that wires up the public storefront,
// auth, user, guest, order, and admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Public storefront reads (no middleware)
	SetupStoreRoutes(r, db)

	// Auth endpoints (no middleware)
	SetupAuthRoutes(r, db)

	// User routes (JWT-protected)
	SetupUserRoutes(r, db)

	// Guest cart routes (guest-JWT-protected)
	SetupGuestRoutes(r, db)

	// Checkout + order lookup
	SetupOrderRoutes(r, db)

	// Admin console (auth gate)
	SetupAdminRoutes(r, db)
}
