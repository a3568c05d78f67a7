package routes

import (
	"github.com/firesafetytn/storefront-api/auth"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/auth")
	{
		// Google sign-in via Firebase ID token
		authGroup.POST("/google", auth.GoogleLoginHandler(db))

		// Local email/password accounts
		authGroup.POST("/register", auth.RegisterHandler(db))
		authGroup.POST("/login", auth.LoginHandler(db))

		// Anonymous browsing session with its own cart
		authGroup.POST("/guest", auth.CreateGuestUser(db))
	}
}
