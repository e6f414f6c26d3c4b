package auth

import (
	"github.com/TomWrigley-7/touchline/config"
	mw "github.com/TomWrigley-7/touchline/internal/middleware"
	"github.com/TomWrigley-7/touchline/internal/user"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterAuthRoutes sets up authentication routes.
func RegisterAuthRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	userRepo := user.NewUserRepository(db)
	authController := NewAuthController(userRepo, appConfig)

	router.POST("/register", authController.Register)
	router.POST("/login", authController.Login)
	router.POST("/refresh", authController.Refresh)

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		authRoutes.POST("/logout", authController.Logout)
		authRoutes.POST("/change-password", authController.ChangePassword)
	}
}
