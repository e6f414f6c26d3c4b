package block

import (
	"github.com/TomWrigley-7/touchline/config"
	mw "github.com/TomWrigley-7/touchline/internal/middleware"
	"github.com/TomWrigley-7/touchline/internal/user"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BlockRoutes sets up all catalog routes.
func BlockRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	blockRepo := NewBlockRepository(db)
	userRepo := user.NewUserRepository(db)
	blockController := NewBlockController(blockRepo, userRepo)

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		authRoutes.POST("/blocks", blockController.CreateBlock)
		authRoutes.GET("/blocks", blockController.ListBlocks)
		authRoutes.GET("/blocks/:block_id", blockController.GetBlock)
		authRoutes.PUT("/blocks/:block_id", blockController.UpdateBlock)
		authRoutes.DELETE("/blocks/:block_id", blockController.DeleteBlock)
	}
}
