package attribute

import (
	"github.com/TomWrigley-7/touchline/config"
	mw "github.com/TomWrigley-7/touchline/internal/middleware"
	"github.com/TomWrigley-7/touchline/pkg/rmiddleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterAttributeRoutes sets up attribute taxonomy and player target routes.
func RegisterAttributeRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	attributeRepo := NewAttributeRepository(db)
	attributeController := NewAttributeController(attributeRepo)

	authenticated := router.Group("/")
	authenticated.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		attributes := authenticated.Group("/attributes")
		{
			attributes.GET("", attributeController.GetAllAttributes)
			attributes.GET("/:attribute_id", attributeController.GetAttributeByID)
		}

		// Taxonomy management is admin only; the catalog is shared by every
		// coach on the platform.
		adminAttributes := authenticated.Group("/attributes")
		adminAttributes.Use(rmiddleware.AdminMiddleware(db))
		{
			adminAttributes.POST("", attributeController.CreateAttribute)
			adminAttributes.PUT("/:attribute_id", attributeController.UpdateAttribute)
			adminAttributes.DELETE("/:attribute_id", attributeController.DeleteAttribute)
		}

		targets := authenticated.Group("/players/:player_id/targets")
		targets.Use(rmiddleware.CoachMiddleware(db))
		{
			targets.POST("", attributeController.SetPlayerTarget)
			targets.GET("", attributeController.GetPlayerTargets)
			targets.DELETE("/:attribute_key", attributeController.RemovePlayerTarget)
		}
	}
}
