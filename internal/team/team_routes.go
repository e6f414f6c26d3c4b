package team

import (
	"github.com/TomWrigley-7/touchline/config"
	mw "github.com/TomWrigley-7/touchline/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TeamRoutes sets up team and roster routes.
func TeamRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	teamRepo := NewTeamRepository(db)
	teamController := NewTeamController(teamRepo)

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		authRoutes.POST("/teams", teamController.CreateTeam)
		authRoutes.GET("/teams", teamController.ListTeams)
		authRoutes.GET("/teams/:team_id", teamController.GetTeam)
		authRoutes.PUT("/teams/:team_id", teamController.UpdateTeam)
		authRoutes.DELETE("/teams/:team_id", teamController.DeleteTeam)

		authRoutes.POST("/teams/:team_id/players", teamController.AddPlayer)
		authRoutes.GET("/teams/:team_id/players", teamController.ListPlayers)
		authRoutes.PUT("/teams/:team_id/players/:player_id", teamController.UpdatePlayer)
		authRoutes.DELETE("/teams/:team_id/players/:player_id", teamController.RemovePlayer)
	}
}
