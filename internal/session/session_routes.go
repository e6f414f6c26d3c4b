package session

import (
	"github.com/TomWrigley-7/touchline/config"
	"github.com/TomWrigley-7/touchline/internal/block"
	mw "github.com/TomWrigley-7/touchline/internal/middleware"
	"github.com/TomWrigley-7/touchline/internal/user"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SessionRoutes sets up all session-planning routes.
func SessionRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	sessionRepo := NewSessionRepository(db)
	blockRepo := block.NewBlockRepository(db)
	userRepo := user.NewUserRepository(db)
	sessionController := NewSessionController(sessionRepo, blockRepo, userRepo)

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		authRoutes.POST("/sessions", sessionController.CreateSession)
		authRoutes.GET("/sessions", sessionController.ListSessions)
		authRoutes.GET("/sessions/:session_id", sessionController.GetSession)
		authRoutes.PUT("/sessions/:session_id", sessionController.UpdateSession)
		authRoutes.DELETE("/sessions/:session_id", sessionController.DeleteSession)

		authRoutes.POST("/sessions/:session_id/assignments", sessionController.AssignBlock)
		authRoutes.POST("/sessions/:session_id/groups/:position/simultaneous", sessionController.AddSimultaneous)
		authRoutes.DELETE("/sessions/:session_id/assignments/:assignment_id", sessionController.RemoveAssignment)
		authRoutes.PUT("/sessions/:session_id/reorder", sessionController.ReorderGroups)
		authRoutes.PUT("/sessions/:session_id/assignments/:assignment_id/duration", sessionController.SetAssignmentDuration)
		authRoutes.PUT("/sessions/:session_id/assignments/:assignment_id/block", sessionController.EditAssignmentBlock)
	}
}
