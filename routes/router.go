package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/TomWrigley-7/touchline/config"
	"github.com/TomWrigley-7/touchline/internal/attribute"
	"github.com/TomWrigley-7/touchline/internal/auth"
	"github.com/TomWrigley-7/touchline/internal/block"
	"github.com/TomWrigley-7/touchline/internal/session"
	"github.com/TomWrigley-7/touchline/internal/team"
)

func SetupRoutes() *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default()) // allows all origins, GET/POST/PUT

	r.Static("/public", "./public")

	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(`
			<html>
				<head><title>Touchline</title></head>
				<body style="text-align:center; margin-top: 40px;">
					<h1>Touchline session planner API</h1>
					<div>
						<a href="/swagger/index.html">swagger</a>
					</div>
				</body>
			</html>
		`))
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	db := config.DB
	appConfig := config.GetConfig()

	// API routes
	api := r.Group("/api")
	auth.RegisterAuthRoutes(api.Group("/auth"), db, appConfig)
	block.BlockRoutes(api, db, appConfig)
	session.SessionRoutes(api, db, appConfig)
	team.TeamRoutes(api, db, appConfig)
	attribute.RegisterAttributeRoutes(api, db, appConfig)

	return r
}
