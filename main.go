package main

import (
	"log"

	"github.com/TomWrigley-7/touchline/config"
	_ "github.com/TomWrigley-7/touchline/docs"
	"github.com/TomWrigley-7/touchline/internal/attribute"
	"github.com/TomWrigley-7/touchline/internal/block"
	"github.com/TomWrigley-7/touchline/internal/session"
	"github.com/TomWrigley-7/touchline/internal/team"
	"github.com/TomWrigley-7/touchline/internal/user"
	"github.com/TomWrigley-7/touchline/routes"
)

// @title Touchline REST API
// @version 1.0
// @description Training-session planner for coaches: a drill catalog and a block assignment engine.
// @host localhost:8090
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	cfg := config.GetConfig()

	err := config.DB.AutoMigrate(
		&user.User{}, &user.Role{}, &user.UserRole{}, &user.RefreshToken{},
		&block.BlockDefinition{}, &block.BlockOutcome{},
		&session.Session{}, &session.Assignment{},
		&team.Team{}, &team.Player{},
		&attribute.Attribute{}, &attribute.PlayerTarget{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("AutoMigrate successful")

	r := routes.SetupRoutes()

	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
