package main

import (
	"log"

	"github.com/crickonnect/crickonnect-api/config"
	_ "github.com/crickonnect/crickonnect-api/docs"
	"github.com/crickonnect/crickonnect-api/internal/booking"
	"github.com/crickonnect/crickonnect-api/internal/ground"
	"github.com/crickonnect/crickonnect-api/internal/match"
	"github.com/crickonnect/crickonnect-api/internal/team"
	"github.com/crickonnect/crickonnect-api/internal/user"
	"github.com/crickonnect/crickonnect-api/routes"
)

// @title Crickonnect REST API
// @version 1.0
// @description Backend for the Crickonnect cricket community platform 🏏
// @host localhost:8080
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
		&user.User{}, &user.Profile{}, &user.RefreshToken{},
		&ground.Ground{}, &booking.Booking{},
		&team.Team{}, &team.TeamMember{}, &team.TeamInvite{}, &team.TeamJoinRequest{},
		&match.Match{}, &match.MatchRequest{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("AutoMigrate successful")

	r := routes.SetupRoutes(cfg)

	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
