package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/crickonnect/crickonnect-api/config"
	"github.com/crickonnect/crickonnect-api/internal/auth"
	"github.com/crickonnect/crickonnect-api/internal/booking"
	"github.com/crickonnect/crickonnect-api/internal/ground"
	"github.com/crickonnect/crickonnect-api/internal/match"
	"github.com/crickonnect/crickonnect-api/internal/realtime"
	"github.com/crickonnect/crickonnect-api/internal/stats"
	"github.com/crickonnect/crickonnect-api/internal/team"
	"github.com/crickonnect/crickonnect-api/internal/user"
)

// SetupRoutes builds the gin engine with all feature routes mounted.
func SetupRoutes(cfg *config.Config) *gin.Engine {
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.App.FrontendURL}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":   "Crickonnect API",
			"status": "ok",
			"docs":   "/swagger/index.html",
		})
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Websocket relay
	realtime.RealtimeRoutes(r)

	db := config.DB
	jwtSecret := cfg.JWT.AccessTokenSecret

	// API routes
	api := r.Group("/api")
	auth.RegisterAuthRoutes(api.Group("/auth"), db, cfg)
	user.ProfileRoutes(api, db, jwtSecret)
	ground.GroundRoutes(api, db, jwtSecret)
	booking.BookingRoutes(api, db, jwtSecret)
	team.TeamRoutes(api, db, jwtSecret)
	match.MatchRoutes(api, db, jwtSecret)
	stats.StatsRoutes(api, db, jwtSecret)

	return r
}
