package stats

import (
	"github.com/crickonnect/crickonnect-api/internal/booking"
	"github.com/crickonnect/crickonnect-api/internal/match"
	mw "github.com/crickonnect/crickonnect-api/internal/middleware"
	"github.com/crickonnect/crickonnect-api/internal/team"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// StatsRoutes sets up aggregation routes.
func StatsRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string) {
	controller := NewStatsController(
		team.NewTeamRepository(db),
		match.NewMatchRepository(db),
		booking.NewBookingRepository(db),
	)

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		authRoutes.GET("/home-stats", controller.GetHomeStats)
		authRoutes.GET("/profile/stats", controller.GetProfileStats)
	}
}
