package match

import (
	"net/http"

	"github.com/crickonnect/crickonnect-api/config"
	mw "github.com/crickonnect/crickonnect-api/internal/middleware"
	"github.com/crickonnect/crickonnect-api/internal/team"
	"github.com/crickonnect/crickonnect-api/pkg/responses"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MatchRoutes sets up match and match request routes.
func MatchRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string) {
	repo := NewMatchRepository(db)
	teamRepo := team.NewTeamRepository(db)
	matches := NewMatchController(repo, teamRepo)
	requests := NewRequestController(repo, teamRepo)

	// Public match detail read
	router.GET("/matches/:match_id", matches.GetMatchByID)

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		authRoutes.POST("/matches", matches.CreateMatch)
		authRoutes.POST("/matches/quick", matches.QuickCreateMatch)
		authRoutes.GET("/matches/mine", matches.GetMyMatches)
		authRoutes.PUT("/matches/:match_id/score", matches.UpdateScore)

		authRoutes.POST("/match-requests", requests.CreateMatchRequest)
		authRoutes.GET("/match-requests/team/:team_id", requests.GetTeamRequests)
		authRoutes.PUT("/match-requests/:request_id/accept", requests.AcceptMatchRequest)
		authRoutes.PUT("/match-requests/:request_id/reject", requests.RejectMatchRequest)
		authRoutes.PUT("/match-requests/:request_id/cancel", requests.CancelMatchRequest)

		// Debug-only bulk clear, refused outside development environments.
		authRoutes.DELETE("/debug/matches", func(c *gin.Context) {
			if config.GetConfig().App.Env == "production" {
				responses.Forbidden(c, "Debug endpoints are disabled in production")
				return
			}
			if err := repo.ClearMatchData(); err != nil {
				responses.InternalServerError(c, "Failed to clear match data: "+err.Error())
				return
			}
			responses.SendSuccess(c, http.StatusOK, "All match and team data cleared", nil)
		})
	}
}
