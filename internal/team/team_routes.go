package team

import (
	mw "github.com/crickonnect/crickonnect-api/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TeamRoutes sets up team and membership routes.
func TeamRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string) {
	repo := NewTeamRepository(db)
	teams := NewTeamController(repo)
	membership := NewMembershipController(repo)

	// Public team reads
	router.GET("/teams", teams.SearchTeams)
	router.GET("/teams/:team_id", teams.GetTeamByID)

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		authRoutes.POST("/teams", teams.CreateTeam)
		authRoutes.GET("/teams/mine", teams.GetMyTeams)
		authRoutes.PUT("/teams/:team_id", teams.UpdateTeam)
		authRoutes.DELETE("/teams/:team_id/members/:user_id", teams.RemoveMember)
		authRoutes.POST("/teams/:team_id/leave", teams.LeaveTeam)

		authRoutes.GET("/teams/:team_id/invites", membership.GetTeamInvites)
		authRoutes.GET("/teams/:team_id/join-requests", membership.GetTeamJoinRequests)

		authRoutes.POST("/team-invites", membership.InviteToTeam)
		authRoutes.GET("/team-invites/mine", membership.GetMyInvites)
		authRoutes.PUT("/team-invites/:invite_id/respond", membership.RespondToInvite)
		authRoutes.DELETE("/team-invites/:invite_id", membership.DeleteInvite)

		authRoutes.POST("/join-requests", membership.CreateJoinRequest)
		authRoutes.GET("/join-requests/mine", membership.GetMyJoinRequests)
		authRoutes.PUT("/join-requests/:request_id/respond", membership.RespondToJoinRequest)
		authRoutes.DELETE("/join-requests/:request_id", membership.DeleteJoinRequest)
	}
}
