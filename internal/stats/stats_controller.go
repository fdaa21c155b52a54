package stats

import (
	"net/http"
	"strconv"

	"github.com/crickonnect/crickonnect-api/internal/booking"
	"github.com/crickonnect/crickonnect-api/internal/match"
	"github.com/crickonnect/crickonnect-api/internal/middleware"
	"github.com/crickonnect/crickonnect-api/internal/team"
	"github.com/crickonnect/crickonnect-api/pkg/responses"
	"github.com/gin-gonic/gin"
)

// StatsController aggregates cross-feature figures for the authenticated user.
// Everything is recomputed on each call; there is no cache layer.
type StatsController struct {
	teams    team.TeamRepository
	matches  match.MatchRepository
	bookings booking.BookingRepository
}

// NewStatsController creates a new stats controller.
func NewStatsController(teams team.TeamRepository, matches match.MatchRepository, bookings booking.BookingRepository) *StatsController {
	return &StatsController{teams: teams, matches: matches, bookings: bookings}
}

type HomeStats struct {
	TeamCount          int64 `json:"team_count"`
	UpcomingMatchCount int64 `json:"upcoming_match_count"`
	PastMatchCount     int64 `json:"past_match_count"`
	BookingCount       int64 `json:"booking_count"`
}

// ProfileStats carries the match lists for one page plus the untruncated
// totals. WinCount and WinRate are computed from the totals, never from the
// page slices.
type ProfileStats struct {
	Teams           []team.Team   `json:"teams"`
	UpcomingMatches []match.Match `json:"upcoming_matches"`
	UpcomingTotal   int64         `json:"upcoming_total"`
	PastMatches     []match.Match `json:"past_matches"`
	PastTotal       int64         `json:"past_total"`
	WinCount        int64         `json:"win_count"`
	WinRate         float64       `json:"win_rate"`
}

// GetHomeStats godoc
// @Summary Dashboard counters for the authenticated user
// @Tags Stats
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=HomeStats}
// @Security ApiKeyAuth
// @Router /home-stats [get]
func (sc *StatsController) GetHomeStats(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	teamIDs, err := sc.teams.ListTeamIDsByUser(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to resolve teams: "+err.Error())
		return
	}

	upcoming, err := sc.matches.CountMatchesByTeams(teamIDs, match.StatusUpcoming)
	if err != nil {
		responses.InternalServerError(c, "Failed to count matches: "+err.Error())
		return
	}
	past, err := sc.matches.CountMatchesByTeams(teamIDs, match.StatusPast)
	if err != nil {
		responses.InternalServerError(c, "Failed to count matches: "+err.Error())
		return
	}
	bookingCount, err := sc.bookings.CountByPlayer(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to count bookings: "+err.Error())
		return
	}

	stats := HomeStats{
		TeamCount:          int64(len(teamIDs)),
		UpcomingMatchCount: upcoming,
		PastMatchCount:     past,
		BookingCount:       bookingCount,
	}
	responses.SendSuccess(c, http.StatusOK, "Home stats retrieved successfully", stats)
}

// GetProfileStats godoc
// @Summary Career figures for the authenticated user
// @Description Teams the user belongs to, their upcoming and past matches, and
// @Description a win count derived from past matches whose winner is one of
// @Description the user's teams. The match lists are paginated; win figures
// @Description always reflect the full history.
// @Tags Stats
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Matches per page" default(10)
// @Success 200 {object} responses.SuccessResponse{data=ProfileStats}
// @Security ApiKeyAuth
// @Router /profile/stats [get]
func (sc *StatsController) GetProfileStats(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	teams, err := sc.teams.ListTeamsByUser(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to resolve teams: "+err.Error())
		return
	}
	teamIDs := make([]uint, 0, len(teams))
	for _, t := range teams {
		teamIDs = append(teamIDs, t.ID)
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	upcoming, upcomingTotal, err := sc.matches.ListMatchesByTeams(teamIDs, match.StatusUpcoming, page, limit)
	if err != nil {
		responses.InternalServerError(c, "Failed to list matches: "+err.Error())
		return
	}
	past, pastTotal, err := sc.matches.ListMatchesByTeams(teamIDs, match.StatusPast, page, limit)
	if err != nil {
		responses.InternalServerError(c, "Failed to list matches: "+err.Error())
		return
	}
	wins, err := sc.matches.CountWinsByTeams(teamIDs)
	if err != nil {
		responses.InternalServerError(c, "Failed to count wins: "+err.Error())
		return
	}

	var winRate float64
	if pastTotal > 0 {
		winRate = float64(wins) / float64(pastTotal) * 100
	}

	stats := ProfileStats{
		Teams:           teams,
		UpcomingMatches: upcoming,
		UpcomingTotal:   upcomingTotal,
		PastMatches:     past,
		PastTotal:       pastTotal,
		WinCount:        wins,
		WinRate:         winRate,
	}
	responses.SendSuccess(c, http.StatusOK, "Profile stats retrieved successfully", stats)
}
