package match

import (
	"net/http"
	"strconv"
	"time"

	"github.com/crickonnect/crickonnect-api/internal/middleware"
	"github.com/crickonnect/crickonnect-api/internal/models"
	"github.com/crickonnect/crickonnect-api/internal/team"
	"github.com/crickonnect/crickonnect-api/pkg/responses"
	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// MatchController handles match-related HTTP requests.
type MatchController struct {
	repo  MatchRepository
	teams team.TeamRepository
}

// NewMatchController creates a new match controller.
func NewMatchController(repo MatchRepository, teams team.TeamRepository) *MatchController {
	return &MatchController{repo: repo, teams: teams}
}

type CreateMatchRequest struct {
	Team1ID    uint   `json:"team1_id" binding:"required"`
	Team2ID    uint   `json:"team2_id" binding:"required"`
	MatchDate  string `json:"match_date" binding:"required"`
	MatchTime  string `json:"match_time"`
	GroundName string `json:"ground_name"`
	Village    string `json:"village"`
	MatchType  string `json:"match_type"`
}

type QuickCreateMatchRequest struct {
	Team1Name  string `json:"team1_name" binding:"required"`
	Team2Name  string `json:"team2_name" binding:"required"`
	MatchDate  string `json:"match_date" binding:"required"`
	MatchTime  string `json:"match_time"`
	GroundName string `json:"ground_name"`
	Village    string `json:"village"`
	MatchType  string `json:"match_type"`
}

type UpdateScoreRequest struct {
	Team1Score   string `json:"team1_score" binding:"required"`
	Team2Score   string `json:"team2_score" binding:"required"`
	WinnerTeamID *uint  `json:"winner_team_id"`
}

// memberIDs collects the current membership of a team as a player id list.
func (mc *MatchController) memberIDs(teamID uint) (models.UintSlice, error) {
	members, err := mc.teams.ListMembers(teamID)
	if err != nil {
		return nil, err
	}
	ids := make(models.UintSlice, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.UserID)
	}
	return ids, nil
}

// CreateMatch godoc
// @Summary Schedule a match between two teams
// @Description The creator must captain the first team. The match status is a
// @Description snapshot of the date against today and is not re-evaluated.
// @Tags Matches
// @Accept json
// @Produce json
// @Param match body CreateMatchRequest true "Match details"
// @Success 201 {object} responses.SuccessResponse{data=Match}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /matches [post]
func (mc *MatchController) CreateMatch(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	var req CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	if _, err := time.Parse(dateLayout, req.MatchDate); err != nil {
		responses.BadRequest(c, "Invalid match date, expected YYYY-MM-DD")
		return
	}
	if req.Team1ID == req.Team2ID {
		responses.BadRequest(c, "A team cannot play against itself")
		return
	}

	t1, err := mc.teams.GetTeamByID(req.Team1ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve team: "+err.Error())
		return
	}
	if t1 == nil {
		responses.NotFound(c, "Team")
		return
	}
	if t1.CaptainID != userID {
		responses.Forbidden(c, "Only the captain of the first team can schedule this match")
		return
	}
	t2, err := mc.teams.GetTeamByID(req.Team2ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve team: "+err.Error())
		return
	}
	if t2 == nil {
		responses.NotFound(c, "Team")
		return
	}

	team1Players, err := mc.memberIDs(t1.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to resolve players: "+err.Error())
		return
	}
	team2Players, err := mc.memberIDs(t2.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to resolve players: "+err.Error())
		return
	}

	village := req.Village
	if village == "" {
		village = t1.Village
	}

	m := Match{
		Status:       SnapshotStatus(req.MatchDate, time.Now()),
		Team1ID:      t1.ID,
		Team2ID:      t2.ID,
		CreatorID:    userID,
		MatchDate:    req.MatchDate,
		MatchTime:    req.MatchTime,
		GroundName:   req.GroundName,
		Village:      village,
		MatchType:    req.MatchType,
		Team1Players: team1Players,
		Team2Players: team2Players,
	}
	if err := mc.repo.CreateMatch(&m); err != nil {
		responses.InternalServerError(c, "Failed to create match: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Match created successfully", m)
}

// QuickCreateMatch godoc
// @Summary Schedule a match by team names
// @Description Resolves each team name against the requester's captained
// @Description teams; a name the requester doesn't captain yet becomes a new
// @Description team with the requester as captain.
// @Tags Matches
// @Accept json
// @Produce json
// @Param match body QuickCreateMatchRequest true "Match details"
// @Success 201 {object} responses.SuccessResponse{data=Match}
// @Failure 400 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /matches/quick [post]
func (mc *MatchController) QuickCreateMatch(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	var req QuickCreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	if _, err := time.Parse(dateLayout, req.MatchDate); err != nil {
		responses.BadRequest(c, "Invalid match date, expected YYYY-MM-DD")
		return
	}
	if req.Team1Name == req.Team2Name {
		responses.BadRequest(c, "Team names must differ")
		return
	}

	var t1, t2 *team.Team
	err = mc.teams.WithTransaction(func(repo team.TeamRepository) error {
		var err error
		t1, err = mc.resolveOrCreateTeam(repo, userID, req.Team1Name)
		if err != nil {
			return err
		}
		t2, err = mc.resolveOrCreateTeam(repo, userID, req.Team2Name)
		return err
	})
	if err != nil {
		responses.InternalServerError(c, "Failed to resolve teams: "+err.Error())
		return
	}

	team1Players, err := mc.memberIDs(t1.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to resolve players: "+err.Error())
		return
	}
	team2Players, err := mc.memberIDs(t2.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to resolve players: "+err.Error())
		return
	}

	m := Match{
		Status:       SnapshotStatus(req.MatchDate, time.Now()),
		Team1ID:      t1.ID,
		Team2ID:      t2.ID,
		CreatorID:    userID,
		MatchDate:    req.MatchDate,
		MatchTime:    req.MatchTime,
		GroundName:   req.GroundName,
		Village:      req.Village,
		MatchType:    req.MatchType,
		Team1Players: team1Players,
		Team2Players: team2Players,
	}
	if err := mc.repo.CreateMatch(&m); err != nil {
		responses.InternalServerError(c, "Failed to create match: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Match created successfully", m)
}

func (mc *MatchController) resolveOrCreateTeam(repo team.TeamRepository, captainID uint, name string) (*team.Team, error) {
	existing, err := repo.GetTeamByCaptainAndName(captainID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	t := &team.Team{Name: name, CaptainID: captainID}
	if err := repo.CreateTeam(t); err != nil {
		return nil, err
	}
	if err := repo.AddMember(&team.TeamMember{TeamID: t.ID, UserID: captainID, Role: "captain"}); err != nil {
		return nil, err
	}
	return t, nil
}

// GetMatchByID godoc
// @Summary Get a match
// @Tags Matches
// @Produce json
// @Param match_id path uint true "Match ID"
// @Success 200 {object} responses.SuccessResponse{data=Match}
// @Failure 404 {object} responses.ErrorResponse
// @Router /matches/{match_id} [get]
func (mc *MatchController) GetMatchByID(c *gin.Context) {
	matchID, err := strconv.ParseUint(c.Param("match_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid match ID")
		return
	}

	m, err := mc.repo.GetMatchByID(uint(matchID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve match: "+err.Error())
		return
	}
	if m == nil {
		responses.NotFound(c, "Match")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Match retrieved successfully", m)
}

// GetMyMatches godoc
// @Summary List matches involving the authenticated user's teams
// @Tags Matches
// @Produce json
// @Param status query string false "Filter by status" Enums(upcoming, past, available)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} responses.PaginatedResponse{data=[]Match}
// @Security ApiKeyAuth
// @Router /matches/mine [get]
func (mc *MatchController) GetMyMatches(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	teamIDs, err := mc.teams.ListTeamIDsByUser(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to resolve teams: "+err.Error())
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	matches, total, err := mc.repo.ListMatchesByTeams(teamIDs, c.Query("status"), page, limit)
	if err != nil {
		responses.InternalServerError(c, "Failed to list matches: "+err.Error())
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Matches retrieved successfully", matches, total, page, limit)
}

// UpdateScore godoc
// @Summary Record a match result (creator only)
// @Description Allowed only after the match date has passed. Moves the match
// @Description to past and updates both teams' played counters plus the
// @Description winner's win counter.
// @Tags Matches
// @Accept json
// @Produce json
// @Param match_id path uint true "Match ID"
// @Param score body UpdateScoreRequest true "Scores and winner"
// @Success 200 {object} responses.SuccessResponse{data=Match}
// @Failure 400 {object} responses.ErrorResponse "Match date not passed"
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /matches/{match_id}/score [put]
func (mc *MatchController) UpdateScore(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	matchID, err := strconv.ParseUint(c.Param("match_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid match ID")
		return
	}

	var req UpdateScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	m, err := mc.repo.GetMatchByID(uint(matchID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve match: "+err.Error())
		return
	}
	if m == nil {
		responses.NotFound(c, "Match")
		return
	}
	if m.CreatorID != userID {
		responses.Forbidden(c, "Only the match creator can record the result")
		return
	}
	if !DatePassed(m.MatchDate, time.Now()) {
		responses.BadRequest(c, "The result can only be recorded after the match date has passed")
		return
	}
	if req.WinnerTeamID != nil && *req.WinnerTeamID != m.Team1ID && *req.WinnerTeamID != m.Team2ID {
		responses.BadRequest(c, "Winner must be one of the match's teams")
		return
	}

	alreadyScored := m.Status == StatusPast && (m.Team1Score != "" || m.Team2Score != "")

	m.Team1Score = req.Team1Score
	m.Team2Score = req.Team2Score
	m.WinnerTeamID = req.WinnerTeamID
	m.Status = StatusPast

	err = mc.repo.WithTransaction(func(repo MatchRepository) error {
		if err := repo.UpdateMatch(m); err != nil {
			return err
		}
		if alreadyScored {
			// re-recording a result must not double-count
			return nil
		}
		won1 := req.WinnerTeamID != nil && *req.WinnerTeamID == m.Team1ID
		won2 := req.WinnerTeamID != nil && *req.WinnerTeamID == m.Team2ID
		if err := repo.IncrementTeamStats(m.Team1ID, won1); err != nil {
			return err
		}
		return repo.IncrementTeamStats(m.Team2ID, won2)
	})
	if err != nil {
		responses.InternalServerError(c, "Failed to record result: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Match result recorded", m)
}
