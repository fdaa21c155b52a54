package team

import (
	"net/http"
	"strconv"

	"github.com/crickonnect/crickonnect-api/internal/middleware"
	"github.com/crickonnect/crickonnect-api/pkg/responses"
	"github.com/gin-gonic/gin"
)

// TeamController handles team-related HTTP requests.
type TeamController struct {
	repo TeamRepository
}

// NewTeamController creates a new team controller.
func NewTeamController(repo TeamRepository) *TeamController {
	return &TeamController{repo: repo}
}

type CreateTeamRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description"`
	TeamType    string `json:"team_type"`
	District    string `json:"district"`
	Village     string `json:"village"`
	Logo        string `json:"logo"`
}

type UpdateTeamRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=100"`
	Description *string `json:"description"`
	TeamType    *string `json:"team_type"`
	District    *string `json:"district"`
	Village     *string `json:"village"`
	Logo        *string `json:"logo"`
}

// CreateTeam godoc
// @Summary Create a team
// @Description Creates a team; the creator becomes captain and first member.
// @Tags Teams
// @Accept json
// @Produce json
// @Param team body CreateTeamRequest true "Team details"
// @Success 201 {object} responses.SuccessResponse{data=Team}
// @Failure 400 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams [post]
func (tc *TeamController) CreateTeam(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	t := Team{
		Name:        req.Name,
		CaptainID:   userID,
		Description: req.Description,
		TeamType:    req.TeamType,
		District:    req.District,
		Village:     req.Village,
		Logo:        req.Logo,
	}

	err = tc.repo.WithTransaction(func(repo TeamRepository) error {
		if err := repo.CreateTeam(&t); err != nil {
			return err
		}
		return repo.AddMember(&TeamMember{TeamID: t.ID, UserID: userID, Role: "captain"})
	})
	if err != nil {
		responses.InternalServerError(c, "Failed to create team: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Team created successfully", t)
}

// GetTeamByID godoc
// @Summary Get a team with its members
// @Tags Teams
// @Produce json
// @Param team_id path uint true "Team ID"
// @Success 200 {object} responses.SuccessResponse{data=Team}
// @Failure 404 {object} responses.ErrorResponse
// @Router /teams/{team_id} [get]
func (tc *TeamController) GetTeamByID(c *gin.Context) {
	teamID, err := strconv.ParseUint(c.Param("team_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid team ID")
		return
	}

	t, err := tc.repo.GetTeamByID(uint(teamID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve team: "+err.Error())
		return
	}
	if t == nil {
		responses.NotFound(c, "Team")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team retrieved successfully", t)
}

// SearchTeams godoc
// @Summary Search teams
// @Tags Teams
// @Produce json
// @Param district query string false "Filter by district"
// @Param village query string false "Filter by village"
// @Param name query string false "Filter by name (partial match)"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} responses.PaginatedResponse{data=[]Team}
// @Router /teams [get]
func (tc *TeamController) SearchTeams(c *gin.Context) {
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

	teams, total, err := tc.repo.SearchTeams(c.Query("district"), c.Query("village"), c.Query("name"), page, limit)
	if err != nil {
		responses.InternalServerError(c, "Failed to search teams: "+err.Error())
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Teams retrieved successfully", teams, total, page, limit)
}

// GetMyTeams godoc
// @Summary List the authenticated user's teams
// @Tags Teams
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]Team}
// @Security ApiKeyAuth
// @Router /teams/mine [get]
func (tc *TeamController) GetMyTeams(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	teams, err := tc.repo.ListTeamsByUser(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to list teams: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Your teams retrieved successfully", teams)
}

// UpdateTeam godoc
// @Summary Update a team (captain only)
// @Tags Teams
// @Accept json
// @Produce json
// @Param team_id path uint true "Team ID"
// @Param team body UpdateTeamRequest true "Fields to update"
// @Success 200 {object} responses.SuccessResponse{data=Team}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{team_id} [put]
func (tc *TeamController) UpdateTeam(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	teamID, err := strconv.ParseUint(c.Param("team_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid team ID")
		return
	}

	t, err := tc.repo.GetTeamByID(uint(teamID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve team: "+err.Error())
		return
	}
	if t == nil {
		responses.NotFound(c, "Team")
		return
	}
	if t.CaptainID != userID {
		responses.Forbidden(c, "Only the team captain can update the team")
		return
	}

	var req UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.TeamType != nil {
		t.TeamType = *req.TeamType
	}
	if req.District != nil {
		t.District = *req.District
	}
	if req.Village != nil {
		t.Village = *req.Village
	}
	if req.Logo != nil {
		t.Logo = *req.Logo
	}

	if err := tc.repo.UpdateTeam(t); err != nil {
		responses.InternalServerError(c, "Failed to update team: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team updated successfully", t)
}

// RemoveMember godoc
// @Summary Remove a member from a team (captain only)
// @Tags Teams
// @Produce json
// @Param team_id path uint true "Team ID"
// @Param user_id path uint true "User ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{team_id}/members/{user_id} [delete]
func (tc *TeamController) RemoveMember(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	teamID, err := strconv.ParseUint(c.Param("team_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid team ID")
		return
	}
	memberID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid user ID")
		return
	}

	t, err := tc.repo.GetTeamByID(uint(teamID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve team: "+err.Error())
		return
	}
	if t == nil {
		responses.NotFound(c, "Team")
		return
	}
	if t.CaptainID != userID {
		responses.Forbidden(c, "Only the team captain can remove members")
		return
	}
	if uint(memberID) == t.CaptainID {
		responses.BadRequest(c, "The captain cannot be removed from the team")
		return
	}

	if err := tc.repo.RemoveMember(uint(teamID), uint(memberID)); err != nil {
		responses.InternalServerError(c, "Failed to remove member: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Member removed", nil)
}

// LeaveTeam godoc
// @Summary Leave a team
// @Tags Teams
// @Produce json
// @Param team_id path uint true "Team ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse "Captain cannot leave"
// @Security ApiKeyAuth
// @Router /teams/{team_id}/leave [post]
func (tc *TeamController) LeaveTeam(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	teamID, err := strconv.ParseUint(c.Param("team_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid team ID")
		return
	}

	t, err := tc.repo.GetTeamByID(uint(teamID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve team: "+err.Error())
		return
	}
	if t == nil {
		responses.NotFound(c, "Team")
		return
	}
	if t.CaptainID == userID {
		responses.BadRequest(c, "The captain cannot leave their own team")
		return
	}

	isMember, err := tc.repo.IsMember(uint(teamID), userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to check membership: "+err.Error())
		return
	}
	if !isMember {
		responses.NotFound(c, "Membership")
		return
	}

	if err := tc.repo.RemoveMember(uint(teamID), userID); err != nil {
		responses.InternalServerError(c, "Failed to leave team: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "You have left the team", nil)
}
