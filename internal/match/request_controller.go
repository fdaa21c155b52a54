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

// RequestController handles match request negotiation.
type RequestController struct {
	repo  MatchRepository
	teams team.TeamRepository
}

// NewRequestController creates a new match request controller.
func NewRequestController(repo MatchRepository, teams team.TeamRepository) *RequestController {
	return &RequestController{repo: repo, teams: teams}
}

type CreateMatchRequestRequest struct {
	RequestingTeamID uint   `json:"requesting_team_id" binding:"required"`
	ReceivingTeamID  uint   `json:"receiving_team_id" binding:"required"`
	ProposedDate     string `json:"proposed_date" binding:"required"`
	ProposedTime     string `json:"proposed_time"`
	GroundName       string `json:"ground_name"`
	Village          string `json:"village"`
	MatchType        string `json:"match_type"`
	Message          string `json:"message"`
}

// CreateMatchRequest godoc
// @Summary Propose a match to another team
// @Description The creator must captain the requesting team. A second pending
// @Description request for the same (requesting, receiving) pair is rejected
// @Description with 409; the reverse direction counts as a distinct pair.
// @Tags MatchRequests
// @Accept json
// @Produce json
// @Param request body CreateMatchRequestRequest true "Proposal details"
// @Success 201 {object} responses.SuccessResponse{data=MatchRequest}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /match-requests [post]
func (rc *RequestController) CreateMatchRequest(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	var req CreateMatchRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	if _, err := time.Parse(dateLayout, req.ProposedDate); err != nil {
		responses.BadRequest(c, "Invalid proposed date, expected YYYY-MM-DD")
		return
	}
	if req.RequestingTeamID == req.ReceivingTeamID {
		responses.BadRequest(c, "A team cannot challenge itself")
		return
	}

	reqTeam, err := rc.teams.GetTeamByID(req.RequestingTeamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve team: "+err.Error())
		return
	}
	if reqTeam == nil {
		responses.NotFound(c, "Requesting team")
		return
	}
	if reqTeam.CaptainID != userID {
		responses.Forbidden(c, "Only the requesting team's captain can send a match request")
		return
	}

	recvTeam, err := rc.teams.GetTeamByID(req.ReceivingTeamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve team: "+err.Error())
		return
	}
	if recvTeam == nil {
		responses.NotFound(c, "Receiving team")
		return
	}

	hasPending, err := rc.repo.HasPendingRequest(req.RequestingTeamID, req.ReceivingTeamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to check pending requests: "+err.Error())
		return
	}
	if hasPending {
		responses.Conflict(c, "A pending request between these teams already exists")
		return
	}

	mr := MatchRequest{
		RequestingTeamID: req.RequestingTeamID,
		ReceivingTeamID:  req.ReceivingTeamID,
		CreatorID:        userID,
		ProposedDate:     req.ProposedDate,
		ProposedTime:     req.ProposedTime,
		GroundName:       req.GroundName,
		Village:          req.Village,
		MatchType:        req.MatchType,
		Message:          req.Message,
		Status:           RequestPending,
	}
	if err := rc.repo.CreateRequest(&mr); err != nil {
		responses.InternalServerError(c, "Failed to create match request: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Match request sent", mr)
}

// AcceptMatchRequest godoc
// @Summary Accept a match request (receiving captain only)
// @Description Creates the upcoming match with both teams' current players and
// @Description links it to the request; both writes happen in one transaction.
// @Tags MatchRequests
// @Produce json
// @Param request_id path uint true "Match request ID"
// @Success 200 {object} responses.SuccessResponse{data=MatchRequest}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse "Request no longer pending"
// @Security ApiKeyAuth
// @Router /match-requests/{request_id}/accept [put]
func (rc *RequestController) AcceptMatchRequest(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	mr := rc.fetchPendingForReceivingCaptain(c, userID)
	if mr == nil {
		return
	}

	team1Players, err := rc.memberIDs(mr.RequestingTeamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to resolve players: "+err.Error())
		return
	}
	team2Players, err := rc.memberIDs(mr.ReceivingTeamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to resolve players: "+err.Error())
		return
	}

	now := time.Now()
	m := Match{
		Status:       StatusUpcoming,
		Team1ID:      mr.RequestingTeamID,
		Team2ID:      mr.ReceivingTeamID,
		CreatorID:    mr.CreatorID,
		MatchDate:    mr.ProposedDate,
		MatchTime:    mr.ProposedTime,
		GroundName:   mr.GroundName,
		Village:      mr.Village,
		MatchType:    mr.MatchType,
		Team1Players: team1Players,
		Team2Players: team2Players,
	}

	err = rc.repo.WithTransaction(func(repo MatchRepository) error {
		if err := repo.CreateMatch(&m); err != nil {
			return err
		}
		mr.Status = RequestAccepted
		mr.RespondedBy = &userID
		mr.RespondedAt = &now
		mr.MatchID = &m.ID
		return repo.UpdateRequest(mr)
	})
	if err != nil {
		responses.InternalServerError(c, "Failed to accept match request: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Match request accepted", mr)
}

// RejectMatchRequest godoc
// @Summary Reject a match request (receiving captain only)
// @Tags MatchRequests
// @Produce json
// @Param request_id path uint true "Match request ID"
// @Success 200 {object} responses.SuccessResponse{data=MatchRequest}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse "Request no longer pending"
// @Security ApiKeyAuth
// @Router /match-requests/{request_id}/reject [put]
func (rc *RequestController) RejectMatchRequest(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	mr := rc.fetchPendingForReceivingCaptain(c, userID)
	if mr == nil {
		return
	}

	now := time.Now()
	mr.Status = RequestRejected
	mr.RespondedBy = &userID
	mr.RespondedAt = &now
	if err := rc.repo.UpdateRequest(mr); err != nil {
		responses.InternalServerError(c, "Failed to reject match request: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Match request rejected", mr)
}

// CancelMatchRequest godoc
// @Summary Cancel a match request (creator only)
// @Tags MatchRequests
// @Produce json
// @Param request_id path uint true "Match request ID"
// @Success 200 {object} responses.SuccessResponse{data=MatchRequest}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse "Request no longer pending"
// @Security ApiKeyAuth
// @Router /match-requests/{request_id}/cancel [put]
func (rc *RequestController) CancelMatchRequest(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	requestID, err := strconv.ParseUint(c.Param("request_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid request ID")
		return
	}

	mr, err := rc.repo.GetRequestByID(uint(requestID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve match request: "+err.Error())
		return
	}
	if mr == nil {
		responses.NotFound(c, "Match request")
		return
	}
	if mr.CreatorID != userID {
		responses.Forbidden(c, "Only the request creator can cancel it")
		return
	}
	if mr.Status != RequestPending {
		responses.Conflict(c, "This match request has already been resolved")
		return
	}

	mr.Status = RequestCancelled
	if err := rc.repo.UpdateRequest(mr); err != nil {
		responses.InternalServerError(c, "Failed to cancel match request: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Match request cancelled", mr)
}

// GetTeamRequests godoc
// @Summary List a team's match requests, sent and received (captain only)
// @Tags MatchRequests
// @Produce json
// @Param team_id path uint true "Team ID"
// @Success 200 {object} responses.SuccessResponse{data=[]MatchRequest}
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /match-requests/team/{team_id} [get]
func (rc *RequestController) GetTeamRequests(c *gin.Context) {
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

	t, err := rc.teams.GetTeamByID(uint(teamID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve team: "+err.Error())
		return
	}
	if t == nil {
		responses.NotFound(c, "Team")
		return
	}
	if t.CaptainID != userID {
		responses.Forbidden(c, "Only the team captain can view match requests")
		return
	}

	requests, err := rc.repo.ListRequestsForTeam(uint(teamID))
	if err != nil {
		responses.InternalServerError(c, "Failed to list match requests: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Match requests retrieved successfully", requests)
}

func (rc *RequestController) memberIDs(teamID uint) (models.UintSlice, error) {
	members, err := rc.teams.ListMembers(teamID)
	if err != nil {
		return nil, err
	}
	ids := make(models.UintSlice, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.UserID)
	}
	return ids, nil
}

// fetchPendingForReceivingCaptain loads the request and enforces the
// receiving-captain + pending guards shared by accept and reject.
func (rc *RequestController) fetchPendingForReceivingCaptain(c *gin.Context, userID uint) *MatchRequest {
	requestID, err := strconv.ParseUint(c.Param("request_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid request ID")
		return nil
	}

	mr, err := rc.repo.GetRequestByID(uint(requestID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve match request: "+err.Error())
		return nil
	}
	if mr == nil {
		responses.NotFound(c, "Match request")
		return nil
	}

	recvTeam, err := rc.teams.GetTeamByID(mr.ReceivingTeamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve team: "+err.Error())
		return nil
	}
	if recvTeam == nil {
		responses.NotFound(c, "Receiving team")
		return nil
	}
	if recvTeam.CaptainID != userID {
		responses.Forbidden(c, "Only the receiving team's captain can respond to this request")
		return nil
	}
	if mr.Status != RequestPending {
		responses.Conflict(c, "This match request has already been resolved")
		return nil
	}
	return mr
}
