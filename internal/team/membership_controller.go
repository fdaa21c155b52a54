package team

import (
	"net/http"
	"strconv"
	"time"

	"github.com/crickonnect/crickonnect-api/internal/middleware"
	"github.com/crickonnect/crickonnect-api/pkg/responses"
	"github.com/gin-gonic/gin"
)

// MembershipController handles team invites and join requests.
type MembershipController struct {
	repo TeamRepository
}

// NewMembershipController creates a new membership controller.
func NewMembershipController(repo TeamRepository) *MembershipController {
	return &MembershipController{repo: repo}
}

type CreateInviteRequest struct {
	TeamID    uint   `json:"team_id" binding:"required"`
	InviteeID uint   `json:"invitee_id" binding:"required"`
	Message   string `json:"message"`
}

type CreateJoinRequestRequest struct {
	TeamID  uint   `json:"team_id" binding:"required"`
	Message string `json:"message"`
}

type RespondRequest struct {
	Action string `json:"action" binding:"required,oneof=accept reject"`
}

// InviteToTeam godoc
// @Summary Invite a user to a team (captain only)
// @Description Rejected with 409 when the user is already a member or already
// @Description has a pending invite for the team.
// @Tags Membership
// @Accept json
// @Produce json
// @Param invite body CreateInviteRequest true "Invite details"
// @Success 201 {object} responses.SuccessResponse{data=TeamInvite}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /team-invites [post]
func (mc *MembershipController) InviteToTeam(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	var req CreateInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	t, err := mc.repo.GetTeamByID(req.TeamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve team: "+err.Error())
		return
	}
	if t == nil {
		responses.NotFound(c, "Team")
		return
	}
	if t.CaptainID != userID {
		responses.Forbidden(c, "Only the team captain can send invites")
		return
	}

	isMember, err := mc.repo.IsMember(req.TeamID, req.InviteeID)
	if err != nil {
		responses.InternalServerError(c, "Failed to check membership: "+err.Error())
		return
	}
	if isMember {
		responses.Conflict(c, "User is already a member of this team")
		return
	}

	hasPending, err := mc.repo.HasPendingInvite(req.TeamID, req.InviteeID)
	if err != nil {
		responses.InternalServerError(c, "Failed to check pending invites: "+err.Error())
		return
	}
	if hasPending {
		responses.Conflict(c, "A pending invite already exists for this user")
		return
	}

	inv := TeamInvite{
		TeamID:    req.TeamID,
		InviterID: userID,
		InviteeID: req.InviteeID,
		Message:   req.Message,
		Status:    RequestStatusPending,
	}
	if err := mc.repo.CreateInvite(&inv); err != nil {
		responses.InternalServerError(c, "Failed to create invite: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Invite sent", inv)
}

// RespondToInvite godoc
// @Summary Accept or reject a team invite (invitee only)
// @Description Accepting adds the invitee to the team; both writes happen in
// @Description one transaction. Responded invites are terminal.
// @Tags Membership
// @Accept json
// @Produce json
// @Param invite_id path uint true "Invite ID"
// @Param response body RespondRequest true "accept or reject"
// @Success 200 {object} responses.SuccessResponse{data=TeamInvite}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse "Invite already responded"
// @Security ApiKeyAuth
// @Router /team-invites/{invite_id}/respond [put]
func (mc *MembershipController) RespondToInvite(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	inviteID, err := strconv.ParseUint(c.Param("invite_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid invite ID")
		return
	}

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	inv, err := mc.repo.GetInviteByID(uint(inviteID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve invite: "+err.Error())
		return
	}
	if inv == nil {
		responses.NotFound(c, "Invite")
		return
	}
	if inv.InviteeID != userID {
		responses.Forbidden(c, "Only the invited user can respond to this invite")
		return
	}
	if inv.Status != RequestStatusPending {
		responses.Conflict(c, "This invite has already been responded to")
		return
	}

	now := time.Now()
	inv.RespondedBy = &userID
	inv.RespondedAt = &now

	if req.Action == "reject" {
		inv.Status = RequestStatusRejected
		if err := mc.repo.UpdateInvite(inv); err != nil {
			responses.InternalServerError(c, "Failed to update invite: "+err.Error())
			return
		}
		responses.SendSuccess(c, http.StatusOK, "Invite rejected", inv)
		return
	}

	inv.Status = RequestStatusAccepted
	err = mc.repo.WithTransaction(func(repo TeamRepository) error {
		if err := repo.AddMember(&TeamMember{TeamID: inv.TeamID, UserID: inv.InviteeID}); err != nil {
			return err
		}
		return repo.UpdateInvite(inv)
	})
	if err != nil {
		responses.InternalServerError(c, "Failed to accept invite: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Invite accepted, you joined the team", inv)
}

// DeleteInvite godoc
// @Summary Withdraw an invite (inviter or captain)
// @Tags Membership
// @Produce json
// @Param invite_id path uint true "Invite ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /team-invites/{invite_id} [delete]
func (mc *MembershipController) DeleteInvite(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	inviteID, err := strconv.ParseUint(c.Param("invite_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid invite ID")
		return
	}

	inv, err := mc.repo.GetInviteByID(uint(inviteID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve invite: "+err.Error())
		return
	}
	if inv == nil {
		responses.NotFound(c, "Invite")
		return
	}

	t, err := mc.repo.GetTeamByID(inv.TeamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve team: "+err.Error())
		return
	}
	if inv.InviterID != userID && (t == nil || t.CaptainID != userID) {
		responses.Forbidden(c, "Only the inviter or team captain can withdraw this invite")
		return
	}

	if err := mc.repo.DeleteInvite(inv.ID); err != nil {
		responses.InternalServerError(c, "Failed to delete invite: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Invite withdrawn", nil)
}

// GetMyInvites godoc
// @Summary List invites addressed to the authenticated user
// @Tags Membership
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]TeamInvite}
// @Security ApiKeyAuth
// @Router /team-invites/mine [get]
func (mc *MembershipController) GetMyInvites(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	invites, err := mc.repo.ListInvitesByUser(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to list invites: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Invites retrieved successfully", invites)
}

// GetTeamInvites godoc
// @Summary List a team's invites (captain only)
// @Tags Membership
// @Produce json
// @Param team_id path uint true "Team ID"
// @Success 200 {object} responses.SuccessResponse{data=[]TeamInvite}
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{team_id}/invites [get]
func (mc *MembershipController) GetTeamInvites(c *gin.Context) {
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

	t, err := mc.repo.GetTeamByID(uint(teamID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve team: "+err.Error())
		return
	}
	if t == nil {
		responses.NotFound(c, "Team")
		return
	}
	if t.CaptainID != userID {
		responses.Forbidden(c, "Only the team captain can view team invites")
		return
	}

	invites, err := mc.repo.ListInvitesByTeam(uint(teamID))
	if err != nil {
		responses.InternalServerError(c, "Failed to list invites: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Invites retrieved successfully", invites)
}

// CreateJoinRequest godoc
// @Summary Request to join a team
// @Description Rejected with 409 when the requester is already a member or
// @Description already has a pending request for the team.
// @Tags Membership
// @Accept json
// @Produce json
// @Param request body CreateJoinRequestRequest true "Join request details"
// @Success 201 {object} responses.SuccessResponse{data=TeamJoinRequest}
// @Failure 409 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /join-requests [post]
func (mc *MembershipController) CreateJoinRequest(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	var req CreateJoinRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	t, err := mc.repo.GetTeamByID(req.TeamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve team: "+err.Error())
		return
	}
	if t == nil {
		responses.NotFound(c, "Team")
		return
	}

	isMember, err := mc.repo.IsMember(req.TeamID, userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to check membership: "+err.Error())
		return
	}
	if isMember {
		responses.Conflict(c, "You are already a member of this team")
		return
	}

	hasPending, err := mc.repo.HasPendingJoinRequest(req.TeamID, userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to check pending requests: "+err.Error())
		return
	}
	if hasPending {
		responses.Conflict(c, "You already have a pending request for this team")
		return
	}

	jr := TeamJoinRequest{
		TeamID:  req.TeamID,
		UserID:  userID,
		Message: req.Message,
		Status:  RequestStatusPending,
	}
	if err := mc.repo.CreateJoinRequest(&jr); err != nil {
		responses.InternalServerError(c, "Failed to create join request: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Join request sent", jr)
}

// RespondToJoinRequest godoc
// @Summary Accept or reject a join request (captain only)
// @Tags Membership
// @Accept json
// @Produce json
// @Param request_id path uint true "Join request ID"
// @Param response body RespondRequest true "accept or reject"
// @Success 200 {object} responses.SuccessResponse{data=TeamJoinRequest}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse "Request already responded"
// @Security ApiKeyAuth
// @Router /join-requests/{request_id}/respond [put]
func (mc *MembershipController) RespondToJoinRequest(c *gin.Context) {
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

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	jr, err := mc.repo.GetJoinRequestByID(uint(requestID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve join request: "+err.Error())
		return
	}
	if jr == nil {
		responses.NotFound(c, "Join request")
		return
	}

	t, err := mc.repo.GetTeamByID(jr.TeamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve team: "+err.Error())
		return
	}
	if t == nil {
		responses.NotFound(c, "Team")
		return
	}
	if t.CaptainID != userID {
		responses.Forbidden(c, "Only the team captain can respond to join requests")
		return
	}
	if jr.Status != RequestStatusPending {
		responses.Conflict(c, "This join request has already been responded to")
		return
	}

	now := time.Now()
	jr.RespondedBy = &userID
	jr.RespondedAt = &now

	if req.Action == "reject" {
		jr.Status = RequestStatusRejected
		if err := mc.repo.UpdateJoinRequest(jr); err != nil {
			responses.InternalServerError(c, "Failed to update join request: "+err.Error())
			return
		}
		responses.SendSuccess(c, http.StatusOK, "Join request rejected", jr)
		return
	}

	jr.Status = RequestStatusAccepted
	err = mc.repo.WithTransaction(func(repo TeamRepository) error {
		if err := repo.AddMember(&TeamMember{TeamID: jr.TeamID, UserID: jr.UserID}); err != nil {
			return err
		}
		return repo.UpdateJoinRequest(jr)
	})
	if err != nil {
		responses.InternalServerError(c, "Failed to accept join request: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Join request accepted", jr)
}

// DeleteJoinRequest godoc
// @Summary Withdraw a join request (requester only)
// @Tags Membership
// @Produce json
// @Param request_id path uint true "Join request ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /join-requests/{request_id} [delete]
func (mc *MembershipController) DeleteJoinRequest(c *gin.Context) {
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

	jr, err := mc.repo.GetJoinRequestByID(uint(requestID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve join request: "+err.Error())
		return
	}
	if jr == nil {
		responses.NotFound(c, "Join request")
		return
	}
	if jr.UserID != userID {
		responses.Forbidden(c, "Only the requester can withdraw this request")
		return
	}

	if err := mc.repo.DeleteJoinRequest(jr.ID); err != nil {
		responses.InternalServerError(c, "Failed to delete join request: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Join request withdrawn", nil)
}

// GetMyJoinRequests godoc
// @Summary List the authenticated user's join requests
// @Tags Membership
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]TeamJoinRequest}
// @Security ApiKeyAuth
// @Router /join-requests/mine [get]
func (mc *MembershipController) GetMyJoinRequests(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	requests, err := mc.repo.ListJoinRequestsByUser(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to list join requests: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Join requests retrieved successfully", requests)
}

// GetTeamJoinRequests godoc
// @Summary List a team's join requests (captain only)
// @Tags Membership
// @Produce json
// @Param team_id path uint true "Team ID"
// @Success 200 {object} responses.SuccessResponse{data=[]TeamJoinRequest}
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams/{team_id}/join-requests [get]
func (mc *MembershipController) GetTeamJoinRequests(c *gin.Context) {
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

	t, err := mc.repo.GetTeamByID(uint(teamID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve team: "+err.Error())
		return
	}
	if t == nil {
		responses.NotFound(c, "Team")
		return
	}
	if t.CaptainID != userID {
		responses.Forbidden(c, "Only the team captain can view join requests")
		return
	}

	requests, err := mc.repo.ListJoinRequestsByTeam(uint(teamID))
	if err != nil {
		responses.InternalServerError(c, "Failed to list join requests: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Join requests retrieved successfully", requests)
}
