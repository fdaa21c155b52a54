package user

import (
	"net/http"
	"strconv"

	"github.com/crickonnect/crickonnect-api/internal/middleware"
	"github.com/crickonnect/crickonnect-api/pkg/responses"
	"github.com/gin-gonic/gin"
)

// ProfileController handles profile-related HTTP requests.
type ProfileController struct {
	repo UserRepository
}

// NewProfileController creates a new profile controller.
func NewProfileController(repo UserRepository) *ProfileController {
	return &ProfileController{repo: repo}
}

type UpdateProfileRequest struct {
	BattingStyle *string   `json:"batting_style"`
	BowlingStyle *string   `json:"bowling_style"`
	PlayerType   *string   `json:"player_type" binding:"omitempty,oneof=batsman bowler all_rounder wicket_keeper"`
	TotalRuns    *int      `json:"total_runs" binding:"omitempty,gte=0"`
	TotalWickets *int      `json:"total_wickets" binding:"omitempty,gte=0"`
	Achievements *[]string `json:"achievements"`
}

// GetMyProfile godoc
// @Summary Get the authenticated user's profile
// @Tags Profile
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=Profile}
// @Failure 401 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /profile [get]
func (pc *ProfileController) GetMyProfile(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	profile, err := pc.repo.GetProfileByUserID(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve profile: "+err.Error())
		return
	}
	if profile == nil {
		// Every user gets a lazily created empty profile on first read.
		profile = &Profile{UserID: userID}
		if err := pc.repo.CreateProfile(profile); err != nil {
			responses.InternalServerError(c, "Failed to create profile: "+err.Error())
			return
		}
	}
	responses.SendSuccess(c, http.StatusOK, "Profile retrieved successfully", profile)
}

// GetProfileByUserID godoc
// @Summary Get a user's public profile
// @Tags Profile
// @Produce json
// @Param user_id path uint true "User ID"
// @Success 200 {object} responses.SuccessResponse{data=Profile}
// @Failure 404 {object} responses.ErrorResponse
// @Router /profile/{user_id} [get]
func (pc *ProfileController) GetProfileByUserID(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid user ID")
		return
	}

	u, err := pc.repo.GetUserByID(uint(userID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve user: "+err.Error())
		return
	}
	if u == nil {
		responses.NotFound(c, "User")
		return
	}

	profile, err := pc.repo.GetProfileByUserID(uint(userID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve profile: "+err.Error())
		return
	}
	if profile == nil {
		responses.NotFound(c, "Profile")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Profile retrieved successfully", gin.H{
		"user":    FilterUserRecord(u),
		"profile": profile,
	})
}

// UpdateMyProfile godoc
// @Summary Update the authenticated user's profile
// @Tags Profile
// @Accept json
// @Produce json
// @Param profile body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} responses.SuccessResponse{data=Profile}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 401 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /profile [put]
func (pc *ProfileController) UpdateMyProfile(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	profile, err := pc.repo.GetProfileByUserID(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve profile: "+err.Error())
		return
	}
	if profile == nil {
		profile = &Profile{UserID: userID}
		if err := pc.repo.CreateProfile(profile); err != nil {
			responses.InternalServerError(c, "Failed to create profile: "+err.Error())
			return
		}
	}

	if req.BattingStyle != nil {
		profile.BattingStyle = *req.BattingStyle
	}
	if req.BowlingStyle != nil {
		profile.BowlingStyle = *req.BowlingStyle
	}
	if req.PlayerType != nil {
		profile.PlayerType = *req.PlayerType
	}
	if req.TotalRuns != nil {
		profile.TotalRuns = *req.TotalRuns
	}
	if req.TotalWickets != nil {
		profile.TotalWickets = *req.TotalWickets
	}
	if req.Achievements != nil {
		profile.Achievements = *req.Achievements
	}

	if err := pc.repo.UpdateProfile(profile); err != nil {
		responses.InternalServerError(c, "Failed to update profile: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Profile updated successfully", profile)
}
