package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/crickonnect/crickonnect-api/config"
	"github.com/crickonnect/crickonnect-api/internal/models"
	"github.com/crickonnect/crickonnect-api/internal/user"
	"github.com/crickonnect/crickonnect-api/pkg/responses"
	"github.com/crickonnect/crickonnect-api/pkg/token"
	jwtutils "github.com/crickonnect/crickonnect-api/pkg/utils"
	"github.com/crickonnect/crickonnect-api/utils"
	"github.com/gin-gonic/gin"
)

const DefaultUserRole = user.RolePlayer

type AuthController struct {
	repo   AuthRepository
	config *config.Config
}

func NewAuthController(repo AuthRepository, cfg *config.Config) *AuthController {
	return &AuthController{repo: repo, config: cfg}
}

func (ac *AuthController) generateAndSaveTokens(u *user.User) (string, string, error) {
	accessToken, err := token.GenerateJWT(u.ID, u.Role, ac.config.JWT.AccessTokenSecret, ac.config.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		return "", "", fmt.Errorf("access token generation failed: %w", err)
	}

	refreshTokenString, err := jwtutils.GenerateRefreshToken(u.ID, ac.config.JWT.RefreshTokenSecret, ac.config.JWT.RefreshTokenExpiryDays)
	if err != nil {
		return "", "", fmt.Errorf("refresh token generation failed: %w", err)
	}

	refreshToken := &user.RefreshToken{
		UserID:    u.ID,
		Token:     refreshTokenString,
		ExpiresAt: time.Now().AddDate(0, 0, ac.config.JWT.RefreshTokenExpiryDays),
	}
	if err := ac.repo.SaveRefreshToken(refreshToken); err != nil {
		return "", "", fmt.Errorf("failed to save refresh token: %w", err)
	}
	return accessToken, refreshTokenString, nil
}

// Register godoc
// @Summary      Register a new user
// @Description  Create a player or ground_owner account with name, email and password.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        user  body  RegisterRequest  true  "User registration details"
// @Success      201   {object} responses.SuccessResponse{data=AuthResponse}
// @Failure      400   {object} responses.ErrorResponse
// @Failure      409   {object} responses.ErrorResponse "Email already registered"
// @Failure      500   {object} responses.ErrorResponse
// @Router       /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}

	email := strings.ToLower(req.Email)
	existing, err := ac.repo.GetUserByEmail(email)
	if err != nil {
		responses.InternalServerError(c, "User lookup failed: "+err.Error())
		return
	}
	if existing != nil {
		responses.Conflict(c, "User with this email already exists")
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		responses.InternalServerError(c, "Error hashing password")
		return
	}

	role := req.Role
	if role == "" {
		role = DefaultUserRole
	}

	newUser := &user.User{
		Name:     req.Name,
		Email:    email,
		Password: hashedPassword,
		Role:     role,
		Phone:    req.Phone,
		District: req.District,
		Village:  req.Village,
	}
	if req.Latitude != nil && req.Longitude != nil {
		newUser.Location = models.Coordinates{Latitude: *req.Latitude, Longitude: *req.Longitude}
	}

	if err := ac.repo.CreateUser(newUser); err != nil {
		responses.InternalServerError(c, "User creation failed: "+err.Error())
		return
	}

	accessToken, refreshToken, err := ac.generateAndSaveTokens(newUser)
	if err != nil {
		responses.InternalServerError(c, err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "User registered successfully", AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.FilterUserRecord(newUser),
	})
}

// Login godoc
// @Summary      Login user
// @Description  Authenticate with email and password.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials  body  LoginRequest  true  "Login credentials"
// @Success      200   {object} responses.SuccessResponse{data=AuthResponse}
// @Failure      400   {object} responses.ErrorResponse
// @Failure      401   {object} responses.ErrorResponse "Invalid credentials"
// @Failure      500   {object} responses.ErrorResponse
// @Router       /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}

	foundUser, err := ac.repo.GetUserByEmail(strings.ToLower(req.Email))
	if err != nil {
		responses.InternalServerError(c, "User lookup failed: "+err.Error())
		return
	}
	if foundUser == nil || !utils.CheckPassword(foundUser.Password, req.Password) {
		responses.Unauthorized(c, "Invalid email or password")
		return
	}

	accessToken, refreshToken, err := ac.generateAndSaveTokens(foundUser)
	if err != nil {
		responses.InternalServerError(c, err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Login successful", AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.FilterUserRecord(foundUser),
	})
}

// Refresh godoc
// @Summary      Rotate tokens
// @Description  Exchange a valid refresh token for a new access/refresh token pair.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        refresh  body  RefreshRequest  true  "Refresh token"
// @Success      200   {object} responses.SuccessResponse{data=AuthResponse}
// @Failure      400   {object} responses.ErrorResponse
// @Failure      401   {object} responses.ErrorResponse
// @Router       /auth/refresh [post]
func (ac *AuthController) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}

	userID, err := jwtutils.VerifyRefreshToken(req.RefreshToken, ac.config.JWT.RefreshTokenSecret)
	if err != nil {
		responses.Unauthorized(c, "Invalid refresh token")
		return
	}

	stored, err := ac.repo.GetRefreshToken(req.RefreshToken)
	if err != nil {
		responses.InternalServerError(c, "Token lookup failed: "+err.Error())
		return
	}
	if stored == nil || stored.UserID != userID || stored.ExpiresAt.Before(time.Now()) {
		responses.Unauthorized(c, "Refresh token is expired or revoked")
		return
	}

	foundUser, err := ac.repo.GetUserByID(userID)
	if err != nil || foundUser == nil {
		responses.Unauthorized(c, "User no longer exists")
		return
	}

	// Rotate: drop the used token, issue a fresh pair.
	if err := ac.repo.DeleteRefreshToken(req.RefreshToken); err != nil {
		responses.InternalServerError(c, "Token rotation failed: "+err.Error())
		return
	}

	accessToken, refreshToken, err := ac.generateAndSaveTokens(foundUser)
	if err != nil {
		responses.InternalServerError(c, err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Token refreshed", AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.FilterUserRecord(foundUser),
	})
}
