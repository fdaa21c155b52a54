package auth

import "github.com/crickonnect/crickonnect-api/internal/user"

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Name      string   `json:"name" binding:"required,min=2,max=100"`
	Email     string   `json:"email" binding:"required,email"`
	Password  string   `json:"password" binding:"required,min=6"`
	Role      string   `json:"role" binding:"omitempty,oneof=player ground_owner"`
	Phone     string   `json:"phone"`
	District  string   `json:"district"`
	Village   string   `json:"village"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// LoginRequest is the payload for credential login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries a refresh token to be exchanged for a new access token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AuthResponse is returned on successful register/login.
type AuthResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	User         user.PublicUser `json:"user"`
}
