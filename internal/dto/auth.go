package dto

import "github.com/projectmanage/pm-backend/internal/core/domain"

// LoginRequest carries local-account credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest creates a new local account.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

// RefreshTokenRequest carries the opaque refresh-token value.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// AuthResponse is the payload returned by login, registration, and the OAuth
// callback: the access token (also set as an HTTP-only cookie), the refresh
// token, and the profile fields the frontend renders.
type AuthResponse struct {
	Token         string `json:"token"`
	RefreshToken  string `json:"refreshToken,omitempty"`
	TokenType     string `json:"tokenType"`
	Authenticated bool   `json:"authenticated"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Picture       string `json:"picture,omitempty"`
}

// AuthFailureResponse is returned on login/registration failure. The message
// never reveals whether the email exists.
type AuthFailureResponse struct {
	Authenticated bool   `json:"authenticated"`
	Message       string `json:"message"`
}

// RefreshTokenResponse returns a fresh access token alongside the same
// refresh-token value that was presented. Refresh tokens are not rotated.
type RefreshTokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
}

// AuthStatusResponse reports whether the request carries a valid principal.
type AuthStatusResponse struct {
	Authenticated bool   `json:"authenticated"`
	Name          string `json:"name,omitempty"`
	Email         string `json:"email,omitempty"`
	Picture       string `json:"picture,omitempty"`
}

// ToAuthResponse builds the login/registration payload for a user and its tokens.
func ToAuthResponse(user *domain.User, accessToken, refreshToken string) AuthResponse {
	return AuthResponse{
		Token:         accessToken,
		RefreshToken:  refreshToken,
		TokenType:     "Bearer",
		Authenticated: true,
		Name:          user.Name,
		Email:         user.Email,
		Picture:       user.Picture,
	}
}
