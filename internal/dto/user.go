package dto

import (
	"time"

	"github.com/projectmanage/pm-backend/internal/core/domain"
)

// UpdateProfileRequest defines the data allowed for updating a profile.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateProfileRequest struct {
	Name    *string `json:"name"`
	Picture *string `json:"picture"`
}

// UserResponse is the public shape of a user account.
type UserResponse struct {
	UserID    string    `json:"userID"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Picture   string    `json:"picture,omitempty"`
	Provider  string    `json:"provider"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain.User to a UserResponse DTO.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:    user.UserID,
		Email:     user.Email,
		Username:  user.Username,
		Name:      user.Name,
		Role:      user.Role,
		Picture:   user.Picture,
		Provider:  string(user.Provider),
		CreatedAt: user.CreatedAt,
	}
}
