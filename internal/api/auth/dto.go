package auth

import (
	"time"

	"DevBlogFrontend/internal/entity"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

type SessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	IsAdmin       bool         `json:"is_admin"`
	User          *entity.User `json:"user,omitempty"`
	ExpiresAt     *time.Time   `json:"expires_at,omitempty"`
}
