package authHandler

import (
	"time"

	"DevBlogFrontend/internal/api/auth"
	"DevBlogFrontend/internal/entity"
)

func sessionResponse(authenticated bool, user *entity.User, expiresAt time.Time) auth.SessionResponse {
	resp := auth.SessionResponse{
		Authenticated: authenticated,
		IsAdmin:       authenticated && user != nil && user.IsAdmin,
	}
	if authenticated {
		resp.User = user
		if !expiresAt.IsZero() {
			resp.ExpiresAt = &expiresAt
		}
	}
	return resp
}
