package authRepository

import (
	"net/http"
	"strings"

	"DevBlogFrontend/internal/api/auth"
	"DevBlogFrontend/internal/client"
	"DevBlogFrontend/internal/entity"
	contextPkg "DevBlogFrontend/pkg/context"
	"DevBlogFrontend/pkg/response"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const (
	pathLogin          = "api/auth/login"
	pathChangePassword = "api/auth/change-password"
)

type UserAPI struct {
	ID      string `json:"id"`
	MongoID string `json:"_id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	IsAdmin *bool  `json:"is_admin"`
	Admin   *bool  `json:"isAdmin"`
}

type tokenPair struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	User         *UserAPI `json:"user"`
}

// LoginResponse tolerates tokens inside data or at the top level.
type LoginResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Data    *tokenPair `json:"data"`

	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	User         *UserAPI `json:"user"`
}

type changePasswordPayload struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (u *UserAPI) toEntity() *entity.User {
	if u == nil {
		return nil
	}

	id := u.ID
	if id == "" {
		id = u.MongoID
	}

	isAdmin := strings.EqualFold(u.Role, "admin")
	switch {
	case u.IsAdmin != nil:
		isAdmin = *u.IsAdmin
	case u.Admin != nil:
		isAdmin = *u.Admin
	}

	return &entity.User{ID: id, IsAdmin: isAdmin}
}

func (r *repository) Login(ctx context.Context, req auth.LoginRequest) (entity.Session, error) {
	var resp LoginResponse
	if err := r.api.Post(ctx, pathLogin, client.Options{JSON: req}, &resp); err != nil {
		if status := response.StatusOf(err); status == http.StatusUnauthorized || status == http.StatusBadRequest {
			return entity.Session{}, auth.ErrInvalidEmailOrPassword
		}
		r.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("API error when logging in")
		return entity.Session{}, err
	}

	pair := tokenPair{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		User:         resp.User,
	}
	if resp.Data != nil && resp.Data.AccessToken != "" {
		pair = *resp.Data
	}
	if pair.AccessToken == "" {
		return entity.Session{}, auth.ErrMissingAccessToken
	}

	return entity.Session{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         pair.User.toEntity(),
	}, nil
}

func (r *repository) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	payload := changePasswordPayload{
		CurrentPassword: currentPassword,
		NewPassword:     newPassword,
	}

	if err := r.api.Post(ctx, pathChangePassword, client.Options{JSON: payload}, nil); err != nil {
		if response.StatusOf(err) == http.StatusBadRequest {
			return auth.ErrCurrentPasswordWrong
		}
		r.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("API error when changing password")
		return err
	}
	return nil
}
