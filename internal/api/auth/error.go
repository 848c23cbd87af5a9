package auth

import (
	"net/http"

	"DevBlogFrontend/pkg/response"
)

var (
	ErrInvalidLoginData       = response.NewError(http.StatusBadRequest, "invalid login data")
	ErrInvalidEmailOrPassword = response.NewError(http.StatusUnauthorized, "invalid email or password")
	ErrInvalidPasswordData    = response.NewError(http.StatusBadRequest, "invalid password data")
	ErrPasswordTooShort       = response.NewError(http.StatusBadRequest, "new password must be at least 6 characters")
	ErrPasswordMismatch       = response.NewError(http.StatusBadRequest, "new passwords do not match")
	ErrCurrentPasswordWrong   = response.NewError(http.StatusBadRequest, "current password is incorrect")
	ErrNotAuthenticated       = response.NewError(http.StatusUnauthorized, "not authenticated")
	ErrMissingAccessToken     = response.NewError(http.StatusBadGateway, "login response carried no access token")
)
