package authService

import (
	"fmt"
	"strings"

	"DevBlogFrontend/internal/api/auth"
	"DevBlogFrontend/internal/entity"
	"DevBlogFrontend/internal/session"
	contextPkg "DevBlogFrontend/pkg/context"
	"DevBlogFrontend/pkg/events"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// Login authenticates against the backend and persists the issued tokens
// in the browser's storage.
func (s *authService) Login(ctx context.Context, req auth.LoginRequest) (*entity.Session, error) {
	requestID := contextPkg.GetRequestID(ctx)

	req.Email = strings.TrimSpace(req.Email)
	if err := s.validator.Struct(req); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Invalid login data")
		return nil, fmt.Errorf("%w: %w", auth.ErrInvalidLoginData, err)
	}

	issued, err := s.authRepo.Login(ctx, req)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"email":      req.Email,
			"error":      err.Error(),
		}).Warn("Login failed")
		return nil, err
	}

	sess := session.From(ctx)
	if err := sess.Persist(ctx, issued); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to store session")
		return nil, err
	}

	state, err := sess.State(ctx)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"scope":      sess.Scope(),
		"is_admin":   state.IsAdmin(),
	}).Info("User logged in")

	return &state, nil
}

// Logout drops the stored login and sends the browser home.
func (s *authService) Logout(ctx context.Context) error {
	sess := session.From(ctx)

	if err := sess.Clear(ctx); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Failed to clear session")
		return err
	}

	sess.Publish(events.AuthLogout, "")
	sess.Redirect(session.HomePath)
	return nil
}

func (s *authService) IsAuthenticated(ctx context.Context) bool {
	ok, err := session.From(ctx).IsAuthenticated(ctx, s.now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Warn("Failed to read session")
		return false
	}
	return ok
}

func (s *authService) GetCurrentUser(ctx context.Context) *entity.User {
	user, err := session.From(ctx).CurrentUser(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Warn("Failed to read stored user")
		return nil
	}
	return user
}

// IsAdmin reads the stored user flag only; it does not check the token.
func (s *authService) IsAdmin(ctx context.Context) bool {
	user := s.GetCurrentUser(ctx)
	return user != nil && user.IsAdmin
}

func (s *authService) GetSession(ctx context.Context) (entity.Session, error) {
	return session.From(ctx).State(ctx)
}

func (s *authService) ChangePassword(ctx context.Context, req auth.ChangePasswordRequest) error {
	requestID := contextPkg.GetRequestID(ctx)

	if err := s.validator.Struct(req); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Invalid password data")
		return fmt.Errorf("%w: %w", passwordError(req), err)
	}

	if !s.IsAuthenticated(ctx) {
		return auth.ErrNotAuthenticated
	}

	if err := s.authRepo.ChangePassword(ctx, req.CurrentPassword, req.NewPassword); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to change password")
		return err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
	}).Info("Password changed")
	return nil
}

// passwordError names the first rule the form broke.
func passwordError(req auth.ChangePasswordRequest) error {
	switch {
	case req.CurrentPassword == "" || req.NewPassword == "":
		return auth.ErrInvalidPasswordData
	case len(req.NewPassword) < 6:
		return auth.ErrPasswordTooShort
	case req.NewPassword != req.ConfirmPassword:
		return auth.ErrPasswordMismatch
	default:
		return auth.ErrInvalidPasswordData
	}
}
