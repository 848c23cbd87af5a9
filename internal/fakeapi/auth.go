package fakeapi

import (
	jwtPkg "DevBlogFrontend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordPayload struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req loginPayload
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	s.mu.Lock()
	u, ok := s.users[req.Email]
	generation := s.generation
	s.mu.Unlock()

	if !ok || !s.hasher.Matches(u.PasswordHash, req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Invalid email or password"})
	}

	access, _, err := jwtPkg.Sign(tokenSecret, map[string]interface{}{
		"id":       u.ID,
		"email":    u.Email,
		"is_admin": u.IsAdmin,
		"gen":      generation,
	}, tokenTTL)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"data": fiber.Map{
			"access_token":  access,
			"refresh_token": uuid.NewString(),
			"user": fiber.Map{
				"id":       u.ID,
				"email":    u.Email,
				"is_admin": u.IsAdmin,
			},
		},
	})
}

func (s *Server) handleChangePassword(c *fiber.Ctx) error {
	var req changePasswordPayload
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	userID, _ := c.Locals("user_id").(string)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID != userID {
			continue
		}
		if !s.hasher.Matches(u.PasswordHash, req.CurrentPassword) {
			return badRequest(c, "Current password is incorrect")
		}
		if len(req.NewPassword) < 6 {
			return badRequest(c, "New password is too short")
		}
		hash, err := s.hasher.HashPassword(req.NewPassword)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
		u.PasswordHash = hash
		return c.JSON(fiber.Map{"success": true, "message": "Password changed"})
	}
	return unauthorized(c)
}
