package fakeapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func (s *Server) handleVisitorID(c *fiber.Ctx) error {
	s.mu.Lock()
	fail := s.visitorFailure
	if !fail {
		s.visitorMints++
	}
	s.mu.Unlock()

	if fail {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": "visitor service unavailable"})
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"visitor_id": uuid.NewString(),
		},
	})
}
