package fakeapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Series struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type seriesPayload struct {
	Title       *string `json:"title"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Published   *bool   `json:"published"`
}

func (s *Server) SeedSeries(sr Series) Series {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sr.ID == "" {
		sr.ID = uuid.NewString()
	}
	if sr.CreatedAt.IsZero() {
		sr.CreatedAt = s.tick()
	}
	if sr.UpdatedAt.IsZero() {
		sr.UpdatedAt = sr.CreatedAt
	}

	stored := sr
	s.series = append(s.series, &stored)
	return stored
}

func (s *Server) findSeries(idOrSlug string) *Series {
	for _, sr := range s.series {
		if sr.ID == idOrSlug || sr.Slug == idOrSlug {
			return sr
		}
	}
	return nil
}

func (s *Server) listSeries(includeDrafts bool) []Series {
	out := make([]Series, 0, len(s.series))
	for _, sr := range s.series {
		if includeDrafts || sr.Published {
			out = append(out, *sr)
		}
	}
	return out
}

func seriesList(c *fiber.Ctx, series []Series) error {
	return c.JSON(fiber.Map{
		"data":  series,
		"total": len(series),
		"page":  1,
		"limit": len(series),
	})
}

func seriesDetail(c *fiber.Ctx, status int, msg string, sr Series) error {
	return c.Status(status).JSON(fiber.Map{
		"data":    sr,
		"success": true,
		"message": msg,
	})
}

func (s *Server) handleListSeries(c *fiber.Ctx) error {
	s.mu.Lock()
	series := s.listSeries(false)
	s.mu.Unlock()
	return seriesList(c, series)
}

func (s *Server) handleListYourSeries(c *fiber.Ctx) error {
	s.mu.Lock()
	series := s.listSeries(true)
	s.mu.Unlock()
	return seriesList(c, series)
}

// handleGetSeries hides drafts from callers without a live token.
func (s *Server) handleGetSeries(c *fiber.Ctx) error {
	authorized := s.authorized(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	sr := s.findSeries(c.Params("idOrSlug"))
	if sr == nil || (!sr.Published && !authorized) {
		return notFound(c, "series")
	}
	return seriesDetail(c, fiber.StatusOK, "Series retrieved", *sr)
}

func (s *Server) handleCreateSeries(c *fiber.Ctx) error {
	var req seriesPayload
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if req.Title == nil || *req.Title == "" || req.Slug == nil || *req.Slug == "" {
		return badRequest(c, "title and slug are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findSeries(*req.Slug) != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "slug already exists"})
	}

	now := s.tick()
	sr := &Series{
		ID:        uuid.NewString(),
		Title:     *req.Title,
		Slug:      *req.Slug,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Description != nil {
		sr.Description = *req.Description
	}
	if req.Published != nil {
		sr.Published = *req.Published
	}
	s.series = append(s.series, sr)

	return seriesDetail(c, fiber.StatusCreated, "Series created", *sr)
}

func (s *Server) handleUpdateSeries(c *fiber.Ctx) error {
	var req seriesPayload
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sr := s.findSeries(c.Params("id"))
	if sr == nil {
		return notFound(c, "series")
	}

	if req.Title != nil {
		sr.Title = *req.Title
	}
	if req.Slug != nil {
		sr.Slug = *req.Slug
	}
	if req.Description != nil {
		sr.Description = *req.Description
	}
	if req.Published != nil {
		sr.Published = *req.Published
	}
	sr.UpdatedAt = s.tick()

	return seriesDetail(c, fiber.StatusOK, "Series updated", *sr)
}

func (s *Server) handleDeleteSeries(c *fiber.Ctx) error {
	id := c.Params("id")

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sr := range s.series {
		if sr.ID == id {
			s.series = append(s.series[:i], s.series[i+1:]...)
			return c.JSON(fiber.Map{"success": true, "message": "Series deleted"})
		}
	}
	return notFound(c, "series")
}
