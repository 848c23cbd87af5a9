package fakeapi

import (
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Comment struct {
	ID        string    `json:"_id"`
	BlogID    string    `json:"blog_id"`
	VisitorID *string   `json:"visitor_id"`
	Name      *string   `json:"name"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type commentPayload struct {
	Name    *string `json:"name"`
	Comment string  `json:"comment"`
}

func (s *Server) handleListComments(c *fiber.Ctx) error {
	blogID := c.Params("id")
	limit := c.QueryInt("limit", 50)

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Comment, 0)
	for _, cm := range s.comments {
		if cm.BlogID == blogID {
			out = append(out, *cm)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	total := len(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Comments retrieved",
		"data":    out,
		"total":   total,
	})
}

func (s *Server) handleCreateComment(c *fiber.Ctx) error {
	var req commentPayload
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if strings.TrimSpace(req.Comment) == "" {
		return badRequest(c, "comment is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	blogID := c.Params("id")
	if s.findBlog(blogID) == nil {
		return notFound(c, "blog")
	}

	now := s.tick()
	cm := &Comment{
		ID:        uuid.NewString(),
		BlogID:    blogID,
		Name:      req.Name,
		Comment:   req.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if v := c.Query("visitor_id"); v != "" {
		cm.VisitorID = &v
	}
	s.comments = append(s.comments, cm)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Comment created",
		"data":    cm,
	})
}
