package fakeapi

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Blog is the backend's wire shape for a post.
type Blog struct {
	ID          string       `json:"_id"`
	Title       string       `json:"title"`
	Slug        string       `json:"slug"`
	Content     string       `json:"content"`
	Thumbnail   string       `json:"thumbnail"`
	Published   bool         `json:"published"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Tags        []string     `json:"tags"`
	SeriesID    string       `json:"series_id,omitempty"`
	Likes       int          `json:"likes"`
	ViewCount   int          `json:"view_count"`
	UserDetails *UserDetails `json:"user_details,omitempty"`
	Liked       bool         `json:"liked,omitempty"`
}

type UserDetails struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Role      string `json:"role"`
}

// SeedBlog stores b directly, filling id and timestamps when empty.
func (s *Server) SeedBlog(b Blog) Blog {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = s.tick()
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = b.CreatedAt
	}
	if b.Tags == nil {
		b.Tags = []string{}
	}

	stored := b
	s.blogs = append(s.blogs, &stored)
	return stored
}

// Blog returns a copy of the stored post with id.
func (s *Server) Blog(id string) (Blog, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b := s.findBlog(id); b != nil {
		return *b, true
	}
	return Blog{}, false
}

func (s *Server) findBlog(id string) *Blog {
	for _, b := range s.blogs {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func (s *Server) findBlogBySlug(slug string) *Blog {
	for _, b := range s.blogs {
		if b.Slug == slug {
			return b
		}
	}
	return nil
}

func (s *Server) listBlogs(includeDrafts bool, seriesID string) []Blog {
	out := make([]Blog, 0, len(s.blogs))
	for _, b := range s.blogs {
		if !includeDrafts && !b.Published {
			continue
		}
		if seriesID != "" && b.SeriesID != seriesID {
			continue
		}
		out = append(out, *b)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func blogList(c *fiber.Ctx, blogs []Blog) error {
	return c.JSON(fiber.Map{
		"data":  blogs,
		"total": len(blogs),
		"page":  1,
		"limit": len(blogs),
	})
}

func blogDetail(c *fiber.Ctx, status int, msg string, b Blog) error {
	return c.Status(status).JSON(fiber.Map{
		"data":    b,
		"success": true,
		"message": msg,
	})
}

func (s *Server) handleListBlogs(c *fiber.Ctx) error {
	s.mu.Lock()
	blogs := s.listBlogs(s.leakDrafts, c.Query("series_id"))
	s.mu.Unlock()
	return blogList(c, blogs)
}

func (s *Server) handleListYourBlogs(c *fiber.Ctx) error {
	s.mu.Lock()
	blogs := s.listBlogs(true, c.Query("series_id"))
	s.mu.Unlock()
	return blogList(c, blogs)
}

func (s *Server) handleGetYourBlog(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.findBlog(c.Params("id"))
	if b == nil {
		return notFound(c, "blog")
	}
	return blogDetail(c, fiber.StatusOK, "Blog retrieved", *b)
}

func (s *Server) handleGetBlog(c *fiber.Ctx) error {
	visitorID := c.Query("visitor_id")

	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.findBlogBySlug(c.Params("slug"))
	if b == nil || !b.Published {
		return notFound(c, "blog")
	}

	if visitorID != "" {
		if s.views[b.ID] == nil {
			s.views[b.ID] = make(map[string]bool)
		}
		if !s.views[b.ID][visitorID] {
			s.views[b.ID][visitorID] = true
			b.ViewCount++
		}
	}

	out := *b
	out.Liked = visitorID != "" && s.likes[b.ID][visitorID]
	return blogDetail(c, fiber.StatusOK, "Blog retrieved", out)
}

func (s *Server) handleCreateBlog(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(c, "multipart form required")
	}

	value := func(name string) string {
		if v := form.Value[name]; len(v) > 0 {
			return v[0]
		}
		return ""
	}

	title, slug, content := value("title"), value("slug"), value("content")
	if title == "" || slug == "" || content == "" {
		return badRequest(c, "title, slug and content are required")
	}

	thumbnail := value("thumbnail")
	if files := form.File["thumbnail"]; len(files) > 0 {
		thumbnail = fmt.Sprintf("https://cdn.devblog.test/%s/%s", uuid.NewString(), files[0].Filename)
	}

	published, _ := strconv.ParseBool(value("published"))

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findBlogBySlug(slug) != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "slug already exists"})
	}

	now := s.tick()
	b := &Blog{
		ID:        uuid.NewString(),
		Title:     title,
		Slug:      slug,
		Content:   content,
		Thumbnail: thumbnail,
		Published: published,
		CreatedAt: now,
		UpdatedAt: now,
		Tags:      append([]string{}, form.Value["tags"]...),
		SeriesID:  value("series_id"),
	}
	s.blogs = append(s.blogs, b)

	return blogDetail(c, fiber.StatusCreated, "Blog created", *b)
}

func (s *Server) handleUpdateBlog(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(c, "multipart form required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.findBlog(c.Params("id"))
	if b == nil {
		return notFound(c, "blog")
	}

	for name, values := range form.Value {
		if len(values) == 0 {
			continue
		}
		v := values[0]
		switch name {
		case "title":
			b.Title = v
		case "slug":
			if other := s.findBlogBySlug(v); other != nil && other.ID != b.ID {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "slug already exists"})
			}
			b.Slug = v
		case "content":
			b.Content = v
		case "published":
			b.Published, _ = strconv.ParseBool(v)
		case "thumbnail":
			b.Thumbnail = v
		case "tags":
			b.Tags = append([]string{}, values...)
		case "series_id":
			b.SeriesID = strings.TrimSpace(v)
		}
	}
	if files := form.File["thumbnail"]; len(files) > 0 {
		b.Thumbnail = fmt.Sprintf("https://cdn.devblog.test/%s/%s", uuid.NewString(), files[0].Filename)
	}
	b.UpdatedAt = s.tick()

	return blogDetail(c, fiber.StatusOK, "Blog updated", *b)
}

func (s *Server) handleDeleteBlog(c *fiber.Ctx) error {
	id := c.Params("id")

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, b := range s.blogs {
		if b.ID == id {
			s.blogs = append(s.blogs[:i], s.blogs[i+1:]...)
			kept := s.comments[:0]
			for _, cm := range s.comments {
				if cm.BlogID != id {
					kept = append(kept, cm)
				}
			}
			s.comments = kept
			return c.JSON(fiber.Map{"success": true, "message": "Blog deleted"})
		}
	}
	return notFound(c, "blog")
}

// handleLike counts at most one like per visitor id.
func (s *Server) handleLike(c *fiber.Ctx) error {
	visitorID := c.Query("visitor_id")

	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.findBlog(c.Params("id"))
	if b == nil {
		return notFound(c, "blog")
	}

	if visitorID == "" {
		b.Likes++
	} else {
		if s.likes[b.ID] == nil {
			s.likes[b.ID] = make(map[string]bool)
		}
		if !s.likes[b.ID][visitorID] {
			s.likes[b.ID][visitorID] = true
			b.Likes++
		}
	}

	out := *b
	out.Liked = true
	return blogDetail(c, fiber.StatusOK, "Blog liked", out)
}
