package entity

import "time"

type Blog struct {
	ID          string       `json:"id"`
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
	ViewCount   *int         `json:"view_count,omitempty"`
	UserDetails *UserDetails `json:"user_details,omitempty"`

	// Liked is set locally after a successful like; the backend never sends it.
	Liked bool `json:"liked,omitempty"`
}

type UserDetails struct {
	ID          string   `json:"id"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Email       string   `json:"email"`
	PhoneNumber string   `json:"phoneNumber"`
	Username    string   `json:"username"`
	Role        string   `json:"role"`
	Profile     *Profile `json:"profile,omitempty"`
}

type Profile struct {
	Image         string `json:"image"`
	PortfolioLink string `json:"portfolio_link"`
}

// BlogDraft is the unsaved editor state handed to the preview page.
type BlogDraft struct {
	Title     string   `json:"title"`
	Slug      string   `json:"slug"`
	Content   string   `json:"content"`
	Thumbnail string   `json:"thumbnail"`
	Tags      []string `json:"tags"`
	Published bool     `json:"published"`
	SeriesID  string   `json:"series_id,omitempty"`
	IsPreview bool     `json:"isPreview"`
}
