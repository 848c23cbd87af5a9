package entity

import "time"

const AnonymousName = "Anonymous"

type Comment struct {
	ID        string    `json:"id"`
	BlogID    string    `json:"blog_id"`
	Username  string    `json:"username"`
	Comment   string    `json:"comment"`
	VisitorID string    `json:"visitor_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}
