package comments

import "DevBlogFrontend/internal/entity"

type CreateCommentRequest struct {
	Name    string `json:"name" validate:"max=100"`
	Comment string `json:"comment" validate:"required,max=5000"`
}

type CommentListResponse struct {
	Comments []entity.Comment `json:"comments"`
	Total    int              `json:"total"`
}

type CommentCountResponse struct {
	BlogID string `json:"blog_id"`
	Count  int    `json:"count"`
}
