package api

import "github.com/dempa-dev/dempa/shared/domain"

// Request DTOs

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// Response DTOs

type CommentResponse struct {
	domain.Comment
	ContentHTML string `json:"contentHtml,omitempty"`
}

type CommentListResponse struct {
	Comments []CommentResponse `json:"comments"`
}
