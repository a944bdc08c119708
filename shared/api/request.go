package api

import "github.com/dempa-dev/dempa/shared/domain"

// Request DTOs

// CreateThreadRequestRequest asks to open a thread on a moderated board.
type CreateThreadRequestRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type CreateCommentRequestRequest struct {
	Content string `json:"content" validate:"required"`
}

// Response DTOs

type ThreadRequestResponse struct {
	domain.ThreadRequest
}

type ThreadRequestListResponse struct {
	Requests []domain.ThreadRequest `json:"requests"`
}

type CommentRequestResponse struct {
	domain.CommentRequest
}

type CommentRequestListResponse struct {
	Requests []domain.CommentRequest `json:"requests"`
}
