package api

import "github.com/dempa-dev/dempa/shared/domain"

// Request DTOs

type CreateThreadRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// Response DTOs

// ThreadResponse carries the raw markdown plus the sanitized render.
type ThreadResponse struct {
	domain.Thread
	ContentHTML string `json:"contentHtml,omitempty"`
}

type ThreadListResponse struct {
	Threads []ThreadResponse `json:"threads"`
}
