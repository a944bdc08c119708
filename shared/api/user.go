package api

import "github.com/dempa-dev/dempa/shared/domain"

// Request DTOs

type RegisterRequest struct {
	Name string `json:"name" validate:"required"`
}

type UpdateUserRequest struct {
	Name string `json:"name" validate:"required"`
}

type JoinBoardRequest struct {
	BoardId string `json:"boardId" validate:"required"`
}

// Response DTOs

type UserResponse struct {
	domain.User
}
