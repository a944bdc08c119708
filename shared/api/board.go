package api

import "github.com/dempa-dev/dempa/shared/domain"

// Request DTOs

type RoleRequest struct {
	Name     string   `json:"name" validate:"required"`
	Approver *string  `json:"approver,omitempty"`
	Actions  []string `json:"actions" validate:"required,min=1"`
}

type CreateBoardRequest struct {
	Name        string        `json:"name" validate:"required"`
	Description string        `json:"description"`
	Roles       []RoleRequest `json:"roles" validate:"dive"`
}

type UpdateBoardRequest struct {
	Description string          `json:"description"`
	Roles       []RoleRequest   `json:"roles" validate:"dive"`
	Members     []MemberRequest `json:"members" validate:"dive"`
	OwnerList   []string        `json:"ownerList" validate:"required,min=1"`
}

type MemberRequest struct {
	Pubkey string `json:"pubkey" validate:"required"`
	Role   string `json:"role" validate:"required"`
}

// Response DTOs

type BoardResponse struct {
	domain.Board
}

type BoardListResponse struct {
	Boards []domain.Board `json:"boards"`
}

type ApproverListResponse struct {
	Approvers []domain.Pubkey `json:"approvers"`
}
