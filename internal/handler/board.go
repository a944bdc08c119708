package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dempa-dev/dempa/shared/api"
	"github.com/dempa-dev/dempa/shared/domain"
	"github.com/dempa-dev/dempa/shared/utils"
)

func rolesFromRequest(in []api.RoleRequest) []domain.Role {
	roles := make([]domain.Role, len(in))
	for i, r := range in {
		actions := make([]domain.Action, len(r.Actions))
		for j, a := range r.Actions {
			actions[j] = domain.Action(a)
		}
		roles[i] = domain.Role{Name: r.Name, Approver: r.Approver, Actions: actions}
	}
	return roles
}

func (h *Handler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	var body api.CreateBoardRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	board, err := h.boards.Create(r.Context(), body.Name, body.Description, rolesFromRequest(body.Roles))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSONStatus(w, http.StatusCreated, api.BoardResponse{Board: board})
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	board, err := h.boards.Find(r.Context(), chi.URLParam(r, "board"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, api.BoardResponse{Board: board})
}

func (h *Handler) GetBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := h.boards.All(r.Context())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, api.BoardListResponse{Boards: boards})
}

func (h *Handler) UpdateBoard(w http.ResponseWriter, r *http.Request) {
	var body api.UpdateBoardRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	boardId := chi.URLParam(r, "board")
	board, err := h.boards.Find(r.Context(), boardId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	board.Description = body.Description
	board.Roles = rolesFromRequest(body.Roles)
	board.OwnerList = body.OwnerList
	members := make([]domain.Member, len(body.Members))
	for i, m := range body.Members {
		members[i] = domain.Member{Pubkey: m.Pubkey, Role: m.Role}
	}
	board.Members = members

	if err := h.boards.Save(r.Context(), board); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, api.BoardResponse{Board: board})
}

func (h *Handler) GetApprovers(w http.ResponseWriter, r *http.Request) {
	approvers, err := h.moderation.Approvers(r.Context(), chi.URLParam(r, "board"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, api.ApproverListResponse{Approvers: approvers})
}
