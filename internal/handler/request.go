package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dempa-dev/dempa/shared/api"
	"github.com/dempa-dev/dempa/shared/utils"
)

func (h *Handler) CreateThreadRequest(w http.ResponseWriter, r *http.Request) {
	var body api.CreateThreadRequestRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	req, err := h.moderation.CreateThreadRequest(r.Context(), chi.URLParam(r, "board"), body.Title, body.Content)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, api.ThreadRequestResponse{ThreadRequest: req})
}

func (h *Handler) GetThreadRequests(w http.ResponseWriter, r *http.Request) {
	boardId := chi.URLParam(r, "board")

	list := h.moderation.PendingThreadRequests
	switch r.URL.Query().Get("processed") {
	case "true":
		list = h.moderation.ProcessedThreadRequests
	case "all":
		list = h.moderation.ThreadRequests
	}
	reqs, err := list(r.Context(), boardId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, api.ThreadRequestListResponse{Requests: reqs})
}

func (h *Handler) ApproveThreadRequest(w http.ResponseWriter, r *http.Request) {
	req, err := h.moderation.ApproveThreadRequest(r.Context(), chi.URLParam(r, "request"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, api.ThreadRequestResponse{ThreadRequest: req})
}

func (h *Handler) RejectThreadRequest(w http.ResponseWriter, r *http.Request) {
	req, err := h.moderation.RejectThreadRequest(r.Context(), chi.URLParam(r, "request"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, api.ThreadRequestResponse{ThreadRequest: req})
}

func (h *Handler) CreateCommentRequest(w http.ResponseWriter, r *http.Request) {
	var body api.CreateCommentRequestRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	req, err := h.moderation.CreateCommentRequest(r.Context(), chi.URLParam(r, "thread"), body.Content)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, api.CommentRequestResponse{CommentRequest: req})
}

func (h *Handler) GetCommentRequests(w http.ResponseWriter, r *http.Request) {
	threadId := chi.URLParam(r, "thread")

	list := h.moderation.PendingCommentRequests
	switch r.URL.Query().Get("processed") {
	case "true":
		list = h.moderation.ProcessedCommentRequests
	case "all":
		list = h.moderation.CommentRequests
	}
	reqs, err := list(r.Context(), threadId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, api.CommentRequestListResponse{Requests: reqs})
}

func (h *Handler) ApproveCommentRequest(w http.ResponseWriter, r *http.Request) {
	req, err := h.moderation.ApproveCommentRequest(r.Context(), chi.URLParam(r, "request"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, api.CommentRequestResponse{CommentRequest: req})
}

func (h *Handler) RejectCommentRequest(w http.ResponseWriter, r *http.Request) {
	req, err := h.moderation.RejectCommentRequest(r.Context(), chi.URLParam(r, "request"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, api.CommentRequestResponse{CommentRequest: req})
}
