package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dempa-dev/dempa/shared/api"
	"github.com/dempa-dev/dempa/shared/domain"
	"github.com/dempa-dev/dempa/shared/utils"
)

func (h *Handler) commentResponse(comment domain.Comment) api.CommentResponse {
	return api.CommentResponse{Comment: comment, ContentHTML: h.text.Render(comment.Content)}
}

func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	var body api.CreateCommentRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	comment, err := h.comments.Create(r.Context(), chi.URLParam(r, "thread"), body.Content)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSONStatus(w, http.StatusCreated, h.commentResponse(comment))
}

func (h *Handler) GetComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.comments.All(r.Context(), chi.URLParam(r, "thread"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	out := make([]api.CommentResponse, len(comments))
	for i, comment := range comments {
		out[i] = h.commentResponse(comment)
	}
	writeJSON(w, api.CommentListResponse{Comments: out})
}

func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	if err := h.comments.Delete(r.Context(), chi.URLParam(r, "comment")); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
