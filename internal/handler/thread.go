package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dempa-dev/dempa/shared/api"
	"github.com/dempa-dev/dempa/shared/domain"
	"github.com/dempa-dev/dempa/shared/utils"
)

func (h *Handler) threadResponse(thread domain.Thread) api.ThreadResponse {
	return api.ThreadResponse{Thread: thread, ContentHTML: h.text.Render(thread.Content)}
}

func (h *Handler) CreateThread(w http.ResponseWriter, r *http.Request) {
	var body api.CreateThreadRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	thread, err := h.threads.Create(r.Context(), chi.URLParam(r, "board"), body.Title, body.Content)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSONStatus(w, http.StatusCreated, h.threadResponse(thread))
}

func (h *Handler) GetThread(w http.ResponseWriter, r *http.Request) {
	thread, err := h.threads.Find(r.Context(), chi.URLParam(r, "thread"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, h.threadResponse(thread))
}

func (h *Handler) GetThreads(w http.ResponseWriter, r *http.Request) {
	threads, err := h.threads.All(r.Context(), chi.URLParam(r, "board"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	out := make([]api.ThreadResponse, len(threads))
	for i, thread := range threads {
		out[i] = h.threadResponse(thread)
	}
	writeJSON(w, api.ThreadListResponse{Threads: out})
}

func (h *Handler) DeleteThread(w http.ResponseWriter, r *http.Request) {
	if err := h.threads.Delete(r.Context(), chi.URLParam(r, "thread")); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
