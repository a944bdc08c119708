package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dempa-dev/dempa/shared/api"
	"github.com/dempa-dev/dempa/shared/domain"
	"github.com/dempa-dev/dempa/shared/errors"
)

func newRequestRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/v1/boards/{board}/thread-requests", h.CreateThreadRequest)
	r.Get("/v1/boards/{board}/thread-requests", h.GetThreadRequests)
	r.Post("/v1/thread-requests/{request}/approve", h.ApproveThreadRequest)
	r.Post("/v1/thread-requests/{request}/reject", h.RejectThreadRequest)
	r.Post("/v1/threads/{thread}/comment-requests", h.CreateCommentRequest)
	r.Get("/v1/threads/{thread}/comment-requests", h.GetCommentRequests)
	r.Post("/v1/comment-requests/{request}/approve", h.ApproveCommentRequest)
	r.Post("/v1/comment-requests/{request}/reject", h.RejectCommentRequest)
	return r
}

func TestCreateThreadRequestHandler(t *testing.T) {
	h := newTestHandler()
	router := newRequestRouter(h)

	t.Run("successful request", func(t *testing.T) {
		h.moderation = &MockModerationService{
			MockCreateThreadRequest: func(ctx context.Context, boardId domain.EntityId, title, content string) (domain.ThreadRequest, error) {
				assert.Equal(t, "b1", boardId)
				return domain.ThreadRequest{Id: "r1", BoardId: boardId, Status: domain.RequestPending}, nil
			},
		}
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/boards/b1/thread-requests", bytes.NewBufferString(`{"title": "t", "content": "c"}`)))

		assert.Equal(t, http.StatusCreated, rr.Code)
		var resp api.ThreadRequestResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, domain.RequestPending, resp.Status)
	})

	t.Run("no profile yet", func(t *testing.T) {
		h.moderation = &MockModerationService{
			MockCreateThreadRequest: func(ctx context.Context, boardId domain.EntityId, title, content string) (domain.ThreadRequest, error) {
				return domain.ThreadRequest{}, errors.PreconditionFailed("register a profile before requesting")
			},
		}
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/boards/b1/thread-requests", bytes.NewBufferString(`{"title": "t", "content": "c"}`)))
		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestGetThreadRequestsHandler(t *testing.T) {
	h := newTestHandler()
	router := newRequestRouter(h)

	pendingCalled, processedCalled, allCalled := false, false, false
	h.moderation = &MockModerationService{
		MockPendingThreadRequests: func(ctx context.Context, boardId domain.EntityId) ([]domain.ThreadRequest, error) {
			pendingCalled = true
			return []domain.ThreadRequest{{Id: "r1"}}, nil
		},
		MockProcessedThreadRequests: func(ctx context.Context, boardId domain.EntityId) ([]domain.ThreadRequest, error) {
			processedCalled = true
			return nil, nil
		},
		MockThreadRequests: func(ctx context.Context, boardId domain.EntityId) ([]domain.ThreadRequest, error) {
			allCalled = true
			return []domain.ThreadRequest{{Id: "r1"}, {Id: "r2"}}, nil
		},
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/boards/b1/thread-requests", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, pendingCalled)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/boards/b1/thread-requests?processed=true", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, processedCalled)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/boards/b1/thread-requests?processed=all", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, allCalled)
}

func TestApproveThreadRequestHandler(t *testing.T) {
	h := newTestHandler()
	router := newRequestRouter(h)

	t.Run("approved", func(t *testing.T) {
		h.moderation = &MockModerationService{
			MockApproveThreadRequest: func(ctx context.Context, requestId domain.EntityId) (domain.ThreadRequest, error) {
				assert.Equal(t, "r1", requestId)
				return domain.ThreadRequest{Id: requestId, Status: domain.RequestApproved}, nil
			},
		}
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/thread-requests/r1/approve", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("already processed", func(t *testing.T) {
		h.moderation = &MockModerationService{
			MockApproveThreadRequest: func(ctx context.Context, requestId domain.EntityId) (domain.ThreadRequest, error) {
				return domain.ThreadRequest{}, errors.PreconditionFailed("already approved")
			},
		}
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/thread-requests/r1/approve", nil))
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("missing", func(t *testing.T) {
		h.moderation = &MockModerationService{
			MockApproveThreadRequest: func(ctx context.Context, requestId domain.EntityId) (domain.ThreadRequest, error) {
				return domain.ThreadRequest{}, errors.NotFound("request %s not found", requestId)
			},
		}
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/thread-requests/absent/approve", nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("not an approver", func(t *testing.T) {
		h.moderation = &MockModerationService{
			MockApproveThreadRequest: func(ctx context.Context, requestId domain.EntityId) (domain.ThreadRequest, error) {
				return domain.ThreadRequest{}, errors.PermissionDenied("may not moderate")
			},
		}
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/thread-requests/r1/approve", nil))
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestCommentRequestHandlers(t *testing.T) {
	h := newTestHandler()
	router := newRequestRouter(h)

	t.Run("create", func(t *testing.T) {
		h.moderation = &MockModerationService{
			MockCreateCommentRequest: func(ctx context.Context, threadId domain.EntityId, content string) (domain.CommentRequest, error) {
				assert.Equal(t, "t1", threadId)
				return domain.CommentRequest{Id: "r1", ThreadId: threadId, Status: domain.RequestPending}, nil
			},
		}
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/threads/t1/comment-requests", bytes.NewBufferString(`{"content": "hi"}`)))
		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("reject", func(t *testing.T) {
		h.moderation = &MockModerationService{
			MockRejectCommentRequest: func(ctx context.Context, requestId domain.EntityId) (domain.CommentRequest, error) {
				return domain.CommentRequest{Id: requestId, Status: domain.RequestRejected}, nil
			},
		}
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/comment-requests/r1/reject", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp api.CommentRequestResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, domain.RequestRejected, resp.Status)
	})
}
