// Package moderation implements the request workflow: users without direct
// posting rights publish their content in pending state together with a
// request record, and an approver's decision grants the right, flips the
// content visible and marks the request processed.
package moderation

import (
	"context"
	"sort"

	"github.com/dempa-dev/dempa/internal/access"
	"github.com/dempa-dev/dempa/internal/markdown"
	"github.com/dempa-dev/dempa/internal/record"
	"github.com/dempa-dev/dempa/internal/store"
	"github.com/dempa-dev/dempa/shared/domain"
	"github.com/dempa-dev/dempa/shared/errors"
	"github.com/dempa-dev/dempa/shared/logger"
)

type Service interface {
	CreateThreadRequest(ctx context.Context, boardId domain.EntityId, title, content string) (domain.ThreadRequest, error)
	ApproveThreadRequest(ctx context.Context, requestId domain.EntityId) (domain.ThreadRequest, error)
	RejectThreadRequest(ctx context.Context, requestId domain.EntityId) (domain.ThreadRequest, error)
	PendingThreadRequests(ctx context.Context, boardId domain.EntityId) ([]domain.ThreadRequest, error)
	ProcessedThreadRequests(ctx context.Context, boardId domain.EntityId) ([]domain.ThreadRequest, error)
	ThreadRequests(ctx context.Context, boardId domain.EntityId) ([]domain.ThreadRequest, error)

	CreateCommentRequest(ctx context.Context, threadId domain.EntityId, content string) (domain.CommentRequest, error)
	ApproveCommentRequest(ctx context.Context, requestId domain.EntityId) (domain.CommentRequest, error)
	RejectCommentRequest(ctx context.Context, requestId domain.EntityId) (domain.CommentRequest, error)
	PendingCommentRequests(ctx context.Context, threadId domain.EntityId) ([]domain.CommentRequest, error)
	ProcessedCommentRequests(ctx context.Context, threadId domain.EntityId) ([]domain.CommentRequest, error)
	CommentRequests(ctx context.Context, threadId domain.EntityId) ([]domain.CommentRequest, error)

	Approvers(ctx context.Context, boardId domain.EntityId) ([]domain.Pubkey, error)
}

type Moderation struct {
	store  *store.Store
	access *access.Access
	text   *markdown.Renderer
	now    func() int64
}

func New(s *store.Store, a *access.Access, text *markdown.Renderer, now func() int64) Service {
	return &Moderation{store: s, access: a, text: text, now: now}
}

// requireProfile: a request carries only a pubkey, so approvers need a
// profile record to see who is asking.
func (m *Moderation) requireProfile(ctx context.Context, pubkey domain.Pubkey) error {
	_, ok, err := store.Get[domain.User](ctx, m.store, record.KindUser, pubkey)
	if err != nil {
		return err
	}
	if !ok {
		return errors.PreconditionFailed("register a profile before requesting")
	}
	return nil
}

func (m *Moderation) requireApprover(ctx context.Context, boardId domain.EntityId) error {
	caller := m.store.Signer().Pubkey()
	ok, err := m.access.CanApprove(ctx, boardId, caller)
	if err != nil {
		return err
	}
	if !ok {
		return errors.PermissionDenied("%s may not moderate board %s", caller, boardId)
	}
	return nil
}

// CreateThreadRequest publishes the thread in pending state first, then the
// request pointing at it. If the request never gets published the pending
// thread is harmless: it is invisible and unreferenced.
func (m *Moderation) CreateThreadRequest(ctx context.Context, boardId domain.EntityId, title, content string) (domain.ThreadRequest, error) {
	requester := m.store.Signer().Pubkey()
	if err := m.requireProfile(ctx, requester); err != nil {
		return domain.ThreadRequest{}, err
	}
	if _, ok, err := store.Get[domain.Board](ctx, m.store, record.KindBoard, boardId); err != nil {
		return domain.ThreadRequest{}, err
	} else if !ok {
		return domain.ThreadRequest{}, errors.NotFound("board %s not found", boardId)
	}

	// The pending thread goes through the same sanitization as a directly
	// opened one; approval must not become a markup injection path.
	title = m.text.Plain(title)
	if title == "" {
		return domain.ThreadRequest{}, errors.PreconditionFailed("thread title must not be empty")
	}

	thread := domain.Thread{
		Id:        record.NewEntityID(record.KindThread, requester),
		BoardId:   boardId,
		Title:     title,
		Content:   content,
		Author:    requester,
		CreatedAt: m.now(),
		State:     domain.LifecyclePending,
	}
	if err := m.store.Publish(ctx, thread, record.KindThread, thread.Id); err != nil {
		return domain.ThreadRequest{}, err
	}

	req := domain.ThreadRequest{
		Id:        record.NewEntityID(record.KindThreadRequest, requester),
		BoardId:   boardId,
		Title:     title,
		Content:   content,
		ThreadId:  thread.Id,
		Requester: requester,
		Status:    domain.RequestPending,
		CreatedAt: m.now(),
	}
	if err := m.store.Publish(ctx, req, record.KindThreadRequest, req.Id); err != nil {
		return domain.ThreadRequest{}, err
	}
	return req, nil
}

func (m *Moderation) threadRequest(ctx context.Context, requestId domain.EntityId) (domain.ThreadRequest, error) {
	req, ok, err := store.Get[domain.ThreadRequest](ctx, m.store, record.KindThreadRequest, requestId)
	if err != nil {
		return domain.ThreadRequest{}, err
	}
	if !ok {
		return domain.ThreadRequest{}, errors.NotFound("request %s not found", requestId)
	}
	return req, nil
}

// ApproveThreadRequest grants OpenThread to the requester, flips the pending
// thread visible and marks the request approved. Approval is idempotent at
// the grant level but a processed request is refused outright, so two
// moderators racing on the same request converge on one decision record.
func (m *Moderation) ApproveThreadRequest(ctx context.Context, requestId domain.EntityId) (domain.ThreadRequest, error) {
	req, err := m.threadRequest(ctx, requestId)
	if err != nil {
		return domain.ThreadRequest{}, err
	}
	// Authorization first: a non-approver must not learn whether the
	// request was already decided.
	if err := m.requireApprover(ctx, req.BoardId); err != nil {
		return domain.ThreadRequest{}, err
	}
	if req.Status.Processed() {
		return domain.ThreadRequest{}, errors.PreconditionFailed("request %s already %s", requestId, req.Status)
	}

	thread, ok, err := store.Get[domain.Thread](ctx, m.store, record.KindThread, req.ThreadId)
	if err != nil {
		return domain.ThreadRequest{}, err
	}
	if !ok {
		return domain.ThreadRequest{}, errors.PreconditionFailed("request %s references missing thread %s", requestId, req.ThreadId)
	}

	if err := m.access.Grant(ctx, req.BoardId, req.Requester, domain.ActionOpenThread); err != nil {
		return domain.ThreadRequest{}, err
	}

	thread.State = domain.LifecycleVisible
	if err := m.store.Publish(ctx, thread, record.KindThread, thread.Id); err != nil {
		return domain.ThreadRequest{}, err
	}

	req.Status = domain.RequestApproved
	if err := m.store.Publish(ctx, req, record.KindThreadRequest, req.Id); err != nil {
		return domain.ThreadRequest{}, err
	}
	logger.Log.Info("thread request approved", "request", req.Id, "thread", req.ThreadId, "requester", req.Requester)
	return req, nil
}

// RejectThreadRequest marks the request rejected and soft-deletes the
// pending thread. No permission change occurs.
func (m *Moderation) RejectThreadRequest(ctx context.Context, requestId domain.EntityId) (domain.ThreadRequest, error) {
	req, err := m.threadRequest(ctx, requestId)
	if err != nil {
		return domain.ThreadRequest{}, err
	}
	if err := m.requireApprover(ctx, req.BoardId); err != nil {
		return domain.ThreadRequest{}, err
	}
	if req.Status.Processed() {
		return domain.ThreadRequest{}, errors.PreconditionFailed("request %s already %s", requestId, req.Status)
	}

	// The content record outlives the rejection; it is superseded by a
	// deleted revision, never removed. A vanished record is fine here.
	if thread, ok, err := store.Get[domain.Thread](ctx, m.store, record.KindThread, req.ThreadId); err != nil {
		return domain.ThreadRequest{}, err
	} else if ok {
		thread.State = domain.LifecycleDeleted
		if err := m.store.Publish(ctx, thread, record.KindThread, thread.Id); err != nil {
			return domain.ThreadRequest{}, err
		}
	}

	req.Status = domain.RequestRejected
	if err := m.store.Publish(ctx, req, record.KindThreadRequest, req.Id); err != nil {
		return domain.ThreadRequest{}, err
	}
	logger.Log.Info("thread request rejected", "request", req.Id, "requester", req.Requester)
	return req, nil
}

func (m *Moderation) listThreadRequests(ctx context.Context, boardId domain.EntityId, keep func(domain.RequestStatus) bool) ([]domain.ThreadRequest, error) {
	reqs, err := store.List[domain.ThreadRequest](ctx, m.store, record.KindThreadRequest)
	if err != nil {
		return nil, err
	}

	out := reqs[:0]
	for _, req := range reqs {
		if req.BoardId == boardId && keep(req.Status) {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt < out[j].CreatedAt
		}
		return out[i].Id < out[j].Id
	})
	return out, nil
}

func (m *Moderation) PendingThreadRequests(ctx context.Context, boardId domain.EntityId) ([]domain.ThreadRequest, error) {
	return m.listThreadRequests(ctx, boardId, func(s domain.RequestStatus) bool { return !s.Processed() })
}

func (m *Moderation) ProcessedThreadRequests(ctx context.Context, boardId domain.EntityId) ([]domain.ThreadRequest, error) {
	return m.listThreadRequests(ctx, boardId, func(s domain.RequestStatus) bool { return s.Processed() })
}

// ThreadRequests lists every request on the board regardless of status.
func (m *Moderation) ThreadRequests(ctx context.Context, boardId domain.EntityId) ([]domain.ThreadRequest, error) {
	return m.listThreadRequests(ctx, boardId, func(domain.RequestStatus) bool { return true })
}

// CreateCommentRequest mirrors the thread flow, scoped to a thread.
func (m *Moderation) CreateCommentRequest(ctx context.Context, threadId domain.EntityId, content string) (domain.CommentRequest, error) {
	requester := m.store.Signer().Pubkey()
	if err := m.requireProfile(ctx, requester); err != nil {
		return domain.CommentRequest{}, err
	}
	if _, ok, err := store.Get[domain.Thread](ctx, m.store, record.KindThread, threadId); err != nil {
		return domain.CommentRequest{}, err
	} else if !ok {
		return domain.CommentRequest{}, errors.NotFound("thread %s not found", threadId)
	}

	if content == "" {
		return domain.CommentRequest{}, errors.PreconditionFailed("comment must not be empty")
	}

	comment := domain.Comment{
		Id:        record.NewEntityID(record.KindComment, requester),
		ThreadId:  threadId,
		Content:   content,
		Author:    requester,
		CreatedAt: m.now(),
		State:     domain.LifecyclePending,
	}
	if err := m.store.Publish(ctx, comment, record.KindComment, comment.Id); err != nil {
		return domain.CommentRequest{}, err
	}

	req := domain.CommentRequest{
		Id:        record.NewEntityID(record.KindCommentRequest, requester),
		ThreadId:  threadId,
		Content:   content,
		CommentId: comment.Id,
		Requester: requester,
		Status:    domain.RequestPending,
		CreatedAt: m.now(),
	}
	if err := m.store.Publish(ctx, req, record.KindCommentRequest, req.Id); err != nil {
		return domain.CommentRequest{}, err
	}
	return req, nil
}

func (m *Moderation) commentRequest(ctx context.Context, requestId domain.EntityId) (domain.CommentRequest, error) {
	req, ok, err := store.Get[domain.CommentRequest](ctx, m.store, record.KindCommentRequest, requestId)
	if err != nil {
		return domain.CommentRequest{}, err
	}
	if !ok {
		return domain.CommentRequest{}, errors.NotFound("request %s not found", requestId)
	}
	return req, nil
}

// boardOfThread resolves the board a comment request's permission decisions
// belong to. An unresolvable chain fails the decision, not the listing.
func (m *Moderation) boardOfThread(ctx context.Context, threadId domain.EntityId) (domain.EntityId, error) {
	thread, ok, err := store.Get[domain.Thread](ctx, m.store, record.KindThread, threadId)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errors.PreconditionFailed("thread %s does not resolve", threadId)
	}
	return thread.BoardId, nil
}

func (m *Moderation) ApproveCommentRequest(ctx context.Context, requestId domain.EntityId) (domain.CommentRequest, error) {
	req, err := m.commentRequest(ctx, requestId)
	if err != nil {
		return domain.CommentRequest{}, err
	}
	boardId, err := m.boardOfThread(ctx, req.ThreadId)
	if err != nil {
		return domain.CommentRequest{}, err
	}
	if err := m.requireApprover(ctx, boardId); err != nil {
		return domain.CommentRequest{}, err
	}
	if req.Status.Processed() {
		return domain.CommentRequest{}, errors.PreconditionFailed("request %s already %s", requestId, req.Status)
	}

	comment, ok, err := store.Get[domain.Comment](ctx, m.store, record.KindComment, req.CommentId)
	if err != nil {
		return domain.CommentRequest{}, err
	}
	if !ok {
		return domain.CommentRequest{}, errors.PreconditionFailed("request %s references missing comment %s", requestId, req.CommentId)
	}

	if err := m.access.Grant(ctx, boardId, req.Requester, domain.ActionComment); err != nil {
		return domain.CommentRequest{}, err
	}

	comment.State = domain.LifecycleVisible
	if err := m.store.Publish(ctx, comment, record.KindComment, comment.Id); err != nil {
		return domain.CommentRequest{}, err
	}

	req.Status = domain.RequestApproved
	if err := m.store.Publish(ctx, req, record.KindCommentRequest, req.Id); err != nil {
		return domain.CommentRequest{}, err
	}
	logger.Log.Info("comment request approved", "request", req.Id, "comment", req.CommentId, "requester", req.Requester)
	return req, nil
}

func (m *Moderation) RejectCommentRequest(ctx context.Context, requestId domain.EntityId) (domain.CommentRequest, error) {
	req, err := m.commentRequest(ctx, requestId)
	if err != nil {
		return domain.CommentRequest{}, err
	}
	boardId, err := m.boardOfThread(ctx, req.ThreadId)
	if err != nil {
		return domain.CommentRequest{}, err
	}
	if err := m.requireApprover(ctx, boardId); err != nil {
		return domain.CommentRequest{}, err
	}
	if req.Status.Processed() {
		return domain.CommentRequest{}, errors.PreconditionFailed("request %s already %s", requestId, req.Status)
	}

	if comment, ok, err := store.Get[domain.Comment](ctx, m.store, record.KindComment, req.CommentId); err != nil {
		return domain.CommentRequest{}, err
	} else if ok {
		comment.State = domain.LifecycleDeleted
		if err := m.store.Publish(ctx, comment, record.KindComment, comment.Id); err != nil {
			return domain.CommentRequest{}, err
		}
	}

	req.Status = domain.RequestRejected
	if err := m.store.Publish(ctx, req, record.KindCommentRequest, req.Id); err != nil {
		return domain.CommentRequest{}, err
	}
	logger.Log.Info("comment request rejected", "request", req.Id, "requester", req.Requester)
	return req, nil
}

func (m *Moderation) listCommentRequests(ctx context.Context, threadId domain.EntityId, keep func(domain.RequestStatus) bool) ([]domain.CommentRequest, error) {
	reqs, err := store.List[domain.CommentRequest](ctx, m.store, record.KindCommentRequest)
	if err != nil {
		return nil, err
	}

	out := reqs[:0]
	for _, req := range reqs {
		if req.ThreadId == threadId && keep(req.Status) {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt < out[j].CreatedAt
		}
		return out[i].Id < out[j].Id
	})
	return out, nil
}

func (m *Moderation) PendingCommentRequests(ctx context.Context, threadId domain.EntityId) ([]domain.CommentRequest, error) {
	return m.listCommentRequests(ctx, threadId, func(s domain.RequestStatus) bool { return !s.Processed() })
}

func (m *Moderation) ProcessedCommentRequests(ctx context.Context, threadId domain.EntityId) ([]domain.CommentRequest, error) {
	return m.listCommentRequests(ctx, threadId, func(s domain.RequestStatus) bool { return s.Processed() })
}

// CommentRequests lists every request on the thread regardless of status.
func (m *Moderation) CommentRequests(ctx context.Context, threadId domain.EntityId) ([]domain.CommentRequest, error) {
	return m.listCommentRequests(ctx, threadId, func(domain.RequestStatus) bool { return true })
}

// Approvers lists who can decide requests on a board, so requesters know
// whose attention they are waiting for.
func (m *Moderation) Approvers(ctx context.Context, boardId domain.EntityId) ([]domain.Pubkey, error) {
	return m.access.Approvers(ctx, boardId)
}
