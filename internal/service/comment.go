package service

import (
	"context"
	"sort"

	"github.com/dempa-dev/dempa/internal/access"
	"github.com/dempa-dev/dempa/internal/record"
	"github.com/dempa-dev/dempa/internal/store"
	"github.com/dempa-dev/dempa/shared/domain"
	"github.com/dempa-dev/dempa/shared/errors"
)

type CommentService interface {
	Create(ctx context.Context, threadId domain.EntityId, content string) (domain.Comment, error)
	Find(ctx context.Context, id domain.EntityId) (domain.Comment, error)
	All(ctx context.Context, threadId domain.EntityId) ([]domain.Comment, error)
	Delete(ctx context.Context, id domain.EntityId) error
}

type Comment struct {
	store  *store.Store
	access *access.Access
	now    func() int64
}

func NewComment(s *store.Store, a *access.Access, now func() int64) CommentService {
	return &Comment{store: s, access: a, now: now}
}

// boardOf resolves the board a comment's thread belongs to; permissions
// always hang off the board, not the thread.
func (c *Comment) boardOf(ctx context.Context, threadId domain.EntityId) (domain.EntityId, error) {
	thread, ok, err := store.Get[domain.Thread](ctx, c.store, record.KindThread, threadId)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errors.NotFound("thread %s not found", threadId)
	}
	return thread.BoardId, nil
}

// Create posts a comment directly; the caller must hold Comment on the
// thread's board. Everyone else goes through the request workflow.
func (c *Comment) Create(ctx context.Context, threadId domain.EntityId, content string) (domain.Comment, error) {
	author := c.store.Signer().Pubkey()

	boardId, err := c.boardOf(ctx, threadId)
	if err != nil {
		return domain.Comment{}, err
	}
	allowed, err := c.access.Can(ctx, boardId, author, domain.ActionComment)
	if err != nil {
		return domain.Comment{}, err
	}
	if !allowed {
		return domain.Comment{}, errors.PermissionDenied("commenting on board %s requires approval", boardId)
	}
	if content == "" {
		return domain.Comment{}, errors.PreconditionFailed("comment must not be empty")
	}

	comment := domain.Comment{
		Id:        record.NewEntityID(record.KindComment, author),
		ThreadId:  threadId,
		Content:   content,
		Author:    author,
		CreatedAt: c.now(),
		State:     domain.LifecycleVisible,
	}
	if err := c.store.Publish(ctx, comment, record.KindComment, comment.Id); err != nil {
		return domain.Comment{}, err
	}
	return comment, nil
}

func (c *Comment) Find(ctx context.Context, id domain.EntityId) (domain.Comment, error) {
	comment, ok, err := store.Get[domain.Comment](ctx, c.store, record.KindComment, id)
	if err != nil {
		return domain.Comment{}, err
	}
	if !ok {
		return domain.Comment{}, errors.NotFound("comment %s not found", id)
	}
	return comment, nil
}

// All lists the thread's visible comments, oldest first (reading order).
func (c *Comment) All(ctx context.Context, threadId domain.EntityId) ([]domain.Comment, error) {
	comments, err := store.List[domain.Comment](ctx, c.store, record.KindComment)
	if err != nil {
		return nil, err
	}

	out := comments[:0]
	for _, comment := range comments {
		if comment.ThreadId == threadId && comment.State.Visible() {
			out = append(out, comment)
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

func (c *Comment) Delete(ctx context.Context, id domain.EntityId) error {
	comment, err := c.Find(ctx, id)
	if err != nil {
		return err
	}

	caller := c.store.Signer().Pubkey()
	if comment.Author != caller {
		boardId, err := c.boardOf(ctx, comment.ThreadId)
		if err != nil {
			return err
		}
		canModerate, err := c.access.CanApprove(ctx, boardId, caller)
		if err != nil {
			return err
		}
		if !canModerate {
			return errors.PermissionDenied("only the author or a moderator may delete comment %s", id)
		}
	}

	comment.State = domain.LifecycleDeleted
	return c.store.Publish(ctx, comment, record.KindComment, comment.Id)
}
