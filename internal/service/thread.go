package service

import (
	"context"
	"sort"

	"github.com/dempa-dev/dempa/internal/access"
	"github.com/dempa-dev/dempa/internal/markdown"
	"github.com/dempa-dev/dempa/internal/record"
	"github.com/dempa-dev/dempa/internal/store"
	"github.com/dempa-dev/dempa/shared/domain"
	"github.com/dempa-dev/dempa/shared/errors"
)

type ThreadService interface {
	Create(ctx context.Context, boardId domain.EntityId, title, content string) (domain.Thread, error)
	Find(ctx context.Context, id domain.EntityId) (domain.Thread, error)
	All(ctx context.Context, boardId domain.EntityId) ([]domain.Thread, error)
	Delete(ctx context.Context, id domain.EntityId) error
}

type Thread struct {
	store  *store.Store
	access *access.Access
	text   *markdown.Renderer
	now    func() int64
}

func NewThread(s *store.Store, a *access.Access, text *markdown.Renderer, now func() int64) ThreadService {
	return &Thread{store: s, access: a, text: text, now: now}
}

// Create opens a thread directly. The caller must already hold OpenThread on
// the board (or own it); everyone else goes through the request workflow.
func (t *Thread) Create(ctx context.Context, boardId domain.EntityId, title, content string) (domain.Thread, error) {
	author := t.store.Signer().Pubkey()

	allowed, err := t.access.Can(ctx, boardId, author, domain.ActionOpenThread)
	if err != nil {
		return domain.Thread{}, err
	}
	if !allowed {
		return domain.Thread{}, errors.PermissionDenied("opening threads on board %s requires approval", boardId)
	}

	title = t.text.Plain(title)
	if title == "" {
		return domain.Thread{}, errors.PreconditionFailed("thread title must not be empty")
	}

	thread := domain.Thread{
		Id:        record.NewEntityID(record.KindThread, author),
		BoardId:   boardId,
		Title:     title,
		Content:   content,
		Author:    author,
		CreatedAt: t.now(),
		State:     domain.LifecycleVisible,
	}
	if err := t.store.Publish(ctx, thread, record.KindThread, thread.Id); err != nil {
		return domain.Thread{}, err
	}
	return thread, nil
}

func (t *Thread) Find(ctx context.Context, id domain.EntityId) (domain.Thread, error) {
	thread, ok, err := store.Get[domain.Thread](ctx, t.store, record.KindThread, id)
	if err != nil {
		return domain.Thread{}, err
	}
	if !ok {
		return domain.Thread{}, errors.NotFound("thread %s not found", id)
	}
	return thread, nil
}

// All lists the board's visible threads, newest first. Pending and deleted
// threads stay on the relays but never reach listings.
func (t *Thread) All(ctx context.Context, boardId domain.EntityId) ([]domain.Thread, error) {
	threads, err := store.List[domain.Thread](ctx, t.store, record.KindThread)
	if err != nil {
		return nil, err
	}

	out := threads[:0]
	for _, thread := range threads {
		if thread.BoardId == boardId && thread.State.Visible() {
			out = append(out, thread)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].Id < out[j].Id
	})
	return out, nil
}

// Delete soft-deletes: the thread record is superseded by a revision in
// deleted state. Allowed for the author and for the board's moderators.
func (t *Thread) Delete(ctx context.Context, id domain.EntityId) error {
	thread, err := t.Find(ctx, id)
	if err != nil {
		return err
	}

	caller := t.store.Signer().Pubkey()
	if thread.Author != caller {
		canModerate, err := t.access.CanApprove(ctx, thread.BoardId, caller)
		if err != nil {
			return err
		}
		if !canModerate {
			return errors.PermissionDenied("only the author or a moderator may delete thread %s", id)
		}
	}

	thread.State = domain.LifecycleDeleted
	return t.store.Publish(ctx, thread, record.KindThread, thread.Id)
}
