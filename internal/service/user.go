package service

import (
	"context"

	"github.com/dempa-dev/dempa/internal/markdown"
	"github.com/dempa-dev/dempa/internal/record"
	"github.com/dempa-dev/dempa/internal/store"
	"github.com/dempa-dev/dempa/shared/domain"
	"github.com/dempa-dev/dempa/shared/errors"
)

type UserService interface {
	Register(ctx context.Context, name string) (domain.User, error)
	Current(ctx context.Context) (domain.User, error)
	FindByPubkey(ctx context.Context, pubkey domain.Pubkey) (domain.User, error)
	Update(ctx context.Context, name string) (domain.User, error)
	JoinBoard(ctx context.Context, boardId domain.EntityId) (domain.User, error)
	JoinedBoards(ctx context.Context) ([]domain.Board, error)
}

type User struct {
	store  *store.Store
	boards BoardService
	text   *markdown.Renderer
}

func NewUser(s *store.Store, boards BoardService, text *markdown.Renderer) UserService {
	return &User{store: s, boards: boards, text: text}
}

// Register publishes the node's profile. The profile's stable id is the
// pubkey itself, so re-registering just becomes the newest revision.
func (u *User) Register(ctx context.Context, name string) (domain.User, error) {
	name = u.text.Plain(name)
	if name == "" {
		return domain.User{}, errors.PreconditionFailed("user name must not be empty")
	}

	pubkey := u.store.Signer().Pubkey()
	user := domain.User{Pubkey: pubkey, Name: name}
	if err := u.store.Publish(ctx, user, record.KindUser, pubkey); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (u *User) Current(ctx context.Context) (domain.User, error) {
	return u.FindByPubkey(ctx, u.store.Signer().Pubkey())
}

func (u *User) FindByPubkey(ctx context.Context, pubkey domain.Pubkey) (domain.User, error) {
	user, ok, err := store.Get[domain.User](ctx, u.store, record.KindUser, pubkey)
	if err != nil {
		return domain.User{}, err
	}
	if !ok {
		return domain.User{}, errors.NotFound("no profile for %s", pubkey)
	}
	return user, nil
}

// Update renames the profile, keeping joined boards.
func (u *User) Update(ctx context.Context, name string) (domain.User, error) {
	user, err := u.Current(ctx)
	if err != nil {
		return domain.User{}, err
	}

	name = u.text.Plain(name)
	if name == "" {
		return domain.User{}, errors.PreconditionFailed("user name must not be empty")
	}

	user.Name = name
	if err := u.store.Publish(ctx, user, record.KindUser, user.Pubkey); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// JoinBoard adds the board to the profile's joined list. Joining twice, or
// joining a board that does not resolve, is refused.
func (u *User) JoinBoard(ctx context.Context, boardId domain.EntityId) (domain.User, error) {
	user, err := u.Current(ctx)
	if err != nil {
		return domain.User{}, err
	}
	if user.HasJoined(boardId) {
		return user, nil
	}
	if _, err := u.boards.Find(ctx, boardId); err != nil {
		return domain.User{}, err
	}

	user.JoinedBoardIds = append(user.JoinedBoardIds, boardId)
	if err := u.store.Publish(ctx, user, record.KindUser, user.Pubkey); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// JoinedBoards resolves the profile's joined ids. Boards that no longer
// resolve are skipped instead of failing the whole listing.
func (u *User) JoinedBoards(ctx context.Context) ([]domain.Board, error) {
	user, err := u.Current(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Board, 0, len(user.JoinedBoardIds))
	for _, id := range user.JoinedBoardIds {
		board, err := u.boards.Find(ctx, id)
		if err != nil {
			if errors.StatusCode(err) == 404 {
				continue
			}
			return nil, err
		}
		out = append(out, board)
	}
	return out, nil
}
